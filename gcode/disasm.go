package gcode

import (
	"fmt"
	"io"

	"golang.org/x/text/width"
)

// Disassembler prints a human-readable listing of a supercombinator's
// code, grounded on the dws bytecode.Disassembler's "one line per
// instruction" format but addressed to a tree of Instr rather than a
// flat byte stream.
type Disassembler struct {
	w io.Writer
}

// NewDisassembler creates a disassembler writing to w.
func NewDisassembler(w io.Writer) *Disassembler {
	return &Disassembler{w: w}
}

// Sc prints the `<Sc NAME arity=N>` header followed by the
// instruction listing for one supercombinator.
func (d *Disassembler) Sc(name string, arity int, code Code) {
	fmt.Fprintf(d.w, "<Sc %s arity=%d>\n", name, arity)
	d.listing(code, 0)
}

// listing prints one `pc opname [oparg [note]]` line per instruction,
// padding the mnemonic column to a fixed display width so the operand
// column stays aligned regardless of name length (matters if a future
// build embeds double-width glyphs in a primitive name).
func (d *Disassembler) listing(code Code, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}
	for pc, ins := range code {
		mnemonic := ins.Op.String()
		gap := 10 - width.StringWidth(mnemonic)
		if gap < 1 {
			gap = 1
		}
		spaces := ""
		for i := 0; i < gap; i++ {
			spaces += " "
		}
		line := fmt.Sprintf("%s%4d %s%s", pad, pc, mnemonic, spaces)
		switch ins.Op {
		case OpPushglobal:
			line += ins.Name
		case OpPushint, OpPush, OpUpdate, OpPop, OpSlide, OpAlloc, OpSplit:
			line += fmt.Sprintf("%d", ins.N)
		case OpPack:
			line += fmt.Sprintf("{%d,%d}", ins.Tag, ins.N)
		}
		fmt.Fprintln(d.w, line)
		switch ins.Op {
		case OpCond:
			fmt.Fprintf(d.w, "%s      then:\n", pad)
			d.listing(ins.Then, indent+2)
			fmt.Fprintf(d.w, "%s      else:\n", pad)
			d.listing(ins.Else, indent+2)
		case OpCaseJump:
			for _, alt := range ins.Alts {
				fmt.Fprintf(d.w, "%s      <%d>:\n", pad, alt.Tag)
				d.listing(alt.Code, indent+2)
			}
		}
	}
}
