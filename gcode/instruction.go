// Package gcode defines the instruction set of the G-machine, the
// stack-based graph-reduction abstract machine corelang compiles to.
// Instructions are fixed-shape values with a small set of operand
// fields (Pack uses two: tag and arity), in
// the spirit of the dws bytecode package's opcode+operand encoding,
// but addressed by a tree of Instr values rather than a flat byte
// stream: Cond and CaseJump carry nested instruction sequences rather
// than relative jump offsets (see the "open questions" note in
// DESIGN.md on why the tree encoding was chosen over the flat one).
package gcode

import "fmt"

// OpCode names one G-machine instruction.
type OpCode byte

const (
	// ---- graph construction ----

	// OpPushglobal pushes the address of a named global (supercombinator
	// or primitive). Fails at runtime if the name is undeclared.
	OpPushglobal OpCode = iota
	// OpPushint allocates a fresh NInt(k) and pushes its address.
	OpPushint
	// OpPush duplicates the address n slots below the top (0 = top).
	OpPush
	// OpMkap pops f then x, allocates NAp(f, x), pushes it.
	OpMkap
	// OpPack pops Arity addresses (in order) and allocates an NConstr
	// with the given tag.
	OpPack

	// ---- stack manipulation ----

	// OpUpdate pops the top address a and overwrites the cell at depth
	// N (counted from the new top, after the pop) with NIndirect(a).
	OpUpdate
	// OpPop drops the top N addresses.
	OpPop
	// OpSlide pops the top address, drops the next N, then pushes the
	// saved top back.
	OpSlide
	// OpAlloc pushes N freshly allocated placeholder cells, used to
	// set up letrec back-patching before the bindings' code runs.
	OpAlloc
	// OpSplit pops a, requires NConstr with exactly N components, and
	// pushes its components (leftmost component ends up on top).
	OpSplit

	// ---- control ----

	// OpUnwind is the core reduction step; see machine.Unwind.
	OpUnwind
	// OpEval suspends the current frame onto the dump and begins
	// unwinding the top of stack to weak head normal form.
	OpEval
	// OpCond pops a cell, requires NInt, and continues with Then when
	// the value is 1 or Else when it is 0.
	OpCond
	// OpCaseJump inspects the top cell, requires NConstr, and selects
	// the alternative whose tag matches.
	OpCaseJump

	// ---- primitive operators, open-coded ----

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpNeg
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

var names = map[OpCode]string{
	OpPushglobal: "PUSHGLOBAL",
	OpPushint:    "PUSHINT",
	OpPush:       "PUSH",
	OpMkap:       "MKAP",
	OpPack:       "PACK",
	OpUpdate:     "UPDATE",
	OpPop:        "POP",
	OpSlide:      "SLIDE",
	OpAlloc:      "ALLOC",
	OpSplit:      "SPLIT",
	OpUnwind:     "UNWIND",
	OpEval:       "EVAL",
	OpCond:       "COND",
	OpCaseJump:   "CASEJUMP",
	OpAdd:        "ADD",
	OpSub:        "SUB",
	OpMul:        "MUL",
	OpDiv:        "DIV",
	OpNeg:        "NEG",
	OpEq:         "EQ",
	OpNe:         "NE",
	OpLt:         "LT",
	OpLe:         "LE",
	OpGt:         "GT",
	OpGe:         "GE",
}

func (op OpCode) String() string {
	if s, ok := names[op]; ok {
		return s
	}
	return fmt.Sprintf("OP(%d)", byte(op))
}

// PrimOpCode reports the open-coded instruction for a binary/unary
// primitive operator name, if one exists.
func PrimOpCode(name string) (OpCode, bool) {
	switch name {
	case "+":
		return OpAdd, true
	case "-":
		return OpSub, true
	case "*":
		return OpMul, true
	case "/":
		return OpDiv, true
	case "negate":
		return OpNeg, true
	case "==":
		return OpEq, true
	case "/=":
		return OpNe, true
	case "<":
		return OpLt, true
	case "<=":
		return OpLe, true
	case ">":
		return OpGt, true
	case ">=":
		return OpGe, true
	default:
		return 0, false
	}
}

// Arity returns how many operands a primitive operator name takes.
func Arity(name string) int {
	if name == "negate" {
		return 1
	}
	return 2
}

// Instr is one G-machine instruction. Only the field(s) relevant to
// Op are meaningful; the zero value of the rest is ignored.
type Instr struct {
	Op   OpCode
	N    int    // Pushint/Push/Update/Pop/Slide/Alloc/Split argument
	Name string // Pushglobal argument
	Tag  int    // Pack tag
	Then Code   // Cond: code to run when condition is 1
	Else Code   // Cond: code to run when condition is 0
	Alts []Alt  // CaseJump: tag -> code table
}

// Alt is one arm of a CaseJump instruction's dispatch table.
type Alt struct {
	Tag  int
	Code Code
}

// Code is an ordered instruction sequence, the unit the compiler
// emits per supercombinator (or per case alternative/Cond branch).
type Code []Instr

func simple(op OpCode) Instr { return Instr{Op: op} }

// Pushglobal, Pushint, Push, Mkap, Update, Pop, Slide, Alloc, Split,
// Pack, Unwind, Eval, Cond, CaseJump build one instruction each; these
// mirror the constructors spec.md §4.1 names.

func Pushglobal(name string) Instr { return Instr{Op: OpPushglobal, Name: name} }
func Pushint(k int64) Instr        { return Instr{Op: OpPushint, N: int(k)} }
func Push(n int) Instr             { return Instr{Op: OpPush, N: n} }
func Mkap() Instr                  { return simple(OpMkap) }
func Update(n int) Instr           { return Instr{Op: OpUpdate, N: n} }
func Pop(n int) Instr              { return Instr{Op: OpPop, N: n} }
func Slide(n int) Instr            { return Instr{Op: OpSlide, N: n} }
func Alloc(n int) Instr            { return Instr{Op: OpAlloc, N: n} }
func Split(n int) Instr            { return Instr{Op: OpSplit, N: n} }
func Pack(tag, arity int) Instr    { return Instr{Op: OpPack, Tag: tag, N: arity} }
func Unwind() Instr                { return simple(OpUnwind) }
func Eval() Instr                  { return simple(OpEval) }
func Cond(then, els Code) Instr    { return Instr{Op: OpCond, Then: then, Else: els} }
func CaseJump(alts []Alt) Instr    { return Instr{Op: OpCaseJump, Alts: alts} }
func PrimOp(op OpCode) Instr       { return simple(op) }
