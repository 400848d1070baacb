package machine

import (
	"fmt"

	"corelang/corerr"
	"corelang/gcode"
	"corelang/heap"
)

// step dispatches the instruction at m.Code[m.PC], advances the
// registers accordingly, and reports whether the whole run has
// terminated (WHNF reached with an empty dump).
func (m *Machine) step() (bool, error) {
	ins := m.Code[m.PC]
	m.Stats.Steps++
	if m.Trace != nil {
		fmt.Fprintf(m.Trace, "pc=%-4d %-10s stack=%v\n", m.PC, ins.Op, m.Stack)
	}

	switch ins.Op {
	case gcode.OpPushglobal:
		addr, ok := m.Env[ins.Name]
		if !ok {
			return false, corerr.NewRuntimeError(fmt.Sprintf("undefined global %q", ins.Name), m.PC, ins.Op.String())
		}
		m.push(addr)
		m.PC++

	case gcode.OpPushint:
		m.push(m.alloc(heap.NInt(int64(ins.N))))
		m.PC++

	case gcode.OpPush:
		a, err := m.at(ins.N)
		if err != nil {
			return false, err
		}
		m.push(a)
		m.PC++

	case gcode.OpMkap:
		f := m.pop()
		x := m.pop()
		m.push(m.alloc(heap.NAp(f, x)))
		m.PC++

	case gcode.OpPack:
		if len(m.Stack) < ins.N {
			return false, corerr.NewRuntimeError("not enough operands for Pack", m.PC, ins.Op.String())
		}
		comp := make([]heap.Addr, ins.N)
		for i := 0; i < ins.N; i++ {
			comp[i] = m.pop()
		}
		m.push(m.alloc(heap.NConstr(ins.Tag, comp)))
		m.PC++

	case gcode.OpUpdate:
		a := m.pop()
		target, err := m.at(ins.N)
		if err != nil {
			return false, err
		}
		m.Heap.Update(target, heap.NIndirect(a))
		m.PC++

	case gcode.OpPop:
		if len(m.Stack) < ins.N {
			return false, corerr.NewRuntimeError("Pop: not enough items on stack", m.PC, ins.Op.String())
		}
		m.Stack = m.Stack[:len(m.Stack)-ins.N]
		m.PC++

	case gcode.OpSlide:
		top := m.pop()
		if len(m.Stack) < ins.N {
			return false, corerr.NewRuntimeError("Slide: not enough items on stack", m.PC, ins.Op.String())
		}
		m.Stack = m.Stack[:len(m.Stack)-ins.N]
		m.push(top)
		m.PC++

	case gcode.OpAlloc:
		for i := 0; i < ins.N; i++ {
			m.push(m.alloc(heap.NHole()))
		}
		m.PC++

	case gcode.OpSplit:
		a := m.pop()
		n := m.Heap.Lookup(a)
		if n.Kind != heap.KConstr {
			return false, corerr.NewRuntimeError("Split: top of stack is not a constructor", m.PC, ins.Op.String())
		}
		if len(n.Comp) != ins.N {
			return false, corerr.NewRuntimeError(fmt.Sprintf("Split: constructor has %d components, expected %d", len(n.Comp), ins.N), m.PC, ins.Op.String())
		}
		// Push in reverse so the leftmost (first) component ends up
		// on top, matching the compiler's offset convention (binder
		// i at offset i — see compiler/case.go).
		for i := len(n.Comp) - 1; i >= 0; i-- {
			m.push(n.Comp[i])
		}
		m.PC++

	case gcode.OpCaseJump:
		top := m.Stack[len(m.Stack)-1]
		node := m.Heap.Lookup(top)
		if node.Kind != heap.KConstr {
			return false, corerr.NewRuntimeError("CaseJump: top of stack is not a constructor", m.PC, ins.Op.String())
		}
		alt, ok := findAlt(ins.Alts, node.Tag)
		if !ok {
			return false, corerr.NewRuntimeError(fmt.Sprintf("CaseJump: no alternative for tag %d", node.Tag), m.PC, ins.Op.String())
		}
		m.spliceInto(alt.Code)
		return false, nil

	case gcode.OpCond:
		a := m.pop()
		n := m.Heap.Lookup(a)
		if n.Kind != heap.KInt {
			return false, corerr.NewRuntimeError("Cond: condition is not an integer", m.PC, ins.Op.String())
		}
		switch n.Int {
		case 1:
			m.spliceInto(ins.Then)
		case 0:
			m.spliceInto(ins.Else)
		default:
			return false, corerr.NewRuntimeError(fmt.Sprintf("Cond: value %d out of range {0,1}", n.Int), m.PC, ins.Op.String())
		}
		return false, nil

	case gcode.OpEval:
		m.Dump = append(m.Dump, DumpFrame{Code: m.Code, PC: m.PC + 1, Stack: m.Stack[:len(m.Stack)-1]})
		if len(m.Dump) > m.Stats.MaxDump {
			m.Stats.MaxDump = len(m.Dump)
		}
		if len(m.Dump) > m.MaxDumpDepth {
			return false, corerr.NewRuntimeError("dump overflow", m.PC, ins.Op.String())
		}
		top := m.Stack[len(m.Stack)-1]
		m.Stack = []heap.Addr{top}
		m.Code = gcode.Code{gcode.Unwind()}
		m.PC = 0

	case gcode.OpUnwind:
		m.Stats.Unwinds++
		return m.unwind()

	case gcode.OpAdd, gcode.OpSub, gcode.OpMul, gcode.OpDiv, gcode.OpNeg:
		if err := m.execArith(ins.Op); err != nil {
			return false, err
		}
		m.PC++

	case gcode.OpEq, gcode.OpNe, gcode.OpLt, gcode.OpLe, gcode.OpGt, gcode.OpGe:
		if err := m.execCompare(ins.Op); err != nil {
			return false, err
		}
		m.PC++

	default:
		return false, corerr.NewRuntimeError(fmt.Sprintf("unknown opcode %v", ins.Op), m.PC, ins.Op.String())
	}

	if len(m.Stack) > m.MaxStackDepth {
		return false, corerr.NewRuntimeError("stack overflow", m.PC, "")
	}
	if m.MaxHeapCells > 0 && m.Heap.Size() > m.MaxHeapCells {
		return false, corerr.NewRuntimeError("heap overflow", m.PC, "")
	}
	return false, nil
}

func findAlt(alts []gcode.Alt, tag int) (gcode.Alt, bool) {
	for _, a := range alts {
		if a.Tag == tag {
			return a, true
		}
	}
	return gcode.Alt{}, false
}

// spliceInto replaces the instructions remaining in the current code
// (everything from m.PC+1 onward) with branch followed by that same
// tail, and resumes at offset 0. This is how Cond/CaseJump's
// tree-shaped branches (see gcode's doc comment on why a tree was
// chosen over a flat jump-offset stream) fall through into whatever
// instructions followed the Cond/CaseJump in the enclosing sequence,
// without a separate return-address stack.
func (m *Machine) spliceInto(branch gcode.Code) {
	tail := m.Code[m.PC+1:]
	combined := make(gcode.Code, 0, len(branch)+len(tail))
	combined = append(combined, branch...)
	combined = append(combined, tail...)
	m.Code = combined
	m.PC = 0
}

func (m *Machine) execArith(op gcode.OpCode) error {
	if op == gcode.OpNeg {
		a := m.pop()
		n := m.Heap.Lookup(a)
		if n.Kind != heap.KInt {
			return corerr.NewRuntimeError("Negate: operand is not an integer", m.PC, op.String())
		}
		m.push(m.alloc(heap.NInt(-n.Int)))
		return nil
	}
	aAddr := m.pop()
	bAddr := m.pop()
	a := m.Heap.Lookup(aAddr)
	b := m.Heap.Lookup(bAddr)
	if a.Kind != heap.KInt || b.Kind != heap.KInt {
		return corerr.NewRuntimeError(fmt.Sprintf("%s: operand is not an integer", op), m.PC, op.String())
	}
	var r int64
	switch op {
	case gcode.OpAdd:
		r = a.Int + b.Int
	case gcode.OpSub:
		r = a.Int - b.Int
	case gcode.OpMul:
		r = a.Int * b.Int
	case gcode.OpDiv:
		if b.Int == 0 {
			return corerr.NewRuntimeError("division by zero", m.PC, op.String())
		}
		r = a.Int / b.Int
	}
	m.push(m.alloc(heap.NInt(r)))
	return nil
}

func (m *Machine) execCompare(op gcode.OpCode) error {
	aAddr := m.pop()
	bAddr := m.pop()
	a := m.Heap.Lookup(aAddr)
	b := m.Heap.Lookup(bAddr)
	if a.Kind != heap.KInt || b.Kind != heap.KInt {
		return corerr.NewRuntimeError(fmt.Sprintf("%s: operand is not an integer", op), m.PC, op.String())
	}
	var ok bool
	switch op {
	case gcode.OpEq:
		ok = a.Int == b.Int
	case gcode.OpNe:
		ok = a.Int != b.Int
	case gcode.OpLt:
		ok = a.Int < b.Int
	case gcode.OpLe:
		ok = a.Int <= b.Int
	case gcode.OpGt:
		ok = a.Int > b.Int
	case gcode.OpGe:
		ok = a.Int >= b.Int
	}
	v := int64(0)
	if ok {
		v = 1
	}
	m.push(m.alloc(heap.NInt(v)))
	return nil
}
