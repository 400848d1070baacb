package machine

import (
	"fmt"

	"corelang/corerr"
	"corelang/gcode"
	"corelang/heap"
)

// unwind implements the Unwind instruction: the state machine that
// drives reduction of the top-of-stack address to weak head normal
// form (spec.md §4.4). It dispatches on the kind of node the top
// address currently points to.
func (m *Machine) unwind() (bool, error) {
	top := m.Stack[len(m.Stack)-1]
	node := m.Heap.Lookup(top)

	switch node.Kind {
	case heap.KInt, heap.KConstr:
		// Already in WHNF. If a caller is waiting (non-empty dump),
		// restore its frame so it can resume with this value on top
		// of its own stack; otherwise the whole run has finished.
		return m.restoreOrFinish()

	case heap.KAp:
		// Not yet WHNF: push the function part and keep unwinding.
		m.push(node.Fun)
		m.Code = gcode.Code{gcode.Unwind()}
		m.PC = 0
		return false, nil

	case heap.KIndirect:
		// Replace the indirection with its target and retry; this is
		// what makes a shared thunk's second evaluation free once the
		// first has updated it.
		m.Stack[len(m.Stack)-1] = node.Target
		m.Code = gcode.Code{gcode.Unwind()}
		m.PC = 0
		return false, nil

	case heap.KHole:
		return false, corerr.NewRuntimeError("entered an uninitialized letrec binding", m.PC, "UNWIND")

	case heap.KGlobal:
		return m.unwindGlobal(node)

	default:
		return false, corerr.NewRuntimeError(fmt.Sprintf("unwind: unrecognized node kind %v", node.Kind), m.PC, "UNWIND")
	}
}

// unwindGlobal handles the NGlobal case: check enough arguments are
// present on the stack to saturate the combinator, rearrange the
// spine so the combinator's own code can address its arguments by
// offset, and enter its code. A global reached with too few arguments
// is a partial application; Unwind restores the dump (or, with an
// empty dump, the whole run is stuck with a partial application as
// its result, which is reported as an error — spec.md §4.5).
func (m *Machine) unwindGlobal(node heap.Node) (bool, error) {
	available := len(m.Stack) - 1 // addresses below the global's own cell
	if available < node.Arity {
		return m.restoreOrPartialAppError(node)
	}

	m.rearrange(node.Arity)
	m.Code = node.Code
	m.PC = 0
	return false, nil
}

// rearrange replaces each of the arity NAp spine cells below the
// global (the root redex and its chain of applications) with the
// address of that application's argument, so that after rearranging,
// the i-th parameter (1-indexed, x1 the first) sits at stack offset
// i-1 — x1 on top. This is the exact offset convention the R-scheme
// formula in spec.md §4.2 assumes (ρ maps xᵢ to offset i−1), which is
// also the convention every Supercombinator/packSupercombinator body
// in this repo was written against.
func (m *Machine) rearrange(arity int) {
	// Unwind dispatches on the global without popping it, so the stack
	// is still, bottom to top: ..., ap_arity(root), .., ap_1, global.
	// ap_1 is the innermost application (the one whose Arg is the
	// first argument); the global's own cell (top) is not an ap cell
	// and must be excluded. Capture the ap addresses first since the
	// write loop below overwrites those same slots.
	n := len(m.Stack)
	apAddrs := make([]heap.Addr, arity)
	for i := 0; i < arity; i++ {
		apAddrs[i] = m.Stack[n-2-i]
	}

	// arg_{i+1} belongs at offset i from the new top (absolute slot
	// n-1-i), putting arg_1 on top and arg_arity at the bottom.
	for i := 0; i < arity; i++ {
		m.Stack[n-1-i] = m.Heap.Lookup(apAddrs[i]).Arg
	}
}

// restoreOrFinish is reached when the top of stack is already WHNF.
// With a non-empty dump, this closes out the matching Eval: restore
// the caller's (code, pc, stack) and push the WHNF value on top of
// its restored stack. With an empty dump, the whole program has
// reached WHNF and the run is done.
func (m *Machine) restoreOrFinish() (bool, error) {
	if len(m.Dump) == 0 {
		return true, nil
	}
	value := m.Stack[len(m.Stack)-1]
	frame := m.Dump[len(m.Dump)-1]
	m.Dump = m.Dump[:len(m.Dump)-1]
	m.Stack = append(frame.Stack, value)
	m.Code = frame.Code
	m.PC = frame.PC
	return false, nil
}

// restoreOrPartialAppError handles Unwind reaching an under-saturated
// global. With a non-empty dump, the caller asked for WHNF via Eval;
// the partial application cannot be reduced further, so this restores
// the dump like restoreOrFinish, handing back the bottom of the
// current stack — the root of the spine Eval started from, i.e. the
// partial application itself with its arguments — rather than the
// bare global on top. With an empty dump, the top-level result itself
// is a partial application, which this interpreter reports as a
// runtime error since it has no surface syntax to print a function
// value (spec.md's non-goals exclude a printer for closures).
func (m *Machine) restoreOrPartialAppError(node heap.Node) (bool, error) {
	if len(m.Dump) == 0 {
		return false, corerr.NewRuntimeError(fmt.Sprintf("global %q applied to too few arguments (needs %d)", node.Name, node.Arity), m.PC, "UNWIND")
	}
	m.Stack = []heap.Addr{m.Stack[0]}
	return m.restoreOrFinish()
}
