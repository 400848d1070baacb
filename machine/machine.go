// Package machine implements the G-machine's runtime: the instruction
// dispatch loop and the Unwind state machine that together perform
// lazy graph reduction with update (spec.md §4.4). It is grounded on
// the dispatch-loop shape of the dws bytecode.VM (a frame-owning
// struct, a `for` loop over a mutable (code, pc) pair, a big `switch`
// on opcode) generalized from a flat instruction stream to the
// G-machine's stack+dump+heap model.
package machine

import (
	"fmt"
	"io"

	"corelang/corerr"
	"corelang/gcode"
	"corelang/heap"
)

// DumpFrame is a saved continuation, pushed by Eval and popped when
// Unwind reaches weak head normal form (spec.md §3, §4.4).
type DumpFrame struct {
	Code  gcode.Code
	PC    int
	Stack []heap.Addr
}

// Stats are optional observability counters (spec.md §3 item 6).
type Stats struct {
	Steps      int
	Allocs     int
	MaxStack   int
	MaxDump    int
	Unwinds    int
}

// Machine is one interpreter instance: a heap, a stack of addresses,
// a dump of saved frames, a read-only env, and the currently
// executing (code, pc). Exactly one interpreter owns all of this
// state; instances are never shared (spec.md §5).
type Machine struct {
	Heap  *heap.Heap
	Env   map[string]heap.Addr
	Stack []heap.Addr
	Dump  []DumpFrame
	Code  gcode.Code
	PC    int
	Stats Stats

	MaxStackDepth int
	MaxDumpDepth  int
	MaxHeapCells  int // 0 means unbounded

	Trace io.Writer // optional per-instruction trace, nil disables
}

// New creates a machine over an already-populated heap and env,
// matching the initial-state builder's contract (spec.md §2 item 7).
func New(h *heap.Heap, env map[string]heap.Addr) *Machine {
	return &Machine{
		Heap:          h,
		Env:           env,
		MaxStackDepth: 100000,
		MaxDumpDepth:  10000,
	}
}

// Configure applies resource limits loaded from config.Machine.
func (m *Machine) Configure(maxStack, maxDump, maxHeap int) {
	m.MaxStackDepth = maxStack
	m.MaxDumpDepth = maxDump
	m.MaxHeapCells = maxHeap
}

// Run seeds the machine with `Pushglobal main; Eval` and drives
// execution to termination, returning the final address and its node.
func (m *Machine) Run() (heap.Addr, heap.Node, error) {
	mainAddr, ok := m.Env["main"]
	if !ok {
		return 0, heap.Node{}, corerr.NewRuntimeError("undefined global 'main'", 0, "")
	}
	m.Stack = []heap.Addr{mainAddr}
	m.Code = gcode.Code{gcode.Eval()}
	m.PC = 0

	for {
		if m.PC >= len(m.Code) {
			if len(m.Dump) == 0 {
				break
			}
			return 0, heap.Node{}, corerr.NewRuntimeError("instruction pointer ran past end of code with a non-empty dump", m.PC, "")
		}
		done, err := m.step()
		if err != nil {
			return 0, heap.Node{}, err
		}
		if done {
			break
		}
	}

	if len(m.Stack) != 1 {
		return 0, heap.Node{}, corerr.NewRuntimeError(fmt.Sprintf("program terminated with %d values on the stack, expected 1", len(m.Stack)), m.PC, "")
	}
	addr := m.deref(m.Stack[0])
	return addr, m.Heap.Lookup(addr), nil
}

// deref chases a possible chain of NIndirect cells to the underlying
// value address.
func (m *Machine) deref(a heap.Addr) heap.Addr {
	for {
		n := m.Heap.Lookup(a)
		if n.Kind != heap.KIndirect {
			return a
		}
		a = n.Target
	}
}

func (m *Machine) push(a heap.Addr) {
	m.Stack = append(m.Stack, a)
	if len(m.Stack) > m.Stats.MaxStack {
		m.Stats.MaxStack = len(m.Stack)
	}
}

func (m *Machine) pop() heap.Addr {
	n := len(m.Stack) - 1
	a := m.Stack[n]
	m.Stack = m.Stack[:n]
	return a
}

// at returns the address n slots below the top (0 = top).
func (m *Machine) at(n int) (heap.Addr, error) {
	idx := len(m.Stack) - 1 - n
	if idx < 0 || idx >= len(m.Stack) {
		return 0, corerr.NewRuntimeError(fmt.Sprintf("stack offset %d out of range (depth %d)", n, len(m.Stack)), m.PC, "")
	}
	return m.Stack[idx], nil
}

func (m *Machine) alloc(n heap.Node) heap.Addr {
	m.Stats.Allocs++
	return m.Heap.Alloc(n)
}
