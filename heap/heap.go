// Package heap implements the G-machine's heap: an arena of shared,
// mutable graph nodes addressed by small stable integers, per spec.md
// §3 and the "cyclic graphs" design note (Addr = small int rather than
// a host pointer, so letrec back-patching creates index cycles a GC
// can trace without pointer-retain pathology).
package heap

import (
	"fmt"

	"corelang/gcode"
)

// Addr is an opaque handle to a heap cell. Addresses are stable for
// the cell's lifetime; Update rewrites the cell in place rather than
// reallocating, which is what makes lazy evaluation share results.
type Addr int

// Kind tags which variant a Node holds.
type Kind byte

const (
	KInt Kind = iota
	KConstr
	KAp
	KGlobal
	KIndirect
	// KHole is the transient placeholder Alloc creates before a
	// letrec RHS has run. Entering (Unwinding) a hole is a bug in the
	// compiler or a genuinely non-terminating binding; the machine
	// reports it as a fatal error rather than silently looping.
	KHole
)

// Node is the sum type of heap cells (spec.md §3). Only the field(s)
// matching Kind are meaningful.
type Node struct {
	Kind Kind

	Int int64 // KInt

	Tag  int    // KConstr
	Comp []Addr // KConstr

	Fun Addr // KAp
	Arg Addr // KAp

	Name  string    // KGlobal
	Arity int       // KGlobal (0 means a CAF)
	Code  gcode.Code // KGlobal

	Target Addr // KIndirect
}

func NInt(k int64) Node                 { return Node{Kind: KInt, Int: k} }
func NConstr(tag int, comp []Addr) Node { return Node{Kind: KConstr, Tag: tag, Comp: comp} }
func NAp(fun, arg Addr) Node            { return Node{Kind: KAp, Fun: fun, Arg: arg} }
func NGlobal(name string, arity int, code gcode.Code) Node {
	return Node{Kind: KGlobal, Name: name, Arity: arity, Code: code}
}
func NIndirect(target Addr) Node { return Node{Kind: KIndirect, Target: target} }
func NHole() Node                { return Node{Kind: KHole} }

// Heap is the arena of all live nodes. Nothing is ever freed
// explicitly; the host allocator reclaims on process exit, and no
// tracing collector is implemented.
type Heap struct {
	cells []Node
}

// New creates an empty heap.
func New() *Heap {
	return &Heap{cells: make([]Node, 0, 1024)}
}

// Alloc stores node in a fresh cell and returns its address.
func (h *Heap) Alloc(node Node) Addr {
	h.cells = append(h.cells, node)
	return Addr(len(h.cells) - 1)
}

// Lookup returns the node at addr. It panics on an out-of-range
// address, which can only happen from a compiler or machine bug; the
// panic is not converted into a RuntimeError.
func (h *Heap) Lookup(addr Addr) Node {
	if int(addr) < 0 || int(addr) >= len(h.cells) {
		panic(fmt.Sprintf("heap: unallocated address %d", addr))
	}
	return h.cells[addr]
}

// Update overwrites the cell at addr in place; the address itself is
// unchanged, which is the mechanism that implements sharing (spec.md
// §3, invariant I2 in spec.md §8).
func (h *Heap) Update(addr Addr, node Node) {
	if int(addr) < 0 || int(addr) >= len(h.cells) {
		panic(fmt.Sprintf("heap: unallocated address %d", addr))
	}
	h.cells[addr] = node
}

// Size reports the number of allocated cells, used for stats/observability.
func (h *Heap) Size() int { return len(h.cells) }
