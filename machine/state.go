package machine

import (
	"corelang/compiler"
	"corelang/heap"
)

// BuildInitialState allocates one NGlobal cell per compiled
// supercombinator, primitive, and constructor global, and returns the
// heap and name->address environment a Machine needs to run (spec.md
// §2 item 7, "initial-state builder"). The three CompiledSc slices are
// kept distinct at the call site (user program, primitives registry,
// constructor globals) but are otherwise seeded identically here.
func BuildInitialState(scs ...[]compiler.CompiledSc) (*heap.Heap, map[string]heap.Addr) {
	h := heap.New()
	env := make(map[string]heap.Addr)
	for _, group := range scs {
		for _, sc := range group {
			env[sc.Name] = h.Alloc(heap.NGlobal(sc.Name, sc.Arity, sc.Code))
		}
	}
	return h, env
}

// NewFromProgram is a convenience wrapper combining a compiled user
// program with the standard primitive and constructor globals every
// program needs, then constructing a ready-to-run Machine.
func NewFromProgram(prog *compiler.Program, constrGlobals []compiler.CompiledSc) *Machine {
	h, env := BuildInitialState(prog.Scs, compiler.PrimitiveSupercombinators(), constrGlobals)
	return New(h, env)
}
