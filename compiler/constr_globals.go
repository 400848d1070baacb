package compiler

import (
	"corelang/ast"
	"corelang/gcode"
)

// ConstrGlobals synthesizes one NGlobal body per distinct (tag,arity)
// constructor referenced anywhere in prog, named via packGlobalName so
// C⟦Constr⟧'s Pushglobal (scheme_c.go) resolves to a real global even
// when the constructor is used bare or partially applied rather than
// immediately saturated (a saturated application in strict position is
// open-coded by the E-scheme and never touches this global; one in a
// lazy position is built with Mkap over this global). This is the "C⟦Constr⟧
// ⇒ Pushglobal of the constructor, treated as a pre-built NGlobal/Pack"
// rule from spec.md §4.2.
func ConstrGlobals(prog *ast.Program) []CompiledSc {
	seen := map[[2]int]bool{}
	var out []CompiledSc
	add := func(tag, arity int) {
		key := [2]int{tag, arity}
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, CompiledSc{
			Name:  packGlobalName(tag, arity),
			Arity: arity,
			Code:  packSupercombinator(tag, arity),
		})
	}
	for _, sc := range prog.Scs {
		walkConstrs(sc.Body, add)
	}
	return out
}

func walkConstrs(e ast.Expr, add func(tag, arity int)) {
	switch n := e.(type) {
	case *ast.Constr:
		add(n.Tag, n.Arity)
	case *ast.App:
		walkConstrs(n.Fun, add)
		walkConstrs(n.Arg, add)
	case *ast.Let:
		for _, d := range n.Defns {
			walkConstrs(d.Rhs, add)
		}
		walkConstrs(n.Body, add)
	case *ast.Case:
		walkConstrs(n.Scrutinee, add)
		for _, a := range n.Alts {
			walkConstrs(a.Body, add)
		}
	}
}

// packSupercombinator builds the body a bare Pack{tag,arity} global
// runs once Unwind has rearranged its arity arguments onto the stack:
// push a copy of every argument (xn .. x1, the same constant-offset
// pattern primitives.Supercombinator uses, since this is structurally
// the same "gather my own params for a combining instruction" shape),
// Pack them, then the standard Update/Pop/Unwind trailer. Unlike a
// primitive, the components are never forced — construction is lazy.
func packSupercombinator(tag, arity int) gcode.Code {
	var code gcode.Code
	for i := 0; i < arity; i++ {
		code = append(code, gcode.Push(arity-1))
	}
	code = append(code, gcode.Pack(tag, arity))
	code = append(code, gcode.Update(arity), gcode.Pop(arity), gcode.Unwind())
	return code
}
