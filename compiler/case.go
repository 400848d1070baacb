package compiler

import (
	"fmt"

	"corelang/ast"
	"corelang/gcode"
)

// compileCase compiles a case expression. The scrutinee is compiled
// with E (forcing it to WHNF, which must be an NConstr at runtime),
// then a CaseJump instruction dispatches on its tag. Each alternative
// is prefixed with Split(arity) to introduce the bound component
// names and suffixed with Slide(arity) to discard them again once the
// alternative's body has been evaluated (spec.md §4.2).
func (c *Compiler) compileCase(cs *ast.Case, env *Env) (gcode.Code, error) {
	scrutCode, err := c.compileE(cs.Scrutinee, env)
	if err != nil {
		return nil, err
	}

	alts := make([]gcode.Alt, 0, len(cs.Alts))
	for _, a := range cs.Alts {
		arity := len(a.Binders)
		altEnv := env.Shifted(arity)
		bindings := make(map[string]int, arity)
		for i, name := range a.Binders {
			// Split leaves the leftmost (first) component on top, so
			// binder i (0-indexed) sits directly at offset i.
			bindings[name] = i
		}
		altEnv = altEnv.WithBindings(bindings)

		bodyCode, err := c.compileE(a.Body, altEnv)
		if err != nil {
			return nil, err
		}

		altCode := gcode.Code{gcode.Split(arity)}
		altCode = append(altCode, bodyCode...)
		altCode = append(altCode, gcode.Slide(arity))
		alts = append(alts, gcode.Alt{Tag: a.Tag, Code: altCode})
	}

	code := append(gcode.Code{}, scrutCode...)
	code = append(code, gcode.CaseJump(alts))
	return code, nil
}

// liftCase turns a case expression that appears in a lazy (C-scheme)
// position into a reference to a freshly synthesized 0-ary-or-more
// supercombinator: its parameters are exactly the free local names cs
// refers to (so the lifted body sees them at the same offsets a
// normal R-scheme supercombinator would), and its code is the
// ordinary strict compileCase listing plus the standard
// Update/Pop/Unwind trailer. The call site then builds a C-scheme
// application spine of that global to its free variables — an NAp
// chain, not an entered redex — so the case is only ever forced when
// something later demands this thunk's value (spec.md §4.2).
func (c *Compiler) liftCase(cs *ast.Case, env *Env) (gcode.Code, error) {
	var free []string
	for _, name := range freeVars(cs) {
		if _, ok := env.Lookup(name); ok {
			free = append(free, name)
		}
	}

	liftEnv := NewEnv(free)
	body, err := c.compileE(cs, liftEnv)
	if err != nil {
		return nil, err
	}
	k := len(free)
	scCode := append(gcode.Code{}, body...)
	scCode = append(scCode, gcode.Update(k), gcode.Pop(k), gcode.Unwind())

	c.liftCounter++
	name := fmt.Sprintf("$case%d", c.liftCounter)
	c.liftedScs = append(c.liftedScs, CompiledSc{Name: name, Arity: k, Code: scCode})

	spine := ast.Expr(&ast.Var{Token: cs.Token, Name: name})
	for _, fv := range free {
		spine = &ast.App{Token: cs.Token, Fun: spine, Arg: &ast.Var{Token: cs.Token, Name: fv}}
	}
	return c.compileC(spine, env)
}
