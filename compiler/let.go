package compiler

import (
	"corelang/ast"
	"corelang/gcode"
)

// schemeFn is either compileE or compileC, passed in so compileLet can
// be shared between the two schemes (spec.md §4.2 gives each an
// almost identical let/letrec rule, differing only in which scheme
// compiles the body).
type schemeFn func(e ast.Expr, env *Env) (gcode.Code, error)

// compileLet implements both the non-recursive and recursive let
// rules. Non-recursive: each binding is compiled in the environment
// of the bindings before it (RHSs cannot see the new names). Letrec:
// Alloc reserves a placeholder per binding up front so every RHS can
// refer to every name, including itself and names defined later in
// the group.
func (c *Compiler) compileLet(l *ast.Let, env *Env, body schemeFn) (gcode.Code, error) {
	n := len(l.Defns)
	if n == 0 {
		return body(l.Body, env)
	}
	if l.IsRec {
		return c.compileLetrec(l, env, body)
	}
	return c.compileLetNonrec(l, env, body)
}

func (c *Compiler) compileLetNonrec(l *ast.Let, env *Env, body schemeFn) (gcode.Code, error) {
	n := len(l.Defns)
	var code gcode.Code
	curEnv := env
	for _, d := range l.Defns {
		rhsCode, err := c.compileC(d.Rhs, curEnv)
		if err != nil {
			return nil, err
		}
		code = append(code, rhsCode...)
		curEnv = curEnv.Extended(d.Name, 0)
	}
	bodyCode, err := body(l.Body, curEnv)
	if err != nil {
		return nil, err
	}
	code = append(code, bodyCode...)
	code = append(code, gcode.Slide(n))
	return code, nil
}

func (c *Compiler) compileLetrec(l *ast.Let, env *Env, body schemeFn) (gcode.Code, error) {
	n := len(l.Defns)

	// Alloc(n) reserves n placeholder cells at offsets 0..n-1 (the
	// last one allocated ends up on top, offset 0). Every binder is
	// bound to its final offset before any RHS is compiled, so
	// mutual and self reference both resolve.
	bindings := make(map[string]int, n)
	for i, d := range l.Defns {
		bindings[d.Name] = n - 1 - i
	}
	recEnv := env.Shifted(n).WithBindings(bindings)

	code := gcode.Code{gcode.Alloc(n)}
	for i, d := range l.Defns {
		rhsCode, err := c.compileC(d.Rhs, recEnv)
		if err != nil {
			return nil, err
		}
		code = append(code, rhsCode...)
		// The i-th binding's placeholder sits at depth n-1-i below
		// the newly computed RHS (which is on top); Update backpatches
		// it and leaves the stack depth unchanged for the next RHS.
		code = append(code, gcode.Update(n-1-i))
	}
	bodyCode, err := body(l.Body, recEnv)
	if err != nil {
		return nil, err
	}
	code = append(code, bodyCode...)
	code = append(code, gcode.Slide(n))
	return code, nil
}
