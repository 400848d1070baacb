package compiler

import (
	"corelang/ast"
	"corelang/gcode"
	"corelang/primitives"
)

// compileE implements the strict/evaluate-in-place scheme: used
// wherever a value is needed now rather than built as a lazy thunk
// (spec.md §4.2).
func (c *Compiler) compileE(e ast.Expr, env *Env) (gcode.Code, error) {
	switch n := e.(type) {
	case *ast.Int:
		return gcode.Code{gcode.Pushint(n.Value)}, nil

	case *ast.Let:
		return c.compileLet(n, env, c.compileE)

	case *ast.Case:
		return c.compileCase(n, env)

	case *ast.App:
		if code, ok, err := c.tryCompilePrimAp(n, env); ok || err != nil {
			return code, err
		}
		if code, ok, err := c.tryCompileIf(n, env); ok || err != nil {
			return code, err
		}
		if code, ok, err := c.tryCompileSaturatedConstr(n, env); ok || err != nil {
			return code, err
		}
		return c.fallbackE(n, env)

	case *ast.Constr:
		if n.Arity == 0 {
			return c.fallbackE(n, env)
		}
		// A bare, unapplied Constr with arity > 0 is a partial
		// application; it must fall through to C like any other
		// under-saturated global (spec.md §4.2).
		return c.fallbackE(n, env)

	default:
		return c.fallbackE(n, env)
	}
}

// fallbackE is the scheme's final case: build the graph lazily, then
// force it.
//
//	C⟦e⟧ ; Eval
func (c *Compiler) fallbackE(e ast.Expr, env *Env) (gcode.Code, error) {
	built, err := c.compileC(e, env)
	if err != nil {
		return nil, err
	}
	return append(append(gcode.Code{}, built...), gcode.Eval()), nil
}

// tryCompilePrimAp recognizes a saturated application spine of a
// known primitive operator (arity 1 for negate, arity 2 for the
// arithmetic/relational operators) and open-codes it:
//
//	E the right arg ; E the left arg (offset shifted by 1) ; primop
//
// `if` is excluded here (handled by tryCompileIf) even though it is
// registered in the primitives table, since it has no open-coded
// instruction of its own — only a Cond-based expansion.
func (c *Compiler) tryCompilePrimAp(app *ast.App, env *Env) (gcode.Code, bool, error) {
	head, args := unwindSpine(app)
	v, ok := head.(*ast.Var)
	if !ok {
		return nil, false, nil
	}
	if v.Name == "if" {
		return nil, false, nil
	}
	op, hasOp := gcode.PrimOpCode(v.Name)
	if !hasOp {
		return nil, false, nil
	}
	def, _ := primitives.Lookup(v.Name)
	if len(args) != def.Arity {
		// Under- or over-application: not open-codeable, fall
		// through to C so the primitive's supercombinator form
		// handles it (spec.md §4.2, "partial application ... must
		// fall through to C").
		return nil, false, nil
	}

	var code gcode.Code
	curEnv := env
	if def.Arity == 1 {
		argCode, err := c.compileE(args[0], curEnv)
		if err != nil {
			return nil, true, err
		}
		code = append(code, argCode...)
	} else {
		rightCode, err := c.compileE(args[1], curEnv)
		if err != nil {
			return nil, true, err
		}
		code = append(code, rightCode...)
		curEnv = curEnv.Shifted(1)
		leftCode, err := c.compileE(args[0], curEnv)
		if err != nil {
			return nil, true, err
		}
		code = append(code, leftCode...)
	}
	code = append(code, gcode.PrimOp(op))
	return code, true, nil
}

// tryCompileIf recognizes a saturated `if cond then else` spine and
// compiles the condition strictly, then Cond-branches between the
// two arms, each compiled with E so they evaluate in place.
func (c *Compiler) tryCompileIf(app *ast.App, env *Env) (gcode.Code, bool, error) {
	head, args := unwindSpine(app)
	v, ok := head.(*ast.Var)
	if !ok || v.Name != "if" {
		return nil, false, nil
	}
	if len(args) != 3 {
		return nil, true, c.errAt(app.Pos(), "'if' requires exactly 3 arguments, got %d", len(args))
	}
	condCode, err := c.compileE(args[0], env)
	if err != nil {
		return nil, true, err
	}
	thenCode, err := c.compileE(args[1], env)
	if err != nil {
		return nil, true, err
	}
	elseCode, err := c.compileE(args[2], env)
	if err != nil {
		return nil, true, err
	}
	code := append(gcode.Code{}, condCode...)
	code = append(code, gcode.Cond(thenCode, elseCode))
	return code, true, nil
}

// tryCompileSaturatedConstr recognizes `Pack{tag,a}` applied to
// exactly a arguments and compiles each argument with C (lazily),
// right-to-left, followed by Pack(tag, a).
func (c *Compiler) tryCompileSaturatedConstr(app *ast.App, env *Env) (gcode.Code, bool, error) {
	head, args := unwindSpine(app)
	constr, ok := head.(*ast.Constr)
	if !ok || len(args) != constr.Arity {
		return nil, false, nil
	}
	var code gcode.Code
	curEnv := env
	for i := len(args) - 1; i >= 0; i-- {
		argCode, err := c.compileC(args[i], curEnv)
		if err != nil {
			return nil, true, err
		}
		code = append(code, argCode...)
		curEnv = curEnv.Shifted(1)
	}
	code = append(code, gcode.Pack(constr.Tag, constr.Arity))
	return code, true, nil
}
