package compiler

import (
	"strconv"

	"corelang/ast"
	"corelang/gcode"
)

// compileC implements the lazy/build-a-graph scheme: it always
// produces a graph, never forces it (spec.md §4.2).
func (c *Compiler) compileC(e ast.Expr, env *Env) (gcode.Code, error) {
	switch n := e.(type) {
	case *ast.Var:
		if off, ok := env.Lookup(n.Name); ok {
			return gcode.Code{gcode.Push(off)}, nil
		}
		return gcode.Code{gcode.Pushglobal(n.Name)}, nil

	case *ast.Int:
		return gcode.Code{gcode.Pushint(n.Value)}, nil

	case *ast.App:
		argCode, err := c.compileC(n.Arg, env)
		if err != nil {
			return nil, err
		}
		funCode, err := c.compileC(n.Fun, env.Shifted(1))
		if err != nil {
			return nil, err
		}
		code := append(gcode.Code{}, argCode...)
		code = append(code, funCode...)
		code = append(code, gcode.Mkap())
		return code, nil

	case *ast.Let:
		return c.compileLet(n, env, c.compileC)

	case *ast.Constr:
		// A Constr referenced bare (not immediately saturated by an
		// enclosing App, which the E-scheme's
		// tryCompileSaturatedConstr already intercepted) behaves like
		// any other global of its arity: push its NGlobal address so
		// Mkap can build partial applications of it one argument at
		// a time, the same as a user supercombinator.
		return gcode.Code{gcode.Pushglobal(constrGlobalName(n))}, nil

	case *ast.Case:
		// A case reached here sits in a lazy position (e.g. a
		// let-binding's RHS, or a Pack argument) and must stay an
		// unforced, sharable thunk (spec.md §4.2: C never forces).
		// Lambda-lift it into its own supercombinator instead.
		return c.liftCase(n, env)

	default:
		return nil, c.errAt(e.Pos(), "cannot compile expression of type %T lazily", e)
	}
}

// constrGlobalName derives the stable global name a Pack{tag,arity}
// reference is registered under in the initial environment, so it can
// be pushed via Pushglobal like any other global.
func constrGlobalName(c *ast.Constr) string {
	return packGlobalName(c.Tag, c.Arity)
}

func packGlobalName(tag, arity int) string {
	return "Pack{" + strconv.Itoa(tag) + "," + strconv.Itoa(arity) + "}"
}
