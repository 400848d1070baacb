package compiler

import "corelang/ast"

// unwindSpine decomposes an application spine `f a1 a2 ... an` (built
// as a left-leaning chain of App nodes) into its head and the
// arguments in left-to-right source order.
func unwindSpine(e ast.Expr) (head ast.Expr, args []ast.Expr) {
	for {
		app, ok := e.(*ast.App)
		if !ok {
			return e, reverse(args)
		}
		args = append(args, app.Arg)
		e = app.Fun
	}
}

func reverse(es []ast.Expr) []ast.Expr {
	out := make([]ast.Expr, len(es))
	for i, e := range es {
		out[len(es)-1-i] = e
	}
	return out
}
