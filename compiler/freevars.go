package compiler

import "corelang/ast"

// freeVars collects, in first-occurrence order, every name e refers
// to that is not bound within e itself (a let/letrec binder or a case
// alternative's binders shadow it). It is used to lambda-lift a case
// expression found in a lazy (C-scheme) position out into its own
// supercombinator, parameterized over exactly the names it needs from
// its enclosing scope.
func freeVars(e ast.Expr) []string {
	var order []string
	seen := map[string]bool{}
	var walk func(e ast.Expr, bound map[string]bool)
	walk = func(e ast.Expr, bound map[string]bool) {
		switch n := e.(type) {
		case *ast.Var:
			if bound[n.Name] {
				return
			}
			if !seen[n.Name] {
				seen[n.Name] = true
				order = append(order, n.Name)
			}

		case *ast.Int, *ast.Constr:
			// no sub-expressions

		case *ast.App:
			walk(n.Fun, bound)
			walk(n.Arg, bound)

		case *ast.Let:
			inner := extendBound(bound, defnNames(n.Defns))
			rhsBound := bound
			if n.IsRec {
				rhsBound = inner
			}
			for _, d := range n.Defns {
				walk(d.Rhs, rhsBound)
			}
			walk(n.Body, inner)

		case *ast.Case:
			walk(n.Scrutinee, bound)
			for _, a := range n.Alts {
				walk(a.Body, extendBound(bound, a.Binders))
			}
		}
	}
	walk(e, map[string]bool{})
	return order
}

func defnNames(defns []ast.Defn) []string {
	names := make([]string, len(defns))
	for i, d := range defns {
		names[i] = d.Name
	}
	return names
}

func extendBound(bound map[string]bool, names []string) map[string]bool {
	out := make(map[string]bool, len(bound)+len(names))
	for k, v := range bound {
		out[k] = v
	}
	for _, n := range names {
		out[n] = true
	}
	return out
}
