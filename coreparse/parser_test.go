package coreparse

import (
	"testing"

	"corelang/ast"
	"corelang/corelex"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(corelex.New(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return prog
}

func TestParseSimpleSc(t *testing.T) {
	prog := parse(t, "main = 42;")
	if len(prog.Scs) != 1 {
		t.Fatalf("got %d supercombinators, want 1", len(prog.Scs))
	}
	sc := prog.Scs[0]
	if sc.Name != "main" || len(sc.Params) != 0 {
		t.Fatalf("sc = %+v", sc)
	}
	if _, ok := sc.Body.(*ast.Int); !ok {
		t.Fatalf("body = %T, want *ast.Int", sc.Body)
	}
}

func TestParseBinopPrecedence(t *testing.T) {
	prog := parse(t, "main = 3 + 4 * 2;")
	app, ok := prog.Scs[0].Body.(*ast.App)
	if !ok {
		t.Fatalf("body = %T, want *ast.App", prog.Scs[0].Body)
	}
	outer, ok := app.Fun.(*ast.App)
	if !ok {
		t.Fatalf("fun = %T, want *ast.App", app.Fun)
	}
	v, ok := outer.Fun.(*ast.Var)
	if !ok || v.Name != "+" {
		t.Fatalf("operator = %+v, want +", outer.Fun)
	}
}

func TestParseParamsAndApplicationSpine(t *testing.T) {
	prog := parse(t, "s f g x = f x (g x);")
	sc := prog.Scs[0]
	if len(sc.Params) != 3 || sc.Params[0] != "f" || sc.Params[2] != "x" {
		t.Fatalf("params = %v", sc.Params)
	}
}

func TestParseCase(t *testing.T) {
	prog := parse(t, "f xs = case xs of <1> -> 0; <2> h t -> h;")
	sc := prog.Scs[0]
	cs, ok := sc.Body.(*ast.Case)
	if !ok {
		t.Fatalf("body = %T, want *ast.Case", sc.Body)
	}
	if len(cs.Alts) != 2 {
		t.Fatalf("got %d alts, want 2", len(cs.Alts))
	}
	if cs.Alts[1].Tag != 2 || len(cs.Alts[1].Binders) != 2 {
		t.Fatalf("second alt = %+v", cs.Alts[1])
	}
}

func TestParseLetrec(t *testing.T) {
	prog := parse(t, "main = letrec ones = cons 1 ones in 0;")
	l, ok := prog.Scs[0].Body.(*ast.Let)
	if !ok || !l.IsRec {
		t.Fatalf("body = %+v, want recursive let", prog.Scs[0].Body)
	}
	if len(l.Defns) != 1 || l.Defns[0].Name != "ones" {
		t.Fatalf("defns = %+v", l.Defns)
	}
}

func TestParsePack(t *testing.T) {
	prog := parse(t, "main = Pack{1,2} 3 4;")
	app, ok := prog.Scs[0].Body.(*ast.App)
	if !ok {
		t.Fatalf("body = %T", prog.Scs[0].Body)
	}
	inner, ok := app.Fun.(*ast.App)
	if !ok {
		t.Fatalf("fun = %T", app.Fun)
	}
	constr, ok := inner.Fun.(*ast.Constr)
	if !ok || constr.Tag != 1 || constr.Arity != 2 {
		t.Fatalf("constr = %+v", inner.Fun)
	}
}

func TestParseIfDesugarsToApplicationSpine(t *testing.T) {
	prog := parse(t, "main = if (n < 2) n 1;")
	app, ok := prog.Scs[0].Body.(*ast.App)
	if !ok {
		t.Fatalf("body = %T, want *ast.App spine", prog.Scs[0].Body)
	}
	// Unwind the spine down to the head Var("if").
	cur := app
	for {
		if inner, ok := cur.Fun.(*ast.App); ok {
			cur = inner
			continue
		}
		break
	}
	v, ok := cur.Fun.(*ast.Var)
	if !ok || v.Name != "if" {
		t.Fatalf("head = %+v, want Var(if)", cur.Fun)
	}
}

func TestParseTrueFalseAtoms(t *testing.T) {
	prog := parse(t, "main = true;")
	v, ok := prog.Scs[0].Body.(*ast.Var)
	if !ok || v.Name != "True" {
		t.Fatalf("body = %+v, want Var(True)", prog.Scs[0].Body)
	}
}

func TestParseOperatorAsValue(t *testing.T) {
	prog := parse(t, "main = (+) 1 2;")
	app, ok := prog.Scs[0].Body.(*ast.App)
	if !ok {
		t.Fatalf("body = %T", prog.Scs[0].Body)
	}
	inner, ok := app.Fun.(*ast.App)
	if !ok {
		t.Fatalf("fun = %T", app.Fun)
	}
	v, ok := inner.Fun.(*ast.Var)
	if !ok || v.Name != "+" || !v.IsPrimOp {
		t.Fatalf("head = %+v, want primop Var(+)", inner.Fun)
	}
}
