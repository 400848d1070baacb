package compiler

import (
	"testing"

	"corelang/coreparse"
	"corelang/corelex"
	"corelang/gcode"
)

func mustCompile(t *testing.T, src string) *Program {
	t.Helper()
	l := corelex.New(src)
	p := coreparse.New(l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors for %q: %v", src, errs)
	}
	c := New(src, "<test>")
	compiled, err := c.CompileProgram(prog)
	if err != nil {
		t.Fatalf("compile error for %q: %v", src, err)
	}
	return compiled
}

func findSc(t *testing.T, p *Program, name string) CompiledSc {
	t.Helper()
	for _, sc := range p.Scs {
		if sc.Name == name {
			return sc
		}
	}
	t.Fatalf("no supercombinator named %q", name)
	return CompiledSc{}
}

func TestCompileProgramRequiresMain(t *testing.T) {
	l := corelex.New("f x = x;")
	p := coreparse.New(l)
	prog := p.ParseProgram()
	c := New("f x = x;", "<test>")
	if _, err := c.CompileProgram(prog); err == nil {
		t.Fatal("expected a compile error for a missing main")
	}
}

func TestCompileSimpleInt(t *testing.T) {
	compiled := mustCompile(t, "main = 42;")
	sc := findSc(t, compiled, "main")
	want := gcode.Code{gcode.Pushint(42), gcode.Update(0), gcode.Pop(0), gcode.Unwind()}
	if len(sc.Code) != len(want) {
		t.Fatalf("main code = %+v, want %+v", sc.Code, want)
	}
	if sc.Code[0].Op != gcode.OpPushint || sc.Code[0].N != 42 {
		t.Fatalf("first instruction = %+v", sc.Code[0])
	}
}

func TestCompileKCombinator(t *testing.T) {
	compiled := mustCompile(t, "k x y = x; main = k 1 2;")
	sc := findSc(t, compiled, "k")
	// body E[[x]] with x at offset 0 is the fallback Push(0); Eval, then
	// the R-scheme trailer for arity 2.
	want := gcode.Code{gcode.Push(0), gcode.Eval(), gcode.Update(2), gcode.Pop(2), gcode.Unwind()}
	if len(sc.Code) != len(want) {
		t.Fatalf("k code = %+v, want %+v", sc.Code, want)
	}
	for i := range want {
		if sc.Code[i].Op != want[i].Op || sc.Code[i].N != want[i].N {
			t.Fatalf("instruction %d = %+v, want %+v", i, sc.Code[i], want[i])
		}
	}
}

func TestCompileArithmeticOpenCoded(t *testing.T) {
	compiled := mustCompile(t, "main = 3 + 4 * 2;")
	sc := findSc(t, compiled, "main")
	// Must contain an open-coded ADD and MUL, never a call through the
	// primitive's NGlobal (no Pushglobal("+") / Pushglobal("*")).
	var sawAdd, sawMul bool
	for _, ins := range sc.Code {
		switch ins.Op {
		case gcode.OpAdd:
			sawAdd = true
		case gcode.OpMul:
			sawMul = true
		case gcode.OpPushglobal:
			if ins.Name == "+" || ins.Name == "*" {
				t.Fatalf("expected open-coded primop, found Pushglobal(%q)", ins.Name)
			}
		}
	}
	if !sawAdd || !sawMul {
		t.Fatalf("expected both ADD and MUL open-coded in %+v", sc.Code)
	}
}

func TestCompileLetrecAllocatesAndUpdates(t *testing.T) {
	compiled := mustCompile(t, "main = letrec ones = cons 1 ones in 0;")
	sc := findSc(t, compiled, "main")
	if sc.Code[0].Op != gcode.OpAlloc || sc.Code[0].N != 1 {
		t.Fatalf("first instruction = %+v, want Alloc(1)", sc.Code[0])
	}
	var sawUpdate1 bool
	for _, ins := range sc.Code {
		if ins.Op == gcode.OpUpdate && ins.N == 0 {
			sawUpdate1 = true
		}
	}
	if !sawUpdate1 {
		t.Fatalf("expected an Update(0) back-patching the single letrec binding: %+v", sc.Code)
	}
}

func TestCompileCaseEmitsSplitAndCaseJump(t *testing.T) {
	compiled := mustCompile(t, "f xs = case xs of <1> -> 0; <2> h t -> h; main = f nil;")
	sc := findSc(t, compiled, "f")
	var sawCaseJump bool
	for _, ins := range sc.Code {
		if ins.Op == gcode.OpCaseJump {
			sawCaseJump = true
			if len(ins.Alts) != 2 {
				t.Fatalf("CaseJump has %d alts, want 2", len(ins.Alts))
			}
			for _, alt := range ins.Alts {
				if alt.Code[0].Op != gcode.OpSplit {
					t.Fatalf("alt %d code doesn't start with Split: %+v", alt.Tag, alt.Code)
				}
			}
		}
	}
	if !sawCaseJump {
		t.Fatalf("expected a CaseJump instruction: %+v", sc.Code)
	}
}

func TestConstrGlobalsDeduplicate(t *testing.T) {
	l := corelex.New("main = Pack{1,2} 1 (Pack{1,2} 2 3);")
	p := coreparse.New(l)
	prog := p.ParseProgram()
	globals := ConstrGlobals(prog)
	if len(globals) != 1 {
		t.Fatalf("got %d constructor globals, want 1 (deduplicated): %+v", len(globals), globals)
	}
	if globals[0].Arity != 2 {
		t.Fatalf("constructor global arity = %d, want 2", globals[0].Arity)
	}
}
