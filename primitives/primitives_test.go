package primitives

import (
	"testing"

	"corelang/gcode"
)

func TestLookup(t *testing.T) {
	d, ok := Lookup("+")
	if !ok || d.Arity != 2 || d.Op != gcode.OpAdd {
		t.Fatalf("Lookup(+) = %+v, %v", d, ok)
	}
	if _, ok := Lookup("nope"); ok {
		t.Fatalf("Lookup(nope) unexpectedly found")
	}
}

func TestSupercombinatorArithmetic(t *testing.T) {
	d, _ := Lookup("+")
	code := Supercombinator(d)
	want := gcode.Code{
		gcode.Push(1), gcode.Eval(),
		gcode.Push(1), gcode.Eval(),
		gcode.PrimOp(gcode.OpAdd),
		gcode.Update(2), gcode.Pop(2), gcode.Unwind(),
	}
	if len(code) != len(want) {
		t.Fatalf("Supercombinator(+) has %d instructions, want %d: %+v", len(code), len(want), code)
	}
	for i := range want {
		if code[i].Op != want[i].Op || code[i].N != want[i].N {
			t.Fatalf("instruction %d = %+v, want %+v", i, code[i], want[i])
		}
	}
}

func TestSupercombinatorNegateArityOne(t *testing.T) {
	d, _ := Lookup("negate")
	code := Supercombinator(d)
	// Push(0); Eval(); NEG; Update(1); Pop(1); Unwind
	if len(code) != 6 {
		t.Fatalf("Supercombinator(negate) has %d instructions, want 6: %+v", len(code), code)
	}
	if code[0].Op != gcode.OpPush || code[0].N != 0 {
		t.Fatalf("first instruction = %+v, want Push(0)", code[0])
	}
	if code[2].Op != gcode.OpNeg {
		t.Fatalf("third instruction = %+v, want NEG", code[2])
	}
}

func TestIfSupercombinator(t *testing.T) {
	d, _ := Lookup("if")
	code := Supercombinator(d)
	if code[0].Op != gcode.OpPush || code[0].N != 0 {
		t.Fatalf("if: first instruction = %+v, want Push(0)", code[0])
	}
	if code[1].Op != gcode.OpEval {
		t.Fatalf("if: second instruction = %+v, want Eval", code[1])
	}
	if code[2].Op != gcode.OpCond {
		t.Fatalf("if: third instruction = %+v, want Cond", code[2])
	}
	if len(code[2].Then) != 1 || code[2].Then[0].N != 1 {
		t.Fatalf("if: Then branch = %+v, want Push(1)", code[2].Then)
	}
	if len(code[2].Else) != 1 || code[2].Else[0].N != 2 {
		t.Fatalf("if: Else branch = %+v, want Push(2)", code[2].Else)
	}
	tail := code[3:]
	if tail[0].Op != gcode.OpUpdate || tail[0].N != 3 {
		t.Fatalf("if: Update = %+v, want Update(3)", tail[0])
	}
}
