package gcode

import "testing"

func TestPrimOpCode(t *testing.T) {
	tests := []struct {
		name  string
		want  OpCode
		found bool
	}{
		{"+", OpAdd, true},
		{"-", OpSub, true},
		{"*", OpMul, true},
		{"/", OpDiv, true},
		{"negate", OpNeg, true},
		{"==", OpEq, true},
		{"/=", OpNe, true},
		{"<", OpLt, true},
		{"<=", OpLe, true},
		{">", OpGt, true},
		{">=", OpGe, true},
		{"if", 0, false},
		{"nonsense", 0, false},
	}
	for _, tt := range tests {
		got, ok := PrimOpCode(tt.name)
		if ok != tt.found {
			t.Fatalf("PrimOpCode(%q) found = %v, want %v", tt.name, ok, tt.found)
		}
		if ok && got != tt.want {
			t.Fatalf("PrimOpCode(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestArity(t *testing.T) {
	if Arity("negate") != 1 {
		t.Fatalf("Arity(negate) = %d, want 1", Arity("negate"))
	}
	for _, name := range []string{"+", "-", "*", "/", "==", "<"} {
		if Arity(name) != 2 {
			t.Fatalf("Arity(%q) = %d, want 2", name, Arity(name))
		}
	}
}

func TestConstructors(t *testing.T) {
	if i := Pushglobal("foo"); i.Op != OpPushglobal || i.Name != "foo" {
		t.Fatalf("Pushglobal: got %+v", i)
	}
	if i := Pushint(7); i.Op != OpPushint || i.N != 7 {
		t.Fatalf("Pushint: got %+v", i)
	}
	if i := Pack(2, 3); i.Op != OpPack || i.Tag != 2 || i.N != 3 {
		t.Fatalf("Pack: got %+v", i)
	}
	if i := Cond(Code{Push(0)}, Code{Push(1)}); len(i.Then) != 1 || len(i.Else) != 1 {
		t.Fatalf("Cond: got %+v", i)
	}
	alts := []Alt{{Tag: 1, Code: Code{Unwind()}}}
	if i := CaseJump(alts); len(i.Alts) != 1 || i.Alts[0].Tag != 1 {
		t.Fatalf("CaseJump: got %+v", i)
	}
}

func TestOpCodeString(t *testing.T) {
	if OpUnwind.String() != "UNWIND" {
		t.Fatalf("OpUnwind.String() = %q", OpUnwind.String())
	}
	if got := OpCode(255).String(); got != "OP(255)" {
		t.Fatalf("unknown opcode String() = %q, want OP(255)", got)
	}
}
