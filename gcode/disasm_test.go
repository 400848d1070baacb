package gcode

import (
	"bytes"
	"strings"
	"testing"
)

func TestDisassemblerSc(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisassembler(&buf)
	code := Code{
		Push(0), Eval(),
		Cond(Code{Push(1)}, Code{Push(2)}),
		Update(3), Pop(3), Unwind(),
	}
	d.Sc("if", 3, code)

	out := buf.String()
	if !strings.HasPrefix(out, "<Sc if arity=3>\n") {
		t.Fatalf("missing header, got:\n%s", out)
	}
	for _, want := range []string{"PUSH", "EVAL", "COND", "then:", "else:", "UPDATE", "UNWIND"} {
		if !strings.Contains(out, want) {
			t.Errorf("disasm output missing %q:\n%s", want, out)
		}
	}
}

func TestDisassemblerCaseJump(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisassembler(&buf)
	code := Code{
		CaseJump([]Alt{
			{Tag: 1, Code: Code{Split(0), Pushint(0), Slide(0)}},
			{Tag: 2, Code: Code{Split(2), Pushint(1), Slide(2)}},
		}),
	}
	d.Sc("f", 1, code)
	out := buf.String()
	if !strings.Contains(out, "<1>:") || !strings.Contains(out, "<2>:") {
		t.Fatalf("missing case tag labels:\n%s", out)
	}
}
