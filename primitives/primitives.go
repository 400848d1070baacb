// Package primitives defines the fixed set of arithmetic, relational,
// and conditional operators and builds their two runtime faces
// (spec.md §4.3): an open-coded instruction used by the E-scheme in
// strict context, and a pre-compiled supercombinator used whenever an
// operator is partially applied, passed as a value, or reached by
// Unwind of its NGlobal. The table is a package-level constant table
// initialized once when the package loads (spec.md §9, "Global state"), in the spirit
// of the dws VM's registerBuiltins map populated in NewVM.
package primitives

import "corelang/gcode"

// Def describes one primitive operator.
type Def struct {
	Name  string
	Arity int
	Op    gcode.OpCode // the open-coded instruction, if any
	IsCmp bool         // true for relational operators (yield 0/1)
}

// Table lists every primitive this language provides. `if` is arity 3
// and has no open-coded Op; it is realized purely via Cond (see
// compiler's E-scheme special case) and, when used as a value, via
// the supercombinator built in Supercombinator below.
var Table = []Def{
	{Name: "+", Arity: 2, Op: gcode.OpAdd},
	{Name: "-", Arity: 2, Op: gcode.OpSub},
	{Name: "*", Arity: 2, Op: gcode.OpMul},
	{Name: "/", Arity: 2, Op: gcode.OpDiv},
	{Name: "negate", Arity: 1, Op: gcode.OpNeg},
	{Name: "==", Arity: 2, Op: gcode.OpEq, IsCmp: true},
	{Name: "/=", Arity: 2, Op: gcode.OpNe, IsCmp: true},
	{Name: "<", Arity: 2, Op: gcode.OpLt, IsCmp: true},
	{Name: "<=", Arity: 2, Op: gcode.OpLe, IsCmp: true},
	{Name: ">", Arity: 2, Op: gcode.OpGt, IsCmp: true},
	{Name: ">=", Arity: 2, Op: gcode.OpGe, IsCmp: true},
	{Name: "if", Arity: 3},
}

// Lookup finds a primitive definition by name.
func Lookup(name string) (Def, bool) {
	for _, d := range Table {
		if d.Name == name {
			return d, true
		}
	}
	return Def{}, false
}

// Supercombinator builds the canonical primitive body (spec.md §4.3):
//
//	Push each arg ; Eval ; <primop> ; Update(n) ; Pop(n) ; Unwind
//
// for an arithmetic/relational primitive, or the Cond-based body for
// `if`. This guarantees the operand(s) are evaluated to WHNF and the
// caller's spine is properly updated and unwound even when the
// primitive is reached as a plain NGlobal (partial application, or
// used as a first-class value) rather than open-coded in place by
// the E-scheme.
func Supercombinator(d Def) gcode.Code {
	if d.Name == "if" {
		return ifSupercombinator()
	}

	n := d.Arity
	var code gcode.Code
	// Push a fresh copy of each parameter and force it to WHNF, in
	// order xn, xn-1, ..., x1. Because each Push grows the stack by
	// one, the offset of the next parameter to copy is always n-1 at
	// the moment it is pushed (the n-j-1'th original slot plus the j
	// copies already made cancel out), so the loop below is simply
	// "Push(n-1); Eval()" repeated n times. The final arrangement has
	// the evaluated x1 on top and evaluated xn deepest, which is
	// exactly the operand order the E-scheme's open-coded case
	// produces for `App(App(op, x1), x2)`.
	for i := 0; i < n; i++ {
		code = append(code, gcode.Push(n-1), gcode.Eval())
	}
	code = append(code, gcode.PrimOp(d.Op))
	code = append(code, gcode.Update(n), gcode.Pop(n), gcode.Unwind())
	return code
}

// ifSupercombinator builds the arity-3 supercombinator body for `if`:
// evaluate the condition, then Cond-branch to push the then- or
// else-argument, followed by the standard Update/Pop/Unwind trailer.
func ifSupercombinator() gcode.Code {
	return gcode.Code{
		gcode.Push(0), gcode.Eval(),
		gcode.Cond(
			gcode.Code{gcode.Push(1)},
			gcode.Code{gcode.Push(2)},
		),
		gcode.Update(3), gcode.Pop(3), gcode.Unwind(),
	}
}
