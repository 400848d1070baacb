// Package compiler implements the three mutually recursive
// translation schemes spec.md §4.2 describes (R, E, C), emitting
// gcode.Code for each supercombinator body and for anonymous
// case-alternative fragments. It is grounded on the layered
// compiler_core.go/compiler_expressions.go/compiler_statements.go
// split the dws bytecode compiler uses, scaled to this language's
// three schemes instead of one statement/expression compiler.
package compiler

import (
	"fmt"

	"corelang/ast"
	"corelang/corerr"
	"corelang/gcode"
	"corelang/primitives"
)

// Program is the compiled form of an ast.Program: one instruction
// sequence plus arity per supercombinator, in source order.
type Program struct {
	Scs []CompiledSc
}

// CompiledSc is one compiled supercombinator.
type CompiledSc struct {
	Name   string
	Arity  int
	Code   gcode.Code
}

// Compiler holds no persistent state beyond what each call needs,
// mirroring the dws compiler's stateless-per-chunk style, except for
// the small accumulator below: a case expression found in a lazy
// position is lambda-lifted into its own supercombinator (case.go's
// liftCase, called from scheme_c.go), and liftedScs/liftCounter track the ones synthesized so
// far for this program.
type Compiler struct {
	source string
	file   string

	liftedScs   []CompiledSc
	liftCounter int
}

// New creates a compiler. source/file are only used to annotate
// CompileError with source context.
func New(source, file string) *Compiler {
	return &Compiler{source: source, file: file}
}

// CompileProgram compiles every supercombinator in prog using the
// R-scheme (spec.md §4.2), after checking that `main` exists. An `if`
// spine in strict position with other than three arguments is
// rejected while compiling (tryCompileIf); Pack applications are not
// arity-checked.
func (c *Compiler) CompileProgram(prog *ast.Program) (*Program, error) {
	if _, ok := prog.Lookup("main"); !ok {
		return nil, corerr.NewCompileError(ast.Position{}, "supercombinator 'main' is not defined", c.source, c.file)
	}

	out := &Program{}
	for _, sc := range prog.Scs {
		code, err := c.compileR(sc)
		if err != nil {
			return nil, err
		}
		out.Scs = append(out.Scs, CompiledSc{Name: sc.Name, Arity: len(sc.Params), Code: code})
	}
	// liftCase appends to c.liftedScs as compileR above recurses into
	// let/Pack-argument bodies; fold them in once every top-level
	// supercombinator has had its chance to contribute one.
	out.Scs = append(out.Scs, c.liftedScs...)
	return out, nil
}

// compileR implements the R-scheme: the whole supercombinator body,
// in tail position.
//
//	E⟦e⟧ ρ ; Update(n) ; Pop(n) ; Unwind
func (c *Compiler) compileR(sc ast.ScDefn) (gcode.Code, error) {
	env := NewEnv(sc.Params)
	n := len(sc.Params)

	body, err := c.compileE(sc.Body, env)
	if err != nil {
		return nil, err
	}

	code := append(gcode.Code{}, body...)
	code = append(code, gcode.Update(n), gcode.Pop(n), gcode.Unwind())
	return code, nil
}

func (c *Compiler) errAt(pos ast.Position, format string, args ...any) error {
	return corerr.NewCompileError(pos, fmt.Sprintf(format, args...), c.source, c.file)
}

// PrimitiveSupercombinators returns the compiled form of every entry
// in the primitives registry, for the initial-state builder to seed
// alongside the user's own supercombinators (spec.md §4.3, §9).
func PrimitiveSupercombinators() []CompiledSc {
	var out []CompiledSc
	for _, d := range primitives.Table {
		out = append(out, CompiledSc{Name: d.Name, Arity: d.Arity, Code: primitives.Supercombinator(d)})
	}
	return out
}
