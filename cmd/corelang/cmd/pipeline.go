package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"corelang/ast"
	"corelang/compiler"
	"corelang/corelex"
	"corelang/coreparse"
)

// readSource loads the program text from a file argument, or from
// stdin when none is given, matching run.go's file-or-eval pattern in
// the dws CLI.
func readSource(args []string) (source, filename string, err error) {
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	content, err := readAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return content, "<stdin>", nil
}

func readAll(f *os.File) (string, error) {
	data, err := io.ReadAll(f)
	return string(data), err
}

// parseProgram lexes and parses source, prepending the standard
// prelude (spec.md §6 reserved names) so every program has
// true/false/cons/nil/compose/id available without restating them.
func parseProgram(source, filename string) (*ast.Program, error) {
	combined := compiler.Prelude + "\n" + source
	l := corelex.New(combined)
	p := coreparse.New(l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("parsing %s failed:\n  %s", filename, strings.Join(errs, "\n  "))
	}
	return prog, nil
}

// compileProgram parses and compiles source, returning the compiled
// user+prelude program plus the constructor globals it references.
func compileProgram(source, filename string) (*compiler.Program, *ast.Program, error) {
	prog, err := parseProgram(source, filename)
	if err != nil {
		return nil, nil, err
	}
	c := compiler.New(source, filename)
	compiled, err := c.CompileProgram(prog)
	if err != nil {
		return nil, nil, err
	}
	return compiled, prog, nil
}
