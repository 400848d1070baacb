// Package corerr provides structured error types for corelang's three
// failure kinds (spec.md §7): compile-time, runtime, and I/O. It is
// grounded on the dws internal/errors package's CompilerError: a
// position-carrying error that formats itself with a source line and
// caret, generalized here to cover the runtime machine's fatal errors
// too (spec.md §4.5 lists every one of them as unrecoverable).
package corerr

import (
	"fmt"
	"strings"

	"corelang/ast"
)

// CompileError is a compile-time failure: a missing main, a malformed
// AST, or an arity mismatch for a saturated-only construct (if, Pack).
type CompileError struct {
	Pos     ast.Position
	Message string
	Source  string
	File    string
}

func NewCompileError(pos ast.Position, message, source, file string) *CompileError {
	return &CompileError{Pos: pos, Message: message, Source: source, File: file}
}

func (e *CompileError) Error() string { return e.Format(false) }

// Format renders the error with a source line and a caret pointing at
// the offending column, matching dws CompilerError.Format.
func (e *CompileError) Format(color bool) string {
	var sb strings.Builder
	if e.File != "" {
		fmt.Fprintf(&sb, "compile error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "compile error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}
	if line := sourceLine(e.Source, e.Pos.Line); line != "" {
		gutter := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(gutter)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}
	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func sourceLine(source string, n int) string {
	if source == "" || n < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// RuntimeError is a fatal failure raised by the machine while
// executing already-compiled code: an undefined global, an arity
// underflow into Unwind, a primitive type mismatch, an exhausted
// CaseJump, an out-of-range Cond value, a reference to an
// unallocated address, or a stack/dump depth overflow. None of these
// are retried (spec.md §4.5, §7).
type RuntimeError struct {
	Message string
	PC      int
	Instr   string
}

func NewRuntimeError(message string, pc int, instr string) *RuntimeError {
	return &RuntimeError{Message: message, PC: pc, Instr: instr}
}

func (e *RuntimeError) Error() string {
	if e.Instr != "" {
		return fmt.Sprintf("runtime error at pc=%d (%s): %s", e.PC, e.Instr, e.Message)
	}
	return fmt.Sprintf("runtime error: %s", e.Message)
}

// IOError wraps a failure reading source or writing a result.
type IOError struct {
	Op  string
	Err error
}

func NewIOError(op string, err error) *IOError {
	return &IOError{Op: op, Err: err}
}

func (e *IOError) Error() string { return fmt.Sprintf("io error during %s: %v", e.Op, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }
