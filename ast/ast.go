// Package ast defines the Abstract Syntax Tree node types for corelang, a
// small non-strict functional core language. The tree is emitted by
// coreparse and consumed by the compiler; it is never mutated after
// parsing.
package ast

import (
	"bytes"
	"fmt"
	"strings"
)

// Position marks a location in source text, 1-indexed.
type Position struct {
	Line   int
	Column int
}

// Expr is the sum type of core-language expressions. Every concrete
// type below implements it.
type Expr interface {
	exprNode()
	String() string
	Pos() Position
}

// Var is an identifier reference, either a local (let/lambda-free
// parameter) or a global supercombinator name.
type Var struct {
	Token    Position
	Name     string
	IsPrimOp bool // true when Name is a reserved primitive used as a value
}

func (v *Var) exprNode() {}
func (v *Var) Pos() Position { return v.Token }
func (v *Var) String() string { return v.Name }

// Int is an integer literal.
type Int struct {
	Token Position
	Value int64
}

func (i *Int) exprNode() {}
func (i *Int) Pos() Position { return i.Token }
func (i *Int) String() string { return fmt.Sprintf("%d", i.Value) }

// App is a single-argument application; n-ary calls are curried chains
// of App nodes, e.g. `f a b` parses as App(App(f, a), b).
type App struct {
	Token Position
	Fun   Expr
	Arg   Expr
}

func (a *App) exprNode() {}
func (a *App) Pos() Position { return a.Token }
func (a *App) String() string {
	return fmt.Sprintf("(%s %s)", a.Fun.String(), a.Arg.String())
}

// Defn is one binding of a let/letrec group.
type Defn struct {
	Name string
	Rhs  Expr
}

// Let is a let or letrec block. In a plain let, binders are not in
// scope in their own right-hand sides; in a letrec (IsRec true) all
// binders are mutually visible, enabling self- and forward-reference.
type Let struct {
	Token  Position
	IsRec  bool
	Defns  []Defn
	Body   Expr
}

func (l *Let) exprNode() {}
func (l *Let) Pos() Position { return l.Token }
func (l *Let) String() string {
	var out bytes.Buffer
	if l.IsRec {
		out.WriteString("letrec ")
	} else {
		out.WriteString("let ")
	}
	parts := make([]string, len(l.Defns))
	for i, d := range l.Defns {
		parts[i] = fmt.Sprintf("%s = %s", d.Name, d.Rhs.String())
	}
	out.WriteString(strings.Join(parts, "; "))
	out.WriteString(" in ")
	out.WriteString(l.Body.String())
	return out.String()
}

// Constr is a reference to a tagged constructor, written `Pack{tag,arity}`
// in source. It behaves like any other global of the given arity: when
// saturated it builds an NConstr; when under-applied it is a partial
// application like any curried function.
type Constr struct {
	Token Position
	Tag   int
	Arity int
}

func (c *Constr) exprNode() {}
func (c *Constr) Pos() Position { return c.Token }
func (c *Constr) String() string {
	return fmt.Sprintf("Pack{%d,%d}", c.Tag, c.Arity)
}

// Alt is one alternative of a case expression. Arity is len(Binders).
type Alt struct {
	Tag     int
	Binders []string
	Body    Expr
}

// Case discriminates on the tag of an evaluated constructor value.
type Case struct {
	Token     Position
	Scrutinee Expr
	Alts      []Alt
}

func (c *Case) exprNode() {}
func (c *Case) Pos() Position { return c.Token }
func (c *Case) String() string {
	var out bytes.Buffer
	out.WriteString("case ")
	out.WriteString(c.Scrutinee.String())
	out.WriteString(" of ")
	for _, a := range c.Alts {
		out.WriteString(fmt.Sprintf("<%d> %s -> %s; ", a.Tag, strings.Join(a.Binders, " "), a.Body.String()))
	}
	return out.String()
}

// ScDefn is a top-level supercombinator definition: a name, its ordered
// formal parameters, and a body expression. main has zero parameters.
type ScDefn struct {
	Token  Position
	Name   string
	Params []string
	Body   Expr
}

// Program is the full parsed source: a flat collection of
// supercombinator definitions. Every bound name in every scope is
// unique by construction (an invariant the parser/prelude maintain).
type Program struct {
	Scs []ScDefn
}

// Lookup returns the definition named name, if any.
func (p *Program) Lookup(name string) (*ScDefn, bool) {
	for i := range p.Scs {
		if p.Scs[i].Name == name {
			return &p.Scs[i], true
		}
	}
	return nil, false
}
