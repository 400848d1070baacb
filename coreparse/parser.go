// Package coreparse implements a Pratt (precedence-climbing) parser
// producing an ast.Program, grounded on the dws parser's
// registerPrefix/parseExpression(precedence) structure. It exists
// only to make the CLI runnable end-to-end (spec.md §1 treats the
// grammar and parser as an external collaborator); it is intentionally
// minimal and does not attempt to be a production front end.
package coreparse

import (
	"fmt"
	"strconv"

	"corelang/ast"
	"corelang/corelex"
)

const (
	_ int = iota
	LOWEST
	OR_PREC
	AND_PREC
	CMP_PREC
	SUM
	PRODUCT
	APP
)

var precedences = map[corelex.TokenType]int{
	corelex.OR:     OR_PREC,
	corelex.AND:    AND_PREC,
	corelex.EQ:     CMP_PREC,
	corelex.NE:     CMP_PREC,
	corelex.LANGLE: CMP_PREC,
	corelex.RANGLE: CMP_PREC,
	corelex.LE:     CMP_PREC,
	corelex.GE:     CMP_PREC,
	corelex.PLUS:   SUM,
	corelex.MINUS:  SUM,
	corelex.STAR:   PRODUCT,
	corelex.SLASH:  PRODUCT,
}

var binopName = map[corelex.TokenType]string{
	corelex.PLUS: "+", corelex.MINUS: "-", corelex.STAR: "*", corelex.SLASH: "/",
	corelex.LANGLE: "<", corelex.RANGLE: ">", corelex.LE: "<=", corelex.GE: ">=",
	corelex.EQ: "==", corelex.NE: "/=", corelex.AND: "&&", corelex.OR: "||",
}

// Parser turns a token stream into an ast.Program.
type Parser struct {
	l       *corelex.Lexer
	cur     corelex.Token
	peek    corelex.Token
	errors  []string
	genNum  int
}

// New creates a parser reading from l.
func New(l *corelex.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

// Errors returns the accumulated parse errors, in the style of the
// dws parser's p.Errors() used by cmd/dwscript/cmd/run.go.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.Next()
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf("%d:%d: %s", p.cur.Pos.Line, p.cur.Pos.Column, fmt.Sprintf(format, args...)))
}

func (p *Parser) expect(tt corelex.TokenType) bool {
	if p.cur.Type != tt {
		p.errorf("expected %s, got %s (%q)", tt, p.cur.Type, p.cur.Literal)
		return false
	}
	p.next()
	return true
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peek.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses a flat sequence of `name arg* = expr ;`
// supercombinator definitions (spec.md §6 grammar).
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.cur.Type != corelex.EOF {
		sc, ok := p.parseScDefn()
		if !ok {
			p.next()
			continue
		}
		prog.Scs = append(prog.Scs, *sc)
	}
	return prog
}

func (p *Parser) parseScDefn() (*ast.ScDefn, bool) {
	if p.cur.Type != corelex.IDENT {
		p.errorf("expected supercombinator name, got %s", p.cur.Type)
		return nil, false
	}
	sc := &ast.ScDefn{Token: p.cur.Pos, Name: p.cur.Literal}
	p.next()

	for p.cur.Type == corelex.IDENT {
		sc.Params = append(sc.Params, p.cur.Literal)
		p.next()
	}

	if !p.expect(corelex.EQUALS) {
		return nil, false
	}

	body := p.parseExpr(LOWEST)
	if body == nil {
		return nil, false
	}
	sc.Body = body

	if !p.expect(corelex.SEMI) {
		return nil, false
	}
	return sc, true
}

func (p *Parser) parseExpr(prec int) ast.Expr {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}
	for p.cur.Type != corelex.SEMI && prec < p.curPrecedence() {
		opTok := p.cur
		name, ok := binopName[opTok.Type]
		if !ok {
			break
		}
		opPrec := precedences[opTok.Type]
		p.next()
		right := p.parseExpr(opPrec)
		if right == nil {
			return nil
		}
		fn := &ast.Var{Token: opTok.Pos, Name: name, IsPrimOp: true}
		left = &ast.App{Token: opTok.Pos, Fun: &ast.App{Token: opTok.Pos, Fun: fn, Arg: left}, Arg: right}
	}
	return left
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	return LOWEST
}

// parsePrefix parses an application spine: an atomic expression
// followed by zero or more atomic arguments, left-associative.
func (p *Parser) parsePrefix() ast.Expr {
	left := p.parseAtom()
	if left == nil {
		return nil
	}
	for p.startsAtom() {
		arg := p.parseAtom()
		if arg == nil {
			return nil
		}
		left = &ast.App{Token: left.Pos(), Fun: left, Arg: arg}
	}
	return left
}

func (p *Parser) startsAtom() bool {
	switch p.cur.Type {
	case corelex.IDENT, corelex.INT, corelex.LPAREN, corelex.PACK, corelex.TRUE, corelex.FALSE, corelex.IF:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAtom() ast.Expr {
	switch p.cur.Type {
	case corelex.INT:
		tok := p.cur
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.errorf("invalid integer literal %q", tok.Literal)
			return nil
		}
		p.next()
		return &ast.Int{Token: tok.Pos, Value: v}
	case corelex.TRUE:
		tok := p.cur
		p.next()
		return &ast.Var{Token: tok.Pos, Name: "True"}
	case corelex.FALSE:
		tok := p.cur
		p.next()
		return &ast.Var{Token: tok.Pos, Name: "False"}
	case corelex.IF:
		// `if` has no dedicated syntax: it is the reserved name of a
		// three-argument primitive supercombinator, applied like any
		// other function (spec.md §4.3, §6). `if c t e` is parsed by
		// the ordinary application-spine rule in parsePrefix, the same
		// as `f x y z`.
		tok := p.cur
		p.next()
		return &ast.Var{Token: tok.Pos, Name: "if"}
	case corelex.IDENT:
		tok := p.cur
		p.next()
		return &ast.Var{Token: tok.Pos, Name: tok.Literal}
	case corelex.LPAREN:
		p.next()
		if isBinopTok(p.cur.Type) && p.peek.Type == corelex.RPAREN {
			name := binopName[p.cur.Type]
			tok := p.cur
			p.next()
			p.next()
			return &ast.Var{Token: tok.Pos, Name: name, IsPrimOp: true}
		}
		e := p.parseExpr(LOWEST)
		if e == nil {
			return nil
		}
		if !p.expect(corelex.RPAREN) {
			return nil
		}
		return e
	case corelex.PACK:
		return p.parsePack()
	case corelex.LET, corelex.LETREC:
		return p.parseLet()
	case corelex.CASE:
		return p.parseCase()
	default:
		p.errorf("unexpected token %s (%q)", p.cur.Type, p.cur.Literal)
		return nil
	}
}

func isBinopTok(tt corelex.TokenType) bool {
	_, ok := binopName[tt]
	return ok
}

func (p *Parser) parsePack() ast.Expr {
	tok := p.cur
	p.next()
	if !p.expect(corelex.LBRACE) {
		return nil
	}
	tag, err := strconv.Atoi(p.cur.Literal)
	if !p.expect(corelex.INT) || err != nil {
		p.errorf("expected constructor tag")
		return nil
	}
	if !p.expect(corelex.COMMA) {
		return nil
	}
	arity, err2 := strconv.Atoi(p.cur.Literal)
	if !p.expect(corelex.INT) || err2 != nil {
		p.errorf("expected constructor arity")
		return nil
	}
	if !p.expect(corelex.RBRACE) {
		return nil
	}
	return &ast.Constr{Token: tok.Pos, Tag: tag, Arity: arity}
}

func (p *Parser) parseLet() ast.Expr {
	tok := p.cur
	isRec := p.cur.Type == corelex.LETREC
	p.next()

	var defns []ast.Defn
	for {
		if p.cur.Type != corelex.IDENT {
			p.errorf("expected binder name in let/letrec")
			return nil
		}
		name := p.cur.Literal
		p.next()
		if !p.expect(corelex.EQUALS) {
			return nil
		}
		rhs := p.parseExpr(LOWEST)
		if rhs == nil {
			return nil
		}
		defns = append(defns, ast.Defn{Name: name, Rhs: rhs})
		if p.cur.Type == corelex.SEMI {
			p.next()
			if p.cur.Type == corelex.IN {
				break
			}
			continue
		}
		break
	}
	if !p.expect(corelex.IN) {
		return nil
	}
	body := p.parseExpr(LOWEST)
	if body == nil {
		return nil
	}
	return &ast.Let{Token: tok.Pos, IsRec: isRec, Defns: defns, Body: body}
}

func (p *Parser) parseCase() ast.Expr {
	tok := p.cur
	p.next()
	scrut := p.parseExpr(LOWEST)
	if scrut == nil {
		return nil
	}
	if !p.expect(corelex.OF) {
		return nil
	}
	var alts []ast.Alt
	for p.cur.Type == corelex.LANGLE {
		p.next()
		tag, err := strconv.Atoi(p.cur.Literal)
		if !p.expect(corelex.INT) || err != nil {
			p.errorf("expected alternative tag")
			return nil
		}
		if !p.expect(corelex.RANGLE) {
			return nil
		}
		var binders []string
		for p.cur.Type == corelex.IDENT {
			binders = append(binders, p.cur.Literal)
			p.next()
		}
		if !p.expect(corelex.ARROW) {
			return nil
		}
		body := p.parseExpr(LOWEST)
		if body == nil {
			return nil
		}
		alts = append(alts, ast.Alt{Tag: tag, Binders: binders, Body: body})
		// Only consume this ";" as an alt separator when another alt
		// follows; otherwise it belongs to whatever encloses this case
		// expression (an scdefn or a let's ";" terminator), exactly
		// like the last defn's ";" in parseLet.
		if p.cur.Type == corelex.SEMI && p.peek.Type == corelex.LANGLE {
			p.next()
		}
	}
	return &ast.Case{Token: tok.Pos, Scrutinee: scrut, Alts: alts}
}
