package parser

import (
	"github.com/orizon-lang/plc/internal/lexer"
	"github.com/orizon-lang/plc/internal/resolver"
)

type contextMode int

const (
	contextUnchecked contextMode = iota
	contextExpect
	contextCondition
)

// typeContext decides which literals an expression may contain. An
// expect context carries the declared type of an assignment target or
// parameter. A condition context belongs to an if or for condition and
// accepts integers and booleans freely but never floats; the first char or
// string literal fixes the kind every later one must have.
type typeContext struct {
	mode  contextMode
	kind  resolver.SymbolKind
	fixed resolver.SymbolKind
}

func unchecked() *typeContext {
	return &typeContext{mode: contextUnchecked}
}

func expecting(kind resolver.SymbolKind) *typeContext {
	return &typeContext{mode: contextExpect, kind: kind}
}

func condition() *typeContext {
	return &typeContext{mode: contextCondition}
}

func literalKind(tt lexer.TokenType) resolver.SymbolKind {
	switch tt {
	case lexer.TokenInteger:
		return resolver.KindInteger
	case lexer.TokenFloat:
		return resolver.KindFloat
	case lexer.TokenTrue, lexer.TokenFalse:
		return resolver.KindBool
	case lexer.TokenChar:
		return resolver.KindChar
	case lexer.TokenString:
		return resolver.KindString
	default:
		return resolver.KindInvalid
	}
}

func numeric(kind resolver.SymbolKind) bool {
	return kind == resolver.KindInteger || kind == resolver.KindBool
}

func (c *typeContext) accepts(lit lexer.TokenType) bool {
	got := literalKind(lit)

	switch c.mode {
	case contextCondition:
		switch got {
		case resolver.KindInteger, resolver.KindBool:
			return true
		case resolver.KindFloat:
			return false
		}
		if c.fixed == resolver.KindInvalid {
			c.fixed = got
			return true
		}
		return c.fixed == got
	case contextExpect:
		switch {
		case c.kind == resolver.KindProcedure, got == c.kind:
			return true
		case c.kind == resolver.KindFloat && got == resolver.KindInteger:
			return true
		case numeric(c.kind) && numeric(got):
			return true
		}
		return false
	default:
		return true
	}
}

// operand describes a recognized expression. ident is set when the
// expression is a single (possibly indexed) name, literal when it is a
// single (possibly negated) literal; compound expressions set neither.
type operand struct {
	ident   *lexer.Token
	literal *lexer.Token
}

// parseExpression parses
// "NOT arith_op | arith_op [(AND | OR) expression]". On entry the current
// token starts the expression; on success it is the expression's last
// token.
func (p *Parser) parseExpression(ctx *typeContext) (operand, bool) {
	if p.currentTokenIs(lexer.TokenNot) {
		p.nextToken()
		if _, ok := p.parseArithOp(ctx); !ok {
			return operand{}, false
		}
		return operand{}, true
	}
	return p.binary(ctx, p.parseArithOp, p.parseExpression, lexer.TokenAnd, lexer.TokenOr)
}

func (p *Parser) parseArithOp(ctx *typeContext) (operand, bool) {
	return p.binary(ctx, p.parseRelation, p.parseArithOp, lexer.TokenPlus, lexer.TokenMinus)
}

func (p *Parser) parseRelation(ctx *typeContext) (operand, bool) {
	return p.binary(ctx, p.parseTerm, p.parseRelation,
		lexer.TokenLt, lexer.TokenLe, lexer.TokenGt, lexer.TokenGe, lexer.TokenEq, lexer.TokenNe)
}

func (p *Parser) parseTerm(ctx *typeContext) (operand, bool) {
	return p.binary(ctx, p.parseFactor, p.parseTerm, lexer.TokenMul, lexer.TokenDiv)
}

// binary parses "lhs [op rhs]" for any op in ops. The right operand
// recurses, so operators of one level associate to the right.
func (p *Parser) binary(ctx *typeContext, lhs, rhs func(*typeContext) (operand, bool), ops ...lexer.TokenType) (operand, bool) {
	left, ok := lhs(ctx)
	if !ok {
		return operand{}, false
	}
	if !p.peekTokenIn(ops...) {
		return left, true
	}
	p.nextToken()
	p.nextToken()
	if _, ok := rhs(ctx); !ok {
		return operand{}, false
	}
	return operand{}, true
}

// parseFactor parses
// "literal | MINUS factor | ( expression ) | name". Literals are checked
// against ctx and reported as invalid arguments when they do not fit.
func (p *Parser) parseFactor(ctx *typeContext) (operand, bool) {
	tok := p.current

	switch {
	case tok.IsLiteral():
		if !ctx.accepts(tok.Type) {
			p.invalidArgument(tok)
			return operand{}, false
		}
		return operand{literal: &tok}, true
	case tok.Type == lexer.TokenMinus:
		p.nextToken()
		inner, ok := p.parseFactor(ctx)
		if !ok {
			return operand{}, false
		}
		return operand{literal: inner.literal}, true
	case tok.Type == lexer.TokenLParen:
		p.nextToken()
		if _, ok := p.parseExpression(ctx); !ok {
			return operand{}, false
		}
		if !p.expectPeek(lexer.TokenRParen) {
			return operand{}, false
		}
		return operand{}, true
	case tok.Type == lexer.TokenIdentifier:
		return p.parseName()
	default:
		p.unexpected(tok)
		return operand{}, false
	}
}

// parseName parses "IDENTITY [ [ expression ] ]".
func (p *Parser) parseName() (operand, bool) {
	tok := p.current
	if p.peekTokenIs(lexer.TokenLBracket) {
		p.nextToken()
		p.nextToken()
		if _, ok := p.parseExpression(expecting(resolver.KindInteger)); !ok {
			return operand{}, false
		}
		if !p.expectPeek(lexer.TokenRBracket) {
			return operand{}, false
		}
	}
	return operand{ident: &tok}, true
}
