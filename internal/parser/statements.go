package parser

import (
	"github.com/orizon-lang/plc/internal/lexer"
	"github.com/orizon-lang/plc/internal/resolver"
)

// parseStatements parses "{statement ;}" and returns how many statements
// were seen, recovered ones included. On return the current token is the
// first one that cannot start a statement.
func (p *Parser) parseStatements() int {
	n := 0
	for p.startsStatement() {
		mark, base := p.reported, p.nesting
		complete := p.parseStatement()
		if complete && p.expectPeek(lexer.TokenSemicolon) {
			p.nextToken()
		} else {
			if complete {
				// Step off the last token; the if of "end if" opens nothing.
				p.nextToken()
			}
			p.recover(mark, p.nesting-base)
			p.nesting = base
		}
		n++
	}
	return n
}

func (p *Parser) startsStatement() bool {
	switch p.current.Type {
	case lexer.TokenReturn, lexer.TokenIdentifier, lexer.TokenIf, lexer.TokenFor, lexer.TokenError:
		return true
	}
	return p.current.IsBuiltin()
}

// parseStatement dispatches on the current token. Built-in names are
// reserved words, so a built-in call is never mistaken for an identifier
// statement.
func (p *Parser) parseStatement() bool {
	switch {
	case p.currentTokenIs(lexer.TokenReturn):
		p.trace("return")
		return true
	case p.current.IsBuiltin():
		return p.parseBuiltinCall()
	case p.currentTokenIs(lexer.TokenIdentifier):
		return p.parseIdentifierStatement()
	case p.currentTokenIs(lexer.TokenIf):
		return p.parseIfStatement()
	case p.currentTokenIs(lexer.TokenFor):
		return p.parseForStatement()
	default:
		p.unexpected(p.current)
		return false
	}
}

func (p *Parser) parseBuiltinCall() bool {
	callee := p.current
	sym, ok := p.table.Resolve(p.table.GlobalKey() + "." + callee.Literal)
	if !ok {
		p.unexpected(callee)
		return false
	}
	if !p.expectPeek(lexer.TokenLParen) {
		return false
	}
	if !p.parseCallArguments(sym) {
		return false
	}
	p.trace("built-in call %s", callee.Literal)
	return true
}

// parseIdentifierStatement parses a procedure call or an assignment.
// Names that do not resolve are accepted unchecked; the language allows
// references to globals declared later.
func (p *Parser) parseIdentifierStatement() bool {
	name := p.current
	sym, found := p.table.Lookup(name.Literal)

	if p.peekTokenIs(lexer.TokenLParen) {
		if found && !sym.Kind.IsCallable() {
			p.unexpected(name)
			return false
		}
		p.nextToken()
		var callee *resolver.Symbol
		if found {
			callee = sym
		}
		if !p.parseCallArguments(callee) {
			return false
		}
		p.trace("procedure call %s", name.Literal)
		return true
	}

	if found && !sym.Kind.IsScalar() {
		p.unexpected(name)
		return false
	}
	ctx := unchecked()
	if found {
		ctx = expecting(sym.Kind)
	}
	if !p.parseDestinationSuffix() || !p.expectPeek(lexer.TokenAssign) {
		return false
	}
	p.nextToken()
	if _, ok := p.parseExpression(ctx); !ok {
		return false
	}
	p.trace("assignment %s", name.Literal)
	return true
}

// parseDestinationSuffix parses the optional "[expression]" after an
// assignment target. The current token is the target name.
func (p *Parser) parseDestinationSuffix() bool {
	if !p.peekTokenIs(lexer.TokenLBracket) {
		return true
	}
	p.nextToken()
	p.nextToken()
	if _, ok := p.parseExpression(expecting(resolver.KindInteger)); !ok {
		return false
	}
	return p.expectPeek(lexer.TokenRBracket)
}

// parseCallArguments parses "( [expression {, expression}] )" with the
// current token on the left parenthesis. Arguments are checked
// positionally against callee; a nil callee is a forward reference and
// its arguments are only parsed.
func (p *Parser) parseCallArguments(callee *resolver.Symbol) bool {
	if p.peekTokenIs(lexer.TokenRParen) {
		p.nextToken()
		if callee != nil && callee.ParamCount() > 0 {
			p.unexpected(p.current)
			return false
		}
		return true
	}

	n := 0
	for {
		p.nextToken()
		if !p.parseArgument(callee, n) {
			return false
		}
		n++
		if !p.peekTokenIs(lexer.TokenComma) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(lexer.TokenRParen) {
		return false
	}
	if callee != nil && n < callee.ParamCount() {
		p.unexpected(p.current)
		return false
	}
	return true
}

// parseArgument parses the i-th argument of a call to callee. A lone
// name must resolve to a symbol of the parameter's type; OUT and INOUT
// parameters accept nothing but a name.
func (p *Parser) parseArgument(callee *resolver.Symbol, i int) bool {
	start := p.current
	if callee == nil {
		_, ok := p.parseExpression(unchecked())
		return ok
	}
	if i >= callee.ParamCount() {
		p.invalidArgument(start)
		return false
	}

	want := callee.ParamTypes[i]
	arg, ok := p.parseExpression(expecting(want))
	if !ok {
		return false
	}

	switch {
	case arg.ident != nil:
		sym, found := p.table.Lookup(arg.ident.Literal)
		if !found || sym.Kind != want {
			p.invalidArgument(*arg.ident)
			return false
		}
	case callee.ParamModes[i].ByReference():
		p.invalidArgument(start)
		return false
	}
	return true
}

// parseIfStatement parses
// "IF ( expression ) THEN statements [ELSE statements] END IF". Each
// branch needs at least one statement.
func (p *Parser) parseIfStatement() bool {
	if !p.expectPeek(lexer.TokenLParen) {
		return false
	}
	p.nesting++
	p.nextToken()
	if _, ok := p.parseExpression(condition()); !ok {
		return false
	}
	if !p.expectPeek(lexer.TokenRParen) || !p.expectPeek(lexer.TokenThen) {
		return false
	}

	p.nextToken()
	if p.parseStatements() == 0 {
		p.unexpected(p.current)
		return false
	}
	if p.currentTokenIs(lexer.TokenElse) {
		p.nextToken()
		if p.parseStatements() == 0 {
			p.unexpected(p.current)
			return false
		}
	}

	if !p.currentTokenIs(lexer.TokenEnd) {
		p.unexpected(p.current)
		return false
	}
	if !p.expectPeek(lexer.TokenIf) {
		return false
	}
	p.nesting--
	p.trace("if")
	return true
}

// parseForStatement parses
// "FOR ( destination := expression ; expression ) statements END FOR".
func (p *Parser) parseForStatement() bool {
	if !p.expectPeek(lexer.TokenLParen) {
		return false
	}
	p.nesting++
	if !p.expectPeek(lexer.TokenIdentifier) {
		return false
	}
	target := p.current
	ctx := unchecked()
	if sym, ok := p.table.Lookup(target.Literal); ok {
		if !sym.Kind.IsScalar() {
			p.unexpected(target)
			return false
		}
		ctx = expecting(sym.Kind)
	}

	if !p.parseDestinationSuffix() || !p.expectPeek(lexer.TokenAssign) {
		return false
	}
	p.nextToken()
	if _, ok := p.parseExpression(ctx); !ok {
		return false
	}
	if !p.expectPeek(lexer.TokenSemicolon) {
		return false
	}
	p.nextToken()
	if _, ok := p.parseExpression(condition()); !ok {
		return false
	}
	if !p.expectPeek(lexer.TokenRParen) {
		return false
	}

	p.nextToken()
	p.parseStatements()
	if !p.currentTokenIs(lexer.TokenEnd) {
		p.unexpected(p.current)
		return false
	}
	if !p.expectPeek(lexer.TokenFor) {
		return false
	}
	p.nesting--
	p.trace("for")
	return true
}
