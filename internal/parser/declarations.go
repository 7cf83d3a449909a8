package parser

import (
	"strings"

	"github.com/orizon-lang/plc/internal/diagnostic"
	"github.com/orizon-lang/plc/internal/lexer"
	"github.com/orizon-lang/plc/internal/resolver"
)

// parseProgram parses "PROGRAM IDENTITY IS body PERIOD" and returns the
// program name.
func (p *Parser) parseProgram() string {
	p.mustCurrent(lexer.TokenProgram)
	p.mustPeek(lexer.TokenIdentifier)
	name := p.current

	p.table.EnterScope(name.Literal)
	sym := p.table.Stage(resolver.KindProgram)
	sym.Global = true
	sym.Line = name.Line

	p.mustPeek(lexer.TokenIs)
	p.commit(name)
	p.gen.OpenProgram(name.Literal)
	p.trace("program header %s", name.Literal)

	p.nextToken()
	p.parseBody(lexer.TokenProgram)
	p.mustPeek(lexer.TokenPeriod)
	p.table.ExitScope()
	p.trace("program %s", name.Literal)

	return name.Literal
}

// parseBody parses "{declaration ;} BEGIN {statement ;} END terminator".
// On return the current token is the terminator.
func (p *Parser) parseBody(terminator lexer.TokenType) {
	for p.startsDeclaration() {
		mark := p.reported
		if p.parseDeclaration() && p.expectPeek(lexer.TokenSemicolon) {
			p.nextToken()
			continue
		}
		p.recover(mark, 0)
	}

	p.mustCurrent(lexer.TokenBegin)
	p.nextToken()
	p.parseStatements()
	p.mustCurrent(lexer.TokenEnd)
	p.mustPeek(terminator)
}

func (p *Parser) startsDeclaration() bool {
	switch {
	case p.currentTokenIs(lexer.TokenGlobal), p.currentTokenIs(lexer.TokenProcedure), p.current.IsTypeMark():
		return true
	case p.currentTokenIs(lexer.TokenIdentifier) && p.peekTokenIs(lexer.TokenIdentifier):
		// An unknown type name; reported by parseDeclaration.
		return true
	}
	return false
}

func (p *Parser) parseDeclaration() bool {
	global := false
	if p.currentTokenIs(lexer.TokenGlobal) {
		global = true
		p.nextToken()
	}

	switch {
	case p.currentTokenIs(lexer.TokenProcedure):
		return p.parseProcedureDeclaration(global)
	case p.current.IsTypeMark():
		return p.parseVariableDeclaration(global)
	default:
		p.unexpected(p.current)
		return false
	}
}

// parseVariableDeclaration parses "type_mark IDENTITY [bound]" and emits
// the variable's storage.
func (p *Parser) parseVariableDeclaration(global bool) bool {
	if global {
		p.table.EnterGlobalScope()
		defer p.table.ExitGlobalScope()
	}

	kind := kindOf(p.current.Type)
	if !p.expectPeek(lexer.TokenIdentifier) {
		return false
	}
	name := p.current

	sym := p.table.Stage(kind)
	sym.Global = global
	sym.Line = name.Line
	p.table.EnterScope(name.Literal)
	defer p.table.ExitScope()

	var start lexer.Token
	if p.peekTokenIs(lexer.TokenLBracket) {
		p.nextToken()
		start = p.peek
		bounds, ok := p.parseBound()
		if !ok {
			p.table.Discard()
			return false
		}
		sym.Bounds = bounds
	}

	decl, err := p.gen.DeclareVariable(p.table.IRName(), sym)
	if err != nil {
		p.table.Discard()
		if sym.Bounds != nil {
			// Bounds that give a negative length.
			start.Literal = sym.Bounds.Lower + ":" + sym.Bounds.Upper
			p.invalidArgument(start)
		} else {
			p.unexpected(name)
		}
		return false
	}

	key := p.table.ScopeKey()
	if _, ok := p.commit(name); !ok {
		return true
	}
	if global {
		p.gen.AddGlobal(decl)
	} else {
		p.gen.AddLocal(decl)
	}
	p.trace("variable declaration %s %s", kind, key)
	return true
}

// parseBound parses "[lo:hi]" or the one-sided "[hi]", which means
// "[0:hi]". The current token is the left bracket; on success it is the
// right bracket.
func (p *Parser) parseBound() (*resolver.Bounds, bool) {
	lower, ok := p.parseBoundLiteral()
	if !ok {
		return nil, false
	}
	if p.peekTokenIs(lexer.TokenRBracket) {
		p.nextToken()
		return &resolver.Bounds{Lower: "0", Upper: lower}, true
	}

	if !p.expectPeek(lexer.TokenColon) {
		return nil, false
	}
	upper, ok := p.parseBoundLiteral()
	if !ok {
		return nil, false
	}
	if !p.expectPeek(lexer.TokenRBracket) {
		return nil, false
	}
	return &resolver.Bounds{Lower: lower, Upper: upper}, true
}

// parseBoundLiteral reads "[MINUS] INTEGER" from the peek token on.
// Float bounds cannot size an array and are reported as invalid.
func (p *Parser) parseBoundLiteral() (string, bool) {
	sign := ""
	if p.peekTokenIs(lexer.TokenMinus) {
		p.nextToken()
		sign = "-"
	}

	switch p.peek.Type {
	case lexer.TokenInteger:
		p.nextToken()
		return sign + p.current.Literal, true
	case lexer.TokenFloat:
		p.nextToken()
		tok := p.current
		tok.Literal = sign + tok.Literal
		p.invalidArgument(tok)
		return "", false
	default:
		p.unexpected(p.peek)
		return "", false
	}
}

// parseProcedureDeclaration parses
// "PROCEDURE IDENTITY ( [parameter_list] ) [IS] body". The procedure is
// bound before its body so it can call itself. A duplicate name is
// reported and its body parsed but not emitted.
func (p *Parser) parseProcedureDeclaration(global bool) bool {
	if global {
		p.table.EnterGlobalScope()
		defer p.table.ExitGlobalScope()
	}

	if !p.expectPeek(lexer.TokenIdentifier) {
		return false
	}
	name := p.current

	sym := p.table.Stage(resolver.KindProcedure)
	sym.Global = global
	sym.Line = name.Line
	p.table.EnterScope(name.Literal)
	defer p.table.ExitScope()

	if !p.expectPeek(lexer.TokenLParen) {
		p.table.Discard()
		return false
	}
	if !p.peekTokenIs(lexer.TokenRParen) && !p.parseParameterList(sym) {
		p.table.Discard()
		return false
	}
	if !p.expectPeek(lexer.TokenRParen) {
		p.table.Discard()
		return false
	}

	p.table.MaterializeParameters()
	key := p.table.ScopeKey()
	_, bound := p.commit(name)
	if err := p.gen.OpenProcedure(p.table.IRName(), sym); err != nil {
		p.unexpected(name)
		return false
	}
	p.trace("procedure header %s (%d parameters, depth %d)", key, sym.ParamCount(), p.gen.Depth())

	if p.peekTokenIs(lexer.TokenIs) {
		p.nextToken()
	}
	p.nextToken()
	p.parseBody(lexer.TokenProcedure)
	temps := p.gen.Temp() - 1

	if bound {
		// Units are balanced by construction here.
		_ = p.gen.CloseProcedure()
	} else {
		_ = p.gen.DiscardProcedure()
	}
	p.trace("procedure %s (%d temporaries)", key, temps)
	return true
}

// parseParameterList parses "parameter {, parameter}" into sym. The
// current token is the left parenthesis; on success it is the last token
// of the last parameter.
func (p *Parser) parseParameterList(sym *resolver.Symbol) bool {
	for {
		p.nextToken()
		if !p.parseParameter(sym) {
			return false
		}
		if !p.peekTokenIs(lexer.TokenComma) {
			return true
		}
		p.nextToken()
	}
}

// parseParameter parses "type_mark IDENTITY [bound] (IN|OUT|INOUT)".
func (p *Parser) parseParameter(sym *resolver.Symbol) bool {
	if !p.current.IsTypeMark() {
		p.unexpected(p.current)
		return false
	}
	kind := kindOf(p.current.Type)

	if !p.expectPeek(lexer.TokenIdentifier) {
		return false
	}
	name := strings.ToLower(p.current.Literal)

	var bounds *resolver.Bounds
	if p.peekTokenIs(lexer.TokenLBracket) {
		p.nextToken()
		b, ok := p.parseBound()
		if !ok {
			return false
		}
		bounds = b
	}

	p.nextToken()
	mode, ok := modeOf(p.current.Type)
	if !ok {
		p.unexpected(p.current)
		return false
	}

	sym.AddParameter(name, kind, mode, bounds)
	return true
}

// commit binds the staged symbol under the current scope key. A
// duplicate key is reported against at.
func (p *Parser) commit(at lexer.Token) (*resolver.Symbol, bool) {
	key := p.table.ScopeKey()
	sym, err := p.table.Commit()
	if err != nil {
		p.report(diagnostic.SymbolError(p.pos(at), key))
		return nil, false
	}
	return sym, true
}

func kindOf(tt lexer.TokenType) resolver.SymbolKind {
	switch tt {
	case lexer.TokenIntegerType:
		return resolver.KindInteger
	case lexer.TokenFloatType:
		return resolver.KindFloat
	case lexer.TokenBoolType:
		return resolver.KindBool
	case lexer.TokenCharType:
		return resolver.KindChar
	case lexer.TokenStringType:
		return resolver.KindString
	default:
		return resolver.KindInvalid
	}
}

func modeOf(tt lexer.TokenType) (resolver.Mode, bool) {
	switch tt {
	case lexer.TokenIn:
		return resolver.ModeIn, true
	case lexer.TokenOut:
		return resolver.ModeOut, true
	case lexer.TokenInOut:
		return resolver.ModeInOut, true
	default:
		return resolver.ModeNone, false
	}
}
