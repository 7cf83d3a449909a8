// Package parser implements the plc recursive descent parser.
// Parsing, symbol resolution and IR emission happen in a single pass: every
// production drives the symbol table and code generator as it is
// recognized, and no syntax tree is kept.
package parser

import (
	"fmt"

	"github.com/orizon-lang/plc/internal/codegen"
	"github.com/orizon-lang/plc/internal/diagnostic"
	"github.com/orizon-lang/plc/internal/errors"
	"github.com/orizon-lang/plc/internal/lexer"
	"github.com/orizon-lang/plc/internal/position"
	"github.com/orizon-lang/plc/internal/resolver"
)

// Tracer receives debug traces of recognized productions. *cli.Logger
// satisfies it.
type Tracer interface {
	Debug(format string, args ...interface{})
}

// Program is the result of a structurally complete parse.
type Program struct {
	Name string
	IR   []string
}

// Parser represents the recursive descent parser
type Parser struct {
	lexer    *lexer.Lexer
	table    *resolver.Table
	gen      *codegen.Generator
	reporter diagnostic.Reporter
	tracer   Tracer

	current lexer.Token
	peek    lexer.Token

	filename string
	reported int
	nesting  int // if and for statements entered but not completed
}

// Option configures a Parser.
type Option func(*Parser)

// WithTracer sends production traces to t.
func WithTracer(t Tracer) Option {
	return func(p *Parser) { p.tracer = t }
}

// New creates a parser reading tokens from l. Diagnostics go to reporter,
// symbols to table and IR to gen.
func New(l *lexer.Lexer, table *resolver.Table, gen *codegen.Generator, reporter diagnostic.Reporter, opts ...Option) *Parser {
	if reporter == nil {
		reporter = diagnostic.Discard
	}
	p := &Parser{
		lexer:    l,
		table:    table,
		gen:      gen,
		reporter: reporter,
		filename: l.Filename(),
	}
	for _, opt := range opts {
		opt(p)
	}

	// Read the first two tokens
	p.nextToken()
	p.nextToken()

	return p
}

// fatalError unwinds the parser on an unrecoverable structural error.
type fatalError struct {
	err *errors.StandardError
}

// Parse recognizes a whole program. Recoverable problems are reported as
// diagnostics and do not make Parse fail; a malformed program structure
// returns a STRUCTURE error and no Program.
func (p *Parser) Parse() (prog *Program, err error) {
	defer p.recoverFatal(&err)

	name := p.parseProgram()

	lines, err := p.gen.Finalize()
	if err != nil {
		return nil, err
	}
	return &Program{Name: name, IR: lines}, nil
}

func (p *Parser) recoverFatal(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	fe, ok := r.(fatalError)
	if !ok {
		panic(r)
	}
	*errp = fe.err
}

// Reported returns the number of diagnostics reported so far.
func (p *Parser) Reported() int { return p.reported }

// nextToken advances the parser to the next token
func (p *Parser) nextToken() {
	p.current = p.peek
	p.peek = p.lexer.NextToken()
}

// currentTokenIs checks if the current token is of the given type
func (p *Parser) currentTokenIs(tokenType lexer.TokenType) bool {
	return p.current.Type == tokenType
}

// peekTokenIs checks if the peek token is of the given type
func (p *Parser) peekTokenIs(tokenType lexer.TokenType) bool {
	return p.peek.Type == tokenType
}

func (p *Parser) peekTokenIn(tokenTypes ...lexer.TokenType) bool {
	for _, tt := range tokenTypes {
		if p.peek.Type == tt {
			return true
		}
	}
	return false
}

// expectPeek advances if the peek token matches the expected type and
// reports the peek token otherwise.
func (p *Parser) expectPeek(tokenType lexer.TokenType) bool {
	if p.peekTokenIs(tokenType) {
		p.nextToken()
		return true
	}
	p.unexpected(p.peek)
	return false
}

// mustCurrent fails the whole parse unless the current token matches.
func (p *Parser) mustCurrent(tokenType lexer.TokenType) {
	if !p.currentTokenIs(tokenType) {
		p.fail(p.current)
	}
}

// mustPeek advances onto the peek token or fails the whole parse.
func (p *Parser) mustPeek(tokenType lexer.TokenType) {
	if !p.peekTokenIs(tokenType) {
		p.fail(p.peek)
	}
	p.nextToken()
}

// fail reports tok and abandons the parse.
func (p *Parser) fail(tok lexer.Token) {
	p.unexpected(tok)
	if tok.Type == lexer.TokenEOF {
		panic(fatalError{errors.UnexpectedEOF()})
	}
	panic(fatalError{errors.MalformedProgram(tok.Line, tok.Literal)})
}

func (p *Parser) pos(tok lexer.Token) position.Position {
	return tok.Position(p.filename)
}

func (p *Parser) report(d *diagnostic.Diagnostic) {
	p.reported++
	p.reporter.Report(d)
}

// unexpected reports tok as the point where recognition failed.
func (p *Parser) unexpected(tok lexer.Token) {
	switch tok.Type {
	case lexer.TokenError:
		p.report(diagnostic.ScanError(p.pos(tok), tok.Literal))
	case lexer.TokenEOF:
		p.report(diagnostic.ScanErrorUnknownLine())
	default:
		p.report(diagnostic.ParseError(p.pos(tok), tok.Literal))
	}
}

func (p *Parser) invalidArgument(tok lexer.Token) {
	p.report(diagnostic.InvalidArgument(p.pos(tok), tok.Literal))
}

// recover discards tokens up to and including the next semicolon that is
// not inside one of the open if or for statements counted by depth. If
// nothing was reported since mark the current token is reported first.
// Running out of input while skipping is fatal.
func (p *Parser) recover(mark, depth int) {
	if p.reported == mark {
		p.unexpected(p.current)
	}
	for depth > 0 || !p.currentTokenIs(lexer.TokenSemicolon) {
		switch {
		case p.currentTokenIs(lexer.TokenEOF):
			p.fail(p.current)
		case p.currentTokenIs(lexer.TokenEnd) && p.peekTokenIn(lexer.TokenIf, lexer.TokenFor):
			depth--
			p.nextToken()
		case p.currentTokenIs(lexer.TokenIf), p.currentTokenIs(lexer.TokenFor):
			depth++
		}
		p.nextToken()
	}
	p.nextToken()
}

func (p *Parser) trace(format string, args ...interface{}) {
	if p.tracer != nil {
		p.tracer.Debug("%s:%d: %s", p.filename, p.current.Line, fmt.Sprintf(format, args...))
	}
}
