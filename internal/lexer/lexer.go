// Package lexer implements the lexical analyzer for plc source files.
// Tokens are produced lazily, one per NextToken call.
package lexer

import "strings"

// Lexer represents the lexical analyzer
type Lexer struct {
	input        string
	filename     string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // current line number
	column       int  // current column number
}

// New creates a new lexer instance
func New(input string) *Lexer {
	return NewWithFilename(input, "")
}

// NewWithFilename creates a new lexer instance with filename for error reporting
func NewWithFilename(input, filename string) *Lexer {
	l := &Lexer{
		input:    input,
		filename: filename,
		line:     1,
	}
	l.readChar()
	return l
}

// Filename returns the name of the source being scanned.
func (l *Lexer) Filename() string { return l.filename }

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// NextToken returns the next token. Once the input is exhausted every call
// returns a TokenEOF. Malformed input that can still be delimited comes back
// as a TokenError carrying the scanned text.
func (l *Lexer) NextToken() Token {
	l.skipIgnored()

	tok := Token{Line: l.line, Column: l.column}
	if l.atEOF() {
		tok.Type = TokenEOF
		return tok
	}

	switch {
	case isLetter(l.ch):
		literal := l.readIdentifier()
		tok.Type = LookupIdent(literal)
		if tok.Type != TokenIdentifier {
			literal = strings.ToLower(literal)
		}
		tok.Literal = literal
		return tok
	case isDigit(l.ch):
		tok.Type, tok.Literal = l.readNumber()
		return tok
	case l.ch == '\'':
		tok.Type, tok.Literal = l.readQuoted('\'', isCharContent, TokenChar)
		return tok
	case l.ch == '"':
		tok.Type, tok.Literal = l.readQuoted('"', isStringContent, TokenString)
		return tok
	}

	switch l.ch {
	case ':':
		tok.Type, tok.Literal = l.pair('=', TokenAssign, TokenColon)
	case '!':
		tok.Type, tok.Literal = l.pair('=', TokenNe, TokenError)
	case '=':
		tok.Type, tok.Literal = l.pair('=', TokenEq, TokenError)
	case '<':
		tok.Type, tok.Literal = l.pair('=', TokenLe, TokenLt)
	case '>':
		tok.Type, tok.Literal = l.pair('=', TokenGe, TokenGt)
	case '*':
		// A closing comment marker outside a comment.
		tok.Type, tok.Literal = l.pair('/', TokenError, TokenMul)
	default:
		tok.Type = singleChar(l.ch)
		tok.Literal = string(l.ch)
		l.readChar()
	}

	return tok
}

// Tokenize scans the remaining input and returns every token up to and
// including the terminating TokenEOF.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

// pair reads a one or two character operator. If the current char is
// followed by second the pair is consumed and matched is returned, otherwise
// only the current char is consumed and single is returned.
func (l *Lexer) pair(second byte, matched, single TokenType) (TokenType, string) {
	first := l.ch
	if l.peekChar() == second {
		l.readChar()
		l.readChar()
		return matched, string([]byte{first, second})
	}
	l.readChar()
	return single, string(first)
}

func singleChar(ch byte) TokenType {
	switch ch {
	case '+':
		return TokenPlus
	case '-':
		return TokenMinus
	case '/':
		return TokenDiv
	case ',':
		return TokenComma
	case '&':
		return TokenAnd
	case '|':
		return TokenOr
	case ';':
		return TokenSemicolon
	case '[':
		return TokenLBracket
	case ']':
		return TokenRBracket
	case '(':
		return TokenLParen
	case ')':
		return TokenRParen
	case '.':
		return TokenPeriod
	default:
		return TokenError
	}
}

// skipIgnored skips whitespace and comments.
func (l *Lexer) skipIgnored() {
	for !l.atEOF() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			l.skipLineComment()
		case l.ch == '/' && l.peekChar() == '*':
			l.skipBlockComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipLineComment() {
	for !l.atEOF() && l.ch != '\n' {
		l.readChar()
	}
}

// skipBlockComment consumes a block comment. Block comments nest; an
// unterminated comment runs to the end of the input.
func (l *Lexer) skipBlockComment() {
	l.readChar() // '/'
	l.readChar() // '*'
	depth := 1
	for depth > 0 && !l.atEOF() {
		switch {
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			depth++
		case l.ch == '*' && l.peekChar() == '/':
			l.readChar()
			l.readChar()
			depth--
		default:
			l.readChar()
		}
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads a run of digits and decimal points. More than one
// decimal point makes the whole run an error token.
func (l *Lexer) readNumber() (TokenType, string) {
	position := l.position
	periods := 0
	for isDigit(l.ch) || l.ch == '.' {
		if l.ch == '.' {
			periods++
		}
		l.readChar()
	}

	literal := l.input[position:l.position]
	switch periods {
	case 0:
		return TokenInteger, literal
	case 1:
		return TokenFloat, literal
	default:
		return TokenError, literal
	}
}

// readQuoted reads a delimited literal including both delimiters. A
// character outside the content class turns the literal into an error but
// scanning continues to the closing delimiter so the parser can resume after
// it. Reaching the end of the line first also yields an error.
func (l *Lexer) readQuoted(delim byte, allowed func(byte) bool, typ TokenType) (TokenType, string) {
	position := l.position
	valid := true
	l.readChar()
	for {
		if l.atEOF() || l.ch == '\n' {
			valid = false
			break
		}
		if l.ch == delim {
			l.readChar()
			break
		}
		if !allowed(l.ch) {
			valid = false
		}
		l.readChar()
	}

	literal := l.input[position:l.position]
	if !valid {
		return TokenError, literal
	}
	return typ, literal
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isLiteralContent(ch byte) bool {
	if isLetter(ch) || isDigit(ch) {
		return true
	}
	switch ch {
	case '_', ' ', ';', ':', '.', ',':
		return true
	}
	return false
}

func isStringContent(ch byte) bool { return isLiteralContent(ch) || ch == '\'' }

func isCharContent(ch byte) bool { return isLiteralContent(ch) || ch == '"' }
