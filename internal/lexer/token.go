package lexer

import (
	"fmt"
	"strings"

	"github.com/orizon-lang/plc/internal/position"
)

// TokenType represents the type of a token
type TokenType int

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// Token types
const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Literals
	TokenIdentifier
	TokenInteger
	TokenFloat
	TokenString
	TokenChar

	// Reserved words
	TokenProgram
	TokenIs
	TokenBegin
	TokenEnd
	TokenGlobal
	TokenProcedure
	TokenIn
	TokenOut
	TokenInOut
	TokenIntegerType
	TokenFloatType
	TokenBoolType
	TokenCharType
	TokenStringType
	TokenIf
	TokenThen
	TokenElse
	TokenFor
	TokenTrue
	TokenFalse
	TokenNot
	TokenReturn

	// Built-in I/O procedures
	TokenGetBool
	TokenGetInteger
	TokenGetFloat
	TokenGetString
	TokenGetChar
	TokenPutBool
	TokenPutInteger
	TokenPutFloat
	TokenPutString
	TokenPutChar

	// Operators
	TokenAnd
	TokenOr
	TokenPlus
	TokenMinus
	TokenMul
	TokenDiv
	TokenLt
	TokenLe
	TokenGt
	TokenGe
	TokenEq
	TokenNe
	TokenAssign

	// Punctuation
	TokenComma
	TokenSemicolon
	TokenColon
	TokenPeriod
	TokenLBracket
	TokenRBracket
	TokenLParen
	TokenRParen
)

// Token represents a lexical token. Literal holds the raw lexeme; reserved
// words are lower-cased, identifiers keep their source spelling.
type Token struct {
	Type    TokenType
	Literal string
	Line    int // 1-based line number
	Column  int // 1-based column number
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Line: %d, Column: %d}",
		tokenNames[t.Type], t.Literal, t.Line, t.Column)
}

// Position returns the token's source position within filename.
func (t Token) Position(filename string) position.Position {
	return position.Position{Filename: filename, Line: t.Line, Column: t.Column}
}

// IsTypeMark reports whether the token names one of the scalar types.
func (t Token) IsTypeMark() bool {
	switch t.Type {
	case TokenIntegerType, TokenFloatType, TokenBoolType, TokenCharType, TokenStringType:
		return true
	}
	return false
}

// IsBuiltin reports whether the token names a built-in I/O procedure.
func (t Token) IsBuiltin() bool {
	return t.Type >= TokenGetBool && t.Type <= TokenPutChar
}

// IsLiteral reports whether the token is a constant usable as a factor.
func (t Token) IsLiteral() bool {
	switch t.Type {
	case TokenInteger, TokenFloat, TokenString, TokenChar, TokenTrue, TokenFalse:
		return true
	}
	return false
}

// tokenNames provides string representations for token types
var tokenNames = map[TokenType]string{
	TokenEOF:   "EOF",
	TokenError: "ERROR",

	TokenIdentifier: "IDENTITY",
	TokenInteger:    "INTEGER",
	TokenFloat:      "FLOAT",
	TokenString:     "STRING",
	TokenChar:       "CHAR",

	TokenProgram:     "PROGRAM",
	TokenIs:          "IS",
	TokenBegin:       "BEGIN",
	TokenEnd:         "END",
	TokenGlobal:      "GLOBAL",
	TokenProcedure:   "PROCEDURE",
	TokenIn:          "IN",
	TokenOut:         "OUT",
	TokenInOut:       "INOUT",
	TokenIntegerType: "INTEGER_TYPE",
	TokenFloatType:   "FLOAT_TYPE",
	TokenBoolType:    "BOOL_TYPE",
	TokenCharType:    "CHAR_TYPE",
	TokenStringType:  "STRING_TYPE",
	TokenIf:          "IF",
	TokenThen:        "THEN",
	TokenElse:        "ELSE",
	TokenFor:         "FOR",
	TokenTrue:        "TRUE",
	TokenFalse:       "FALSE",
	TokenNot:         "NOT",
	TokenReturn:      "RETURN",

	TokenGetBool:    "GETBOOL",
	TokenGetInteger: "GETINTEGER",
	TokenGetFloat:   "GETFLOAT",
	TokenGetString:  "GETSTRING",
	TokenGetChar:    "GETCHAR",
	TokenPutBool:    "PUTBOOL",
	TokenPutInteger: "PUTINTEGER",
	TokenPutFloat:   "PUTFLOAT",
	TokenPutString:  "PUTSTRING",
	TokenPutChar:    "PUTCHAR",

	TokenAnd:    "AND",
	TokenOr:     "OR",
	TokenPlus:   "PLUS",
	TokenMinus:  "MINUS",
	TokenMul:    "MULTIPLY",
	TokenDiv:    "DIVIDE",
	TokenLt:     "LESS_THAN",
	TokenLe:     "LESS_THAN_EQ",
	TokenGt:     "GREATER_THAN",
	TokenGe:     "GREATER_THAN_EQ",
	TokenEq:     "EQUIVALENT",
	TokenNe:     "NOT_EQUIVALENT",
	TokenAssign: "ASSIGN",

	TokenComma:     "COMMA",
	TokenSemicolon: "SEMICOLON",
	TokenColon:     "COLON",
	TokenPeriod:    "PERIOD",
	TokenLBracket:  "LEFT_BRACKET",
	TokenRBracket:  "RIGHT_BRACKET",
	TokenLParen:    "LEFT_PARENTHESIS",
	TokenRParen:    "RIGHT_PARENTHESIS",
}

// keywords maps reserved words to their token types
var keywords = map[string]TokenType{
	"program":    TokenProgram,
	"is":         TokenIs,
	"begin":      TokenBegin,
	"end":        TokenEnd,
	"global":     TokenGlobal,
	"procedure":  TokenProcedure,
	"in":         TokenIn,
	"out":        TokenOut,
	"inout":      TokenInOut,
	"integer":    TokenIntegerType,
	"float":      TokenFloatType,
	"bool":       TokenBoolType,
	"char":       TokenCharType,
	"string":     TokenStringType,
	"if":         TokenIf,
	"then":       TokenThen,
	"else":       TokenElse,
	"for":        TokenFor,
	"true":       TokenTrue,
	"false":      TokenFalse,
	"not":        TokenNot,
	"return":     TokenReturn,
	"getbool":    TokenGetBool,
	"getinteger": TokenGetInteger,
	"getfloat":   TokenGetFloat,
	"getstring":  TokenGetString,
	"getchar":    TokenGetChar,
	"putbool":    TokenPutBool,
	"putinteger": TokenPutInteger,
	"putfloat":   TokenPutFloat,
	"putstring":  TokenPutString,
	"putchar":    TokenPutChar,
}

// LookupIdent returns the reserved-word token type for ident, or
// TokenIdentifier. The lookup is case-insensitive.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[strings.ToLower(ident)]; ok {
		return tok
	}
	return TokenIdentifier
}
