// Diagnostic events for plc.
// The compiler core reports scan, parse, symbol and argument problems
// through a Reporter; nothing in the core inspects what the Reporter does.

package diagnostic

import (
	"fmt"

	"github.com/orizon-lang/plc/internal/position"
)

// DiagnosticLevel represents the severity level of a diagnostic message.
type DiagnosticLevel int

const (
	DiagnosticError DiagnosticLevel = iota
	DiagnosticWarning
)

func (dl DiagnosticLevel) String() string {
	switch dl {
	case DiagnosticError:
		return "error"
	case DiagnosticWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// DiagnosticCategory represents the category of diagnostic.
type DiagnosticCategory int

const (
	DiagnosticScan DiagnosticCategory = iota
	DiagnosticSyntax
	DiagnosticSymbol
	DiagnosticType
)

func (dc DiagnosticCategory) String() string {
	switch dc {
	case DiagnosticScan:
		return "scan"
	case DiagnosticSyntax:
		return "syntax"
	case DiagnosticSymbol:
		return "symbol"
	case DiagnosticType:
		return "type"
	default:
		return "unknown"
	}
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Code     string
	Message  string
	Lexeme   string
	Pos      position.Position
	Level    DiagnosticLevel
	Category DiagnosticCategory
}

func (d *Diagnostic) String() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s[%s]: %s", d.Pos, d.Level, d.Code, d.Message)
	}
	return fmt.Sprintf("%s[%s]: %s", d.Level, d.Code, d.Message)
}

// DiagnosticBuilder helps construct diagnostic messages with fluent API.
type DiagnosticBuilder struct {
	diagnostic *Diagnostic
}

// NewDiagnostic creates a new diagnostic builder.
func NewDiagnostic() *DiagnosticBuilder {
	return &DiagnosticBuilder{diagnostic: &Diagnostic{}}
}

func (db *DiagnosticBuilder) Error() *DiagnosticBuilder {
	db.diagnostic.Level = DiagnosticError

	return db
}

func (db *DiagnosticBuilder) Scan() *DiagnosticBuilder {
	db.diagnostic.Category = DiagnosticScan

	return db
}

func (db *DiagnosticBuilder) Syntax() *DiagnosticBuilder {
	db.diagnostic.Category = DiagnosticSyntax

	return db
}

func (db *DiagnosticBuilder) Symbol() *DiagnosticBuilder {
	db.diagnostic.Category = DiagnosticSymbol

	return db
}

func (db *DiagnosticBuilder) Type() *DiagnosticBuilder {
	db.diagnostic.Category = DiagnosticType

	return db
}

func (db *DiagnosticBuilder) Code(code string) *DiagnosticBuilder {
	db.diagnostic.Code = code

	return db
}

func (db *DiagnosticBuilder) Message(message string) *DiagnosticBuilder {
	db.diagnostic.Message = message

	return db
}

func (db *DiagnosticBuilder) Lexeme(lexeme string) *DiagnosticBuilder {
	db.diagnostic.Lexeme = lexeme

	return db
}

func (db *DiagnosticBuilder) At(pos position.Position) *DiagnosticBuilder {
	db.diagnostic.Pos = pos

	return db
}

func (db *DiagnosticBuilder) Build() *Diagnostic {
	return db.diagnostic
}

// Diagnostic codes.
const (
	CodeScan            = "E1001"
	CodeScanNoLine      = "E1002"
	CodeParse           = "E2001"
	CodeDuplicateSymbol = "E3001"
	CodeInvalidArgument = "E4001"
)

// ScanError reports a token the lexer could not classify.
func ScanError(pos position.Position, lexeme string) *Diagnostic {
	return NewDiagnostic().
		Error().
		Scan().
		Code(CodeScan).
		Message(fmt.Sprintf("Failed to scan value. Line location: %d", pos.Line)).
		Lexeme(lexeme).
		At(pos).
		Build()
}

// ScanErrorUnknownLine reports a scan failure whose line cannot be
// recovered, such as running out of input.
func ScanErrorUnknownLine() *Diagnostic {
	return NewDiagnostic().
		Error().
		Scan().
		Code(CodeScanNoLine).
		Message("Failed to scan value. Unable to determine line location.").
		Build()
}

// ParseError reports an unexpected token.
func ParseError(pos position.Position, lexeme string) *Diagnostic {
	return NewDiagnostic().
		Error().
		Syntax().
		Code(CodeParse).
		Message(fmt.Sprintf("Failed to parse token value '%s'. Line location: %d.", lexeme, pos.Line)).
		Lexeme(lexeme).
		At(pos).
		Build()
}

// SymbolError reports a duplicate scope key.
func SymbolError(pos position.Position, key string) *Diagnostic {
	return NewDiagnostic().
		Error().
		Symbol().
		Code(CodeDuplicateSymbol).
		Message(fmt.Sprintf("Failed to add symbol for given key '%s'.", key)).
		Lexeme(key).
		At(pos).
		Build()
}

// InvalidArgument reports an argument or operand whose kind does not fit
// the surrounding context.
func InvalidArgument(pos position.Position, text string) *Diagnostic {
	return NewDiagnostic().
		Error().
		Type().
		Code(CodeInvalidArgument).
		Message(fmt.Sprintf("Failed to run procedure due to invalid input argument: '%s'.", text)).
		Lexeme(text).
		At(pos).
		Build()
}
