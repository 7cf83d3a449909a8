// Symbols and scope-keyed storage for plc.
// Names live under dotted scope keys such as "prog.proc1.x" and resolve in
// two levels only: the innermost declaring scope, then the global scope.

package resolver

import (
	"strconv"
)

// SymbolKind represents the kind of symbol.
type SymbolKind int

const (
	KindInvalid SymbolKind = iota
	KindInteger
	KindFloat
	KindBool
	KindChar
	KindString
	KindProcedure
	KindProgram

	// Built-in I/O procedures.
	KindGetBool
	KindGetInteger
	KindGetFloat
	KindGetString
	KindGetChar
	KindPutBool
	KindPutInteger
	KindPutFloat
	KindPutString
	KindPutChar
)

var kindNames = map[SymbolKind]string{
	KindInvalid:    "INVALID",
	KindInteger:    "INTEGER",
	KindFloat:      "FLOAT",
	KindBool:       "BOOL",
	KindChar:       "CHAR",
	KindString:     "STRING",
	KindProcedure:  "PROCEDURE",
	KindProgram:    "PROGRAM",
	KindGetBool:    "GETBOOL",
	KindGetInteger: "GETINTEGER",
	KindGetFloat:   "GETFLOAT",
	KindGetString:  "GETSTRING",
	KindGetChar:    "GETCHAR",
	KindPutBool:    "PUTBOOL",
	KindPutInteger: "PUTINTEGER",
	KindPutFloat:   "PUTFLOAT",
	KindPutString:  "PUTSTRING",
	KindPutChar:    "PUTCHAR",
}

// String returns the string representation of SymbolKind.
func (sk SymbolKind) String() string {
	if name, ok := kindNames[sk]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsScalar reports whether the kind is one of the value types.
func (sk SymbolKind) IsScalar() bool {
	return sk >= KindInteger && sk <= KindString
}

// IsBuiltin reports whether the kind tags one of the built-in I/O procedures.
func (sk SymbolKind) IsBuiltin() bool {
	return sk >= KindGetBool && sk <= KindPutChar
}

// IsCallable reports whether a symbol of this kind can be called.
func (sk SymbolKind) IsCallable() bool {
	return sk == KindProcedure || sk.IsBuiltin()
}

// Mode is a parameter's direction.
type Mode int

const (
	ModeNone Mode = iota
	ModeIn
	ModeOut
	ModeInOut
)

func (m Mode) String() string {
	switch m {
	case ModeIn:
		return "IN"
	case ModeOut:
		return "OUT"
	case ModeInOut:
		return "INOUT"
	default:
		return ""
	}
}

// ByReference reports whether the callee may write through the parameter.
func (m Mode) ByReference() bool {
	return m == ModeOut || m == ModeInOut
}

// Bounds holds the literal text of an array's lower and upper bound.
type Bounds struct {
	Lower string
	Upper string
}

// Length returns upper - lower.
func (b *Bounds) Length() (int, error) {
	lo, err := strconv.Atoi(b.Lower)
	if err != nil {
		return 0, err
	}
	hi, err := strconv.Atoi(b.Upper)
	if err != nil {
		return 0, err
	}
	return hi - lo, nil
}

func (b *Bounds) String() string {
	return "[" + b.Lower + ":" + b.Upper + "]"
}

// Symbol describes one declared name. Bounds is nil for scalars. The
// Param slices are only populated for procedures and always have equal
// length.
type Symbol struct {
	Bounds      *Bounds
	ParamNames  []string
	ParamTypes  []SymbolKind
	ParamModes  []Mode
	ParamBounds []*Bounds
	Kind        SymbolKind
	Mode        Mode
	Line        int
	Global      bool
}

// IsArray reports whether the symbol carries bounds.
func (s *Symbol) IsArray() bool {
	return s.Bounds != nil
}

// ParamCount returns the number of declared parameters.
func (s *Symbol) ParamCount() int {
	return len(s.ParamNames)
}

// AddParameter appends one parameter to every parallel slice.
func (s *Symbol) AddParameter(name string, kind SymbolKind, mode Mode, bounds *Bounds) {
	s.ParamNames = append(s.ParamNames, name)
	s.ParamTypes = append(s.ParamTypes, kind)
	s.ParamModes = append(s.ParamModes, mode)
	s.ParamBounds = append(s.ParamBounds, bounds)
}

func (s *Symbol) clone() *Symbol {
	c := *s
	if s.Bounds != nil {
		b := *s.Bounds
		c.Bounds = &b
	}
	c.ParamNames = append([]string(nil), s.ParamNames...)
	c.ParamTypes = append([]SymbolKind(nil), s.ParamTypes...)
	c.ParamModes = append([]Mode(nil), s.ParamModes...)
	c.ParamBounds = append([]*Bounds(nil), s.ParamBounds...)
	return &c
}
