package codegen

import (
	"fmt"

	"github.com/orizon-lang/plc/internal/errors"
	"github.com/orizon-lang/plc/internal/resolver"
)

// valueType returns the IR type holding one value of kind.
func (t Target) valueType(kind resolver.SymbolKind) (string, bool) {
	switch kind {
	case resolver.KindInteger, resolver.KindBool:
		return "i32", true
	case resolver.KindFloat:
		return "float", true
	case resolver.KindChar:
		return "i8", true
	case resolver.KindString:
		return t.pointer("i8"), true
	default:
		return "", false
	}
}

func scalarAlign(kind resolver.SymbolKind) int {
	switch kind {
	case resolver.KindChar:
		return 1
	case resolver.KindString:
		return 8
	default:
		return 4
	}
}

func zeroValue(kind resolver.SymbolKind) string {
	switch kind {
	case resolver.KindFloat:
		return "0.000000e+00"
	case resolver.KindString:
		return "null"
	default:
		return "0"
	}
}

// storage returns the IR type and alignment of a variable's storage.
// Arrays become "[N x T]" with N = upper - lower.
func (t Target) storage(sym *resolver.Symbol) (typ string, align int, err error) {
	elem, ok := t.valueType(sym.Kind)
	if !ok {
		return "", 0, errors.NewStandardError(errors.CategoryType, "NO_IR_TYPE",
			fmt.Sprintf("no IR type for %s", sym.Kind), nil)
	}
	if sym.Bounds == nil {
		return elem, scalarAlign(sym.Kind), nil
	}

	n, lerr := sym.Bounds.Length()
	if lerr != nil || n < 0 {
		return "", 0, errors.InvalidBounds(sym.Bounds.Lower, sym.Bounds.Upper)
	}
	align = 16
	if sym.Kind == resolver.KindChar {
		align = 1
	}
	return fmt.Sprintf("[%d x %s]", n, elem), align, nil
}

// formal returns the IR type of a procedure parameter. Parameters that the
// callee may write, and arrays, are passed by pointer.
func (t Target) formal(kind resolver.SymbolKind, mode resolver.Mode, bounds *resolver.Bounds) (typ string, align int, err error) {
	elem, ok := t.valueType(kind)
	if !ok {
		return "", 0, errors.NewStandardError(errors.CategoryType, "NO_IR_TYPE",
			fmt.Sprintf("no IR type for parameter of kind %s", kind), nil)
	}
	if mode.ByReference() || bounds != nil {
		return t.pointer(elem), 8, nil
	}
	return elem, scalarAlign(kind), nil
}
