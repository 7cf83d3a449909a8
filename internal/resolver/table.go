package resolver

import (
	"sort"
	"strings"

	"github.com/orizon-lang/plc/internal/errors"
)

type builtin struct {
	name string
	kind SymbolKind
	mode Mode
	arg  SymbolKind
}

var builtins = []builtin{
	{"getbool", KindGetBool, ModeOut, KindBool},
	{"getinteger", KindGetInteger, ModeOut, KindInteger},
	{"getfloat", KindGetFloat, ModeOut, KindFloat},
	{"getstring", KindGetString, ModeOut, KindString},
	{"getchar", KindGetChar, ModeOut, KindChar},
	{"putbool", KindPutBool, ModeIn, KindBool},
	{"putinteger", KindPutInteger, ModeIn, KindInteger},
	{"putfloat", KindPutFloat, ModeIn, KindFloat},
	{"putstring", KindPutString, ModeIn, KindString},
	{"putchar", KindPutChar, ModeIn, KindChar},
}

// Entry pairs a scope key with its symbol.
type Entry struct {
	Symbol *Symbol
	Key    string
}

// Table maps scope keys to symbols. It also owns the current scope key,
// the global key, the stack used while a global declaration is parsed
// from inside a procedure, and the staging slot for the symbol under
// construction.
type Table struct {
	symbols   map[string]*Symbol
	staging   *Symbol
	scopeKey  string
	globalKey string
	saved     []string
}

// New creates an empty symbol table.
func New() *Table {
	return &Table{symbols: make(map[string]*Symbol)}
}

// ScopeKey returns the current scope key.
func (t *Table) ScopeKey() string { return t.scopeKey }

// GlobalKey returns the global scope key, or "" before the first scope.
func (t *Table) GlobalKey() string { return t.globalKey }

// IRName returns the current scope key in a form usable as an IR
// identifier.
func (t *Table) IRName() string {
	return strings.ReplaceAll(t.scopeKey, ".", "_")
}

// EnterScope appends name to the current scope key. The first scope ever
// entered becomes the global key and receives the built-in procedures.
func (t *Table) EnterScope(name string) {
	name = strings.ToLower(name)
	if t.globalKey == "" {
		t.globalKey = name
		t.scopeKey = name
		t.seedBuiltins()
		return
	}
	if t.scopeKey == "" {
		t.scopeKey = name
		return
	}
	t.scopeKey += "." + name
}

// ExitScope drops the last segment of the current scope key.
func (t *Table) ExitScope() {
	if i := strings.LastIndexByte(t.scopeKey, '.'); i >= 0 {
		t.scopeKey = t.scopeKey[:i]
		return
	}
	t.scopeKey = ""
}

// EnterGlobalScope saves the current scope key and switches to the global
// key.
func (t *Table) EnterGlobalScope() {
	t.saved = append(t.saved, t.scopeKey)
	t.scopeKey = t.globalKey
}

// ExitGlobalScope restores the scope key saved by EnterGlobalScope.
func (t *Table) ExitGlobalScope() {
	if len(t.saved) == 0 {
		return
	}
	t.scopeKey = t.saved[len(t.saved)-1]
	t.saved = t.saved[:len(t.saved)-1]
}

// Depth returns how many global-scope switches are active.
func (t *Table) Depth() int { return len(t.saved) }

// Stage starts a new symbol under construction and returns it for
// mutation. Any previously staged symbol is dropped.
func (t *Table) Stage(kind SymbolKind) *Symbol {
	t.staging = &Symbol{Kind: kind}
	return t.staging
}

// Staged returns the symbol under construction, or nil.
func (t *Table) Staged() *Symbol { return t.staging }

// Discard drops the symbol under construction.
func (t *Table) Discard() { t.staging = nil }

// Commit stores a copy of the staged symbol under the current scope key
// and clears the staging slot. A key that is already bound keeps its
// previous symbol and a SYMBOL error is returned.
func (t *Table) Commit() (*Symbol, error) {
	staged := t.staging
	t.staging = nil
	if staged == nil {
		return nil, errors.NewStandardError(errors.CategorySymbol, "NOTHING_STAGED",
			"no symbol under construction", nil)
	}

	key := t.scopeKey
	if _, exists := t.symbols[key]; exists {
		return nil, errors.DuplicateSymbol(key)
	}
	sym := staged.clone()
	t.symbols[key] = sym
	return sym, nil
}

// MaterializeParameters binds one symbol per parameter of the staged
// procedure under "<scope key>.<param>", skipping keys already bound.
func (t *Table) MaterializeParameters() {
	staged := t.staging
	if staged == nil {
		return
	}
	for i, name := range staged.ParamNames {
		key := t.scopeKey + "." + strings.ToLower(name)
		if _, exists := t.symbols[key]; exists {
			continue
		}
		param := &Symbol{
			Kind: staged.ParamTypes[i],
			Mode: staged.ParamModes[i],
			Line: staged.Line,
		}
		if b := staged.ParamBounds[i]; b != nil {
			bc := *b
			param.Bounds = &bc
		}
		t.symbols[key] = param
	}
}

// Resolve looks key up exactly, ignoring case.
func (t *Table) Resolve(key string) (*Symbol, bool) {
	sym, ok := t.symbols[strings.ToLower(key)]
	return sym, ok
}

// Lookup resolves name in the current scope, then in the global scope.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	name = strings.ToLower(name)
	if t.scopeKey != "" {
		if sym, ok := t.symbols[t.scopeKey+"."+name]; ok {
			return sym, true
		}
	}
	if t.globalKey == "" {
		return nil, false
	}
	sym, ok := t.symbols[t.globalKey+"."+name]
	return sym, ok
}

// Len returns the number of bound keys.
func (t *Table) Len() int { return len(t.symbols) }

// Entries returns every binding sorted by scope key.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.symbols))
	for key, sym := range t.symbols {
		entries = append(entries, Entry{Key: key, Symbol: sym})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries
}

func (t *Table) seedBuiltins() {
	for _, b := range builtins {
		sym := &Symbol{Kind: b.kind, Global: true}
		sym.AddParameter("val", b.arg, b.mode, nil)
		t.symbols[t.globalKey+"."+b.name] = sym
	}
}
