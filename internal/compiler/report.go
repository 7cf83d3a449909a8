package compiler

import (
	"fmt"
	"io"
	"strings"

	"github.com/orizon-lang/plc/internal/diagnostic"
	"github.com/orizon-lang/plc/internal/lexer"
	"github.com/orizon-lang/plc/internal/resolver"
)

// FailureLine is printed instead of the validity result when a file could
// not be compiled at all.
const FailureLine = "Failed to read file path."

// ReportOptions controls Report.
type ReportOptions struct {
	Color    bool
	Excerpts bool
}

// Report writes the per-file driver output: every diagnostic in order,
// then "true" or "false" and a blank line, or FailureLine.
func Report(w io.Writer, r *Result, opts ReportOptions) {
	sink := &diagnostic.TextSink{W: w, Color: opts.Color}
	if opts.Excerpts {
		sink.Source = r.Source
	}
	diagnostic.Replay(sink, r.Diagnostics)

	if r.Failed() {
		fmt.Fprintln(w, FailureLine)
		return
	}
	fmt.Fprintln(w, r.Valid)
	fmt.Fprintln(w)
}

// ReportAll writes Report output for every result in order.
func ReportAll(w io.Writer, results []*Result, opts ReportOptions) {
	for _, r := range results {
		Report(w, r, opts)
	}
}

// WriteTokens writes one line per token of src: "line:col KIND text".
func WriteTokens(w io.Writer, filename, src string) {
	for _, tok := range lexer.NewWithFilename(src, filename).Tokenize() {
		if tok.Type == lexer.TokenEOF {
			fmt.Fprintf(w, "%d:%d %s\n", tok.Line, tok.Column, tok.Type)
			continue
		}
		fmt.Fprintf(w, "%d:%d %s %q\n", tok.Line, tok.Column, tok.Type, tok.Literal)
	}
}

// WriteSymbols writes the declared symbols of a compilation sorted by
// scope key. Built-in procedures are left out.
func WriteSymbols(w io.Writer, entries []resolver.Entry) {
	for _, e := range entries {
		sym := e.Symbol
		if sym.Kind.IsBuiltin() {
			continue
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s %s", e.Key, sym.Kind)
		if sym.Bounds != nil {
			b.WriteString(sym.Bounds.String())
		}
		if sym.Mode != resolver.ModeNone {
			fmt.Fprintf(&b, " %s", sym.Mode)
		}
		if sym.Kind == resolver.KindProcedure {
			params := make([]string, sym.ParamCount())
			for i, name := range sym.ParamNames {
				params[i] = fmt.Sprintf("%s %s", sym.ParamTypes[i], name)
				if sym.ParamBounds[i] != nil {
					params[i] += sym.ParamBounds[i].String()
				}
				params[i] += " " + sym.ParamModes[i].String()
			}
			fmt.Fprintf(&b, "(%s)", strings.Join(params, ", "))
		}
		if sym.Global {
			b.WriteString(" global")
		}
		if sym.Line > 0 {
			fmt.Fprintf(&b, " line %d", sym.Line)
		}
		fmt.Fprintln(w, b.String())
	}
}
