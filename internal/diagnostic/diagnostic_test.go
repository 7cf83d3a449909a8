package diagnostic

import (
	"bytes"
	"testing"

	"github.com/orizon-lang/plc/internal/position"
)

func TestMessages(t *testing.T) {
	pos := position.Position{Filename: "a.src", Line: 7, Column: 3}

	tests := []struct {
		name     string
		diag     *Diagnostic
		message  string
		category DiagnosticCategory
	}{
		{"scan", ScanError(pos, "!"), "Failed to scan value. Line location: 7", DiagnosticScan},
		{"scan no line", ScanErrorUnknownLine(), "Failed to scan value. Unable to determine line location.", DiagnosticScan},
		{"parse", ParseError(pos, "begin"), "Failed to parse token value 'begin'. Line location: 7.", DiagnosticSyntax},
		{"symbol", SymbolError(pos, "p.x"), "Failed to add symbol for given key 'p.x'.", DiagnosticSymbol},
		{"argument", InvalidArgument(pos, `"hello"`), `Failed to run procedure due to invalid input argument: '"hello"'.`, DiagnosticType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.diag.Message != tt.message {
				t.Errorf("message = %q, want %q", tt.diag.Message, tt.message)
			}
			if tt.diag.Category != tt.category {
				t.Errorf("category = %s, want %s", tt.diag.Category, tt.category)
			}
			if tt.diag.Level != DiagnosticError {
				t.Errorf("level = %s, want error", tt.diag.Level)
			}
		})
	}
}

func TestDiagnosticString(t *testing.T) {
	d := ParseError(position.Position{Filename: "dir/a.src", Line: 2, Column: 5}, "x")
	want := "a.src:2:5: error[E2001]: Failed to parse token value 'x'. Line location: 2."
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	if got := ScanErrorUnknownLine().String(); got != "error[E1002]: Failed to scan value. Unable to determine line location." {
		t.Errorf("String() = %q", got)
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	if c.HasErrors() {
		t.Fatal("empty collector reports errors")
	}

	c.Report(ScanErrorUnknownLine())
	c.Report(SymbolError(position.Position{Line: 1}, "p.x"))
	c.Report(SymbolError(position.Position{Line: 2}, "p.y"))

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	if n := c.Count(DiagnosticSymbol); n != 2 {
		t.Errorf("Count(symbol) = %d, want 2", n)
	}
	diags := c.Diagnostics()
	if diags[0].Category != DiagnosticScan || diags[2].Lexeme != "p.y" {
		t.Error("diagnostics not kept in report order")
	}
	if !c.HasErrors() {
		t.Error("expected errors")
	}
}

func TestTextSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewTextSink(&buf)
	sink.Source = position.NewSourceFile("a.src", "program p is\nx := !;\n")

	Replay(sink, []*Diagnostic{
		ScanError(position.Position{Line: 2, Column: 6}, "!"),
		ScanErrorUnknownLine(),
	})

	want := "Failed to scan value. Line location: 2\n" +
		"   2 | x := !;\n" +
		"     |      ^\n" +
		"Failed to scan value. Unable to determine line location.\n"
	if buf.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestTextSinkColor(t *testing.T) {
	var buf bytes.Buffer
	sink := &TextSink{W: &buf, Color: true}
	sink.Report(ScanErrorUnknownLine())

	want := colorRed + "Failed to scan value. Unable to determine line location." + colorReset + "\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
