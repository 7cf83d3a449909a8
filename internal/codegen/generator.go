// Package codegen assembles textual LLVM IR while the parser recognizes a
// program. Output is buffered per unit (the program entry or a procedure)
// and serialized once by Finalize.
package codegen

import (
	"fmt"
	"strings"

	"github.com/orizon-lang/plc/internal/errors"
	"github.com/orizon-lang/plc/internal/resolver"
)

const programHeader = "define i32 @main() {"

// unit is the build context of one program or procedure body.
type unit struct {
	header string
	body   []string
	temp   int
}

func newUnit(header string) unit {
	return unit{header: header, temp: 1}
}

// Generator buffers IR fragments for one compilation.
type Generator struct {
	target   Target
	globals  []string
	finished []unit
	parked   []unit
	cur      unit
}

// New creates a generator emitting IR for target.
func New(target Target) *Generator {
	return &Generator{target: target, cur: newUnit("")}
}

// Target returns the IR dialect being emitted.
func (g *Generator) Target() Target { return g.target }

// OpenProgram starts the program entry unit.
func (g *Generator) OpenProgram(name string) {
	g.cur = newUnit(programHeader)
}

// Depth returns the number of enclosing units parked while a nested
// procedure is being built.
func (g *Generator) Depth() int { return len(g.parked) }

// Temp returns the next temporary number of the current unit.
func (g *Generator) Temp() int { return g.cur.temp }

// NextTemp allocates a temporary in the current unit and returns its name.
func (g *Generator) NextTemp() string {
	name := fmt.Sprintf("%%%d", g.cur.temp)
	g.cur.temp++
	return name
}

// DeclareVariable returns the declaration line for sym named irName:
// "@name = common global <type> <init>, align N" for globals and
// "%name = alloca <type>, align N" otherwise.
func (g *Generator) DeclareVariable(irName string, sym *resolver.Symbol) (string, error) {
	typ, align, err := g.target.storage(sym)
	if err != nil {
		return "", err
	}
	if sym.Global {
		init := zeroValue(sym.Kind)
		if sym.Bounds != nil {
			init = "zeroinitializer"
		}
		return fmt.Sprintf("@%s = common global %s %s, align %d", irName, typ, init, align), nil
	}
	return fmt.Sprintf("%%%s = alloca %s, align %d", irName, typ, align), nil
}

// AddGlobal queues a global declaration line.
func (g *Generator) AddGlobal(decl string) {
	g.globals = append(g.globals, decl)
}

// AddLocal appends a local declaration line to the current unit.
func (g *Generator) AddLocal(decl string) {
	g.cur.body = append(g.cur.body, decl)
}

// OpenProcedure parks the current unit and starts a new one for the
// procedure sym named irName. Each parameter gets a stack slot and an
// initial store of the incoming value.
func (g *Generator) OpenProcedure(irName string, sym *resolver.Symbol) error {
	type param struct {
		name, typ string
		align     int
	}
	params := make([]param, 0, sym.ParamCount())
	formals := make([]string, 0, sym.ParamCount())
	for i, name := range sym.ParamNames {
		typ, align, err := g.target.formal(sym.ParamTypes[i], sym.ParamModes[i], sym.ParamBounds[i])
		if err != nil {
			return err
		}
		name = strings.ToLower(name)
		params = append(params, param{name, typ, align})
		formals = append(formals, fmt.Sprintf("%s %%%s", typ, name))
	}

	g.parked = append(g.parked, g.cur)
	g.cur = newUnit(fmt.Sprintf("define void @%s(%s) {", irName, strings.Join(formals, ", ")))
	for _, prm := range params {
		slot := g.NextTemp()
		g.cur.body = append(g.cur.body,
			fmt.Sprintf("%s = alloca %s, align %d", slot, prm.typ, prm.align),
			fmt.Sprintf("store %s %%%s, %s %s", prm.typ, prm.name, g.target.pointer(prm.typ), slot))
	}
	return nil
}

// CloseProcedure finishes the current procedure unit and resumes the
// unit that was parked when it was opened.
func (g *Generator) CloseProcedure() error {
	if len(g.parked) == 0 {
		return errors.UnbalancedUnits()
	}
	g.cur.body = append(g.cur.body, "ret void", "}")
	g.finished = append(g.finished, g.cur)
	g.resume()
	return nil
}

// DiscardProcedure drops the current procedure unit without emitting it
// and resumes the parked unit.
func (g *Generator) DiscardProcedure() error {
	if len(g.parked) == 0 {
		return errors.UnbalancedUnits()
	}
	g.resume()
	return nil
}

func (g *Generator) resume() {
	last := len(g.parked) - 1
	g.cur = g.parked[last]
	g.parked = g.parked[:last]
}

// Finalize returns the IR in output order: globals, a blank line, every
// finished procedure in completion order, then the program entry. Each
// unit is followed by a blank line; the program entry ends with its
// return and closing brace.
func (g *Generator) Finalize() ([]string, error) {
	if len(g.parked) != 0 {
		return nil, errors.NewStandardError(errors.CategoryStructure, "OPEN_UNITS",
			fmt.Sprintf("%d procedure(s) still open", len(g.parked)), nil)
	}

	lines := make([]string, 0, len(g.globals)+len(g.cur.body)+8)
	lines = append(lines, g.globals...)
	lines = append(lines, "")
	for _, u := range g.finished {
		lines = append(lines, u.header)
		lines = append(lines, u.body...)
		lines = append(lines, "")
	}
	lines = append(lines, g.cur.header)
	lines = append(lines, g.cur.body...)
	lines = append(lines, "", "ret i32 0", "}")
	return lines, nil
}

// String renders lines as the contents of a .ll file.
func String(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}
