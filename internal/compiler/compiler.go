// Package compiler runs the plc pipeline over source files: it reads each
// file, drives a fresh lexer, symbol table, code generator and parser over
// it, and writes the resulting IR next to the other outputs.
package compiler

import (
	"context"
	"fmt"
	"path"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/orizon-lang/plc/internal/cli"
	"github.com/orizon-lang/plc/internal/codegen"
	"github.com/orizon-lang/plc/internal/diagnostic"
	"github.com/orizon-lang/plc/internal/errors"
	"github.com/orizon-lang/plc/internal/lexer"
	"github.com/orizon-lang/plc/internal/parser"
	"github.com/orizon-lang/plc/internal/position"
	"github.com/orizon-lang/plc/internal/resolver"
	"github.com/orizon-lang/plc/internal/vfs"
)

// Options controls a Driver.
type Options struct {
	OutDir string
	Target codegen.Target
	Jobs   int
	// NoEmit skips writing .ll files.
	NoEmit bool
}

// Result captures the outcome of compiling one file.
type Result struct {
	Path        string
	Program     string
	Valid       bool
	Output      string
	IR          []string
	Diagnostics []*diagnostic.Diagnostic
	Symbols     []resolver.Entry
	Source      *position.SourceFile
	Err         error
	Cached      bool
	Took        time.Duration
}

// Failed reports whether the pipeline could not run to completion for a
// reason other than the program itself, such as an unreadable source or
// an unwritable output.
func (r *Result) Failed() bool {
	return r.Err != nil && !errors.Is(r.Err, errors.CategoryStructure)
}

// Stats summarizes a batch of results.
type Stats struct {
	Files   int
	Valid   int
	Invalid int
	Failed  int
}

// Summarize counts results by outcome.
func Summarize(results []*Result) Stats {
	s := Stats{Files: len(results)}
	for _, r := range results {
		switch {
		case r.Failed():
			s.Failed++
		case r.Valid:
			s.Valid++
		default:
			s.Invalid++
		}
	}
	return s
}

// Driver compiles files read from a vfs.FileSystem.
type Driver struct {
	fs    vfs.FileSystem
	opts  Options
	log   *cli.Logger
	cache *Cache
}

// NewDriver creates a driver. A nil logger is silent.
func NewDriver(fs vfs.FileSystem, opts Options, log *cli.Logger) *Driver {
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	if opts.Jobs <= 0 {
		opts.Jobs = 1
	}
	if opts.Target.Version == nil {
		opts.Target = codegen.DefaultTarget()
	}
	return &Driver{fs: fs, opts: opts, log: log}
}

// WithCache makes the driver skip files whose content and target match
// the previous compilation.
func (d *Driver) WithCache(c *Cache) *Driver {
	d.cache = c
	return d
}

// Options returns the effective options.
func (d *Driver) Options() Options { return d.opts }

// CompileFile runs the whole pipeline for path. It never returns nil; the
// outcome, including read failures, is described by the Result.
func (d *Driver) CompileFile(ctx context.Context, path string) *Result {
	start := time.Now()
	res := &Result{Path: path}
	defer func() { res.Took = time.Since(start) }()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	data, err := vfs.ReadFile(d.fs, path)
	if err != nil {
		d.log.Error("read %s: %v", path, err)
		res.Err = errors.ReadFailed(path, err)
		return res
	}

	if d.cache != nil {
		if prev, ok := d.cache.Lookup(path, data, d.opts.Target); ok {
			d.log.Debug("%s unchanged, reusing previous result", path)
			cached := *prev
			cached.Cached = true
			return &cached
		}
	}

	d.log.Info("compiling %s (%s)", path, d.opts.Target)
	d.compileSource(res, string(data))

	if res.Valid && !d.opts.NoEmit {
		out := d.outputPath(res.Program)
		if err := vfs.WriteFile(d.fs, out, []byte(codegen.String(res.IR))); err != nil {
			d.log.Error("write %s: %v", out, err)
			res.Err = errors.WriteFailed(out, err)
		} else {
			res.Output = out
			d.log.Info("wrote %s", out)
		}
	}

	if d.cache != nil && res.Err == nil {
		d.cache.Store(path, data, d.opts.Target, res)
	}
	return res
}

func (d *Driver) compileSource(res *Result, src string) {
	res.Source = position.NewSourceFile(res.Path, src)

	diags := diagnostic.NewCollector()
	table := resolver.New()
	var opts []parser.Option
	if d.log != nil && d.log.DebugMode {
		opts = append(opts, parser.WithTracer(d.log))
	}

	p := parser.New(lexer.NewWithFilename(src, res.Path), table, codegen.New(d.opts.Target), diags, opts...)
	prog, err := p.Parse()

	res.Diagnostics = diags.Diagnostics()
	res.Symbols = table.Entries()
	if err != nil {
		d.log.Debug("%s: %v", res.Path, err)
		res.Err = err
		return
	}
	res.Valid = true
	res.Program = prog.Name
	res.IR = prog.IR
}

// outputPath names the IR file for a program: the program name as
// written, with a .ll extension, inside the output directory.
func (d *Driver) outputPath(program string) string {
	return vfs.FromSlash(path.Join(vfs.ToSlash(d.opts.OutDir), program+".ll"))
}

// CompileAll compiles paths with up to Options.Jobs files in flight. The
// results are in argument order whatever order the files finish in.
func (d *Driver) CompileAll(ctx context.Context, paths []string) ([]*Result, error) {
	results := make([]*Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Jobs)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			results[i] = d.CompileFile(gctx, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("compilation interrupted: %w", err)
	}
	return results, nil
}
