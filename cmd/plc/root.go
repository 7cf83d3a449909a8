package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/orizon-lang/plc/internal/cli"
	"github.com/orizon-lang/plc/internal/codegen"
	"github.com/orizon-lang/plc/internal/compiler"
	"github.com/orizon-lang/plc/internal/vfs"
)

// options collects the persistent flags. Values set on the command line
// win over the configuration file.
type options struct {
	configPath  string
	outDir      string
	llvmVersion string
	jobs        int
	verbose     bool
	debug       bool
	color       string
	excerpts    bool
}

// session is the resolved configuration for one invocation.
type session struct {
	config *cli.Config
	target codegen.Target
	log    *cli.Logger
	report compiler.ReportOptions
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "plc [flags] FILE...",
		Short: "plc compiles programs into LLVM IR",
		Long: `plc is a single-pass compiler front end. Each FILE is scanned, parsed
and translated in one pass; the validity of every file is printed followed
by a blank line, and valid programs are written to <program>.ll.

Commands:
  tokens   Print the token stream of each file
  symbols  Print the symbol table of each file
  watch    Recompile files whenever they change
  version  Print version information
`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runCompile(ctx, cmd.OutOrStdout(), s, args)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "JSON configuration file")
	flags.StringVarP(&opts.outDir, "out", "o", ".", "output directory for .ll files")
	flags.StringVar(&opts.llvmVersion, "llvm-version", codegen.DefaultLLVMVersion, "LLVM version the IR targets (>= 15 uses opaque pointers)")
	flags.IntVarP(&opts.jobs, "jobs", "j", 1, "number of files compiled in parallel")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging and parser traces")
	flags.StringVar(&opts.color, "color", cli.ColorAuto, "color diagnostics: auto, always or never")
	flags.BoolVar(&opts.excerpts, "excerpts", false, "show the source line under each diagnostic")

	root.AddCommand(newTokensCmd(), newSymbolsCmd(opts), newWatchCmd(opts), newVersionCmd(opts))
	return root
}

// resolve loads the configuration file and applies explicitly set flags.
func (o *options) resolve(cmd *cobra.Command) (*session, error) {
	config, err := cli.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		config.OutDir = o.outDir
	}
	if flags.Changed("llvm-version") {
		config.LLVMVersion = o.llvmVersion
	}
	if flags.Changed("jobs") {
		config.Jobs = o.jobs
	}
	if flags.Changed("verbose") {
		config.Verbose = o.verbose
	}
	if flags.Changed("debug") {
		config.Debug = o.debug
	}
	if flags.Changed("color") {
		config.Color = o.color
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	target, err := codegen.ParseTarget(config.LLVMVersion)
	if err != nil {
		return nil, err
	}

	log := cli.NewLogger(config.Verbose, config.Debug)
	log.Out = cmd.ErrOrStderr()
	log.Debug("configuration: out=%s jobs=%d target=%s", config.OutDir, config.Jobs, target)

	return &session{
		config: config,
		target: target,
		log:    log,
		report: compiler.ReportOptions{
			Color:    config.UseColor(fdOf(cmd.OutOrStdout())),
			Excerpts: o.excerpts,
		},
	}, nil
}

func (s *session) driver(emit bool) *compiler.Driver {
	return compiler.NewDriver(vfs.NewOS(), compiler.Options{
		OutDir: s.config.OutDir,
		Target: s.target,
		Jobs:   s.config.Jobs,
		NoEmit: !emit,
	}, s.log)
}

func runCompile(ctx context.Context, w io.Writer, s *session, paths []string) error {
	results, err := s.driver(true).CompileAll(ctx, paths)
	compiler.ReportAll(w, results, s.report)

	stats := compiler.Summarize(results)
	s.log.Info("%d file(s): %d valid, %d invalid, %d failed", stats.Files, stats.Valid, stats.Invalid, stats.Failed)
	return err
}

// fdOf returns the descriptor behind w, or an invalid one when w is not
// a file.
func fdOf(w io.Writer) uintptr {
	if f, ok := w.(*os.File); ok {
		return f.Fd()
	}
	return ^uintptr(0)
}
