package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/orizon-lang/plc/internal/cli"
	"github.com/orizon-lang/plc/internal/compiler"
	"github.com/orizon-lang/plc/internal/vfs"
)

func newWatchCmd(opts *options) *cobra.Command {
	var (
		poll     bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch FILE...",
		Short: "Recompile files whenever they change",
		Long: `Compile every FILE once, then compile a file again each time its
content changes. OS file notifications are used when available, with a
polling fallback. Stop with Ctrl-C.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd.OutOrStdout(), s, args, poll, interval)
		},
	}

	cmd.Flags().BoolVar(&poll, "poll", false, "poll for changes instead of using OS notifications")
	cmd.Flags().DurationVar(&interval, "interval", 500*time.Millisecond, "polling interval")
	return cmd
}

func runWatch(ctx context.Context, w io.Writer, s *session, paths []string, poll bool, interval time.Duration) error {
	fsys := vfs.NewOS()
	d := compiler.NewDriver(fsys, compiler.Options{
		OutDir: s.config.OutDir,
		Target: s.target,
		Jobs:   s.config.Jobs,
	}, s.log).WithCache(compiler.NewCache())

	// Events carry absolute paths; map them back to the argument spelling.
	watched := make(map[string]string, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = p
	}

	// Watch before the first compile so no change slips in between.
	watcher := openWatcher(ctx, fsys, watched, poll, interval, s.log)
	defer watcher.Close()

	results, err := d.CompileAll(ctx, paths)
	compiler.ReportAll(w, results, s.report)
	if err != nil {
		return err
	}
	s.log.Info("watching %d file(s)", len(watched))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			if !ev.Op.Changes() {
				continue
			}
			abs, err := filepath.Abs(ev.Path)
			if err != nil {
				continue
			}
			p, ok := watched[abs]
			if !ok {
				continue
			}
			res := d.CompileFile(ctx, p)
			if res.Cached {
				s.log.Debug("%s: content unchanged", p)
				continue
			}
			compiler.Report(w, res, s.report)
		case err := <-watcher.Errors():
			s.log.Warn("watch: %v", err)
		}
	}
}

// openWatcher prefers OS notifications on the parent directories of the
// watched files, since editors often replace a file instead of writing
// it in place. It falls back to polling the files themselves.
func openWatcher(ctx context.Context, fsys vfs.FileSystem, watched map[string]string, poll bool, interval time.Duration, log *cli.Logger) vfs.Watcher {
	if !poll {
		fw, err := vfs.NewFSWatcher()
		if err == nil {
			dirs := make(map[string]bool)
			for abs := range watched {
				dirs[filepath.Dir(abs)] = true
			}
			for dir := range dirs {
				if err = fw.Add(dir); err != nil {
					break
				}
			}
			if err == nil {
				log.Debug("using native file notifications for %d director(ies)", len(dirs))
				return fw
			}
			fw.Close()
		}
		log.Warn("native file notifications unavailable (%v), polling instead", err)
	}

	p := vfs.NewPoller(fsys, interval)
	for abs := range watched {
		_ = p.Add(abs)
	}
	p.Start(ctx)
	return p
}
