package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orizon-lang/plc/internal/compiler"
)

func newSymbolsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "symbols FILE...",
		Short: "Print the symbol table of each file",
		Long: `Parse each file without writing IR and print its symbols sorted by
scope key, followed by the usual diagnostics and validity result.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			d := s.driver(false)
			w := cmd.OutOrStdout()
			for _, path := range args {
				res := d.CompileFile(cmd.Context(), path)
				fmt.Fprintf(w, "== %s\n", path)
				compiler.WriteSymbols(w, res.Symbols)
				compiler.Report(w, res, s.report)
			}
			return nil
		},
	}
}
