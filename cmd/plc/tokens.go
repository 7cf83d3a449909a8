package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orizon-lang/plc/internal/compiler"
	"github.com/orizon-lang/plc/internal/vfs"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE...",
		Short: "Print the token stream of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fsys := vfs.NewOS()
			for i, path := range args {
				src, err := vfs.ReadFile(fsys, path)
				if err != nil {
					fmt.Fprintln(w, compiler.FailureLine)
					continue
				}
				if len(args) > 1 {
					if i > 0 {
						fmt.Fprintln(w)
					}
					fmt.Fprintf(w, "== %s\n", path)
				}
				compiler.WriteTokens(w, path, string(src))
			}
			return nil
		},
	}
}
