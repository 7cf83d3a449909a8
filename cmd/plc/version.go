package main

import (
	"github.com/spf13/cobra"

	"github.com/orizon-lang/plc/internal/cli"
	"github.com/orizon-lang/plc/internal/codegen"
)

func newVersionCmd(opts *options) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := codegen.ParseTarget(opts.llvmVersion)
			if err != nil {
				return err
			}
			info := cli.GetVersionInfo()
			info.Target = target.String()
			return cli.PrintVersion(cmd.OutOrStdout(), "plc", info, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print version information as JSON")
	return cmd
}
