// Command plc compiles source programs into LLVM IR text.
package main

import (
	"github.com/orizon-lang/plc/internal/cli"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		cli.ExitWithError("%v", err)
	}
}
