// Command msgcore drives the cross-process delivery core from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/msgcore/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
