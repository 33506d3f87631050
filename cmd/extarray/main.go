// Package main provides the extarray CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/extarray/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Command failures are already reported in the selected format
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
