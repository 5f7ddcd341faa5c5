package main

import (
	"os"

	"github.com/Makepad-fr/tada/internal/cli"
)

func main() {
	// Hand the args to the CLI runner; it maps errors to exit codes.
	os.Exit(cli.Run(os.Args[1:], cli.StdStreams()))
}
