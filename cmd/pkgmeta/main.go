package main

import (
	"context"
	"os"

	"github.com/indaco/pkgmeta/internal/cli"
	"github.com/indaco/pkgmeta/internal/clix"
	"github.com/indaco/pkgmeta/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.PrintError(err.Error())
		os.Exit(1)
	}
}

// runCLI builds the root command and runs it with args.
func runCLI(args []string) error {
	app := cli.New(clix.NewEnv())
	return app.Run(context.Background(), args)
}
