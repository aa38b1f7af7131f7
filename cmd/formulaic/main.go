package main

import (
	"context"
	"os"

	cmdutil "github.com/formulaic-app/formulaic-go/cmd"
	"github.com/formulaic-app/formulaic-go/internal/cli"
)

func main() {
	// Configure ^C to terminate program
	ctx, cancel := cmdutil.WithInterrupt(context.Background())
	defer cancel()

	if err := cli.NewCLI().Run(ctx, os.Args[1:], os.Stdout); err != nil {
		cmdutil.PrintError(err)
		cancel()
		os.Exit(1)
	}
}
