// Package main is the entry point for the axon CLI tool.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/aidanlsb/axon/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
