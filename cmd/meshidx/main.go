// Package main provides the entry point for the meshidx CLI.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/Aman-CERP/meshidx/cmd/meshidx/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
