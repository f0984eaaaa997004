// Package main provides the entry point for the skilltracker CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/Sumatoshi-tech/skilltracker/cmd/skilltracker/commands"
	"github.com/Sumatoshi-tech/skilltracker/pkg/version"
)

func main() {
	version.Init()

	// Real environment variables win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: .env: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := commands.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
