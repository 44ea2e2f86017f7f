// Package main provides the portfolio command: the resume export HTTP server
// and local export tooling.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS, and
	// the runtime default then applies.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
