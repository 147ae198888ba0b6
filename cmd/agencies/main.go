// Package main provides the agencies command-line tool for collecting agency details
// from the Lefeuvre Immobilier website.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"agencyscraper/internal/crawler"
)

// Exit codes.
const (
	exitOK       = 0
	exitFailure  = 1
	exitNoRecord = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)

	stop()

	// The empty run is already reported by the runner.
	if err != nil && !errors.Is(err, crawler.ErrNoRecords) {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
	}

	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, crawler.ErrNoRecords):
		return exitNoRecord
	default:
		return exitFailure
	}
}
