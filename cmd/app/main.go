package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(run())
}

// run owns the process lifecycle so deferred cleanups execute before exit.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := initializeApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to wire application: %v\n", err)
		return 1
	}
	defer cleanup()

	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "application stopped with error: %v\n", err)
		return 1
	}
	return 0
}
