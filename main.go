package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dstanziola/copypoint/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap failed: %v\n", err)
		os.Exit(1)
	}

	// Realize every singleton from the main goroutine before serving, so
	// no two request handlers ever race a first-time construction.
	if err := application.Warmup(); err != nil {
		application.Log.Fatal().Err(err).Msg("startup self-check failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		application.Log.Error().Err(err).Msg("server stopped")
	}

	if err := application.Shutdown(); err != nil {
		application.Log.Error().Err(err).Msg("cleanup reported failures")
		os.Exit(1)
	}
	application.Log.Info().Msg("shutdown complete")
}
