// Package app bootstraps the Copypoint application: it composes the
// service container, runs the startup self-check, and drives the
// diagnostics HTTP surface and shutdown.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dstanziola/copypoint/config"
	"github.com/dstanziola/copypoint/container"
	"github.com/dstanziola/copypoint/httpapi"
	"github.com/dstanziola/copypoint/logging"
)

// Application is the top-level kernel. It owns the one container instance
// the whole process shares and hands it to every consumer explicitly.
type Application struct {
	Config    *config.Config
	Log       zerolog.Logger
	Container *container.Container
}

// New loads configuration, builds the logger, and composes the default
// container. Called exactly once per process.
func New(envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)
	log := logging.New(cfg.Log)

	c, err := SetupDefaultContainer(cfg, log)
	if err != nil {
		return nil, err
	}

	return &Application{Config: cfg, Log: log, Container: c}, nil
}

// Warmup resolves every registered singleton once, in registration order,
// from the calling goroutine. Running this on the main goroutine before
// any worker starts serializes first-time construction, which is what
// upholds the at-most-one-instance guarantee. A construction or cycle
// failure here aborts launch with the offending service in the error.
func (a *Application) Warmup() error {
	for _, name := range a.Container.Services() {
		if _, err := a.Container.Resolve(name); err != nil {
			return fmt.Errorf("app: startup self-check: %w", err)
		}
	}

	stats := a.Container.Stats()
	a.Log.Info().
		Int("registered", stats.Total).
		Int("realized", stats.Realized).
		Msg("startup self-check passed")
	return nil
}

// Run serves the diagnostics and REST API until ctx is canceled, then
// drains in-flight requests. Container teardown stays with the caller
// (Shutdown), after all request handlers have stopped resolving.
func (a *Application) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.Config.App.Port,
		Handler:           httpapi.Routes(a.Container, a.Log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	a.Log.Info().
		Str("addr", srv.Addr).
		Str("env", a.Config.App.Env).
		Msgf("%s running", a.Config.App.Name)

	select {
	case err := <-errc:
		return fmt.Errorf("app: server: %w", err)
	case <-ctx.Done():
	}

	drain, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(drain); err != nil {
		return fmt.Errorf("app: drain: %w", err)
	}
	return nil
}

// Shutdown tears down the container. Call after Run has returned, from
// the goroutine orchestrating shutdown.
func (a *Application) Shutdown() error {
	return a.Container.Cleanup()
}

// Environment returns APP_ENV.
func (a *Application) Environment() string { return a.Config.App.Env }

// IsDebug reports APP_DEBUG.
func (a *Application) IsDebug() bool { return a.Config.App.Debug }
