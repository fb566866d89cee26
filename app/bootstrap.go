package app

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dstanziola/copypoint/config"
	"github.com/dstanziola/copypoint/container"
)

// SetupDefaultContainer composes a fresh container with the application's
// known services: the database connection first, then the domain services
// that depend on it, then the security services. Composition is pure
// declaration — no factory runs here; every service is built lazily on
// first resolution.
//
// The composition is verified before returning: a declared dependency that
// no provider registers fails the setup instead of failing the first
// resolution at some arbitrary later point.
func SetupDefaultContainer(cfg *config.Config, log zerolog.Logger) (*container.Container, error) {
	c := container.New(container.WithLogger(log))
	reg := container.NewProviderRegistry(c)

	providers := []container.ServiceProvider{
		&StoreProvider{DB: cfg.DB},
		&DomainProvider{},
		&AuthProvider{Session: cfg.Session},
	}
	for _, p := range providers {
		if err := reg.Register(p); err != nil {
			return nil, fmt.Errorf("app: register provider: %w", err)
		}
	}

	if missing := c.ValidateDependencies(); len(missing) > 0 {
		return nil, fmt.Errorf("app: incomplete composition, missing dependencies: %v", missing)
	}
	if err := reg.Boot(); err != nil {
		return nil, fmt.Errorf("app: boot providers: %w", err)
	}

	log.Info().Int("services", len(c.Services())).Msg("container composed")
	return c, nil
}
