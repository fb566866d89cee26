package container

// ── ServiceProvider ───────────────────────────────────────────────────────────

// ServiceProvider groups related service registrations. Register declares
// services into the container and must not resolve anything; Boot runs
// after every provider has registered, so resolving other services is safe
// there.
type ServiceProvider interface {
	// Register declares this provider's services. Pure declaration:
	// factories must not run here.
	Register(c *Container) error

	// Boot is called after all providers are registered. Safe to resolve.
	Boot(c *Container) error

	// Provides returns the service names this provider registers, for
	// diagnostics and composition checks.
	Provides() []string
}

// BaseProvider is an embeddable no-op implementation of Boot and Provides.
// Embed it and override what the provider needs.
type BaseProvider struct{}

func (BaseProvider) Boot(_ *Container) error { return nil }
func (BaseProvider) Provides() []string      { return nil }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry runs the two-phase provider lifecycle against one
// container: every provider's Register first, then every Boot.
type ProviderRegistry struct {
	c          *Container
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to c.
func NewProviderRegistry(c *Container) *ProviderRegistry {
	return &ProviderRegistry{
		c:          c,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register runs the provider's Register phase. Registering the same
// provider instance twice is a no-op. If the registry has already booted,
// the provider is booted immediately after registering.
func (r *ProviderRegistry) Register(p ServiceProvider) error {
	if r.registered[p] {
		return nil
	}
	if err := p.Register(r.c); err != nil {
		return err
	}
	r.registered[p] = true
	r.providers = append(r.providers, p)

	if r.booted {
		return p.Boot(r.c)
	}
	return nil
}

// Boot runs the Boot phase on every registered provider, once. Call after
// all providers are registered.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, p := range r.providers {
		if err := p.Boot(r.c); err != nil {
			return err
		}
	}
	return nil
}

// Booted reports whether Boot has run.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns the registered providers in registration order.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
