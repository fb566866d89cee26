package container_test

import (
	"errors"
	"testing"

	"github.com/dstanziola/copypoint/container"
)

// ── stub providers ────────────────────────────────────────────────────────────

type stubProvider struct {
	container.BaseProvider
	registerCalled bool
	bootCalled     bool
	registerErr    error
}

func (p *stubProvider) Register(c *container.Container) error {
	p.registerCalled = true
	if p.registerErr != nil {
		return p.registerErr
	}
	return c.RegisterSingleton("stub-svc", nil, func(_ *container.Container) (any, error) {
		return "stub", nil
	})
}

func (p *stubProvider) Boot(c *container.Container) error {
	p.bootCalled = true
	return nil
}

func (p *stubProvider) Provides() []string { return []string{"stub-svc"} }

type multiProvider struct {
	container.BaseProvider
}

func (p *multiProvider) Register(c *container.Container) error {
	if err := c.RegisterSingleton("alpha", nil, func(_ *container.Container) (any, error) {
		return "α", nil
	}); err != nil {
		return err
	}
	return c.RegisterSingleton("beta", nil, func(_ *container.Container) (any, error) {
		return "β", nil
	})
}

// ── ProviderRegistry ──────────────────────────────────────────────────────────

func TestRegistry_Register_CalledImmediately(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &stubProvider{}
	if err := reg.Register(p); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !p.registerCalled {
		t.Error("Register() should be called immediately")
	}
	if p.bootCalled {
		t.Error("Boot() should NOT be called before registry.Boot()")
	}
}

func TestRegistry_Boot_RunsAllProviders(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &stubProvider{}
	_ = reg.Register(p)
	if err := reg.Boot(); err != nil {
		t.Fatalf("Boot: %v", err)
	}
	if !p.bootCalled {
		t.Error("Boot() should run on registered providers")
	}
	if !reg.Booted() {
		t.Error("Booted() should be true after Boot()")
	}
}

func TestRegistry_Boot_Idempotent(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	_ = reg.Register(&stubProvider{})

	if err := reg.Boot(); err != nil {
		t.Fatalf("first Boot: %v", err)
	}
	if err := reg.Boot(); err != nil {
		t.Fatalf("second Boot should be a no-op, got %v", err)
	}
}

func TestRegistry_RegisterError_Propagates(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	boom := errors.New("bad provider")
	err := reg.Register(&stubProvider{registerErr: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("Register: %v, want wrapped provider error", err)
	}
	if len(reg.Providers()) != 0 {
		t.Error("a failed provider must not be recorded as registered")
	}
}

func TestRegistry_DuplicateProviderInstance_Ignored(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &stubProvider{}
	_ = reg.Register(p)
	// A second Register of the same instance must not re-run Register(),
	// which would trip the container's strict duplicate policy.
	if err := reg.Register(p); err != nil {
		t.Fatalf("duplicate provider register: %v", err)
	}
	if len(reg.Providers()) != 1 {
		t.Errorf("Providers() = %d, want 1", len(reg.Providers()))
	}
}

func TestRegistry_RegisterAfterBoot_BootsImmediately(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	_ = reg.Boot()

	p := &stubProvider{}
	if err := reg.Register(p); err != nil {
		t.Fatalf("Register after Boot: %v", err)
	}
	if !p.bootCalled {
		t.Error("provider registered after Boot() should be booted immediately")
	}
}

func TestRegistry_MultipleProviders_AllServicesResolvable(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	_ = reg.Register(&multiProvider{})
	_ = reg.Register(&stubProvider{})
	_ = reg.Boot()

	for name, want := range map[string]string{"alpha": "α", "beta": "β", "stub-svc": "stub"} {
		got, err := c.Resolve(name)
		if err != nil || got != want {
			t.Errorf("Resolve(%s) = %v, %v; want %q", name, got, err, want)
		}
	}
}

func TestBaseProvider_Defaults(t *testing.T) {
	var p container.BaseProvider
	c := container.New()

	if err := p.Boot(c); err != nil {
		t.Errorf("BaseProvider.Boot: %v", err)
	}
	if len(p.Provides()) != 0 {
		t.Error("BaseProvider.Provides() should be empty")
	}
}
