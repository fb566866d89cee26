package container

import (
	"io"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// ── Descriptors ───────────────────────────────────────────────────────────────

// Factory builds a concrete service value. It receives the container so it
// can resolve its own dependencies; nested Resolve calls extend the same
// resolution stack.
type Factory func(c *Container) (any, error)

// Lifetime controls how often a factory runs.
type Lifetime uint8

const (
	// Singleton services are built once, on first resolution, and cached
	// for the container's lifetime.
	Singleton Lifetime = iota
	// Transient services are built fresh on every resolution.
	Transient
)

func (l Lifetime) String() string {
	if l == Transient {
		return "transient"
	}
	return "singleton"
}

// descriptor is the registration record for one service: pure declaration,
// no instance exists until first Resolve.
type descriptor struct {
	name     string
	factory  Factory
	lifetime Lifetime
	deps     []string
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the application-wide service registry. Services are
// registered under unique string names and built lazily by their factories.
//
// Lifecycle: New → Register (composition phase) → Resolve (running phase)
// → Cleanup (terminal). After Cleanup the container rejects all further
// registration and resolution.
//
// Map access is mutex-guarded, but first-time singleton construction is not
// serialized: two goroutines racing on the same unbuilt singleton can run
// the factory twice, with the second result winning the cache. Resolve every
// singleton once from the main goroutine before starting workers.
type Container struct {
	mu  sync.RWMutex
	log zerolog.Logger

	// override switches duplicate registration from strict-reject to
	// permissive-replace.
	override bool

	descriptors map[string]*descriptor
	order       []string // registration order, for Services()

	instances map[string]any // realized singletons
	realized  []string       // first-resolution order, drives teardown order
	failed    map[string]string

	// buildStack is the active resolution path. Only touched by the single
	// goroutine driving a resolution, so it carries no lock.
	buildStack []string

	closed bool
}

// Option configures a Container at construction time.
type Option func(*Container)

// WithOverride makes duplicate registration replace the existing
// descriptor instead of failing. A cached singleton under the replaced
// name is evicted so the new factory takes effect.
func WithOverride() Option {
	return func(c *Container) { c.override = true }
}

// WithLogger attaches a logger for registration and resolution events.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Container) { c.log = log }
}

// New creates an empty container. Duplicate registration is strict by
// default; pass WithOverride for permissive replacement.
func New(opts ...Option) *Container {
	c := &Container{
		log:         zerolog.Nop(),
		descriptors: make(map[string]*descriptor),
		instances:   make(map[string]any),
		failed:      make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register declares a service under name. deps lists the service names the
// factory will resolve; they are used for graph validation and diagnostics,
// not for automatic injection — the factory itself calls Resolve.
//
// No instance is created here. In strict mode (the default) re-registering
// an existing name fails with *DuplicateRegistrationError; with
// WithOverride the descriptor is replaced and any cached singleton under
// that name is evicted.
func (c *Container) Register(name string, lifetime Lifetime, deps []string, factory Factory) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrContainerClosed
	}
	if name == "" {
		return &RegistrationError{Name: name, Reason: "service name must not be empty"}
	}
	if factory == nil {
		return &RegistrationError{Name: name, Reason: "factory must not be nil"}
	}

	_, exists := c.descriptors[name]
	if exists && !c.override {
		return &DuplicateRegistrationError{Name: name}
	}
	if exists {
		// Permissive replace: drop the stale instance so the new factory
		// takes effect on next resolution.
		if _, cached := c.instances[name]; cached {
			delete(c.instances, name)
			c.dropRealized(name)
		}
	} else {
		c.order = append(c.order, name)
	}

	c.descriptors[name] = &descriptor{
		name:     name,
		factory:  factory,
		lifetime: lifetime,
		deps:     append([]string(nil), deps...),
	}

	c.log.Debug().
		Str("service", name).
		Stringer("lifetime", lifetime).
		Strs("dependencies", deps).
		Msg("service registered")
	return nil
}

// RegisterSingleton registers a lazily-built singleton service.
func (c *Container) RegisterSingleton(name string, deps []string, factory Factory) error {
	return c.Register(name, Singleton, deps, factory)
}

// RegisterTransient registers a service built fresh on every resolution.
func (c *Container) RegisterTransient(name string, deps []string, factory Factory) error {
	return c.Register(name, Transient, deps, factory)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve returns the instance registered under name, building it (and,
// through its factory, its dependencies) on demand. Singletons keep object
// identity across calls; transients are rebuilt every time.
func (c *Container) Resolve(name string) (any, error) {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return nil, ErrContainerClosed
	}
	if inst, ok := c.instances[name]; ok {
		c.mu.RUnlock()
		return inst, nil
	}
	desc, ok := c.descriptors[name]
	c.mu.RUnlock()

	if !ok {
		return nil, &UnknownServiceError{Name: name}
	}

	// Re-entering a name mid-resolution is the cycle signal. The reported
	// path runs from the first occurrence of the repeated name back to
	// itself, e.g. [a b a].
	for i, active := range c.buildStack {
		if active == name {
			path := append(append([]string(nil), c.buildStack[i:]...), name)
			return nil, &CircularDependencyError{Path: path}
		}
	}

	c.buildStack = append(c.buildStack, name)
	inst, err := desc.factory(c)
	c.buildStack = c.buildStack[:len(c.buildStack)-1]

	if err != nil {
		c.mu.Lock()
		c.failed[name] = err.Error()
		c.mu.Unlock()
		c.log.Error().Err(err).Str("service", name).Msg("service construction failed")
		return nil, &ServiceConstructionError{Name: name, Err: err}
	}

	if desc.lifetime == Singleton {
		c.mu.Lock()
		if _, raced := c.instances[name]; !raced {
			c.realized = append(c.realized, name)
		}
		c.instances[name] = inst
		delete(c.failed, name)
		c.mu.Unlock()
	}

	c.log.Debug().Str("service", name).Stringer("lifetime", desc.lifetime).Msg("service resolved")
	return inst, nil
}

// Resolve is the typed accessor over Container.Resolve: it resolves name
// and asserts the result to T.
//
//	db, err := container.Resolve[*store.DB](c, "database")
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T
	inst, err := c.Resolve(name)
	if err != nil {
		return zero, err
	}
	typed, ok := inst.(T)
	if !ok {
		return zero, &TypeMismatchError{
			Name:     name,
			Expected: typeName[T](),
			Got:      typeNameOf(inst),
		}
	}
	return typed, nil
}

// ── Introspection ─────────────────────────────────────────────────────────────

// Bound reports whether a service is registered under name. It never
// triggers construction.
func (c *Container) Bound(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.descriptors[name]
	return ok
}

// Resolved reports whether a singleton has already been realized.
func (c *Container) Resolved(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[name]
	return ok
}

// Services returns all registered names in registration order. Instances
// are never exposed through introspection.
func (c *Container) Services() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.order...)
}

// Dependencies returns the declared dependency names of a service.
func (c *Container) Dependencies(name string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	desc, ok := c.descriptors[name]
	if !ok {
		return nil, &UnknownServiceError{Name: name}
	}
	return append([]string(nil), desc.deps...), nil
}

// Stats is a read-only snapshot of the container, consumed by startup
// health checks and tests.
type Stats struct {
	Total      int      `json:"total"`
	Singletons int      `json:"singletons"`
	Transients int      `json:"transients"`
	Realized   int      `json:"realized"`
	Failed     []string `json:"failed,omitempty"`
}

// Stats returns registration and realization counts plus the names of
// services whose factory last failed.
func (c *Container) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Stats{
		Total:    len(c.descriptors),
		Realized: len(c.instances),
	}
	for _, desc := range c.descriptors {
		if desc.lifetime == Singleton {
			s.Singletons++
		} else {
			s.Transients++
		}
	}
	for name := range c.failed {
		s.Failed = append(s.Failed, name)
	}
	sort.Strings(s.Failed)
	return s
}

// ValidateDependencies checks every declared dependency against the set of
// registered names and returns, per service, the dependencies that are
// missing. An empty map means the composition is complete.
func (c *Container) ValidateDependencies() map[string][]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	missing := make(map[string][]string)
	for _, name := range c.order {
		for _, dep := range c.descriptors[name].deps {
			if _, ok := c.descriptors[dep]; !ok {
				missing[name] = append(missing[name], dep)
			}
		}
	}
	return missing
}

// ── Teardown ──────────────────────────────────────────────────────────────────

// Cleanup tears down realized singletons in reverse first-resolution order,
// closing every instance that implements io.Closer. All teardowns are
// attempted; failures are collected and reported together as *CleanupError.
//
// Cleanup is idempotent — a second call is a no-op — and terminal: the
// container rejects resolution afterwards with ErrContainerClosed.
func (c *Container) Cleanup() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true

	names := make([]string, len(c.realized))
	for i, name := range c.realized {
		names[len(names)-1-i] = name
	}
	instances := c.instances
	c.instances = make(map[string]any)
	c.realized = nil
	c.mu.Unlock()

	var failures []CleanupFailure
	for _, name := range names {
		closer, ok := instances[name].(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			failures = append(failures, CleanupFailure{Name: name, Err: err})
			c.log.Warn().Err(err).Str("service", name).Msg("service teardown failed")
			continue
		}
		c.log.Debug().Str("service", name).Msg("service torn down")
	}

	if len(failures) > 0 {
		return &CleanupError{Failures: failures}
	}
	return nil
}

// Closed reports whether Cleanup has run.
func (c *Container) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

func (c *Container) dropRealized(name string) {
	for i, n := range c.realized {
		if n == name {
			c.realized = append(c.realized[:i], c.realized[i+1:]...)
			return
		}
	}
}
