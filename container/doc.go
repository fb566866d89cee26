// Package container provides the application-wide service registry for
// Copypoint: a single-process dependency-injection container sized for an
// application with on the order of ten to twenty services.
//
// # Overview
//
// Services are registered under unique string names together with a factory
// and a lifetime (singleton or transient). Nothing is constructed at
// registration time; a factory runs on first resolution and may resolve its
// own dependencies from the same container, which extends the active
// resolution path and lets the container detect cycles with the full cycle
// path in the error.
//
// # Container Lifecycle
//
//  1. Compose: c := container.New(); register every service
//     (app.SetupDefaultContainer does this for the known set)
//  2. Resolve: every form, service, and script obtains shared resources
//     with c.Resolve(name) or the typed container.Resolve[T](c, name)
//  3. Teardown: c.Cleanup() once at shutdown — realized singletons are
//     closed in reverse first-resolution order
//
// After Cleanup the container is terminal: further resolution fails with
// ErrContainerClosed, and a fresh container must be composed for reuse.
//
// # Registration
//
//	// Singleton — created once, reused
//	c.RegisterSingleton("database", nil, func(c *container.Container) (any, error) {
//	    return store.Open(cfg.DB)
//	})
//
//	// Dependent service — the factory resolves its own dependencies
//	c.RegisterSingleton("product_service", []string{"database"},
//	    func(c *container.Container) (any, error) {
//	        db, err := container.Resolve[*store.DB](c, "database")
//	        if err != nil {
//	            return nil, err
//	        }
//	        return services.NewProductService(db), nil
//	    })
//
// Duplicate names are rejected by default; construct the container with
// WithOverride to replace descriptors instead (a cached singleton under the
// replaced name is evicted).
//
// # Resolving
//
//	// Untyped
//	raw, err := c.Resolve("product_service")
//
//	// Typed (preferred — no assertion at the call site)
//	products, err := container.Resolve[*services.ProductService](c, "product_service")
//
// # Diagnostics
//
// Bound, Services, Stats, and ValidateDependencies are read-only
// introspection used by the startup self-check and the diagnostics API;
// none of them trigger construction.
package container
