package app

import (
	"github.com/dstanziola/copypoint/config"
	"github.com/dstanziola/copypoint/container"
	"github.com/dstanziola/copypoint/services"
	"github.com/dstanziola/copypoint/store"
)

// ── StoreProvider ─────────────────────────────────────────────────────────────

// StoreProvider registers the sqlite connection.
//
// Registered services:
//   - "database" → *store.DB (singleton, no dependencies)
//
// The file is not opened here; the factory runs on first resolution.
type StoreProvider struct {
	container.BaseProvider
	DB config.DBConfig
}

func (p *StoreProvider) Register(c *container.Container) error {
	cfg := p.DB
	return c.RegisterSingleton("database", nil, func(_ *container.Container) (any, error) {
		return store.Open(cfg)
	})
}

func (p *StoreProvider) Provides() []string { return []string{"database"} }

// ── DomainProvider ────────────────────────────────────────────────────────────

// DomainProvider registers the inventory domain services. All of them are
// singletons; each factory resolves its own dependencies, so registration
// order within the provider is for readability only.
//
// Registered services: category_service, product_service, client_service,
// sales_service, movement_service, report_service, company_service,
// ticket_service, inventory_service, export_service, barcode_service,
// label_service.
type DomainProvider struct {
	container.BaseProvider
}

func (p *DomainProvider) Register(c *container.Container) error {
	type registration struct {
		name    string
		deps    []string
		factory container.Factory
	}

	regs := []registration{
		{"category_service", []string{"database"}, func(c *container.Container) (any, error) {
			db, err := container.Resolve[*store.DB](c, "database")
			if err != nil {
				return nil, err
			}
			return services.NewCategoryService(db), nil
		}},
		{"product_service", []string{"database"}, func(c *container.Container) (any, error) {
			db, err := container.Resolve[*store.DB](c, "database")
			if err != nil {
				return nil, err
			}
			return services.NewProductService(db), nil
		}},
		{"client_service", []string{"database"}, func(c *container.Container) (any, error) {
			db, err := container.Resolve[*store.DB](c, "database")
			if err != nil {
				return nil, err
			}
			return services.NewClientService(db), nil
		}},
		{"sales_service", []string{"database", "product_service"}, func(c *container.Container) (any, error) {
			db, err := container.Resolve[*store.DB](c, "database")
			if err != nil {
				return nil, err
			}
			products, err := container.Resolve[*services.ProductService](c, "product_service")
			if err != nil {
				return nil, err
			}
			return services.NewSalesService(db, products), nil
		}},
		{"movement_service", []string{"database", "product_service"}, func(c *container.Container) (any, error) {
			db, err := container.Resolve[*store.DB](c, "database")
			if err != nil {
				return nil, err
			}
			products, err := container.Resolve[*services.ProductService](c, "product_service")
			if err != nil {
				return nil, err
			}
			return services.NewMovementService(db, products), nil
		}},
		{"report_service", []string{"database"}, func(c *container.Container) (any, error) {
			db, err := container.Resolve[*store.DB](c, "database")
			if err != nil {
				return nil, err
			}
			return services.NewReportService(db), nil
		}},
		{"company_service", []string{"database"}, func(c *container.Container) (any, error) {
			db, err := container.Resolve[*store.DB](c, "database")
			if err != nil {
				return nil, err
			}
			return services.NewCompanyService(db), nil
		}},
		{"ticket_service", []string{"database"}, func(c *container.Container) (any, error) {
			db, err := container.Resolve[*store.DB](c, "database")
			if err != nil {
				return nil, err
			}
			return services.NewTicketService(db), nil
		}},
		{"inventory_service", []string{"database"}, func(c *container.Container) (any, error) {
			db, err := container.Resolve[*store.DB](c, "database")
			if err != nil {
				return nil, err
			}
			return services.NewInventoryService(db), nil
		}},
		{"export_service", []string{"movement_service", "report_service"}, func(c *container.Container) (any, error) {
			movements, err := container.Resolve[*services.MovementService](c, "movement_service")
			if err != nil {
				return nil, err
			}
			reports, err := container.Resolve[*services.ReportService](c, "report_service")
			if err != nil {
				return nil, err
			}
			return services.NewExportService(movements, reports), nil
		}},
		{"barcode_service", nil, func(_ *container.Container) (any, error) {
			return services.NewBarcodeService(), nil
		}},
		{"label_service", []string{"category_service"}, func(c *container.Container) (any, error) {
			categories, err := container.Resolve[*services.CategoryService](c, "category_service")
			if err != nil {
				return nil, err
			}
			return services.NewLabelService(categories), nil
		}},
	}

	for _, r := range regs {
		if err := c.RegisterSingleton(r.name, r.deps, r.factory); err != nil {
			return err
		}
	}
	return nil
}

func (p *DomainProvider) Provides() []string {
	return []string{
		"category_service", "product_service", "client_service",
		"sales_service", "movement_service", "report_service",
		"company_service", "ticket_service", "inventory_service",
		"export_service", "barcode_service", "label_service",
	}
}

// ── AuthProvider ──────────────────────────────────────────────────────────────

// AuthProvider registers the security services.
//
// Registered services:
//   - "password_hasher"  → *services.PasswordHasher (no dependencies)
//   - "session_manager"  → *services.SessionManager (no dependencies)
//   - "user_service"     → *services.UserService (database, password_hasher)
//   - "auth_service"     → *services.AuthService (user_service, session_manager, password_hasher)
type AuthProvider struct {
	container.BaseProvider
	Session config.SessionConfig
}

func (p *AuthProvider) Register(c *container.Container) error {
	if err := c.RegisterSingleton("password_hasher", nil, func(_ *container.Container) (any, error) {
		return services.NewPasswordHasher(), nil
	}); err != nil {
		return err
	}

	ttl := p.Session.TTL
	if err := c.RegisterSingleton("session_manager", nil, func(_ *container.Container) (any, error) {
		return services.NewSessionManager(ttl), nil
	}); err != nil {
		return err
	}

	if err := c.RegisterSingleton("user_service", []string{"database", "password_hasher"},
		func(c *container.Container) (any, error) {
			db, err := container.Resolve[*store.DB](c, "database")
			if err != nil {
				return nil, err
			}
			hasher, err := container.Resolve[*services.PasswordHasher](c, "password_hasher")
			if err != nil {
				return nil, err
			}
			return services.NewUserService(db, hasher), nil
		}); err != nil {
		return err
	}

	return c.RegisterSingleton("auth_service", []string{"user_service", "session_manager", "password_hasher"},
		func(c *container.Container) (any, error) {
			users, err := container.Resolve[*services.UserService](c, "user_service")
			if err != nil {
				return nil, err
			}
			sessions, err := container.Resolve[*services.SessionManager](c, "session_manager")
			if err != nil {
				return nil, err
			}
			hasher, err := container.Resolve[*services.PasswordHasher](c, "password_hasher")
			if err != nil {
				return nil, err
			}
			return services.NewAuthService(users, sessions, hasher), nil
		})
}

func (p *AuthProvider) Provides() []string {
	return []string{"password_hasher", "session_manager", "user_service", "auth_service"}
}
