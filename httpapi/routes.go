// Package httpapi exposes the local diagnostics and REST surface over the
// service container. Every handler resolves its services from the one
// container instance it is built with; nothing here keeps state of its own.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/dstanziola/copypoint/container"
	"github.com/dstanziola/copypoint/routing"
	"github.com/dstanziola/copypoint/services"
	"github.com/dstanziola/copypoint/store"
)

// Routes builds the router over c.
func Routes(c *container.Container, log zerolog.Logger) *routing.Router {
	h := &handlers{c: c, log: log}
	r := routing.New()

	// Diagnostics: consumed by the startup self-check and ops tooling.
	r.Get("/health", h.health)
	r.Prefix("/container", func(d *routing.Router) {
		d.Get("/stats", h.containerStats)
		d.Get("/services", h.containerServices)
	})

	r.Prefix("/api/v1", func(api *routing.Router) {
		api.Post("/auth/login", h.login)
		api.Get("/products", h.searchProducts)
		api.Post("/products", h.createProduct)
		api.Post("/sales", h.createSale)
		api.Get("/reports/low-stock", h.lowStock)
		api.Get("/inventory/snapshot", h.inventorySnapshot)
	})

	return r
}

type handlers struct {
	c   *container.Container
	log zerolog.Logger
}

// ── Diagnostics ──────────────────────────────────────────────────────────────

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	res := NewResponse(w)

	db, err := container.Resolve[*store.DB](h.c, "database")
	if err != nil {
		res.JSON(http.StatusServiceUnavailable, envelope{"status": "down", "error": err.Error()})
		return
	}
	if err := db.Ping(); err != nil {
		res.JSON(http.StatusServiceUnavailable, envelope{"status": "down", "error": err.Error()})
		return
	}
	res.JSON(http.StatusOK, envelope{"status": "ok"})
}

func (h *handlers) containerStats(w http.ResponseWriter, r *http.Request) {
	NewResponse(w).Success(h.c.Stats())
}

func (h *handlers) containerServices(w http.ResponseWriter, r *http.Request) {
	NewResponse(w).Success(h.c.Services())
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	req, res := NewRequest(r), NewResponse(w)

	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := req.Bind(&body); err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	auth, err := container.Resolve[*services.AuthService](h.c, "auth_service")
	if err != nil {
		h.resolveError(res, err)
		return
	}
	session, err := auth.Login(body.Username, body.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		res.Unauthorized("")
		return
	}
	if err != nil {
		res.ServerError(err.Error())
		return
	}
	res.Success(session)
}

// ── Products ─────────────────────────────────────────────────────────────────

func (h *handlers) searchProducts(w http.ResponseWriter, r *http.Request) {
	req, res := NewRequest(r), NewResponse(w)

	products, err := container.Resolve[*services.ProductService](h.c, "product_service")
	if err != nil {
		h.resolveError(res, err)
		return
	}
	out, err := products.Search(req.Query("q"))
	if err != nil {
		res.ServerError(err.Error())
		return
	}
	res.Success(out)
}

func (h *handlers) createProduct(w http.ResponseWriter, r *http.Request) {
	req, res := NewRequest(r), NewResponse(w)

	var body struct {
		Name       string  `json:"name"`
		CategoryID int64   `json:"category_id"`
		Stock      int     `json:"stock"`
		Cost       float64 `json:"cost"`
		Price      float64 `json:"price"`
		TaxRate    float64 `json:"tax_rate"`
	}
	if err := req.Bind(&body); err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	products, err := container.Resolve[*services.ProductService](h.c, "product_service")
	if err != nil {
		h.resolveError(res, err)
		return
	}
	p, err := products.Create(services.ProductInput{
		Name:       body.Name,
		CategoryID: body.CategoryID,
		Stock:      body.Stock,
		Cost:       body.Cost,
		Price:      body.Price,
		TaxRate:    body.TaxRate,
	})
	if err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}
	res.Created(p)
}

// ── Sales ────────────────────────────────────────────────────────────────────

func (h *handlers) createSale(w http.ResponseWriter, r *http.Request) {
	req, res := NewRequest(r), NewResponse(w)

	var body struct {
		ClientID    int64  `json:"client_id"`
		Responsible string `json:"responsible"`
		Lines       []struct {
			ProductID int64 `json:"product_id"`
			Quantity  int   `json:"quantity"`
		} `json:"lines"`
	}
	if err := req.Bind(&body); err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	sales, err := container.Resolve[*services.SalesService](h.c, "sales_service")
	if err != nil {
		h.resolveError(res, err)
		return
	}
	in := services.SaleInput{ClientID: body.ClientID, Responsible: body.Responsible}
	for _, line := range body.Lines {
		in.Lines = append(in.Lines, services.SaleLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	sale, err := sales.Create(in)
	switch {
	case errors.Is(err, services.ErrInsufficientStock):
		res.Error(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNotFound):
		res.NotFound(err.Error())
	case err != nil:
		res.Error(http.StatusBadRequest, err.Error())
	default:
		res.Created(sale)
	}
}

// ── Reports & inventory ──────────────────────────────────────────────────────

func (h *handlers) lowStock(w http.ResponseWriter, r *http.Request) {
	req, res := NewRequest(r), NewResponse(w)

	threshold := 5
	if v := req.Query("threshold"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			res.Error(http.StatusBadRequest, "threshold must be an integer")
			return
		}
		threshold = n
	}

	reports, err := container.Resolve[*services.ReportService](h.c, "report_service")
	if err != nil {
		h.resolveError(res, err)
		return
	}
	items, err := reports.LowStock(threshold)
	if err != nil {
		res.ServerError(err.Error())
		return
	}
	res.Success(items)
}

func (h *handlers) inventorySnapshot(w http.ResponseWriter, r *http.Request) {
	res := NewResponse(w)

	inventory, err := container.Resolve[*services.InventoryService](h.c, "inventory_service")
	if err != nil {
		h.resolveError(res, err)
		return
	}
	snapshot, err := inventory.Snapshot()
	if err != nil {
		res.ServerError(err.Error())
		return
	}
	res.Success(snapshot)
}

func (h *handlers) resolveError(res *Response, err error) {
	h.log.Error().Err(err).Msg("service resolution failed")
	res.ServerError(err.Error())
}
