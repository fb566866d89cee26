package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dstanziola/copypoint/store"
)

// Product is an inventory item or a sold service (stock applies only to
// MATERIAL categories).
type Product struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	CategoryID int64   `json:"category_id"`
	Stock      int     `json:"stock"`
	Cost       float64 `json:"cost"`
	Price      float64 `json:"price"`
	TaxRate    float64 `json:"tax_rate"`
	Active     bool    `json:"active"`
}

// ProductInput is the validated payload for creating a product.
type ProductInput struct {
	Name       string  `validate:"required,min=2,max=200"`
	CategoryID int64   `validate:"required,gt=0"`
	Stock      int     `validate:"gte=0"`
	Cost       float64 `validate:"gte=0"`
	Price      float64 `validate:"gte=0"`
	TaxRate    float64 `validate:"gte=0,lte=1"`
}

// ProductService manages the productos table. Search results are cached
// and the cache is flushed on every write, so readers never observe stale
// rows after a mutation.
type ProductService struct {
	db    *store.DB
	cache *gocache.Cache
}

// NewProductService creates a ProductService on db.
func NewProductService(db *store.DB) *ProductService {
	return &ProductService{
		db:    db,
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// Create inserts a new product and invalidates the search cache.
func (s *ProductService) Create(in ProductInput) (*Product, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("product: invalid input: %w", err)
	}
	res, err := s.db.Exec(
		`INSERT INTO productos (nombre, id_categoria, stock, costo, precio, tasa_impuesto)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		in.Name, in.CategoryID, in.Stock, in.Cost, in.Price, in.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("product: insert: %w", err)
	}
	id, _ := res.LastInsertId()
	s.cache.Flush()
	return s.Get(id)
}

// Get fetches an active product by id.
func (s *ProductService) Get(id int64) (*Product, error) {
	var p Product
	err := s.db.QueryRow(
		`SELECT id_producto, nombre, id_categoria, stock, costo, precio, tasa_impuesto, activo
		 FROM productos WHERE id_producto = ? AND activo = 1`, id).
		Scan(&p.ID, &p.Name, &p.CategoryID, &p.Stock, &p.Cost, &p.Price, &p.TaxRate, &p.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("product: get %d: %w", id, err)
	}
	return &p, nil
}

// Search returns active products whose name contains query, serving
// repeated queries from the cache.
func (s *ProductService) Search(query string) ([]Product, error) {
	key := "search:" + query
	if hit, ok := s.cache.Get(key); ok {
		return hit.([]Product), nil
	}

	rows, err := s.db.Query(
		`SELECT id_producto, nombre, id_categoria, stock, costo, precio, tasa_impuesto, activo
		 FROM productos WHERE activo = 1 AND nombre LIKE ? ORDER BY nombre`,
		"%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("product: search %q: %w", query, err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.Stock, &p.Cost, &p.Price, &p.TaxRate, &p.Active); err != nil {
			return nil, fmt.Errorf("product: scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, out)
	return out, nil
}

// AdjustStock changes the stock of a product by delta (positive for
// entries, negative for sales) and invalidates the search cache. Fails if
// the adjustment would drive stock negative.
func (s *ProductService) AdjustStock(id int64, delta int) error {
	p, err := s.Get(id)
	if err != nil {
		return err
	}
	if p.Stock+delta < 0 {
		return fmt.Errorf("product: stock for %q would go negative (%d%+d)", p.Name, p.Stock, delta)
	}
	if _, err := s.db.Exec(
		`UPDATE productos SET stock = stock + ? WHERE id_producto = ?`, delta, id); err != nil {
		return fmt.Errorf("product: adjust stock %d: %w", id, err)
	}
	s.cache.Flush()
	return nil
}

// Deactivate soft-deletes a product and invalidates the search cache.
func (s *ProductService) Deactivate(id int64) error {
	res, err := s.db.Exec(
		`UPDATE productos SET activo = 0 WHERE id_producto = ? AND activo = 1`, id)
	if err != nil {
		return fmt.Errorf("product: deactivate %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.cache.Flush()
	return nil
}

// CacheItemCount reports how many search results are currently cached.
func (s *ProductService) CacheItemCount() int {
	return s.cache.ItemCount()
}
