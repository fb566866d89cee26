package services

import (
	"fmt"

	"github.com/dstanziola/copypoint/store"
)

// StockEntry is one line of the current stock snapshot.
type StockEntry struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Moved     int    `json:"moved"` // net quantity across all movements
}

// InventoryService answers stock questions that span products and
// movements, including the consistency check run by the startup
// diagnostics.
type InventoryService struct {
	db *store.DB
}

// NewInventoryService creates an InventoryService on db.
func NewInventoryService(db *store.DB) *InventoryService {
	return &InventoryService{db: db}
}

// Snapshot returns current stock alongside the net movement total for
// every active material product.
func (s *InventoryService) Snapshot() ([]StockEntry, error) {
	rows, err := s.db.Query(
		`SELECT p.id_producto, p.nombre, p.stock,
		        COALESCE((SELECT SUM(m.cantidad) FROM movimientos m WHERE m.id_producto = p.id_producto), 0)
		 FROM productos p
		 JOIN categorias c ON c.id_categoria = p.id_categoria
		 WHERE p.activo = 1 AND c.tipo = 'MATERIAL'
		 ORDER BY p.nombre`)
	if err != nil {
		return nil, fmt.Errorf("inventory: snapshot: %w", err)
	}
	defer rows.Close()

	var out []StockEntry
	for rows.Next() {
		var e StockEntry
		if err := rows.Scan(&e.ProductID, &e.Name, &e.Stock, &e.Moved); err != nil {
			return nil, fmt.Errorf("inventory: scan: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Inconsistencies returns the products whose stock does not equal the sum
// of their recorded movements. A non-empty result means stock was edited
// outside the movement log.
func (s *InventoryService) Inconsistencies() ([]StockEntry, error) {
	snapshot, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	var bad []StockEntry
	for _, e := range snapshot {
		if e.Stock != e.Moved {
			bad = append(bad, e)
		}
	}
	return bad, nil
}
