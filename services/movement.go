package services

import (
	"fmt"
	"time"

	"github.com/dstanziola/copypoint/store"
)

// Movement is one inventory movement: positive quantities enter stock,
// negative quantities leave it.
type Movement struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	Tipo        string    `json:"tipo"` // ENTRADA | VENTA | AJUSTE
	Quantity    int       `json:"quantity"`
	Date        time.Time `json:"date"`
	Responsible string    `json:"responsible,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// MovementService records and queries inventory movements. Entries and
// adjustments go through here; sale movements are written by SalesService
// inside the sale transaction.
type MovementService struct {
	db       *store.DB
	products *ProductService
}

// NewMovementService creates a MovementService on db using products to
// keep stock in step with recorded movements.
func NewMovementService(db *store.DB, products *ProductService) *MovementService {
	return &MovementService{db: db, products: products}
}

// RecordEntry registers an incoming stock movement and increments stock.
func (s *MovementService) RecordEntry(productID int64, quantity int, responsible, notes string) (*Movement, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("movement: entry quantity must be positive, got %d", quantity)
	}
	return s.record(productID, "ENTRADA", quantity, responsible, notes)
}

// RecordAdjustment registers a manual correction; quantity may be negative.
func (s *MovementService) RecordAdjustment(productID int64, quantity int, responsible, notes string) (*Movement, error) {
	if quantity == 0 {
		return nil, fmt.Errorf("movement: adjustment quantity must not be zero")
	}
	return s.record(productID, "AJUSTE", quantity, responsible, notes)
}

func (s *MovementService) record(productID int64, tipo string, quantity int, responsible, notes string) (*Movement, error) {
	if err := s.products.AdjustStock(productID, quantity); err != nil {
		return nil, fmt.Errorf("movement: %w", err)
	}
	res, err := s.db.Exec(
		`INSERT INTO movimientos (id_producto, tipo_movimiento, cantidad, responsable, observaciones)
		 VALUES (?, ?, ?, ?, ?)`,
		productID, tipo, quantity, responsible, notes)
	if err != nil {
		return nil, fmt.Errorf("movement: insert: %w", err)
	}
	id, _ := res.LastInsertId()
	return &Movement{
		ID:          id,
		ProductID:   productID,
		Tipo:        tipo,
		Quantity:    quantity,
		Responsible: responsible,
		Notes:       notes,
	}, nil
}

// ListByProduct returns all movements of a product, newest first.
func (s *MovementService) ListByProduct(productID int64) ([]Movement, error) {
	rows, err := s.db.Query(
		`SELECT id_movimiento, id_producto, tipo_movimiento, cantidad, fecha,
		        COALESCE(responsable, ''), COALESCE(observaciones, '')
		 FROM movimientos WHERE id_producto = ? ORDER BY fecha DESC, id_movimiento DESC`,
		productID)
	if err != nil {
		return nil, fmt.Errorf("movement: list for product %d: %w", productID, err)
	}
	defer rows.Close()

	var out []Movement
	for rows.Next() {
		var m Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Tipo, &m.Quantity, &m.Date, &m.Responsible, &m.Notes); err != nil {
			return nil, fmt.Errorf("movement: scan: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
