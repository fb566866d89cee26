package services

import (
	"errors"
	"fmt"

	"github.com/dstanziola/copypoint/store"
)

// ErrInsufficientStock is returned when a sale line exceeds the available
// stock of its product.
var ErrInsufficientStock = errors.New("services: insufficient stock")

// SaleLine is one product position inside a sale.
type SaleLine struct {
	ProductID int64 `validate:"required,gt=0"`
	Quantity  int   `validate:"required,gt=0"`
}

// SaleInput is the validated payload for registering a sale.
type SaleInput struct {
	ClientID    int64      // optional, 0 for walk-in
	Responsible string     `validate:"max=100"`
	Lines       []SaleLine `validate:"required,min=1,dive"`
}

// Sale is a completed sale with computed totals.
type Sale struct {
	ID          int64   `json:"id"`
	ClientID    int64   `json:"client_id,omitempty"`
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
	Responsible string  `json:"responsible,omitempty"`
}

// SalesService registers sales. It depends on ProductService for price
// lookup and stock checks, and records a VENTA movement per line.
type SalesService struct {
	db       *store.DB
	products *ProductService
}

// NewSalesService creates a SalesService on db using products for stock.
func NewSalesService(db *store.DB, products *ProductService) *SalesService {
	return &SalesService{db: db, products: products}
}

// Create registers a sale: validates every line against current stock,
// computes totals from the product catalog, decrements stock, and writes
// the sale, its lines, and the movements in one transaction.
func (s *SalesService) Create(in SaleInput) (*Sale, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("sales: invalid input: %w", err)
	}

	type pricedLine struct {
		SaleLine
		unitPrice float64
		taxRate   float64
	}
	lines := make([]pricedLine, 0, len(in.Lines))
	var subtotal, tax float64
	for _, line := range in.Lines {
		p, err := s.products.Get(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("sales: product %d: %w", line.ProductID, err)
		}
		if p.Stock < line.Quantity {
			return nil, fmt.Errorf("sales: %q has %d in stock, requested %d: %w",
				p.Name, p.Stock, line.Quantity, ErrInsufficientStock)
		}
		lines = append(lines, pricedLine{SaleLine: line, unitPrice: p.Price, taxRate: p.TaxRate})
		subtotal += p.Price * float64(line.Quantity)
		tax += p.Price * float64(line.Quantity) * p.TaxRate
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("sales: begin: %w", err)
	}
	defer tx.Rollback()

	var clientID any
	if in.ClientID > 0 {
		clientID = in.ClientID
	}
	res, err := tx.Exec(
		`INSERT INTO ventas (id_cliente, subtotal, impuestos, total, responsable)
		 VALUES (?, ?, ?, ?, ?)`,
		clientID, subtotal, tax, subtotal+tax, in.Responsible)
	if err != nil {
		return nil, fmt.Errorf("sales: insert sale: %w", err)
	}
	saleID, _ := res.LastInsertId()

	for _, line := range lines {
		if _, err := tx.Exec(
			`INSERT INTO detalle_ventas (id_venta, id_producto, cantidad, precio_unitario)
			 VALUES (?, ?, ?, ?)`,
			saleID, line.ProductID, line.Quantity, line.unitPrice); err != nil {
			return nil, fmt.Errorf("sales: insert line: %w", err)
		}
		if _, err := tx.Exec(
			`UPDATE productos SET stock = stock - ? WHERE id_producto = ?`,
			line.Quantity, line.ProductID); err != nil {
			return nil, fmt.Errorf("sales: decrement stock: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT INTO movimientos (id_producto, tipo_movimiento, cantidad, responsable)
			 VALUES (?, 'VENTA', ?, ?)`,
			line.ProductID, -line.Quantity, in.Responsible); err != nil {
			return nil, fmt.Errorf("sales: insert movement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sales: commit: %w", err)
	}
	s.products.cache.Flush()

	return &Sale{
		ID:          saleID,
		ClientID:    in.ClientID,
		Subtotal:    subtotal,
		Tax:         tax,
		Total:       subtotal + tax,
		Responsible: in.Responsible,
	}, nil
}

// Get fetches a sale by id.
func (s *SalesService) Get(id int64) (*Sale, error) {
	var sale Sale
	var clientID *int64
	err := s.db.QueryRow(
		`SELECT id_venta, id_cliente, subtotal, impuestos, total, COALESCE(responsable, '')
		 FROM ventas WHERE id_venta = ?`, id).
		Scan(&sale.ID, &clientID, &sale.Subtotal, &sale.Tax, &sale.Total, &sale.Responsible)
	if err != nil {
		return nil, fmt.Errorf("sales: get %d: %w", id, err)
	}
	if clientID != nil {
		sale.ClientID = *clientID
	}
	return &sale, nil
}
