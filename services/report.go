package services

import (
	"fmt"
	"time"

	"github.com/dstanziola/copypoint/store"
)

// SalesSummary aggregates sales over a period.
type SalesSummary struct {
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	Count    int       `json:"count"`
	Subtotal float64   `json:"subtotal"`
	Tax      float64   `json:"tax"`
	Total    float64   `json:"total"`
}

// LowStockItem is a product at or below the reorder threshold.
type LowStockItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
}

// ReportService runs the read-only aggregate queries behind the report
// screens.
type ReportService struct {
	db *store.DB
}

// NewReportService creates a ReportService on db.
func NewReportService(db *store.DB) *ReportService {
	return &ReportService{db: db}
}

// SalesSummary totals all sales in [from, to].
func (s *ReportService) SalesSummary(from, to time.Time) (*SalesSummary, error) {
	sum := &SalesSummary{From: from, To: to}
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(subtotal), 0), COALESCE(SUM(impuestos), 0), COALESCE(SUM(total), 0)
		 FROM ventas WHERE fecha >= ? AND fecha <= ?`, from, to).
		Scan(&sum.Count, &sum.Subtotal, &sum.Tax, &sum.Total)
	if err != nil {
		return nil, fmt.Errorf("report: sales summary: %w", err)
	}
	return sum, nil
}

// LowStock lists active products with stock at or below threshold.
func (s *ReportService) LowStock(threshold int) ([]LowStockItem, error) {
	rows, err := s.db.Query(
		`SELECT p.id_producto, p.nombre, p.stock
		 FROM productos p
		 JOIN categorias c ON c.id_categoria = p.id_categoria
		 WHERE p.activo = 1 AND c.tipo = 'MATERIAL' AND p.stock <= ?
		 ORDER BY p.stock, p.nombre`, threshold)
	if err != nil {
		return nil, fmt.Errorf("report: low stock: %w", err)
	}
	defer rows.Close()

	var out []LowStockItem
	for rows.Next() {
		var item LowStockItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Stock); err != nil {
			return nil, fmt.Errorf("report: scan: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
