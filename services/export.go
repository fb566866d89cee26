package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// ExportService renders movement logs and sales summaries as CSV for the
// export screens. It works entirely through MovementService and
// ReportService; it never touches the store directly.
type ExportService struct {
	movements *MovementService
	reports   *ReportService
}

// NewExportService creates an ExportService over its collaborators.
func NewExportService(movements *MovementService, reports *ReportService) *ExportService {
	return &ExportService{movements: movements, reports: reports}
}

// MovementsCSV writes the movement log of a product as CSV.
func (s *ExportService) MovementsCSV(w io.Writer, productID int64) error {
	movements, err := s.movements.ListByProduct(productID)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "tipo", "cantidad", "fecha", "responsable", "observaciones"}); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for _, m := range movements {
		record := []string{
			strconv.FormatInt(m.ID, 10),
			m.Tipo,
			strconv.Itoa(m.Quantity),
			m.Date.Format(time.RFC3339),
			m.Responsible,
			m.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export: write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SalesSummaryCSV writes a one-row CSV with the sales totals for [from, to].
func (s *ExportService) SalesSummaryCSV(w io.Writer, from, to time.Time) error {
	sum, err := s.reports.SalesSummary(from, to)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"desde", "hasta", "ventas", "subtotal", "impuestos", "total"}); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	record := []string{
		from.Format("2006-01-02"),
		to.Format("2006-01-02"),
		strconv.Itoa(sum.Count),
		strconv.FormatFloat(sum.Subtotal, 'f', 2, 64),
		strconv.FormatFloat(sum.Tax, 'f', 2, 64),
		strconv.FormatFloat(sum.Total, 'f', 2, 64),
	}
	if err := cw.Write(record); err != nil {
		return fmt.Errorf("export: write record: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
