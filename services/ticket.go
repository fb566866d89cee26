package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dstanziola/copypoint/store"
)

// Ticket is a printed receipt record. Folio is unique per ticket and is
// what the reprint screens search by.
type Ticket struct {
	ID          int64     `json:"id"`
	Folio       string    `json:"folio"`
	Tipo        string    `json:"tipo"` // VENTA | ENTRADA
	SaleID      int64     `json:"sale_id,omitempty"`
	GeneratedBy string    `json:"generated_by,omitempty"`
	Date        time.Time `json:"date"`
}

// TicketService issues sale and entry tickets.
type TicketService struct {
	db *store.DB
}

// NewTicketService creates a TicketService on db.
func NewTicketService(db *store.DB) *TicketService {
	return &TicketService{db: db}
}

// IssueSaleTicket creates a ticket for a registered sale.
func (s *TicketService) IssueSaleTicket(saleID int64, generatedBy string) (*Ticket, error) {
	var exists int
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM ventas WHERE id_venta = ?`, saleID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("ticket: check sale %d: %w", saleID, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("ticket: sale %d: %w", saleID, ErrNotFound)
	}
	return s.issue("VENTA", saleID, generatedBy)
}

// IssueEntryTicket creates a ticket documenting an inventory entry.
func (s *TicketService) IssueEntryTicket(generatedBy string) (*Ticket, error) {
	return s.issue("ENTRADA", 0, generatedBy)
}

func (s *TicketService) issue(tipo string, saleID int64, generatedBy string) (*Ticket, error) {
	folio := newFolio(tipo)
	var saleRef any
	if saleID > 0 {
		saleRef = saleID
	}
	res, err := s.db.Exec(
		`INSERT INTO tickets (folio, tipo, id_venta, generado_por) VALUES (?, ?, ?, ?)`,
		folio, tipo, saleRef, generatedBy)
	if err != nil {
		return nil, fmt.Errorf("ticket: insert: %w", err)
	}
	id, _ := res.LastInsertId()
	return &Ticket{
		ID:          id,
		Folio:       folio,
		Tipo:        tipo,
		SaleID:      saleID,
		GeneratedBy: generatedBy,
		Date:        time.Now(),
	}, nil
}

// GetByFolio fetches a ticket by its folio.
func (s *TicketService) GetByFolio(folio string) (*Ticket, error) {
	var t Ticket
	var saleID *int64
	err := s.db.QueryRow(
		`SELECT id_ticket, folio, tipo, id_venta, COALESCE(generado_por, ''), fecha
		 FROM tickets WHERE folio = ?`, folio).
		Scan(&t.ID, &t.Folio, &t.Tipo, &saleID, &t.GeneratedBy, &t.Date)
	if err != nil {
		return nil, fmt.Errorf("ticket: folio %q: %w", folio, ErrNotFound)
	}
	if saleID != nil {
		t.SaleID = *saleID
	}
	return &t, nil
}

// newFolio builds folios like V-20260825-5F3A2C1B.
func newFolio(tipo string) string {
	prefix := strings.ToUpper(tipo[:1])
	short := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), short)
}
