package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dstanziola/copypoint/store"
)

// CompanyConfig is the single-row company record printed on tickets.
type CompanyConfig struct {
	Name    string  `json:"name"`
	RUC     string  `json:"ruc"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	ITBMS   float64 `json:"itbms"` // default sales tax rate
}

// CompanyInput is the validated payload for updating company data.
type CompanyInput struct {
	Name    string  `validate:"required,min=2,max=200"`
	RUC     string  `validate:"max=30"`
	Address string  `validate:"max=300"`
	Phone   string  `validate:"max=30"`
	ITBMS   float64 `validate:"gte=0,lte=1"`
}

// CompanyService manages the company_config singleton row.
type CompanyService struct {
	db *store.DB
}

// NewCompanyService creates a CompanyService on db.
func NewCompanyService(db *store.DB) *CompanyService {
	return &CompanyService{db: db}
}

// Get returns the company record, or defaults if none was saved yet.
func (s *CompanyService) Get() (*CompanyConfig, error) {
	var c CompanyConfig
	err := s.db.QueryRow(
		`SELECT nombre, COALESCE(ruc, ''), COALESCE(direccion, ''), COALESCE(telefono, ''), itbms
		 FROM company_config WHERE id = 1`).
		Scan(&c.Name, &c.RUC, &c.Address, &c.Phone, &c.ITBMS)
	if errors.Is(err, sql.ErrNoRows) {
		return &CompanyConfig{Name: "Copy Point S.A.", ITBMS: 0.07}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("company: get: %w", err)
	}
	return &c, nil
}

// Update writes the company record.
func (s *CompanyService) Update(in CompanyInput) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("company: invalid input: %w", err)
	}
	_, err := s.db.Exec(
		`INSERT INTO company_config (id, nombre, ruc, direccion, telefono, itbms)
		 VALUES (1, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   nombre = excluded.nombre, ruc = excluded.ruc, direccion = excluded.direccion,
		   telefono = excluded.telefono, itbms = excluded.itbms`,
		in.Name, in.RUC, in.Address, in.Phone, in.ITBMS)
	if err != nil {
		return fmt.Errorf("company: update: %w", err)
	}
	return nil
}
