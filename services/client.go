package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dstanziola/copypoint/store"
)

// Client is a customer a sale can be attributed to.
type Client struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	RUC    string `json:"ruc"`
	Active bool   `json:"active"`
}

// ClientInput is the validated payload for creating a client.
type ClientInput struct {
	Name string `validate:"required,min=2,max=200"`
	RUC  string `validate:"max=30"`
}

// ClientService manages the clientes table.
type ClientService struct {
	db *store.DB
}

// NewClientService creates a ClientService on db.
func NewClientService(db *store.DB) *ClientService {
	return &ClientService{db: db}
}

// Create inserts a new client.
func (s *ClientService) Create(in ClientInput) (*Client, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("client: invalid input: %w", err)
	}
	res, err := s.db.Exec(
		`INSERT INTO clientes (nombre, ruc) VALUES (?, ?)`, in.Name, in.RUC)
	if err != nil {
		return nil, fmt.Errorf("client: insert: %w", err)
	}
	id, _ := res.LastInsertId()
	return &Client{ID: id, Name: in.Name, RUC: in.RUC, Active: true}, nil
}

// Get fetches an active client by id.
func (s *ClientService) Get(id int64) (*Client, error) {
	var c Client
	err := s.db.QueryRow(
		`SELECT id_cliente, nombre, COALESCE(ruc, ''), activo
		 FROM clientes WHERE id_cliente = ? AND activo = 1`, id).
		Scan(&c.ID, &c.Name, &c.RUC, &c.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("client: get %d: %w", id, err)
	}
	return &c, nil
}

// List returns all active clients ordered by name.
func (s *ClientService) List() ([]Client, error) {
	rows, err := s.db.Query(
		`SELECT id_cliente, nombre, COALESCE(ruc, ''), activo
		 FROM clientes WHERE activo = 1 ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("client: list: %w", err)
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.RUC, &c.Active); err != nil {
			return nil, fmt.Errorf("client: scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
