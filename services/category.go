package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dstanziola/copypoint/store"
)

// Category is a product grouping. Tipo distinguishes stocked materials
// from services, which never carry stock.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Tipo string `json:"tipo"` // MATERIAL | SERVICIO
}

// CategoryInput is the validated payload for creating or updating a category.
type CategoryInput struct {
	Name string `validate:"required,min=2,max=100"`
	Tipo string `validate:"required,oneof=MATERIAL SERVICIO"`
}

// CategoryService manages the categorias table.
type CategoryService struct {
	db *store.DB
}

// NewCategoryService creates a CategoryService on db.
func NewCategoryService(db *store.DB) *CategoryService {
	return &CategoryService{db: db}
}

// Create inserts a new category.
func (s *CategoryService) Create(in CategoryInput) (*Category, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("category: invalid input: %w", err)
	}
	res, err := s.db.Exec(
		`INSERT INTO categorias (nombre, tipo) VALUES (?, ?)`, in.Name, in.Tipo)
	if err != nil {
		return nil, fmt.Errorf("category: insert: %w", err)
	}
	id, _ := res.LastInsertId()
	return &Category{ID: id, Name: in.Name, Tipo: in.Tipo}, nil
}

// Get fetches a category by id.
func (s *CategoryService) Get(id int64) (*Category, error) {
	var c Category
	err := s.db.QueryRow(
		`SELECT id_categoria, nombre, tipo FROM categorias WHERE id_categoria = ?`, id).
		Scan(&c.ID, &c.Name, &c.Tipo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("category: get %d: %w", id, err)
	}
	return &c, nil
}

// List returns all categories ordered by name.
func (s *CategoryService) List() ([]Category, error) {
	rows, err := s.db.Query(
		`SELECT id_categoria, nombre, tipo FROM categorias ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("category: list: %w", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Tipo); err != nil {
			return nil, fmt.Errorf("category: scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update renames or retypes a category.
func (s *CategoryService) Update(id int64, in CategoryInput) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("category: invalid input: %w", err)
	}
	res, err := s.db.Exec(
		`UPDATE categorias SET nombre = ?, tipo = ? WHERE id_categoria = ?`,
		in.Name, in.Tipo, id)
	if err != nil {
		return fmt.Errorf("category: update %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a category. Fails if products still reference it.
func (s *CategoryService) Delete(id int64) error {
	var refs int
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM productos WHERE id_categoria = ?`, id).Scan(&refs); err != nil {
		return fmt.Errorf("category: count references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("category: %d products still reference category %d", refs, id)
	}
	res, err := s.db.Exec(`DELETE FROM categorias WHERE id_categoria = ?`, id)
	if err != nil {
		return fmt.Errorf("category: delete %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
