package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dstanziola/copypoint/store"
)

// User is an application account. PasswordHash is never serialized.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Role         string `json:"role"` // ADMIN | VENDEDOR
	Active       bool   `json:"active"`
	PasswordHash string `json:"-"`
}

// UserInput is the validated payload for creating a user.
type UserInput struct {
	Username string `validate:"required,min=3,max=50"`
	Password string `validate:"required,min=8"`
	Role     string `validate:"required,oneof=ADMIN VENDEDOR"`
}

// UserService manages accounts in the usuarios table. Passwords are hashed
// through the injected PasswordHasher; plaintext never reaches the store.
type UserService struct {
	db     *store.DB
	hasher *PasswordHasher
}

// NewUserService creates a UserService on db hashing with hasher.
func NewUserService(db *store.DB, hasher *PasswordHasher) *UserService {
	return &UserService{db: db, hasher: hasher}
}

// Create inserts a new account with a hashed password.
func (s *UserService) Create(in UserInput) (*User, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("user: invalid input: %w", err)
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("user: hash password: %w", err)
	}
	res, err := s.db.Exec(
		`INSERT INTO usuarios (nombre_usuario, password_hash, rol) VALUES (?, ?, ?)`,
		in.Username, hash, in.Role)
	if err != nil {
		return nil, fmt.Errorf("user: insert: %w", err)
	}
	id, _ := res.LastInsertId()
	return &User{ID: id, Username: in.Username, Role: in.Role, Active: true, PasswordHash: hash}, nil
}

// GetByUsername fetches an active account by username.
func (s *UserService) GetByUsername(username string) (*User, error) {
	var u User
	err := s.db.QueryRow(
		`SELECT id_usuario, nombre_usuario, password_hash, rol, activo
		 FROM usuarios WHERE nombre_usuario = ? AND activo = 1`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user: get %q: %w", username, err)
	}
	return &u, nil
}

// Deactivate disables an account without deleting its history.
func (s *UserService) Deactivate(id int64) error {
	res, err := s.db.Exec(
		`UPDATE usuarios SET activo = 0 WHERE id_usuario = ? AND activo = 1`, id)
	if err != nil {
		return fmt.Errorf("user: deactivate %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
