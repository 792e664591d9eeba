// internal/users/users.go
//
// Player accounts: signup validation, bcrypt password hashing and lookups
// against the users table.

package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken   = errors.New("username taken")
	ErrInvalidUsername = errors.New("username must be 3-24 letters, numbers or underscores")
	ErrInvalidPassword = errors.New("password must be 8-100 chars")
	ErrNotFound        = errors.New("user not found")
)

// User matches the users table shape.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Store reads and writes the users table.
type Store struct {
	db   *sql.DB
	cost int
}

// NewStore returns a store hashing with bcrypt.DefaultCost.
func NewStore(db *sql.DB) *Store { return &Store{db: db, cost: bcrypt.DefaultCost} }

// WithCost overrides the bcrypt cost (tests use bcrypt.MinCost).
func (s *Store) WithCost(cost int) *Store {
	s.cost = cost
	return s
}

// Normalize trims whitespace around a username.
func Normalize(u string) string { return strings.TrimSpace(u) }

// Validate enforces basic username/password rules.
func Validate(username, password string) error {
	if len(username) < 3 || len(username) > 24 {
		return ErrInvalidUsername
	}
	for _, r := range username {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return ErrInvalidUsername
		}
	}
	if len(password) < 8 || len(password) > 100 {
		return ErrInvalidPassword
	}
	return nil
}

// Create validates input, checks uniqueness, hashes the password and
// inserts a new user.
func (s *Store) Create(ctx context.Context, username, password string) (*User, error) {
	username = Normalize(username)
	if err := Validate(username, password); err != nil {
		return nil, err
	}
	if _, err := s.ByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(h),
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt.Format(time.RFC3339)); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate returns the user when password matches.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.ByUsername(ctx, Normalize(username))
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// ByUsername looks a user up case-insensitively.
func (s *Store) ByUsername(ctx context.Context, username string) (*User, error) {
	return scan(s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE lower(username)=lower(?)`, username))
}

// ByID looks a user up by ID.
func (s *Store) ByID(ctx context.Context, id string) (*User, error) {
	return scan(s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id=?`, id))
}

func scan(row *sql.Row) (*User, error) {
	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}
