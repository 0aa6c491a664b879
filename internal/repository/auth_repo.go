package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"books_api/internal/models"

	"github.com/jmoiron/sqlx"
)

// UserSQL is the table-backed credential store.
type UserSQL struct {
	db *sqlx.DB
}

func NewUserSQL(db *sqlx.DB) *UserSQL {
	return &UserSQL{db: db}
}

// Ensure implementation of UserStore interface at compile time.
var _ UserStore = (*UserSQL)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, full_name, email, password_hash, disabled) VALUES (?, ?, ?, ?, ?) RETURNING id`
	selectUserByUsernameSQL = `SELECT id, username, full_name, email, password_hash, disabled FROM users WHERE username = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserSQL) Create(ctx context.Context, u models.User) (int, error) {
	var id int
	err := withConn(ctx, r.db, func(conn *sqlx.Conn) error {
		return conn.QueryRowxContext(ctx, conn.Rebind(insertUserSQL),
			u.Username, u.FullName, u.Email, u.PasswordHash, u.Disabled,
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	return id, nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserSQL) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := withConn(ctx, r.db, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &u, conn.Rebind(selectUserByUsernameSQL), username)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}
