package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"books_api/internal/models"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when the addressed row does not exist.
var ErrNotFound = errors.New("not found")

// Credentials looks users up by username. A missing user is (nil, nil).
type Credentials interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// UserStore is a Credentials backed by a table that can also be written to.
type UserStore interface {
	Credentials
	Create(ctx context.Context, u models.User) (int, error)
}

type BookRepo interface {
	Create(ctx context.Context, in models.BookInput) (models.Book, error)
	List(ctx context.Context) ([]models.Book, error)
	Delete(ctx context.Context, id int) (models.Book, error)
	Count(ctx context.Context) (int, error)
	InsertBatch(ctx context.Context, in []models.BookInput) error
}

type EventRepo interface {
	Append(ctx context.Context, e models.BookEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.BookEvent, error)
}

type Repository struct {
	Books  BookRepo
	Events EventRepo
	Users  UserStore
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Books:  NewBookSQL(db),
		Events: NewEventSQL(db),
		Users:  NewUserSQL(db),
	}
}

// withConn runs fn on a dedicated pooled connection and always releases it.
func withConn(ctx context.Context, db *sqlx.DB, fn func(conn *sqlx.Conn) error) error {
	conn, err := db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()
	return fn(conn)
}
