package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"books_api/internal/models"

	"github.com/jmoiron/sqlx"
)

type BookSQL struct {
	db *sqlx.DB
}

func NewBookSQL(db *sqlx.DB) *BookSQL { return &BookSQL{db: db} }

// Ensure implementation of BookRepo interface at compile time.
var _ BookRepo = (*BookSQL)(nil)

// Queries use '?' placeholders and are rebound for the active driver.
const (
	insertBookSQL         = `INSERT INTO books (title, description, pages, author, publisher, year) VALUES (?, ?, ?, ?, ?, ?) RETURNING id`
	insertBookNoReturnSQL = `INSERT INTO books (title, description, pages, author, publisher, year) VALUES (?, ?, ?, ?, ?, ?)`
	selectBooksSQL        = `SELECT id, title, description, pages, author, publisher, year FROM books ORDER BY id`
	deleteBookSQL         = `DELETE FROM books WHERE id = ? RETURNING id, title, description, pages, author, publisher, year`
	countBooksSQL         = `SELECT COUNT(*) FROM books`
)

// Create inserts a book and returns it with the id assigned by the store.
func (r *BookSQL) Create(ctx context.Context, in models.BookInput) (models.Book, error) {
	var id int
	err := withConn(ctx, r.db, func(conn *sqlx.Conn) error {
		return conn.QueryRowxContext(ctx, conn.Rebind(insertBookSQL),
			in.Title, in.Description, in.Pages, in.Author, in.Publisher, in.Year,
		).Scan(&id)
	})
	if err != nil {
		return models.Book{}, fmt.Errorf("insert book %q: %w", in.Title, err)
	}
	return in.WithID(id), nil
}

// List returns every stored book in insertion order. The result is never nil.
func (r *BookSQL) List(ctx context.Context) ([]models.Book, error) {
	books := make([]models.Book, 0)
	err := withConn(ctx, r.db, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &books, conn.Rebind(selectBooksSQL))
	})
	if err != nil {
		return nil, fmt.Errorf("select books: %w", err)
	}
	return books, nil
}

// Delete removes the book with the given id and returns it as it was stored.
// A missing id yields ErrNotFound.
func (r *BookSQL) Delete(ctx context.Context, id int) (models.Book, error) {
	var b models.Book
	err := withConn(ctx, r.db, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &b, conn.Rebind(deleteBookSQL), id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, fmt.Errorf("delete book %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Book{}, fmt.Errorf("delete book %d: %w", id, err)
	}
	return b, nil
}

func (r *BookSQL) Count(ctx context.Context) (int, error) {
	var n int
	err := withConn(ctx, r.db, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &n, conn.Rebind(countBooksSQL))
	})
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}

// InsertBatch stores all books in one transaction; either all or none are written.
func (r *BookSQL) InsertBatch(ctx context.Context, in []models.BookInput) error {
	err := withConn(ctx, r.db, func(conn *sqlx.Conn) error {
		tx, err := conn.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		q := tx.Rebind(insertBookNoReturnSQL)
		for _, b := range in {
			if _, err := tx.ExecContext(ctx, q, b.Title, b.Description, b.Pages, b.Author, b.Publisher, b.Year); err != nil {
				return fmt.Errorf("insert %q: %w", b.Title, err)
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("insert book batch: %w", err)
	}
	return nil
}
