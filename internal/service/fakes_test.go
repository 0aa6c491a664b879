package service

import (
	"context"
	"fmt"
	"time"

	"books_api/internal/models"
	"books_api/internal/repository"
)

// mockCreds is a lightweight in-test credential store.
type mockCreds struct {
	GetByUsernameFn func(username string) (*models.User, error)
	getCalls        []string
}

func (m *mockCreds) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.getCalls = append(m.getCalls, username)
	return m.GetByUsernameFn(username)
}

// fakeBookRepo keeps books in memory and hands out increasing ids.
type fakeBookRepo struct {
	books  []models.Book
	nextID int
	err    error
}

func (f *fakeBookRepo) Create(_ context.Context, in models.BookInput) (models.Book, error) {
	if f.err != nil {
		return models.Book{}, f.err
	}
	f.nextID++
	b := in.WithID(f.nextID)
	f.books = append(f.books, b)
	return b, nil
}

func (f *fakeBookRepo) List(context.Context) ([]models.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Book{}, f.books...), nil
}

func (f *fakeBookRepo) Delete(_ context.Context, id int) (models.Book, error) {
	if f.err != nil {
		return models.Book{}, f.err
	}
	for i, b := range f.books {
		if b.ID == id {
			f.books = append(f.books[:i], f.books[i+1:]...)
			return b, nil
		}
	}
	return models.Book{}, fmt.Errorf("delete book %d: %w", id, repository.ErrNotFound)
}

func (f *fakeBookRepo) Count(context.Context) (int, error) {
	return len(f.books), f.err
}

func (f *fakeBookRepo) InsertBatch(ctx context.Context, in []models.BookInput) error {
	for _, b := range in {
		if _, err := f.Create(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

// fakeEventRepo records appended events and captures List filters.
type fakeEventRepo struct {
	appended  []models.BookEvent
	appendErr error

	gotFrom time.Time
	gotTo   time.Time
	gotType string
	events  []models.BookEvent
	err     error
	calls   int
}

func (f *fakeEventRepo) Append(_ context.Context, e models.BookEvent) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, e)
	return nil
}

func (f *fakeEventRepo) List(_ context.Context, from, to time.Time, typ string) ([]models.BookEvent, error) {
	f.calls++
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.events, f.err
}
