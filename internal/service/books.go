package service

import (
	"context"
	"errors"

	"books_api/internal/logger"
	"books_api/internal/models"
	"books_api/internal/repository"
)

// BookService performs catalog operations and records them in the audit log.
type BookService struct {
	books  repository.BookRepo
	events repository.EventRepo
	log    *logger.Logger
}

func NewBookService(books repository.BookRepo, events repository.EventRepo, log *logger.Logger) *BookService {
	if log == nil {
		log = logger.NewNop()
	}
	return &BookService{books: books, events: events, log: log}
}

func (s *BookService) Create(ctx context.Context, actor string, in models.BookInput) (models.Book, error) {
	b, err := s.books.Create(ctx, in)
	if err != nil {
		return models.Book{}, storageErr("create book", err)
	}
	s.record(ctx, models.EventCreated, b, actor)
	return b, nil
}

func (s *BookService) List(ctx context.Context) ([]models.Book, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, storageErr("list books", err)
	}
	return books, nil
}

// Delete removes a book; a missing id yields ErrBookNotFound.
func (s *BookService) Delete(ctx context.Context, actor string, id int) error {
	b, err := s.books.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrBookNotFound
	}
	if err != nil {
		return storageErr("delete book", err)
	}
	s.record(ctx, models.EventDeleted, b, actor)
	return nil
}

// record appends an audit entry. The catalog change already happened, so a
// failure here is logged rather than returned.
func (s *BookService) record(ctx context.Context, typ string, b models.Book, actor string) {
	if s.events == nil {
		return
	}
	err := s.events.Append(ctx, models.BookEvent{
		Type:   typ,
		BookID: b.ID,
		Title:  b.Title,
		Actor:  actor,
	})
	if err != nil {
		s.log.Warnw("book_event_append_failed", "type", typ, "book_id", b.ID, "err", err)
	}
}
