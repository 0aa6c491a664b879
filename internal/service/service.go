package service

import (
	"context"

	"books_api/internal/logger"
	"books_api/internal/models"
	"books_api/internal/repository"
)

// Authorization turns credentials into bearer tokens and back into users.
type Authorization interface {
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(ctx context.Context, accessToken string) (models.User, error)
}

// Books exposes catalog operations. actor is the username performing the change.
type Books interface {
	Create(ctx context.Context, actor string, in models.BookInput) (models.Book, error)
	List(ctx context.Context) ([]models.Book, error)
	Delete(ctx context.Context, actor string, id int) error
}

// EventLog exposes the append-only audit log with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.BookEvent, error)
}

// Service aggregates all sub-services used by the HTTP layer.
type Service struct {
	Authorization
	Books
	EventLog
}

// NewService wires the repository layer, credential store and token scheme into services.
func NewService(repos *repository.Repository, creds repository.Credentials, tokens TokenService, log *logger.Logger) *Service {
	return &Service{
		Authorization: NewAuthService(creds, tokens),
		Books:         NewBookService(repos.Books, repos.Events, log),
		EventLog:      NewEventLogService(repos.Events),
	}
}
