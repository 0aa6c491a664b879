package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"books_api/internal/models"
	"books_api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles login and bearer token verification.
type AuthService struct {
	creds  repository.Credentials
	tokens TokenService
}

func NewAuthService(creds repository.Credentials, tokens TokenService) *AuthService {
	return &AuthService{creds: creds, tokens: tokens}
}

// GenerateToken validates credentials and returns a bearer token.
// Unknown, disabled and wrong-password users all yield ErrInvalidCredentials.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	u, err := s.creds.GetByUsername(ctx, username)
	if err != nil {
		return "", storageErr("lookup user", err)
	}
	if u == nil || u.Disabled {
		return "", ErrInvalidCredentials
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(u.Username)
}

// ParseToken resolves a bearer token to the user it was issued for.
func (s *AuthService) ParseToken(ctx context.Context, accessToken string) (models.User, error) {
	if strings.TrimSpace(accessToken) == "" {
		return models.User{}, ErrUnauthenticated
	}

	username, err := s.tokens.Subject(accessToken)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	u, err := s.creds.GetByUsername(ctx, username)
	if err != nil {
		return models.User{}, storageErr("lookup user", err)
	}
	if u == nil || u.Disabled {
		return models.User{}, ErrUnauthenticated
	}
	return *u, nil
}

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
