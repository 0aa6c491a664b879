package service

import (
	"context"
	"errors"
	"testing"

	"books_api/internal/models"
)

func newAdminCreds(t *testing.T, password string, disabled bool) *mockCreds {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	admin := &models.User{Username: "admin", FullName: "Administrator", PasswordHash: hash, Disabled: disabled}
	return &mockCreds{
		GetByUsernameFn: func(username string) (*models.User, error) {
			if username != admin.Username {
				return nil, nil
			}
			u := *admin
			return &u, nil
		},
	}
}

// --- HashPassword tests ---

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cr3t")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "s3cr3t" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if err := verifyPassword(hash, "s3cr3t"); err != nil {
		t.Errorf("hash does not verify with original password: %v", err)
	}
	if err := verifyPassword(hash, "other"); err == nil {
		t.Errorf("hash verified with the wrong password")
	}

	if _, err := HashPassword("   "); err == nil {
		t.Fatalf("expected error for empty password, got nil")
	}
}

// --- GenerateToken tests ---

func TestAuthService_GenerateToken_RoundTrip(t *testing.T) {
	creds := newAdminCreds(t, "password", false)
	svc := NewAuthService(creds, newTestTokens(t))

	token, err := svc.GenerateToken(context.Background(), "admin", "password")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if token == "" || token == "admin" {
		t.Fatalf("expected a signed token, got %q", token)
	}

	u, err := svc.ParseToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if u.Username != "admin" || u.FullName != "Administrator" {
		t.Fatalf("unexpected user from token: %+v", u)
	}
}

func TestAuthService_GenerateToken_InvalidCredentials(t *testing.T) {
	cases := []struct {
		name     string
		creds    *mockCreds
		username string
		password string
	}{
		{"wrong password", newAdminCreds(t, "password", false), "admin", "wrong"},
		{"empty password", newAdminCreds(t, "password", false), "admin", ""},
		{"unknown user", newAdminCreds(t, "password", false), "ghost", "password"},
		{"disabled user", newAdminCreds(t, "password", true), "admin", "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewAuthService(tc.creds, newTestTokens(t))
			token, err := svc.GenerateToken(context.Background(), tc.username, tc.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
			}
			if token != "" {
				t.Fatalf("no token expected, got %q", token)
			}
		})
	}
}

func TestAuthService_GenerateToken_StoreError(t *testing.T) {
	creds := &mockCreds{
		GetByUsernameFn: func(string) (*models.User, error) { return nil, errors.New("query failed") },
	}
	svc := NewAuthService(creds, newTestTokens(t))

	_, err := svc.GenerateToken(context.Background(), "admin", "pw")
	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("store failure must not look like bad credentials")
	}
}

// --- ParseToken tests ---

func TestAuthService_ParseToken_Unauthenticated(t *testing.T) {
	tokens := newTestTokens(t)
	ghostToken, err := tokens.Issue("ghost")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	disabledToken, err := tokens.Issue("admin")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	cases := []struct {
		name  string
		creds *mockCreds
		token string
	}{
		{"empty", newAdminCreds(t, "pw", false), ""},
		{"malformed", newAdminCreds(t, "pw", false), "not-a-jwt"},
		{"raw username", newAdminCreds(t, "pw", false), "admin"},
		{"unknown subject", newAdminCreds(t, "pw", false), ghostToken},
		{"disabled user", newAdminCreds(t, "pw", true), disabledToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewAuthService(tc.creds, tokens)
			_, err := svc.ParseToken(context.Background(), tc.token)
			if !errors.Is(err, ErrUnauthenticated) {
				t.Fatalf("expected ErrUnauthenticated, got %v", err)
			}
		})
	}
}

func TestAuthService_ParseToken_StoreError(t *testing.T) {
	tokens := newTestTokens(t)
	token, _ := tokens.Issue("admin")
	creds := &mockCreds{
		GetByUsernameFn: func(string) (*models.User, error) { return nil, errors.New("down") },
	}
	svc := NewAuthService(creds, tokens)

	_, err := svc.ParseToken(context.Background(), token)
	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}

func TestAuthService_WithUsernameTokens(t *testing.T) {
	svc := NewAuthService(newAdminCreds(t, "password", false), UsernameTokens{})

	token, err := svc.GenerateToken(context.Background(), "admin", "password")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token != "admin" {
		t.Fatalf("expected username token, got %q", token)
	}
	u, err := svc.ParseToken(context.Background(), token)
	if err != nil || u.Username != "admin" {
		t.Fatalf("ParseToken: %+v, %v", u, err)
	}
	if _, err := svc.ParseToken(context.Background(), "ghost"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for unknown user, got %v", err)
	}
}
