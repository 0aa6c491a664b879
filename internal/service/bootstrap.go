package service

import (
	"context"
	"fmt"

	"books_api/internal/models"
	"books_api/internal/repository"
)

// SampleBooks is the catalog seeded into an empty store.
var SampleBooks = []models.BookInput{
	{Title: "Learn FastAPI", Description: "A complete guide to FastAPI", Pages: 300, Author: "admin", Publisher: "Omega Press", Year: 2025},
	{Title: "Python Basics", Description: "Introduction to Python", Pages: 250, Author: "admin", Publisher: "Omega Press", Year: 2024},
	{Title: "Advanced SQLAlchemy", Description: "Deep dive into SQLAlchemy ORM", Pages: 400, Author: "admin", Publisher: "Omega Press", Year: 2023},
}

// SeedBooks inserts samples only when the store holds no books at all.
// It reports whether anything was written.
func SeedBooks(ctx context.Context, books repository.BookRepo, samples []models.BookInput) (bool, error) {
	n, err := books.Count(ctx)
	if err != nil {
		return false, storageErr("count books", err)
	}
	if n > 0 || len(samples) == 0 {
		return false, nil
	}
	if err := books.InsertBatch(ctx, samples); err != nil {
		return false, storageErr("seed books", err)
	}
	return true, nil
}

// AdminAccount returns the provisioned user with a bcrypt hash. An explicit
// hash wins over a plaintext password.
func AdminAccount(username, fullName, email, password, passwordHash string) (models.User, error) {
	hash := passwordHash
	if hash == "" {
		var err error
		if hash, err = HashPassword(password); err != nil {
			return models.User{}, fmt.Errorf("admin password: %w", err)
		}
	}
	return models.User{
		Username:     username,
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
	}, nil
}

// EnsureUser inserts u into store unless a user with that name exists.
func EnsureUser(ctx context.Context, store repository.UserStore, u models.User) (bool, error) {
	existing, err := store.GetByUsername(ctx, u.Username)
	if err != nil {
		return false, storageErr("lookup user", err)
	}
	if existing != nil {
		return false, nil
	}
	if _, err := store.Create(ctx, u); err != nil {
		return false, storageErr("create user", err)
	}
	return true, nil
}
