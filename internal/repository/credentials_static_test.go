package repository

import (
	"context"
	"testing"

	"books_api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticCredentials(t *testing.T) {
	store := NewStaticCredentials(models.User{Username: "admin", Email: "admin@example.com", PasswordHash: "h"})

	u, err := store.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "admin@example.com", u.Email)

	// Callers get a copy; the table stays fixed.
	u.PasswordHash = "changed"
	again, _ := store.GetByUsername(context.Background(), "admin")
	assert.Equal(t, "h", again.PasswordHash)

	missing, err := store.GetByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
