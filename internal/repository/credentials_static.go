package repository

import (
	"context"

	"books_api/internal/models"
)

// StaticCredentials is an in-memory credential table fixed at construction.
type StaticCredentials struct {
	users map[string]models.User
}

var _ Credentials = (*StaticCredentials)(nil)

func NewStaticCredentials(users ...models.User) *StaticCredentials {
	m := make(map[string]models.User, len(users))
	for _, u := range users {
		m[u.Username] = u
	}
	return &StaticCredentials{users: m}
}

// GetByUsername returns a copy of the stored user, or (nil, nil).
func (s *StaticCredentials) GetByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
