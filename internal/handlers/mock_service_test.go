package handlers

import (
	"context"
	"net/http"
	"sync"

	"books_api/internal/models"
	"books_api/internal/service"

	"github.com/gin-gonic/gin"
)

// mockAuth implements service.Authorization. Any token other than badToken
// resolves to user.
type mockAuth struct {
	token    string
	genErr   error
	user     models.User
	parseErr error

	lastUsername   string
	lastPassword   string
	lastParseToken string
}

func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastUsername, m.lastPassword = username, password
	if m.genErr != nil {
		return "", m.genErr
	}
	return m.token, nil
}

func (m *mockAuth) ParseToken(_ context.Context, accessToken string) (models.User, error) {
	m.lastParseToken = accessToken
	if m.parseErr != nil {
		return models.User{}, m.parseErr
	}
	return m.user, nil
}

// mockBooks implements service.Books in memory.
type mockBooks struct {
	mu      sync.Mutex
	books   []models.Book
	nextID  int
	err     error
	actors  []string
	deleted []int
}

func (m *mockBooks) Create(_ context.Context, actor string, in models.BookInput) (models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.Book{}, m.err
	}
	m.nextID++
	b := in.WithID(m.nextID)
	m.books = append(m.books, b)
	m.actors = append(m.actors, actor)
	return b, nil
}

func (m *mockBooks) List(context.Context) ([]models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]models.Book{}, m.books...), nil
}

func (m *mockBooks) Delete(_ context.Context, actor string, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, b := range m.books {
		if b.ID == id {
			m.books = append(m.books[:i], m.books[i+1:]...)
			m.actors = append(m.actors, actor)
			m.deleted = append(m.deleted, id)
			return nil
		}
	}
	return service.ErrBookNotFound
}

// mockEventLog implements service.EventLog and records the last filter.
type mockEventLog struct {
	resp       []models.BookEvent
	err        error
	lastFilter service.LogFilter
	calls      int
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.BookEvent, error) {
	m.calls++
	m.lastFilter = f
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

const testUsername = "admin"

func newTestServices() (*service.Service, *mockAuth, *mockBooks, *mockEventLog) {
	auth := &mockAuth{token: "tok123", user: models.User{ID: 1, Username: testUsername}}
	books := &mockBooks{}
	events := &mockEventLog{}
	return &service.Service{Authorization: auth, Books: books, EventLog: events}, auth, books, events
}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil).InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+token)
	return h
}

func withHeaders(req *http.Request, h http.Header) *http.Request {
	for k, vv := range h {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
