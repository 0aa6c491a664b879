package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"books_api/internal/models"
	"books_api/internal/repository"
	"books_api/internal/repository/db"
	"books_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteRouter wires the real stack: sqlite store, JWT tokens and a static
// admin account.
func newSQLiteRouter(t *testing.T) *gin.Engine {
	t.Helper()
	conn, err := db.InitDB(db.Options{
		Driver: db.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "books.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	admin, err := service.AdminAccount("admin", "Administrator", "admin@example.com", "password", "")
	require.NoError(t, err)

	tokens, err := service.NewJWTTokens(service.TokenConfig{Secret: "e2e-secret", TTL: time.Minute})
	require.NoError(t, err)

	repos := repository.NewRepository(conn)
	svc := service.NewService(repos, repository.NewStaticCredentials(admin), tokens, nil)
	return newTestRouter(svc)
}

func TestEndToEnd_LoginCreateListDelete(t *testing.T) {
	r := newSQLiteRouter(t)

	// No token: nothing gets created
	w := doJSON(r, http.MethodPost, "/books/", validBookJSON, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = postForm(r, "/token", url.Values{"username": {"admin"}, "password": {"wrong"}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postForm(r, "/token", url.Values{"username": {"admin"}, "password": {"password"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tok TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	require.NotEmpty(t, tok.AccessToken)
	assert.Equal(t, "bearer", tok.TokenType)

	w = doJSON(r, http.MethodGet, "/books/", "", tok.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = doJSON(r, http.MethodPost, "/books/", validBookJSON, tok.AccessToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Positive(t, created.ID)

	w = doJSON(r, http.MethodGet, "/books/", "", tok.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created, list[0])

	w = doJSON(r, http.MethodDelete, "/books/"+strconv.Itoa(created.ID), "", tok.AccessToken)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodDelete, "/books/"+strconv.Itoa(created.ID), "", tok.AccessToken)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/books/", "", tok.AccessToken)
	assert.JSONEq(t, `[]`, w.Body.String())

	// Both changes are in the audit log
	w = doJSON(r, http.MethodGet, "/events/", "", tok.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	var events struct {
		Count  int                `json:"count"`
		Events []models.BookEvent `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Equal(t, 2, events.Count)
	assert.Equal(t, models.EventCreated, events.Events[0].Type)
	assert.Equal(t, models.EventDeleted, events.Events[1].Type)
	assert.Equal(t, "admin", events.Events[1].Actor)
}

func TestEndToEnd_ForgedTokenRejected(t *testing.T) {
	r := newSQLiteRouter(t)

	other, err := service.NewJWTTokens(service.TokenConfig{Secret: "another-secret"})
	require.NoError(t, err)
	forged, err := other.Issue("admin")
	require.NoError(t, err)

	w := doJSON(r, http.MethodGet, "/books/", "", forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
