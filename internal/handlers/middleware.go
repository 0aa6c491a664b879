package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"books_api/internal/models"
	"books_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	ctxUserKey      = "user"
	ctxRequestIDKey = "requestId"
	headerRequestID = "X-Request-ID"

	// browsers cannot set headers on a WebSocket handshake
	wsTokenQueryParam = "access_token"
)

func (h *Handler) userMiddleware(c *gin.Context) {
	token, ok := h.bearerToken(c)
	if !ok {
		return
	}

	user, err := h.services.ParseToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			h.log.Infow("auth_token_rejected", "err", err, "path", c.Request.URL.Path)
			abortUnauthorized(c, "invalid or expired token")
			return
		}
		h.log.Errorw("auth_token_lookup_failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errInternal})
		return
	}

	// store in Gin context
	c.Set(ctxUserKey, user)
	c.Next()
}

// bearerToken extracts the token from the Authorization header. WebSocket
// handshakes may pass it as ?access_token= instead. On failure the request
// is aborted with 401.
func (h *Handler) bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if websocket.IsWebSocketUpgrade(c.Request) {
			if tok := c.Query(wsTokenQueryParam); tok != "" {
				return tok, true
			}
		}
		abortUnauthorized(c, "missing Authorization header")
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		abortUnauthorized(c, "invalid Authorization header format")
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// currentUser returns the user stored by userMiddleware.
func currentUser(c *gin.Context) models.User {
	if v, ok := c.Get(ctxUserKey); ok {
		if u, ok := v.(models.User); ok {
			return u
		}
	}
	return models.User{}
}

// requestLogger tags each request with an id and logs its outcome.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()

	reqID := c.GetHeader(headerRequestID)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	c.Set(ctxRequestIDKey, reqID)
	c.Header(headerRequestID, reqID)

	c.Next()

	h.log.Infow("http_request",
		"request_id", reqID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"client_ip", c.ClientIP(),
	)
}
