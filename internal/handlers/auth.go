package handlers

import (
	"errors"
	"net/http"

	"books_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const tokenTypeBearer = "bearer"

// OAuth2 password-flow form.
type tokenForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"bearer"`
}

// @Summary      Log in
// @Description  Exchange username and password for a bearer token.
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  TokenResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /token [post]
func (h *Handler) issueToken(c *gin.Context) {
	var input tokenForm
	if err := c.ShouldBindWith(&input, binding.FormPost); err != nil {
		h.log.Infow("auth_bad_request_body", "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadCredentials})
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.log.Infow("auth_token_failed", "username", input.Username)
			c.JSON(http.StatusBadRequest, gin.H{"error": errBadCredentials})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "auth_token_error", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: tokenTypeBearer})
}
