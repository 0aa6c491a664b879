package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"books_api/internal/models"
	"books_api/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response constants to avoid magic strings and typos.
const (
	statusOK       = "ok"
	welcomeMessage = "Welcome to the Books API. Use /swagger/index.html for API docs."

	errBadCredentials  = "incorrect username or password"
	errBookNotFound    = "book not found"
	errInvalidBookID   = "invalid book id"
	errInternal        = "internal server error"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// BookRequest is the create payload. Every key must be present; empty strings
// and zero pages are accepted.
type BookRequest struct {
	Title       *string `json:"title" binding:"required" example:"Learn Go"`
	Description *string `json:"description" binding:"required" example:"A practical introduction"`
	Pages       *int    `json:"pages" binding:"required,min=0" example:"320"`
	Author      *string `json:"author" binding:"required" example:"admin"`
	Publisher   *string `json:"publisher" binding:"required" example:"Omega Press"`
	Year        *int    `json:"year" binding:"required" example:"2025"`
}

func (r BookRequest) toInput() models.BookInput {
	return models.BookInput{
		Title:       *r.Title,
		Description: *r.Description,
		Pages:       *r.Pages,
		Author:      *r.Author,
		Publisher:   *r.Publisher,
		Year:        *r.Year,
	}
}

// @Summary      Welcome
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": welcomeMessage})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Create book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        book  body      BookRequest  true  "Book to create"
// @Success      201   {object}  models.Book
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /books/ [post]
// @Security     BearerAuth
func (h *Handler) createBook(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Infow("books_bad_request_body", "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	user := currentUser(c)
	book, err := h.services.Books.Create(c.Request.Context(), user.Username, req.toInput())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "books_create_failed", err, "title", *req.Title)
		return
	}

	c.JSON(http.StatusCreated, book)
}

// @Summary      List books
// @Tags         books
// @Produce      json
// @Success      200  {array}   models.Book
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /books/ [get]
// @Security     BearerAuth
func (h *Handler) listBooks(c *gin.Context) {
	books, err := h.services.Books.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "books_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// @Summary      Delete book
// @Tags         books
// @Param        id   path      int  true  "Book ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /books/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteBook(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBookID})
		return
	}

	user := currentUser(c)
	if err := h.services.Books.Delete(c.Request.Context(), user.Username, id); err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errBookNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "books_delete_failed", err, "id", id)
		return
	}

	c.Status(http.StatusNoContent)
}
