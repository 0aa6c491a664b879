package handlers

import (
	"books_api/internal/logger"
	"books_api/internal/service"

	_ "books_api/docs" // registers the OpenAPI document

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies. A nil logger discards output.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.root)
	router.GET("/health", h.health)

	// Login
	router.POST("/token", h.issueToken)

	// Everything below requires a bearer token
	h.registerBookRoutes(router)
	h.registerEventRoutes(router)

	return router
}

func (h *Handler) registerBookRoutes(r *gin.Engine) {
	books := r.Group("/books", h.userMiddleware)
	{
		books.POST("/", h.createBook)
		books.GET("/", h.listBooks)
		books.DELETE("/:id", h.deleteBook)
		// Catalog snapshots over WebSocket (HTTP upgrade) on the same port
		books.GET("/ws", h.wsBooks)
	}
}

func (h *Handler) registerEventRoutes(r *gin.Engine) {
	events := r.Group("/events", h.userMiddleware)
	{
		events.GET("/", h.getEvents)
	}
}
