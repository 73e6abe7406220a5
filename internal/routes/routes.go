package routes

import (
	"log/slog"

	"catalog-api/internal/handlers"
	"catalog-api/internal/middleware"
	"catalog-api/internal/repository"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine serving the product API on store.
func NewRouter(store repository.ProductStore, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	// Any method without a route on a known path gets 405 with Allow listing
	// the registered methods, including verbs like TRACE or PURGE.
	router.HandleMethodNotAllowed = true
	router.Use(middleware.RequestID(), middleware.RequestLogger(logger), gin.Recovery())
	router.NoMethod(handlers.MethodNotAllowed)
	RegisterRoutes(router, store, logger)
	return router
}

func RegisterRoutes(router *gin.Engine, store repository.ProductStore, logger *slog.Logger) {
	h := handlers.NewProductHandler(store, logger)

	router.GET("/health", h.Health)

	router.POST("/products", h.CreateProduct)
	router.GET("/products", h.ListProducts)

	router.GET("/products/:id", h.GetProduct)
	router.PUT("/products/:id", h.UpdateProduct)
	router.DELETE("/products/:id", h.DeleteProduct)
}
