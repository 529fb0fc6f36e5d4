package routes

import (
	"github.com/gin-gonic/gin"

	"industrial-catalog/internal/cache"
	"industrial-catalog/internal/handlers"
	"industrial-catalog/internal/middleware"
	"industrial-catalog/internal/repository"
)

// Deps son las dependencias compartidas por todas las rutas
type Deps struct {
	Store  repository.Store
	Loader *cache.Loader
	Events handlers.EventPublisher

	// límite por IP para los POST; RateLimitRPS <= 0 lo desactiva
	RateLimitRPS   float64
	RateLimitBurst int
}

func RegisterRoutes(router *gin.Engine, deps Deps) {
	products := handlers.NewProductHandler(deps.Store, deps.Loader)
	quotes := handlers.NewQuoteHandler(deps.Store, deps.Events)
	contacts := handlers.NewContactHandler(deps.Store, deps.Events)
	health := handlers.NewHealthHandler(deps.Store)

	limit := middleware.RateLimit(deps.RateLimitRPS, deps.RateLimitBurst)

	api := router.Group("/api")
	{
		// las rutas específicas van antes de /products/:id
		api.GET("/products", products.GetProducts)
		api.GET("/products/search", products.SearchProducts)
		api.GET("/products/category/:category", products.GetProductsByCategory)
		api.GET("/products/brand/:brand", products.GetProductsByBrand)
		api.GET("/products/:id/related", products.GetRelatedProducts)
		api.GET("/products/:id", products.GetProduct)

		api.POST("/quotes", limit, quotes.CreateQuote)
		api.GET("/quotes", quotes.GetQuotes)
		api.GET("/quotes/export", quotes.ExportQuotes)

		api.POST("/contacts", limit, contacts.CreateContact)
		api.GET("/contacts", contacts.GetContacts)

		api.GET("/catalog/categories", products.GetCategories)
		api.GET("/catalog/brands", products.GetBrands)

		api.GET("/health", health.Health)
	}
}
