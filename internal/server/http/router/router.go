package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/opeak/internal/config"
	"github.com/polkiloo/opeak/internal/metrics"
	"github.com/polkiloo/opeak/internal/server/http/handlers"
	"github.com/polkiloo/opeak/internal/server/http/middleware"
)

// maxRequestBody bounds decompressed request payloads.
const maxRequestBody = 1 << 20

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.OrderingFacade, health handlers.HealthChecker, m *metrics.Metrics, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics(m))
	engine.Use(middleware.DecompressRequest(maxRequestBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	sessionHandler := handlers.NewSessionHandler(facade, cfg.SessionTTL)
	catalogHandler := handlers.NewCatalogHandler(facade)
	draftHandler := handlers.NewDraftHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	healthHandler := handlers.NewHealthHandler(health)

	engine.GET("/metrics", gin.WrapH(m.Handler()))
	engine.GET("/healthz", healthHandler.Check)

	api := engine.Group("/api")
	api.POST("/session", sessionHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))

	authed.GET("/catalog/products", catalogHandler.Products)
	authed.GET("/catalog/categories", catalogHandler.Categories)
	authed.GET("/locations", catalogHandler.Locations)

	drafts := authed.Group("/drafts")
	drafts.POST("", draftHandler.Open)
	drafts.GET("/:id", draftHandler.Get)
	drafts.DELETE("/:id", draftHandler.Discard)
	drafts.POST("/:id/items", draftHandler.AddItem)
	drafts.PUT("/:id/items/:product", draftHandler.SetQuantity)
	drafts.DELETE("/:id/items/:product", draftHandler.RemoveItem)
	drafts.POST("/:id/submit", draftHandler.Submit)
	drafts.POST("/:id/apply", draftHandler.Apply)

	cart := authed.Group("/cart")
	cart.GET("", cartHandler.Get)
	cart.DELETE("", cartHandler.Clear)
	cart.POST("/items", cartHandler.Add)
	cart.POST("/items/:product/increment", cartHandler.Increment)
	cart.POST("/items/:product/decrement", cartHandler.Decrement)
	cart.DELETE("/items/:product", cartHandler.Remove)
	cart.POST("/checkout", cartHandler.Checkout)

	authed.GET("/orders", orderHandler.List)
	authed.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	authed.DELETE("/orders/:id", orderHandler.Delete)

	return engine
}
