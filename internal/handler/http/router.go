package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eskiden/marketplace/internal/service"
	"github.com/eskiden/marketplace/pkg/health"
	"github.com/eskiden/marketplace/pkg/middleware"
)

// RouterConfig bundles the dependencies the router needs.
type RouterConfig struct {
	Catalog   *service.CatalogService
	Directory *service.DirectoryService
	Reviews   *service.ReviewService
	Health    *health.Handler
	CORS      middleware.CORSConfig
	Logger    *slog.Logger
}

// NewRouter creates a chi router with all marketplace routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("marketplace"))
	r.Use(middleware.CORS(cfg.CORS))

	// Operational endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	itemHandler := NewItemHandler(cfg.Catalog, cfg.Logger)
	userHandler := NewUserHandler(cfg.Directory, cfg.Logger)
	authHandler := NewAuthHandler(cfg.Directory, cfg.Logger)
	reviewHandler := NewReviewHandler(cfg.Reviews, cfg.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/items", itemHandler.CreateItem)
		r.Get("/items", itemHandler.ListItems)
		r.Delete("/items/{id}", itemHandler.DeleteItem)

		r.Post("/users", userHandler.CreateUser)
		r.Get("/users", userHandler.ListUsers)
		r.Delete("/users/{id}", userHandler.DeleteUser)

		r.Post("/login", authHandler.Login)
		r.Post("/rate", reviewHandler.SubmitRating)
	})

	return r
}
