package router

import (
	"net/http"

	"product-catalog/internal/handler"
	"product-catalog/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	metrics *middleware.Metrics,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware chain, outermost first
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(metrics.Instrument)
	r.Use(middleware.CORS)

	r.Get("/", productHandler.Index)
	r.Get("/health", productHandler.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/products", func(r chi.Router) {
		r.Post("/", productHandler.Create)
		r.Get("/", productHandler.List)
		r.Get("/{id}", productHandler.Get)
		r.Put("/{id}", productHandler.Update)
		r.Delete("/{id}", productHandler.Delete)
	})

	return r
}
