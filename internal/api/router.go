package api

import (
	"net/http"

	"github.com/St1cky1/item-service/internal/api/handlers"
	"github.com/St1cky1/item-service/internal/config"
	"github.com/St1cky1/item-service/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func NewRouter(itemService *usecase.ItemService, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders()...)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Security.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", apiKeyHeader, middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestSize(cfg.HTTP.MaxBodyBytes))
	r.Use(withSource)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	itemHandler := handlers.NewItemHandler(itemService)
	systemHandler := handlers.NewSystemHandler(itemService)

	r.Get("/health", systemHandler.Health)
	r.Get("/", systemHandler.Docs)

	r.Route("/api", func(r chi.Router) {
		r.Use(httprate.Limit(
			cfg.Security.RateLimitRequests,
			cfg.Security.RateLimitWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				handlers.WriteError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
			}),
		))

		r.Get("/docs", systemHandler.Docs)
		r.Get("/categories", systemHandler.ListCategories)
		r.Get("/stats", systemHandler.Stats)

		r.Route("/items", func(r chi.Router) {
			r.Get("/", itemHandler.ListItems)
			r.Get("/{id}", itemHandler.GetItem)

			// изменяющие запросы требуют заголовок доступа
			r.Group(func(r chi.Router) {
				r.Use(requireAPIKey(cfg.Security.APIKey))

				r.Post("/", itemHandler.CreateItem)
				r.Post("/bulk-delete", itemHandler.BulkDeleteItems)
				r.Put("/{id}", itemHandler.UpdateItem)
				r.Patch("/{id}", itemHandler.UpdateItem)
				r.Delete("/{id}", itemHandler.DeleteItem)
			})
		})
	})

	return r
}
