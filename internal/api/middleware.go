package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/St1cky1/item-service/internal/api/handlers"
	"github.com/St1cky1/item-service/internal/entity"
	"github.com/St1cky1/item-service/internal/usecase"
	"github.com/go-chi/chi/v5/middleware"
)

const apiKeyHeader = "X-API-Key"

func securityHeaders() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.SetHeader("X-Content-Type-Options", "nosniff"),
		middleware.SetHeader("X-Frame-Options", "DENY"),
		middleware.SetHeader("Referrer-Policy", "no-referrer"),
		middleware.SetHeader("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"),
		middleware.SetHeader("Cross-Origin-Resource-Policy", "same-origin"),
	}
}

// requireAPIKey - заглушка контроля доступа: сравнение заголовка с настроенным ключом.
// Пустой ключ отключает проверку.
func requireAPIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(apiKeyHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				handlers.WriteError(w, http.StatusUnauthorized, entity.ErrUnauthorized.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func withSource(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(usecase.WithSource(r.Context(), entity.SourceHTTP)))
	})
}
