package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/domain"
)

// TenantMiddleware requires the X-Tenant-ID header on every request and
// stashes it in the request context. Authentication itself lives in front
// of this service; by the time a request gets here the gateway has already
// resolved the caller to a tenant.
func TenantMiddleware(logger domain.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenant := r.Header.Get("X-Tenant-ID")
			if tenant == "" {
				writeError(w, http.StatusBadRequest, "X-Tenant-ID header required")
				return
			}

			ctx := context.WithValue(r.Context(), tenantContextKey, tenant)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoggingMiddleware assigns each request an id and logs method, path and
// duration on completion.
func LoggingMiddleware(logger domain.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()

			start := time.Now()
			next.ServeHTTP(w, r)

			logger.Debug("request handled",
				"requestId", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start).String(),
			)
		})
	}
}
