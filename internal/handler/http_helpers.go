// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/domain"
	apperrors "github.com/go-aiiq/DocumentAnalyzerAI/pkg/errors"
)

type contextKey string

const tenantContextKey contextKey = "tenant"

// GetTenantFromContext extracts the tenant identifier from request context
func GetTenantFromContext(r *http.Request) (string, bool) {
	tenant, ok := r.Context().Value(tenantContextKey).(string)
	return tenant, ok
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeServiceError maps a service-layer error onto an HTTP response,
// logging server-side failures but not client mistakes.
func writeServiceError(w http.ResponseWriter, logger domain.Logger, err error) {
	status := apperrors.GetStatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", err)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeError(w, status, appErr.Message)
		return
	}
	writeError(w, status, err.Error())
}

// decodeBody parses a JSON request body into dst
func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// fileReference pulls the document reference from either the `file` query
// parameter or the request body's fileReference field, query winning.
func fileReference(r *http.Request, bodyRef string) string {
	if ref := r.URL.Query().Get("file"); ref != "" {
		return ref
	}
	return bodyRef
}
