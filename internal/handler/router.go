package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/config"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint (no tenant required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"document-analyzer"}`))
	}).Methods("GET")

	// Initialize handlers
	projectHandler := NewProjectHandler(container.ProjectService, container.Logger)
	documentHandler := NewDocumentHandler(container.DocumentService, container.Logger, container.Config)
	sectionHandler := NewSectionHandler(container.SectionService, container.Logger)
	statusHandler := NewStatusHandler(container.StatusService, container.Logger)
	extractHandler := NewExtractHandler(container.ExtractService, container.Logger)

	// Tenant-scoped API routes
	api := router.PathPrefix("/api").Subrouter()
	api.Use(LoggingMiddleware(container.Logger))
	api.Use(TenantMiddleware(container.Logger))

	// Project routes
	api.HandleFunc("/projects", projectHandler.CreateProject).Methods("POST")
	api.HandleFunc("/projects/{name}", projectHandler.DeleteProject).Methods("DELETE")
	api.HandleFunc("/files", projectHandler.ListFiles).Methods("GET")

	// Document routes
	api.HandleFunc("/upload", documentHandler.Upload).Methods("POST")
	api.HandleFunc("/documents", documentHandler.Delete).Methods("DELETE")

	// Section routes
	api.HandleFunc("/sections", sectionHandler.List).Methods("GET")
	api.HandleFunc("/sections", sectionHandler.Add).Methods("POST")
	api.HandleFunc("/sections", sectionHandler.Update).Methods("PUT")
	api.HandleFunc("/sections", sectionHandler.Delete).Methods("DELETE")

	// Status routes
	api.HandleFunc("/status", statusHandler.GetStatus).Methods("GET")
	api.HandleFunc("/status/processing", statusHandler.Begin).Methods("POST")
	api.HandleFunc("/status/complete", statusHandler.Complete).Methods("POST")
	api.HandleFunc("/status/error", statusHandler.Fail).Methods("POST")
	api.HandleFunc("/results", statusHandler.GetResult).Methods("GET")

	// Extraction routes
	api.HandleFunc("/extract", extractHandler.ExtractSection).Methods("POST")
	api.HandleFunc("/extract/all", extractHandler.ExtractAll).Methods("POST")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:4200", // Angular dev server
			"http://localhost:3000", // Alternative dev port
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Tenant-ID",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
