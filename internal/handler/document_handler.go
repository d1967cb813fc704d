package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/domain"
	"github.com/go-aiiq/DocumentAnalyzerAI/internal/service"
)

// DocumentHandler handles document upload and deletion HTTP requests
type DocumentHandler struct {
	documentService *service.DocumentService
	logger          domain.Logger
	maxFileSize     int64
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *service.DocumentService, logger domain.Logger, cfg domain.Config) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		logger:          logger,
		maxFileSize:     cfg.GetMaxFileSize(),
	}
}

// Upload handles a multipart PDF upload into a project
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	tenant, ok := GetTenantFromContext(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Tenant not found in context")
		return
	}

	// Bound the request body itself, not just the in-memory buffering, so
	// an oversized upload is rejected without reading it all.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	projectName := r.FormValue("projectName")
	if projectName == "" {
		writeError(w, http.StatusBadRequest, "projectName is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, "Only PDF files are accepted")
		return
	}

	body, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	doc, err := h.documentService.Upload(r.Context(), tenant, projectName, header.Filename, body, "application/pdf")
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

type deleteDocumentRequest struct {
	FileReference string `json:"fileReference"`
}

// Delete handles deleting a source document by key or URL reference
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteDocumentRequest
	_ = decodeBody(r, &req)

	ref := fileReference(r, req.FileReference)
	if ref == "" {
		writeError(w, http.StatusBadRequest, "file reference is required")
		return
	}

	docRef, err := domain.DecodeReference(ref)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := h.documentService.Delete(r.Context(), docRef); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Document deleted successfully"})
}
