package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/domain"
	"github.com/go-aiiq/DocumentAnalyzerAI/internal/service"
)

// ExtractHandler handles PDF range extraction HTTP requests
type ExtractHandler struct {
	extractService *service.ExtractService
	logger         domain.Logger
	validate       *validator.Validate
}

// NewExtractHandler creates a new extract handler
func NewExtractHandler(extractService *service.ExtractService, logger domain.Logger) *ExtractHandler {
	return &ExtractHandler{
		extractService: extractService,
		logger:         logger,
		validate:       validator.New(),
	}
}

// ExtractSection handles carving a single section out of a document
func (h *ExtractHandler) ExtractSection(w http.ResponseWriter, r *http.Request) {
	var req sectionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FileReference == "" {
		writeError(w, http.StatusBadRequest, "fileReference is required")
		return
	}
	if err := h.validate.Struct(req.Section); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid section: "+err.Error())
		return
	}

	docRef, err := domain.DecodeReference(req.FileReference)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	artifact, err := h.extractService.ExtractSection(r.Context(), docRef, req.Section)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, artifact)
}

type extractAllRequest struct {
	FileReference string `json:"fileReference"`
}

// ExtractAll handles bundling every registered section into one archive
func (h *ExtractHandler) ExtractAll(w http.ResponseWriter, r *http.Request) {
	var req extractAllRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FileReference == "" {
		writeError(w, http.StatusBadRequest, "fileReference is required")
		return
	}

	docRef, err := domain.DecodeReference(req.FileReference)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	artifact, err := h.extractService.ExtractAll(r.Context(), docRef)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, artifact)
}
