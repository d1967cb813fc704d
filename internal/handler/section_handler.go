package handler

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/domain"
	"github.com/go-aiiq/DocumentAnalyzerAI/internal/service"
)

// SectionHandler handles section registry HTTP requests
type SectionHandler struct {
	sectionService *service.SectionService
	logger         domain.Logger
	validate       *validator.Validate
}

// NewSectionHandler creates a new section handler
func NewSectionHandler(sectionService *service.SectionService, logger domain.Logger) *SectionHandler {
	return &SectionHandler{
		sectionService: sectionService,
		logger:         logger,
		validate:       validator.New(),
	}
}

type sectionRequest struct {
	FileReference string         `json:"fileReference"`
	Section       domain.Section `json:"section"`
}

// List handles listing a document's sections
func (h *SectionHandler) List(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Query().Get("file")
	if ref == "" {
		writeError(w, http.StatusBadRequest, "file query parameter is required")
		return
	}

	docRef, err := domain.DecodeReference(ref)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	sections, err := h.sectionService.List(r.Context(), docRef)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"sections": sections})
}

// Add handles appending a new section
func (h *SectionHandler) Add(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.sectionService.Add, http.StatusCreated, "Section added successfully")
}

// Update handles replacing sections by title
func (h *SectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.sectionService.Update, http.StatusOK, "Section updated successfully")
}

// Delete handles removing a stored section
func (h *SectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.sectionService.Delete, http.StatusOK, "Section deleted successfully")
}

// mutate factors the shared decode/validate/dispatch flow of the three
// section mutations.
func (h *SectionHandler) mutate(w http.ResponseWriter, r *http.Request, op func(context.Context, domain.DocumentRef, domain.Section) error, status int, message string) {
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

	if err := op(r.Context(), docRef, req.Section); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, status, map[string]string{"message": message})
}
