package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/domain"
	"github.com/go-aiiq/DocumentAnalyzerAI/internal/service"
)

// StatusHandler handles processing status HTTP requests. The analyzer
// pipeline reports transitions through the POST callbacks; clients poll
// GetStatus and fetch results once a json marker lands.
type StatusHandler struct {
	statusService *service.StatusService
	logger        domain.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(statusService *service.StatusService, logger domain.Logger) *StatusHandler {
	return &StatusHandler{statusService: statusService, logger: logger}
}

// GetStatus handles polling a document's processing state
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	docRef, ok := h.decodeRef(w, r, r.URL.Query().Get("file"))
	if !ok {
		return
	}

	record, err := h.statusService.GetStatus(r.Context(), docRef)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if record == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": nil})
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// GetResult handles fetching the extraction result of a completed document
func (h *StatusHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	docRef, ok := h.decodeRef(w, r, r.URL.Query().Get("file"))
	if !ok {
		return
	}

	data, err := h.statusService.Result(r.Context(), docRef)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if data == nil {
		writeError(w, http.StatusNotFound, "No extraction result available")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type beginStatusRequest struct {
	FileReference    string `json:"fileReference"`
	FileURL          string `json:"fileUrl"`
	OriginalFilename string `json:"originalFilename"`
}

// Begin handles the analyzer's processing-started callback
func (h *StatusHandler) Begin(w http.ResponseWriter, r *http.Request) {
	var req beginStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	docRef, ok := h.decodeRef(w, r, req.FileReference)
	if !ok {
		return
	}

	if err := h.statusService.Begin(r.Context(), docRef, req.FileURL, req.OriginalFilename); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": string(domain.StatusProcessing)})
}

type completeStatusRequest struct {
	FileReference    string          `json:"fileReference"`
	FileURL          string          `json:"fileUrl"`
	OriginalFilename string          `json:"originalFilename"`
	Data             json.RawMessage `json:"data"`
}

// Complete handles the analyzer's success callback, carrying the result
func (h *StatusHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req completeStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	docRef, ok := h.decodeRef(w, r, req.FileReference)
	if !ok {
		return
	}

	if err := h.statusService.Complete(r.Context(), docRef, req.Data, req.FileURL, req.OriginalFilename); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.StatusJSON)})
}

type failStatusRequest struct {
	FileReference string `json:"fileReference"`
	Error         string `json:"error"`
	Stack         string `json:"stack"`
}

// Fail handles the analyzer's failure callback
func (h *StatusHandler) Fail(w http.ResponseWriter, r *http.Request) {
	var req failStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	docRef, ok := h.decodeRef(w, r, req.FileReference)
	if !ok {
		return
	}

	if err := h.statusService.Fail(r.Context(), docRef, req.Error, req.Stack); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.StatusError)})
}

func (h *StatusHandler) decodeRef(w http.ResponseWriter, r *http.Request, ref string) (domain.DocumentRef, bool) {
	if ref == "" {
		writeError(w, http.StatusBadRequest, "file reference is required")
		return domain.DocumentRef{}, false
	}
	docRef, err := domain.DecodeReference(ref)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return domain.DocumentRef{}, false
	}
	return docRef, true
}
