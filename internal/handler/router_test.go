package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/config"
	"github.com/go-aiiq/DocumentAnalyzerAI/internal/domain"
	"github.com/go-aiiq/DocumentAnalyzerAI/internal/repository"
	"github.com/go-aiiq/DocumentAnalyzerAI/internal/service"
)

type routerTestConfig struct{}

func (c *routerTestConfig) GetServerPort() string          { return "8080" }
func (c *routerTestConfig) GetLogLevel() string            { return "debug" }
func (c *routerTestConfig) GetAWSRegion() string           { return "us-east-1" }
func (c *routerTestConfig) GetBucketName() string          { return "test-bucket" }
func (c *routerTestConfig) HasAWSCredentials() bool        { return false }
func (c *routerTestConfig) GetSignedURLTTL() time.Duration { return 15 * time.Minute }
func (c *routerTestConfig) GetListURLTTL() time.Duration   { return 5 * time.Minute }
func (c *routerTestConfig) GetStoreTimeout() time.Duration { return 30 * time.Second }
func (c *routerTestConfig) GetMaxFileSize() int64          { return 1024 * 1024 }

func newTestRouter() (http.Handler, *repository.MemoryObjectStore) {
	cfg := &routerTestConfig{}
	logger := NewMockHandlerLogger()
	store := repository.NewMemoryObjectStore(cfg.GetBucketName(), cfg.GetAWSRegion())
	sections := service.NewSectionService(store, logger)

	container := &config.Container{
		Config:          cfg,
		Logger:          logger,
		ObjectStore:     store,
		DocumentService: service.NewDocumentService(store, logger, cfg),
		ProjectService:  service.NewProjectService(store, logger, cfg),
		StatusService:   service.NewStatusService(store, logger),
		SectionService:  sections,
		ExtractService:  service.NewExtractService(store, sections, logger, cfg),
	}
	return NewRouter(container), store
}

func doRequest(t *testing.T, router http.Handler, method, path, tenant string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if tenant != "" {
		req.Header.Set("X-Tenant-ID", tenant)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health body: %s", rec.Body.String())
	}
}

func TestRouter_TenantHeaderRequired(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/api/files", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without tenant header, got %d", rec.Code)
	}
}

func TestRouter_ProjectLifecycle(t *testing.T) {
	router, store := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/projects", "tenant1",
		map[string]string{"projectName": "123 Main St"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Seed a document directly so the listing has something to group.
	if err := store.Put(context.Background(), "tenant1/123 Main St/lease.pdf", []byte("pdf"), "application/pdf"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/files", "tenant1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list files: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var listResp struct {
		Folders map[string][]domain.Document `json:"folders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listResp.Folders["123 Main St"]) != 1 {
		t.Fatalf("expected 1 document in project, got %+v", listResp.Folders)
	}

	rec = doRequest(t, router, http.MethodDelete, "/api/projects/123%20Main%20St", "tenant1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete project: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var delResp domain.DeleteProjectResult
	if err := json.Unmarshal(rec.Body.Bytes(), &delResp); err != nil {
		t.Fatalf("decode delete response: %v", err)
	}
	if !delResp.Deleted || delResp.FilesDeleted != 2 {
		t.Fatalf("unexpected delete result: %+v", delResp)
	}
}

func TestRouter_Upload(t *testing.T) {
	router, store := newTestRouter()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("projectName", "123 Main St"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	part, err := form.CreateFormFile("file", "lease.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4 fake")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	form.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("X-Tenant-ID", "tenant1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	exists, err := store.Head(req.Context(), "tenant1/123 Main St/lease.pdf")
	if err != nil || !exists {
		t.Fatalf("uploaded object missing: %v %v", exists, err)
	}
}

func TestRouter_UploadRejectsNonPDF(t *testing.T) {
	router, _ := newTestRouter()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	_ = form.WriteField("projectName", "p")
	part, _ := form.CreateFormFile("file", "malware.exe")
	_, _ = part.Write([]byte("nope"))
	form.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("X-Tenant-ID", "tenant1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-PDF upload, got %d", rec.Code)
	}
}

func TestRouter_UploadRejectsOversizedBody(t *testing.T) {
	router, store := newTestRouter()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	_ = form.WriteField("projectName", "123 Main St")
	part, err := form.CreateFormFile("file", "huge.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	oversized := bytes.Repeat([]byte("x"), int((&routerTestConfig{}).GetMaxFileSize())+1)
	if _, err := part.Write(oversized); err != nil {
		t.Fatalf("write file: %v", err)
	}
	form.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("X-Tenant-ID", "tenant1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized upload, got %d", rec.Code)
	}
	exists, _ := store.Head(req.Context(), "tenant1/123 Main St/huge.pdf")
	if exists {
		t.Fatal("oversized upload must not be stored")
	}
}

func TestRouter_SectionFlow(t *testing.T) {
	router, _ := newTestRouter()
	ref := "tenant1/123 Main St/lease.pdf"

	rec := doRequest(t, router, http.MethodPost, "/api/sections", "tenant1", map[string]interface{}{
		"fileReference": ref,
		"section":       map[string]interface{}{"title": "Signatures", "startPage": 8, "endPage": 10},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add section: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/api/sections?file=tenant1%2F123%20Main%20St%2Flease.pdf", "tenant1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list sections: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var listResp struct {
		Sections []domain.Section `json:"sections"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode sections: %v", err)
	}
	if len(listResp.Sections) != 1 || listResp.Sections[0].Title != "Signatures" {
		t.Fatalf("unexpected sections: %+v", listResp.Sections)
	}

	// Invalid payload is rejected before touching the store.
	rec = doRequest(t, router, http.MethodPost, "/api/sections", "tenant1", map[string]interface{}{
		"fileReference": ref,
		"section":       map[string]interface{}{"title": "", "startPage": 0, "endPage": 0},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid section, got %d", rec.Code)
	}
}

func TestRouter_StatusFlow(t *testing.T) {
	router, _ := newTestRouter()
	ref := "tenant1/123 Main St/lease.pdf"

	rec := doRequest(t, router, http.MethodGet, "/api/status?file=tenant1%2F123%20Main%20St%2Flease.pdf", "tenant1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":null`) {
		t.Fatalf("expected null status, got %s", rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodPost, "/api/status/processing", "tenant1", map[string]string{
		"fileReference":    ref,
		"originalFilename": "lease.pdf",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("begin: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodPost, "/api/status/complete", "tenant1", map[string]interface{}{
		"fileReference": ref,
		"data":          map[string]string{"rent": "1200"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("complete: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/api/status?file=tenant1%2F123%20Main%20St%2Flease.pdf", "tenant1", nil)
	if !strings.Contains(rec.Body.String(), `"status":"json"`) {
		t.Fatalf("expected json status, got %s", rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/api/results?file=tenant1%2F123%20Main%20St%2Flease.pdf", "tenant1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("results: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"rent":"1200"`) {
		t.Fatalf("unexpected result body: %s", rec.Body.String())
	}
}

func TestRouter_ExtractInvalidReference(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/extract/all", "tenant1", map[string]string{
		"fileReference": "nopath",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for undecodable reference, got %d: %s", rec.Code, rec.Body.String())
	}
}
