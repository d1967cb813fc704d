package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/domain"
	apperrors "github.com/go-aiiq/DocumentAnalyzerAI/pkg/errors"
)

func TestDocumentService_Upload(t *testing.T) {
	store := newTestStore()
	svc := NewDocumentService(store, &mockLogger{}, &testConfig{})
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "tenant1", "123 Main St", "lease.pdf", []byte("%PDF-1.4 fake"), "application/pdf")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if doc.Key != "tenant1/123 Main St/lease.pdf" {
		t.Fatalf("unexpected key %q", doc.Key)
	}
	if doc.Size != int64(len("%PDF-1.4 fake")) {
		t.Fatalf("unexpected size %d", doc.Size)
	}
	if !strings.Contains(doc.URL, "X-Amz-Signature=") {
		t.Fatalf("upload result missing signed URL: %s", doc.URL)
	}

	obj, err := store.Get(ctx, doc.Key)
	if err != nil {
		t.Fatalf("uploaded object missing: %v", err)
	}
	if !bytes.Equal(obj.Body, []byte("%PDF-1.4 fake")) {
		t.Fatalf("stored body mismatch: %q", obj.Body)
	}
}

func TestDocumentService_UploadOverwrites(t *testing.T) {
	store := newTestStore()
	svc := NewDocumentService(store, &mockLogger{}, &testConfig{})
	ctx := context.Background()

	if _, err := svc.Upload(ctx, "tenant1", "p", "doc.pdf", []byte("v1"), "application/pdf"); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, err := svc.Upload(ctx, "tenant1", "p", "doc.pdf", []byte("v2"), "application/pdf"); err != nil {
		t.Fatalf("re-upload: %v", err)
	}

	obj, err := store.Get(ctx, "tenant1/p/doc.pdf")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(obj.Body) != "v2" {
		t.Fatalf("re-upload did not overwrite, got %q", obj.Body)
	}
}

func TestDocumentService_UploadRejectsEmptyAndOversized(t *testing.T) {
	svc := NewDocumentService(newTestStore(), &mockLogger{}, &testConfig{})
	ctx := context.Background()

	if _, err := svc.Upload(ctx, "tenant1", "p", "doc.pdf", nil, "application/pdf"); err == nil {
		t.Fatal("expected error for empty body")
	}

	oversized := make([]byte, (&testConfig{}).GetMaxFileSize()+1)
	if _, err := svc.Upload(ctx, "tenant1", "p", "doc.pdf", oversized, "application/pdf"); err == nil {
		t.Fatal("expected error for oversized body")
	}
}

func TestDocumentService_Delete(t *testing.T) {
	store := newTestStore()
	svc := NewDocumentService(store, &mockLogger{}, &testConfig{})
	ctx := context.Background()
	ref := domain.DocumentRef{FolderPrefix: "tenant1/p", BaseName: "doc"}

	if err := store.Put(ctx, ref.SourceKey(), []byte("pdf"), "application/pdf"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := svc.Delete(ctx, ref); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := store.Get(ctx, ref.SourceKey()); !apperrors.IsNotFound(err) {
		t.Fatalf("expected document gone, got %v", err)
	}
}
