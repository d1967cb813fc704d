package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/domain"
	apperrors "github.com/go-aiiq/DocumentAnalyzerAI/pkg/errors"
)

// DocumentService handles uploading source PDFs into a project namespace
// and deleting them by reference.
type DocumentService struct {
	store       domain.ObjectStore
	logger      domain.Logger
	signTTL     time.Duration
	maxFileSize int64
}

// NewDocumentService creates a new document service.
func NewDocumentService(store domain.ObjectStore, logger domain.Logger, cfg domain.Config) *DocumentService {
	return &DocumentService{
		store:       store,
		logger:      logger,
		signTTL:     cfg.GetSignedURLTTL(),
		maxFileSize: cfg.GetMaxFileSize(),
	}
}

// Upload stores a PDF under the tenant/project namespace, verifies the
// object landed, and returns the document with a time-limited retrieval
// URL. Re-uploading the same filename overwrites in place.
func (s *DocumentService) Upload(ctx context.Context, tenantID, projectName, filename string, body []byte, contentType string) (*domain.Document, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("empty file body for %q", filename)
	}
	if s.maxFileSize > 0 && int64(len(body)) > s.maxFileSize {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", filename, s.maxFileSize)
	}

	key := domain.Namespace(tenantID, projectName) + filename
	if err := s.store.Put(ctx, key, body, contentType); err != nil {
		return nil, err
	}

	exists, err := s.store.Head(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewStoreError("upload", key, fmt.Errorf("object missing after upload"))
	}

	url, err := s.store.SignedURL(ctx, key, s.signTTL, "")
	if err != nil {
		return nil, err
	}

	s.logger.Info("document uploaded", "key", key, "size", len(body))
	return &domain.Document{
		Key:          key,
		Size:         int64(len(body)),
		LastModified: time.Now().UTC(),
		URL:          url,
	}, nil
}

// Delete removes the source PDF the reference points at.
func (s *DocumentService) Delete(ctx context.Context, ref domain.DocumentRef) error {
	key := ref.SourceKey()
	if err := s.store.DeleteOne(ctx, key); err != nil {
		return err
	}
	s.logger.Info("document deleted", "key", key)
	return nil
}
