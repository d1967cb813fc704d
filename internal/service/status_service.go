package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/domain"
	apperrors "github.com/go-aiiq/DocumentAnalyzerAI/pkg/errors"
)

// StatusService tracks per-document processing state through marker objects
// under extractedData/. One marker per kind; writing a terminal marker
// best-effort removes the processing one. There is no mutual exclusion:
// concurrent runs for the same document interleave writes and the last one
// wins, which matches the low interactive write concurrency this serves.
type StatusService struct {
	store  domain.ObjectStore
	logger domain.Logger
}

// NewStatusService creates a new status tracker.
func NewStatusService(store domain.ObjectStore, logger domain.Logger) *StatusService {
	return &StatusService{store: store, logger: logger}
}

// Begin records that processing has started for the document.
func (s *StatusService) Begin(ctx context.Context, ref domain.DocumentRef, fileURL, originalFilename string) error {
	now := isoNow()
	record := domain.StatusRecord{
		Status:           string(domain.StatusProcessing),
		StartTime:        now,
		FileURL:          fileURL,
		OriginalFilename: originalFilename,
		Timestamp:        now,
		LastUpdated:      now,
	}
	return s.writeMarker(ctx, ref, domain.StatusProcessing, record)
}

// Complete records a successful extraction. The marker carries the extracted
// result itself, so reading it back serves both status checks and result
// retrieval.
func (s *StatusService) Complete(ctx context.Context, ref domain.DocumentRef, data json.RawMessage, fileURL, originalFilename string) error {
	now := isoNow()
	success := true
	record := domain.StatusRecord{
		Status:           string(domain.StatusJSON),
		Success:          &success,
		FileURL:          fileURL,
		OriginalFilename: originalFilename,
		Data:             data,
		Timestamp:        now,
		LastUpdated:      now,
	}
	if err := s.writeMarker(ctx, ref, domain.StatusJSON, record); err != nil {
		return err
	}
	s.cleanupProcessing(ctx, ref)
	return nil
}

// Fail records a failed extraction with its message and stack.
func (s *StatusService) Fail(ctx context.Context, ref domain.DocumentRef, message, stack string) error {
	now := isoNow()
	success := false
	record := domain.StatusRecord{
		Status:      string(domain.StatusError),
		Success:     &success,
		Error:       message,
		Stack:       stack,
		Timestamp:   now,
		LastUpdated: now,
	}
	if err := s.writeMarker(ctx, ref, domain.StatusError, record); err != nil {
		return err
	}
	s.cleanupProcessing(ctx, ref)
	return nil
}

// GetStatus returns the current status record, probing marker kinds in the
// fixed order processing, json, error and returning the first that exists.
// Returns nil when no marker exists.
func (s *StatusService) GetStatus(ctx context.Context, ref domain.DocumentRef) (*domain.StatusRecord, error) {
	for _, kind := range domain.StatusProbeOrder {
		key := ref.ExtractedDataKey(kind)
		obj, err := s.store.Get(ctx, key)
		if err != nil {
			if apperrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}

		var record domain.StatusRecord
		if err := json.Unmarshal(obj.Body, &record); err != nil {
			return nil, apperrors.NewStoreError("getStatus", key, err)
		}
		record.Status = string(kind)
		if !obj.LastModified.IsZero() {
			record.Timestamp = obj.LastModified.UTC().Format(time.RFC3339)
		}
		return &record, nil
	}
	return nil, nil
}

// Result returns the extracted data of a completed document, or nil when no
// result has been written yet.
func (s *StatusService) Result(ctx context.Context, ref domain.DocumentRef) (json.RawMessage, error) {
	obj, err := s.store.Get(ctx, ref.ExtractedDataKey(domain.StatusJSON))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var record domain.StatusRecord
	if err := json.Unmarshal(obj.Body, &record); err != nil {
		return nil, apperrors.NewStoreError("result", ref.ExtractedDataKey(domain.StatusJSON), err)
	}
	return record.Data, nil
}

func (s *StatusService) writeMarker(ctx context.Context, ref domain.DocumentRef, kind domain.StatusKind, record domain.StatusRecord) error {
	body, err := json.Marshal(record)
	if err != nil {
		return apperrors.NewStoreError("saveStatus", ref.ExtractedDataKey(kind), err)
	}
	return s.store.Put(ctx, ref.ExtractedDataKey(kind), body, "application/json")
}

// cleanupProcessing removes a leftover processing marker after a terminal
// write. Failures are logged, never propagated: a failed cleanup must not
// mask the recorded outcome.
func (s *StatusService) cleanupProcessing(ctx context.Context, ref domain.DocumentRef) {
	key := ref.ExtractedDataKey(domain.StatusProcessing)
	if err := s.store.DeleteOne(ctx, key); err != nil && !apperrors.IsNotFound(err) {
		s.logger.Warn("failed to clean up processing marker", "key", key, "error", err)
	}
}

func isoNow() string {
	return time.Now().UTC().Format(time.RFC3339)
}
