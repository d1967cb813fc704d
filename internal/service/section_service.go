package service

import (
	"context"
	"encoding/json"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/domain"
	apperrors "github.com/go-aiiq/DocumentAnalyzerAI/pkg/errors"
)

// SectionService maintains the per-document JSON array of named page ranges
// at {folderPrefix}/sections/{baseName}.json. Every mutation is a full
// read-modify-write cycle ending in a single put: the array is never
// partially updated, but two concurrent writers for the same document can
// lose an update (last writer wins, no locking).
type SectionService struct {
	store  domain.ObjectStore
	logger domain.Logger
}

// NewSectionService creates a new section registry.
func NewSectionService(store domain.ObjectStore, logger domain.Logger) *SectionService {
	return &SectionService{store: store, logger: logger}
}

// List returns the document's sections. An absent sections object means no
// sections yet, not an error.
func (s *SectionService) List(ctx context.Context, ref domain.DocumentRef) ([]domain.Section, error) {
	key := ref.SectionsKey()
	obj, err := s.store.Get(ctx, key)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return []domain.Section{}, nil
		}
		return nil, err
	}

	var sections []domain.Section
	if err := json.Unmarshal(obj.Body, &sections); err != nil {
		return nil, apperrors.NewStoreError("listSections", key, err)
	}
	return sections, nil
}

// Add appends a section unless an identical (title, startPage, endPage)
// entry already exists. The dedup makes retries of a timed-out add safe.
func (s *SectionService) Add(ctx context.Context, ref domain.DocumentRef, section domain.Section) error {
	sections, err := s.List(ctx, ref)
	if err != nil {
		return err
	}

	for _, existing := range sections {
		if existing.Equal(section) {
			s.logger.Debug("section already exists, skipping insert", "title", section.Title)
			return nil
		}
	}

	return s.save(ctx, ref, append(sections, section))
}

// Update replaces every entry whose title matches. When no entry matches by
// title and none matches by page range either, the section is appended as
// new. The page-range check keeps a rename from slipping in a duplicate
// range under a different title.
func (s *SectionService) Update(ctx context.Context, ref domain.DocumentRef, section domain.Section) error {
	sections, err := s.List(ctx, ref)
	if err != nil {
		return err
	}

	titleMatched := false
	rangeMatched := false
	for i, existing := range sections {
		if existing.Title == section.Title {
			sections[i] = section
			titleMatched = true
		}
		if existing.SamePageRange(section) {
			rangeMatched = true
		}
	}
	if !titleMatched && !rangeMatched {
		sections = append(sections, section)
	}

	return s.save(ctx, ref, sections)
}

// Delete removes entries structurally equal to the given section. A section
// differing in any field leaves the array untouched.
func (s *SectionService) Delete(ctx context.Context, ref domain.DocumentRef, section domain.Section) error {
	sections, err := s.List(ctx, ref)
	if err != nil {
		return err
	}

	remaining := sections[:0]
	for _, existing := range sections {
		if !existing.Equal(section) {
			remaining = append(remaining, existing)
		}
	}

	return s.save(ctx, ref, remaining)
}

func (s *SectionService) save(ctx context.Context, ref domain.DocumentRef, sections []domain.Section) error {
	if sections == nil {
		sections = []domain.Section{}
	}
	body, err := json.MarshalIndent(sections, "", "  ")
	if err != nil {
		return apperrors.NewStoreError("saveSections", ref.SectionsKey(), err)
	}
	return s.store.Put(ctx, ref.SectionsKey(), body, "application/json")
}
