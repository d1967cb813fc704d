package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/sync/errgroup"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/domain"
	apperrors "github.com/go-aiiq/DocumentAnalyzerAI/pkg/errors"
)

// extractConcurrency caps parallel page-range trims during bulk extraction.
const extractConcurrency = 4

// ExtractService carves page ranges out of a source PDF into derived
// artifacts under sectionsPDF/. Artifacts are regenerable, never
// authoritative.
type ExtractService struct {
	store    domain.ObjectStore
	sections *SectionService
	logger   domain.Logger
	signTTL  time.Duration
}

// NewExtractService creates a new extractor.
func NewExtractService(store domain.ObjectStore, sections *SectionService, logger domain.Logger, cfg domain.Config) *ExtractService {
	return &ExtractService{
		store:    store,
		sections: sections,
		logger:   logger,
		signTTL:  cfg.GetSignedURLTTL(),
	}
}

// ExtractSection produces a single-section PDF and returns its key and a
// signed download URL. An endPage beyond the document is truncated to the
// last real page, never an error.
func (s *ExtractService) ExtractSection(ctx context.Context, ref domain.DocumentRef, section domain.Section) (*domain.Artifact, error) {
	source, err := s.fetchSource(ctx, ref)
	if err != nil {
		return nil, err
	}

	trimmed, err := trimRange(source, section)
	if err != nil {
		return nil, err
	}

	filename := artifactFilename(ref, section)
	key := ref.SectionPDFKey(filename)
	if err := s.store.Put(ctx, key, trimmed, "application/pdf"); err != nil {
		return nil, err
	}

	url, err := s.store.SignedURL(ctx, key, s.signTTL, attachmentDisposition(filename))
	if err != nil {
		return nil, err
	}

	s.logger.Info("section extracted", "key", key, "title", section.Title)
	return &domain.Artifact{Key: key, DownloadURL: url}, nil
}

// ExtractAll bundles every registered section of the document into one zip
// archive and returns its key and signed URL.
func (s *ExtractService) ExtractAll(ctx context.Context, ref domain.DocumentRef) (*domain.Artifact, error) {
	sections, err := s.sections.List(ctx, ref)
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return nil, apperrors.NewNoSectionsError(ref.SourceKey())
	}

	source, err := s.fetchSource(ctx, ref)
	if err != nil {
		return nil, err
	}

	trimmed := make([][]byte, len(sections))
	var group errgroup.Group
	group.SetLimit(extractConcurrency)
	for i, section := range sections {
		i, section := i, section
		group.Go(func() error {
			out, err := trimRange(source, section)
			if err != nil {
				return fmt.Errorf("section %q: %w", section.Title, err)
			}
			trimmed[i] = out
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)
	for i, section := range sections {
		entry, err := archive.Create(artifactFilename(ref, section))
		if err != nil {
			return nil, fmt.Errorf("failed to add %q to archive: %w", section.Title, err)
		}
		if _, err := entry.Write(trimmed[i]); err != nil {
			return nil, fmt.Errorf("failed to write %q to archive: %w", section.Title, err)
		}
	}
	if err := archive.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	zipName := ref.BaseName + "_sections.zip"
	key := ref.SectionPDFKey(zipName)
	if err := s.store.Put(ctx, key, buf.Bytes(), "application/zip"); err != nil {
		return nil, err
	}

	url, err := s.store.SignedURL(ctx, key, s.signTTL, attachmentDisposition(zipName))
	if err != nil {
		return nil, err
	}

	s.logger.Info("sections bundled", "key", key, "sections", len(sections))
	return &domain.Artifact{Key: key, DownloadURL: url}, nil
}

// fetchSource loads the source PDF bytes, mapping absence onto the
// extraction-specific error so it surfaces instead of reading as empty.
func (s *ExtractService) fetchSource(ctx context.Context, ref domain.DocumentRef) ([]byte, error) {
	obj, err := s.store.Get(ctx, ref.SourceKey())
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewSourceNotFoundError(ref.SourceKey())
		}
		return nil, err
	}
	return obj.Body, nil
}

// trimRange copies the section's pages into a new PDF. Pages are 1-based
// inclusive here; pdfcpu's selection syntax takes them as-is.
func trimRange(source []byte, section domain.Section) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	rs := bytes.NewReader(source)
	pageCount, err := api.PageCount(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read source PDF: %w", err)
	}

	start := section.StartPage
	if start < 1 {
		start = 1
	}
	end := section.EndPage
	if end > pageCount {
		end = pageCount
	}
	if start > end {
		return nil, fmt.Errorf("section %q starts at page %d, beyond last page %d", section.Title, start, pageCount)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := api.Trim(rs, &out, []string{fmt.Sprintf("%d-%d", start, end)}, conf); err != nil {
		return nil, fmt.Errorf("failed to trim pages %d-%d: %w", start, end, err)
	}
	return out.Bytes(), nil
}

// artifactFilename builds the user-facing name of a single-section PDF.
func artifactFilename(ref domain.DocumentRef, section domain.Section) string {
	return ref.ProjectFolder() + "_" + domain.SanitizeTitle(section.Title) + ".pdf"
}

func attachmentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
