package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/domain"
)

// ProjectService manages tenant/project namespaces: creation markers,
// grouped listings and recursive deletion of a project's object tree.
type ProjectService struct {
	store   domain.ObjectStore
	logger  domain.Logger
	listTTL time.Duration
}

// NewProjectService creates a new project manager.
func NewProjectService(store domain.ObjectStore, logger domain.Logger, cfg domain.Config) *ProjectService {
	return &ProjectService{
		store:   store,
		logger:  logger,
		listTTL: cfg.GetListURLTTL(),
	}
}

// CreateNamespace writes the zero-byte folder marker for a project. Safe to
// call repeatedly.
func (s *ProjectService) CreateNamespace(ctx context.Context, tenantID, projectName string) error {
	key := domain.Namespace(tenantID, projectName)
	if err := s.store.Put(ctx, key, nil, ""); err != nil {
		return err
	}
	s.logger.Info("project namespace created", "prefix", key)
	return nil
}

// ListByProject lists everything under the tenant and groups documents by
// project. Folder markers contribute an (empty) project group but are not
// listed as documents. Each document carries a short-lived signed URL.
func (s *ProjectService) ListByProject(ctx context.Context, tenantID string) (map[string][]domain.Document, error) {
	prefix := tenantID + "/"
	folders := make(map[string][]domain.Document)

	token := ""
	for {
		page, err := s.store.List(ctx, prefix, token)
		if err != nil {
			return nil, err
		}

		for _, obj := range page.Objects {
			rest := strings.TrimPrefix(obj.Key, prefix)
			i := strings.Index(rest, "/")
			if i < 0 {
				// Object directly under the tenant, outside any project.
				continue
			}
			project := rest[:i]
			if _, ok := folders[project]; !ok {
				folders[project] = []domain.Document{}
			}
			if strings.HasSuffix(obj.Key, "/") {
				continue
			}

			url, err := s.store.SignedURL(ctx, obj.Key, s.listTTL, "")
			if err != nil {
				return nil, err
			}
			folders[project] = append(folders[project], domain.Document{
				Key:          obj.Key,
				Size:         obj.Size,
				LastModified: obj.LastModified,
				URL:          url,
			})
		}

		if page.NextToken == "" {
			break
		}
		token = page.NextToken
	}

	return folders, nil
}

// DeleteProject removes every object under the project prefix, paging with
// continuation tokens and deleting each page in chunked batch calls. An
// empty prefix reports Deleted=false without error.
func (s *ProjectService) DeleteProject(ctx context.Context, tenantID, projectName string) (*domain.DeleteProjectResult, error) {
	prefix := domain.Namespace(tenantID, projectName)
	totalDeleted := 0

	token := ""
	for {
		page, err := s.store.List(ctx, prefix, token)
		if err != nil {
			return nil, err
		}

		if len(page.Objects) == 0 {
			if totalDeleted == 0 {
				return &domain.DeleteProjectResult{
					Deleted:      false,
					FilesDeleted: 0,
					Message:      "Folder is empty or does not exist",
				}, nil
			}
			break
		}

		keys := make([]string, 0, len(page.Objects))
		for _, obj := range page.Objects {
			keys = append(keys, obj.Key)
		}
		for start := 0; start < len(keys); start += domain.MaxBatchDelete {
			end := start + domain.MaxBatchDelete
			if end > len(keys) {
				end = len(keys)
			}
			if err := s.store.DeleteBatch(ctx, keys[start:end]); err != nil {
				return nil, err
			}
		}
		totalDeleted += len(keys)
		s.logger.Debug("deleted batch of project objects", "prefix", prefix, "count", len(keys), "total", totalDeleted)

		if page.NextToken == "" {
			break
		}
		token = page.NextToken
	}

	s.logger.Info("project deleted", "prefix", prefix, "filesDeleted", totalDeleted)
	return &domain.DeleteProjectResult{
		Deleted:      true,
		FilesDeleted: totalDeleted,
		Message:      fmt.Sprintf("Folder '%s' and its contents (%d files) deleted successfully", prefix, totalDeleted),
	}, nil
}
