package repository

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/domain"
	apperrors "github.com/go-aiiq/DocumentAnalyzerAI/pkg/errors"
)

type memObject struct {
	body         []byte
	contentType  string
	lastModified time.Time
}

// MemoryObjectStore implements domain.ObjectStore on a plain map. It serves
// two roles the original service covered with its mock mode: local
// development without bucket credentials, and a substitutable fake for
// tests. Signed URLs look like real virtual-host S3 URLs so reference
// decoding behaves identically against both implementations.
type MemoryObjectStore struct {
	mu      sync.RWMutex
	objects map[string]memObject
	bucket  string
	region  string

	// PageSize caps List pages, mirroring the store-imposed listing limit.
	PageSize int
}

// NewMemoryObjectStore creates an empty in-memory store.
func NewMemoryObjectStore(bucket, region string) *MemoryObjectStore {
	return &MemoryObjectStore{
		objects:  make(map[string]memObject),
		bucket:   bucket,
		region:   region,
		PageSize: 1000,
	}
}

func (m *MemoryObjectStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(body))
	copy(stored, body)
	m.objects[key] = memObject{
		body:         stored,
		contentType:  contentType,
		lastModified: time.Now().UTC(),
	}
	return nil
}

func (m *MemoryObjectStore) Get(ctx context.Context, key string) (*domain.Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, apperrors.NewNotFoundError(key, nil)
	}
	body := make([]byte, len(obj.body))
	copy(body, obj.body)
	return &domain.Object{
		Body:         body,
		ContentType:  obj.contentType,
		Size:         int64(len(obj.body)),
		LastModified: obj.lastModified,
	}, nil
}

func (m *MemoryObjectStore) Head(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok, nil
}

// List pages through keys under a prefix in lexical order. The continuation
// token is the last key of the previous page, so pages stay correct even
// when earlier keys are deleted between round trips. Nothing is cached
// between requests.
func (m *MemoryObjectStore) List(ctx context.Context, prefix, continuationToken string) (*domain.ListPage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) && (continuationToken == "" || key > continuationToken) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	end := m.PageSize
	if end > len(keys) {
		end = len(keys)
	}

	page := &domain.ListPage{Objects: make([]domain.ObjectInfo, 0, end)}
	for _, key := range keys[:end] {
		obj := m.objects[key]
		page.Objects = append(page.Objects, domain.ObjectInfo{
			Key:          key,
			Size:         int64(len(obj.body)),
			LastModified: obj.lastModified,
		})
	}
	if end < len(keys) && end > 0 {
		page.NextToken = keys[end-1]
	}
	return page, nil
}

func (m *MemoryObjectStore) DeleteOne(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *MemoryObjectStore) DeleteBatch(ctx context.Context, keys []string) error {
	if len(keys) > domain.MaxBatchDelete {
		return apperrors.NewStoreError("deleteBatch", fmt.Sprintf("%d keys", len(keys)),
			fmt.Errorf("batch size exceeds limit of %d", domain.MaxBatchDelete))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.objects, key)
	}
	return nil
}

// SignedURL fabricates a virtual-host style URL with signing query
// parameters, the same shape the original mock mode produced. Signing is
// pure URL construction and does not check existence, same as a real
// presigner: a URL for an absent key just 404s when fetched.
func (m *MemoryObjectStore) SignedURL(ctx context.Context, key string, ttl time.Duration, responseDisposition string) (string, error) {
	signed := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s?X-Amz-Algorithm=AWS4-HMAC-SHA256&X-Amz-Expires=%d&X-Amz-Signature=%s",
		m.bucket, m.region, escapeKeyPath(key), int(ttl.Seconds()), uuid.NewString())
	if responseDisposition != "" {
		signed += "&response-content-disposition=" + url.QueryEscape(responseDisposition)
	}
	return signed, nil
}

// escapeKeyPath percent-encodes each path segment while keeping the
// hierarchy separators intact.
func escapeKeyPath(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
