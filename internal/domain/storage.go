package domain

import (
	"context"
	"time"
)

// MaxBatchDelete is the store-imposed ceiling on a single batch delete call.
// Callers deleting more keys must chunk.
const MaxBatchDelete = 1000

// Object is a stored object's body together with the metadata callers need.
type Object struct {
	Body         []byte
	ContentType  string
	Size         int64
	LastModified time.Time
}

// ObjectInfo describes a listed object without its body.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ListPage is one page of a prefix listing. An empty NextToken means the
// listing is exhausted.
type ListPage struct {
	Objects   []ObjectInfo
	NextToken string
}

// ObjectStore is the gateway to the backing bucket. Get and Head distinguish
// absence (a not_found error, or exists=false) from every other failure so
// callers can treat "nothing written yet" as data rather than as an error.
// Implementations bound each call with a timeout; timeouts surface as
// transient errors, retryable by the caller.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	Get(ctx context.Context, key string) (*Object, error)
	Head(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix, continuationToken string) (*ListPage, error)
	DeleteOne(ctx context.Context, key string) error
	DeleteBatch(ctx context.Context, keys []string) error
	SignedURL(ctx context.Context, key string, ttl time.Duration, responseDisposition string) (string, error)
}
