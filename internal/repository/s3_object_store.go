package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/domain"
	apperrors "github.com/go-aiiq/DocumentAnalyzerAI/pkg/errors"
)

// S3ObjectStore implements domain.ObjectStore against an S3 bucket. It is
// constructed once at startup and injected everywhere (no SDK globals).
type S3ObjectStore struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	timeout   time.Duration
	logger    domain.Logger
}

// NewS3ObjectStore creates the gateway from application config.
func NewS3ObjectStore(ctx context.Context, cfg domain.Config, logger domain.Logger) (*S3ObjectStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.GetAWSRegion()))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	store := &S3ObjectStore{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.GetBucketName(),
		timeout:   cfg.GetStoreTimeout(),
		logger:    logger,
	}
	logger.Info("S3 object store initialized", "bucket", store.bucket, "region", cfg.GetAWSRegion())
	return store, nil
}

// Put writes an object, overwriting any previous version.
func (s *S3ObjectStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(opCtx, input); err != nil {
		return s.classify(err, "put", key)
	}
	return nil
}

// Get fetches an object body and metadata. Absence is a not_found error.
func (s *S3ObjectStore) Get(ctx context.Context, key string) (*domain.Object, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.client.GetObject(opCtx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, s.classify(err, "get", key)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, apperrors.NewStoreError("get", key, err)
	}
	return &domain.Object{
		Body:         body,
		ContentType:  aws.ToString(out.ContentType),
		Size:         aws.ToInt64(out.ContentLength),
		LastModified: aws.ToTime(out.LastModified),
	}, nil
}

// Head reports whether an object exists without fetching it.
func (s *S3ObjectStore) Head(ctx context.Context, key string) (bool, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.HeadObject(opCtx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		classified := s.classify(err, "head", key)
		if apperrors.IsNotFound(classified) {
			return false, nil
		}
		return false, classified
	}
	return true, nil
}

// List returns one page of keys under a prefix. An empty continuation token
// starts from the beginning; an empty NextToken in the result means done.
func (s *S3ObjectStore) List(ctx context.Context, prefix, continuationToken string) (*domain.ListPage, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	}
	if continuationToken != "" {
		input.ContinuationToken = aws.String(continuationToken)
	}
	out, err := s.client.ListObjectsV2(opCtx, input)
	if err != nil {
		return nil, s.classify(err, "list", prefix)
	}

	page := &domain.ListPage{Objects: make([]domain.ObjectInfo, 0, len(out.Contents))}
	for _, obj := range out.Contents {
		page.Objects = append(page.Objects, domain.ObjectInfo{
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
		})
	}
	if aws.ToBool(out.IsTruncated) {
		page.NextToken = aws.ToString(out.NextContinuationToken)
	}
	return page, nil
}

// DeleteOne removes a single object. Deleting an absent key is not an error
// in S3 and is not reported as one here.
func (s *S3ObjectStore) DeleteOne(ctx context.Context, key string) error {
	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.client.DeleteObject(opCtx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return s.classify(err, "delete", key)
	}
	return nil
}

// DeleteBatch removes up to domain.MaxBatchDelete objects in one call.
func (s *S3ObjectStore) DeleteBatch(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	if len(keys) > domain.MaxBatchDelete {
		return apperrors.NewStoreError("deleteBatch", fmt.Sprintf("%d keys", len(keys)),
			fmt.Errorf("batch size exceeds limit of %d", domain.MaxBatchDelete))
	}

	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	identifiers := make([]types.ObjectIdentifier, 0, len(keys))
	for _, key := range keys {
		identifiers = append(identifiers, types.ObjectIdentifier{Key: aws.String(key)})
	}
	out, err := s.client.DeleteObjects(opCtx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{
			Objects: identifiers,
			Quiet:   aws.Bool(true),
		},
	})
	if err != nil {
		return s.classify(err, "deleteBatch", fmt.Sprintf("%d keys", len(keys)))
	}
	if len(out.Errors) > 0 {
		first := out.Errors[0]
		return apperrors.NewStoreError("deleteBatch", aws.ToString(first.Key),
			fmt.Errorf("%d objects failed: %s", len(out.Errors), aws.ToString(first.Message)))
	}
	return nil
}

// SignedURL issues a time-limited retrieval URL, optionally forcing a
// Content-Disposition on the response.
func (s *S3ObjectStore) SignedURL(ctx context.Context, key string, ttl time.Duration, responseDisposition string) (string, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if responseDisposition != "" {
		input.ResponseContentDisposition = aws.String(responseDisposition)
	}
	req, err := s.presigner.PresignGetObject(opCtx, input, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", s.classify(err, "sign", key)
	}
	return req.URL, nil
}

// classify maps SDK failures onto the application error taxonomy: absence,
// timeout, or any other backend failure, each with operation and key context.
func (s *S3ObjectStore) classify(err error, op, key string) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.NewTransientError(op, key, err)
	}

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return apperrors.NewNotFoundError(key, err)
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return apperrors.NewNotFoundError(key, err)
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return apperrors.NewNotFoundError(key, err)
		case "RequestTimeout", "SlowDown":
			return apperrors.NewTransientError(op, key, err)
		}
	}
	return apperrors.NewStoreError(op, key, err)
}
