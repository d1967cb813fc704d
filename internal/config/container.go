package config

import (
	"context"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/domain"
	"github.com/go-aiiq/DocumentAnalyzerAI/internal/repository"
	"github.com/go-aiiq/DocumentAnalyzerAI/internal/service"
	"github.com/go-aiiq/DocumentAnalyzerAI/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config          domain.Config
	Logger          domain.Logger
	ObjectStore     domain.ObjectStore
	DocumentService *service.DocumentService
	ProjectService  *service.ProjectService
	StatusService   *service.StatusService
	SectionService  *service.SectionService
	ExtractService  *service.ExtractService
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context) (*Container, error) {
	cfg := NewConfig()
	appLogger := logger.NewLogger(cfg.GetLogLevel())

	store, err := newObjectStore(ctx, cfg, appLogger)
	if err != nil {
		return nil, err
	}

	sectionService := service.NewSectionService(store, appLogger)

	return &Container{
		Config:          cfg,
		Logger:          appLogger,
		ObjectStore:     store,
		DocumentService: service.NewDocumentService(store, appLogger, cfg),
		ProjectService:  service.NewProjectService(store, appLogger, cfg),
		StatusService:   service.NewStatusService(store, appLogger),
		SectionService:  sectionService,
		ExtractService:  service.NewExtractService(store, sectionService, appLogger, cfg),
	}, nil
}

// newObjectStore picks the real S3 gateway when credentials are present
// and falls back to the in-memory store otherwise, so the server stays
// usable for local development without an AWS account.
func newObjectStore(ctx context.Context, cfg domain.Config, appLogger domain.Logger) (domain.ObjectStore, error) {
	if cfg.HasAWSCredentials() {
		return repository.NewS3ObjectStore(ctx, cfg, appLogger)
	}
	appLogger.Warn("AWS credentials not configured, using in-memory object store",
		"bucket", cfg.GetBucketName())
	return repository.NewMemoryObjectStore(cfg.GetBucketName(), cfg.GetAWSRegion()), nil
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}
