package service

import (
	"time"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/domain"
	"github.com/go-aiiq/DocumentAnalyzerAI/internal/repository"
)

// Shared fixtures for service package tests.

type mockLogger struct{}

func (l *mockLogger) Info(msg string, fields ...interface{})             {}
func (l *mockLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *mockLogger) Debug(msg string, fields ...interface{})            {}
func (l *mockLogger) Warn(msg string, fields ...interface{})             {}

type testConfig struct{}

func (c *testConfig) GetServerPort() string            { return "8080" }
func (c *testConfig) GetLogLevel() string              { return "debug" }
func (c *testConfig) GetAWSRegion() string             { return "us-east-1" }
func (c *testConfig) GetBucketName() string            { return "test-bucket" }
func (c *testConfig) HasAWSCredentials() bool          { return false }
func (c *testConfig) GetSignedURLTTL() time.Duration   { return 15 * time.Minute }
func (c *testConfig) GetListURLTTL() time.Duration     { return 5 * time.Minute }
func (c *testConfig) GetStoreTimeout() time.Duration   { return 30 * time.Second }
func (c *testConfig) GetMaxFileSize() int64            { return 50 * 1024 * 1024 }

func newTestStore() *repository.MemoryObjectStore {
	return repository.NewMemoryObjectStore("test-bucket", "us-east-1")
}

func testRef() domain.DocumentRef {
	return domain.DocumentRef{FolderPrefix: "tenant1/123 Main St", BaseName: "lease"}
}
