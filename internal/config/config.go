package config

import (
	"os"
	"strconv"
	"time"

	"github.com/go-aiiq/DocumentAnalyzerAI/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort   string
	LogLevel     string
	AWSRegion    string
	BucketName   string
	AWSAccessKey string
	AWSSecretKey string
	SignedURLTTL time.Duration
	ListURLTTL   time.Duration
	StoreTimeout time.Duration
	MaxFileSize  int64
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:   getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		AWSRegion:    getEnvOrDefault("AWS_REGION", "us-east-1"),
		BucketName:   getEnvOrDefault("S3_BUCKET_NAME", "document-analyzer"),
		AWSAccessKey: getEnvOrDefault("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey: getEnvOrDefault("AWS_SECRET_ACCESS_KEY", ""),
		SignedURLTTL: getEnvDurationOrDefault("SIGNED_URL_TTL", 15*time.Minute),
		ListURLTTL:   getEnvDurationOrDefault("LIST_URL_TTL", 5*time.Minute),
		StoreTimeout: getEnvDurationOrDefault("STORE_TIMEOUT", 30*time.Second),
		MaxFileSize:  getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetAWSRegion returns the AWS region
func (c *AppConfig) GetAWSRegion() string {
	return c.AWSRegion
}

// GetBucketName returns the S3 bucket name
func (c *AppConfig) GetBucketName() string {
	return c.BucketName
}

// HasAWSCredentials reports whether static AWS credentials are configured.
// Without them the server runs against an in-memory store.
func (c *AppConfig) HasAWSCredentials() bool {
	return c.AWSAccessKey != "" && c.AWSSecretKey != ""
}

// GetSignedURLTTL returns the lifetime of download URLs
func (c *AppConfig) GetSignedURLTTL() time.Duration {
	return c.SignedURLTTL
}

// GetListURLTTL returns the lifetime of listing URLs
func (c *AppConfig) GetListURLTTL() time.Duration {
	return c.ListURLTTL
}

// GetStoreTimeout returns the per-call object store timeout
func (c *AppConfig) GetStoreTimeout() time.Duration {
	return c.StoreTimeout
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
