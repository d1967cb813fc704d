package domain

import "time"

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetAWSRegion() string
	GetBucketName() string
	HasAWSCredentials() bool
	GetSignedURLTTL() time.Duration
	GetListURLTTL() time.Duration
	GetStoreTimeout() time.Duration
	GetMaxFileSize() int64
}
