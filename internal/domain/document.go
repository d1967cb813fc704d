package domain

import (
	"encoding/json"
	"time"
)

// Document describes a stored PDF as listed from the object store.
type Document struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	URL          string    `json:"url"`
}

// Section is a named page range of a source document. Pages are 1-based and
// inclusive at every public boundary.
type Section struct {
	Title     string `json:"title" validate:"required"`
	StartPage int    `json:"startPage" validate:"gte=1"`
	EndPage   int    `json:"endPage" validate:"gtefield=StartPage"`
}

// Equal reports structural equality of two sections. Deletion relies on
// this: the caller must supply the exact stored value.
func (s Section) Equal(other Section) bool {
	return s.Title == other.Title && s.StartPage == other.StartPage && s.EndPage == other.EndPage
}

// SamePageRange reports whether two sections cover the identical page range,
// regardless of title.
func (s Section) SamePageRange(other Section) bool {
	return s.StartPage == other.StartPage && s.EndPage == other.EndPage
}

// StatusKind identifies one of the per-document processing marker objects.
type StatusKind string

const (
	StatusProcessing StatusKind = "processing"
	StatusJSON       StatusKind = "json"
	StatusError      StatusKind = "error"
)

// StatusProbeOrder is the fixed priority in which marker kinds are checked.
// A document mid-reprocessing reports processing even when a stale terminal
// marker from a previous run still exists.
var StatusProbeOrder = []StatusKind{StatusProcessing, StatusJSON, StatusError}

// StatusRecord is the JSON body of a processing status marker. Fields are
// populated per kind: StartTime for processing, Data for json, Error/Stack
// for error.
type StatusRecord struct {
	Status           string          `json:"status"`
	Success          *bool           `json:"success,omitempty"`
	StartTime        string          `json:"startTime,omitempty"`
	FileURL          string          `json:"fileUrl,omitempty"`
	OriginalFilename string          `json:"originalFilename,omitempty"`
	Data             json.RawMessage `json:"data,omitempty"`
	Error            string          `json:"error,omitempty"`
	Stack            string          `json:"stack,omitempty"`
	Timestamp        string          `json:"timestamp"`
	LastUpdated      string          `json:"lastUpdated"`
}

// Artifact points at a derived object (single-section PDF or zip bundle)
// together with its time-limited download URL.
type Artifact struct {
	Key         string `json:"artifactKey"`
	DownloadURL string `json:"downloadUrl"`
}

// DeleteProjectResult reports the outcome of a recursive project delete.
type DeleteProjectResult struct {
	Deleted      bool   `json:"deleted"`
	FilesDeleted int    `json:"filesDeleted"`
	Message      string `json:"message"`
}
