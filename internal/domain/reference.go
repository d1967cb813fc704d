package domain

import (
	"net/url"
	"strings"
	"unicode"

	apperrors "github.com/go-aiiq/DocumentAnalyzerAI/pkg/errors"
)

// DocumentRef is the decoded canonical reference to a stored document:
// the folder prefix it lives under and its filename without the .pdf
// extension. Every derived key (status markers, sections, artifacts) is
// built from these two parts, so decoding must land on the same pair
// whether the caller passed a raw key or a signed URL.
type DocumentRef struct {
	FolderPrefix string
	BaseName     string
}

// Namespace joins a tenant and project into the canonical prefix,
// trailing slash included.
func Namespace(tenantID, projectName string) string {
	return tenantID + "/" + projectName + "/"
}

// DecodeReference recovers a DocumentRef from either a bare object key or
// a full retrieval URL. URLs have their scheme, host, bucket segment (for
// path-style addressing) and query parameters stripped; bare keys are
// percent-decoded once. Fails with an invalid_reference error when no
// folder/file structure can be recognized.
func DecodeReference(ref string) (DocumentRef, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return DocumentRef{}, apperrors.NewInvalidReferenceError("empty reference")
	}

	var key string
	if strings.Contains(ref, "://") {
		u, err := url.Parse(ref)
		if err != nil {
			return DocumentRef{}, apperrors.NewInvalidReferenceError("unparseable URL: " + ref)
		}
		// u.Path is already percent-decoded by url.Parse.
		key = strings.TrimPrefix(u.Path, "/")
		if isPathStyleHost(u.Host) {
			// Path-style addressing carries the bucket as the first
			// path segment; drop it to reach the object key.
			if i := strings.Index(key, "/"); i >= 0 {
				key = key[i+1:]
			}
		}
	} else {
		key = ref
		if i := strings.Index(key, "?"); i >= 0 {
			key = key[:i]
		}
		if decoded, err := url.PathUnescape(key); err == nil {
			key = decoded
		}
	}

	i := strings.LastIndex(key, "/")
	if i < 0 || i == len(key)-1 {
		return DocumentRef{}, apperrors.NewInvalidReferenceError("no folder/file structure in reference: " + ref)
	}

	return DocumentRef{
		FolderPrefix: key[:i],
		BaseName:     strings.TrimSuffix(key[i+1:], ".pdf"),
	}, nil
}

// isPathStyleHost reports whether the host addresses the service itself
// rather than a bucket subdomain, e.g. s3.us-east-1.amazonaws.com.
func isPathStyleHost(host string) bool {
	return strings.HasPrefix(host, "s3.") || strings.HasPrefix(host, "s3-")
}

// SourceKey returns the key of the original uploaded PDF.
func (r DocumentRef) SourceKey() string {
	return r.FolderPrefix + "/" + r.BaseName + ".pdf"
}

// ExtractedDataKey returns the status marker key for the given kind.
func (r DocumentRef) ExtractedDataKey(kind StatusKind) string {
	return r.FolderPrefix + "/extractedData/" + r.BaseName + "." + string(kind)
}

// SectionsKey returns the key of the document's sections array.
func (r DocumentRef) SectionsKey() string {
	return r.FolderPrefix + "/sections/" + r.BaseName + ".json"
}

// SectionPDFKey returns the key of a derived artifact with the given
// filename.
func (r DocumentRef) SectionPDFKey(filename string) string {
	return r.FolderPrefix + "/sectionsPDF/" + filename
}

// ProjectFolder returns the last segment of the folder prefix, the
// project name the document belongs to.
func (r DocumentRef) ProjectFolder() string {
	if i := strings.LastIndex(r.FolderPrefix, "/"); i >= 0 {
		return r.FolderPrefix[i+1:]
	}
	return r.FolderPrefix
}

// SanitizeTitle strips characters that are unsafe in object keys or
// download filenames and trims surrounding whitespace.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsControl(r) || strings.ContainsRune(`/\:*?"<>|#%`, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
