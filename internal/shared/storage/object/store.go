package object

import (
	"context"
	"fmt"
	"io"
	"path"

	"resume-ats/internal/shared/util"
)

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	Put(ctx context.Context, storageKey string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}

// UploadKey returns the storage key for an uploaded document. Uploads are
// content-addressed, so saving the same bytes twice lands on the same key.
func UploadKey(contentSHA256 string, fileName string) (string, error) {
	if len(contentSHA256) < 2 {
		return "", fmt.Errorf("invalid content hash %q", contentSHA256)
	}
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	return path.Join("uploads", contentSHA256[:2], contentSHA256, name), nil
}
