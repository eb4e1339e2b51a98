package ports

import (
	"context"
	"io"
)

type StoredObject struct {
	Key         string
	Size        int64
	ContentType string
}

// ObjectStorage stores precatório attachments. The S3 backend presigns
// download URLs; the local backend returns an empty URL and callers stream
// through Get instead.
type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (StoredObject, error)
	Get(ctx context.Context, key string) (io.ReadCloser, StoredObject, error)
	Delete(ctx context.Context, key string) error
	// PresignDownload returns a temporary direct-download URL that forces
	// Content-Disposition: attachment with the given filename, or "" when
	// the backend cannot presign.
	PresignDownload(ctx context.Context, key, filename string) (string, error)
}
