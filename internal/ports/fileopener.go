package ports

import (
	"context"
	"io"
)

// Meta describes where an opened spreadsheet came from. Bucket and Key are
// only set for S3 sources.
type Meta struct {
	Source      string
	ContentType string
	Size        int64
	Bucket      string
	Key         string
}

// FileOpener resolves a file path to a readable stream. Implementations cover
// http(s) URLs, s3:// URLs and paths under the local media root.
type FileOpener interface {
	Open(ctx context.Context, filePath string) (io.ReadCloser, Meta, error)
}
