package port

import (
	"context"
	"io"
)

// FileInfo represents metadata about a stored object.
type FileInfo struct {
	SizeBytes   int64
	ContentType string
}

// Storage defines the object-store operations the pipeline needs. The
// orchestrator is the only writer: incoming objects are read and deleted,
// published objects are written (overwrite, never append).
type Storage interface {
	InitBucket(bucket string) error
	StatFile(ctx context.Context, bucket, fileKey string) (FileInfo, error)
	RemoveFile(ctx context.Context, bucket, fileKey string) error
	GetFile(ctx context.Context, bucket, fileKey string) (io.ReadSeekCloser, error)
	SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error
}
