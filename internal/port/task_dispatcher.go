package port

import (
	"context"

	"github.com/venueo/media-pipeline-go/internal/model"
)

// TaskDispatcher enqueues asynchronous ingestion work.
type TaskDispatcher interface {
	EnqueueIngestUploads(ctx context.Context, events []model.UploadEvent) error
}
