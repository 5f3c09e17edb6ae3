package mock

import (
	"context"

	"github.com/venueo/media-pipeline-go/internal/model"
)

// Dispatcher implements the task dispatcher interface for tests.
type Dispatcher struct {
	Err error

	Called bool
	Events []model.UploadEvent
}

func (m *Dispatcher) EnqueueIngestUploads(ctx context.Context, events []model.UploadEvent) error {
	m.Called = true
	m.Events = events
	return m.Err
}
