package task

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"github.com/venueo/media-pipeline-go/internal/model"
	"github.com/venueo/media-pipeline-go/internal/port"
)

type Dispatcher struct {
	client *asynq.Client
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c}
}

// EnqueueIngestUploads queues one batch for the worker. Retries are capped:
// corrupt inputs fail the same way every run, so after MaxRetry the batch
// lands in the archive instead of looping forever.
func (d *Dispatcher) EnqueueIngestUploads(ctx context.Context, events []model.UploadEvent) error {
	t, err := NewIngestUploadsTask(events)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t,
		asynq.MaxRetry(5),
		asynq.Timeout(5*time.Minute),
	); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) Close() error {
	return d.client.Close()
}
