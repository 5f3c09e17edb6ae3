package task

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/venueo/media-pipeline-go/internal/model"
)

const TypeIngestUploads = "ingest:uploads"

// IngestUploadsPayload carries one notification batch. BatchID correlates
// the log lines of every event processed under the same delivery.
type IngestUploadsPayload struct {
	BatchID string              `json:"batch_id" validate:"required,uuid"`
	Events  []model.UploadEvent `json:"events" validate:"required,min=1,dive"`
}

// NewIngestUploadsTask creates an Asynq task for a batch of upload events.
func NewIngestUploadsTask(events []model.UploadEvent) (*asynq.Task, error) {
	p := IngestUploadsPayload{BatchID: uuid.NewString(), Events: events}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal ingest-uploads payload: %w", err)
	}
	return asynq.NewTask(TypeIngestUploads, data), nil
}

// ParseIngestUploadsPayload parses the task payload to IngestUploadsPayload.
func ParseIngestUploadsPayload(t *asynq.Task) (IngestUploadsPayload, error) {
	var p IngestUploadsPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return IngestUploadsPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
