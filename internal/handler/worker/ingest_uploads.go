package worker

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/venueo/media-pipeline-go/internal/ingest_context"
	"github.com/venueo/media-pipeline-go/internal/model"
	"github.com/venueo/media-pipeline-go/internal/port"
	"github.com/venueo/media-pipeline-go/internal/task"
	"github.com/venueo/media-pipeline-go/internal/validation"
)

// IngestUploadsHandler handles one ingest-uploads task. Events are
// processed sequentially and independently: one image's failure never
// blocks the rest of the batch. Failures are joined and returned after
// every event has been attempted, so the queue redelivers the batch;
// already-published events re-run as idempotent overwrites.
func IngestUploadsHandler(ctx context.Context, p task.IngestUploadsPayload, svc port.UploadIngester) error {
	if err := validation.ValidateStruct(p); err != nil {
		log.Printf("❌  Payload validation failed: %v", err)
		return err
	}

	ctx = ingest_context.WithBatchID(ctx, p.BatchID)

	var errs []error
	for _, event := range p.Events {
		res, err := svc.IngestUpload(ctx, event)
		if err != nil {
			log.Printf("❌  Failed to ingest %q: %v", event.Key, err)
			errs = append(errs, fmt.Errorf("ingest %q: %w", event.Key, err))
			continue
		}

		switch res.Outcome {
		case model.OutcomePublished:
			log.Printf("✅  Published %q as %q (quality %d)", event.Key, res.PublishedKey, res.QualityUsed)
		case model.OutcomeRejected:
			log.Printf("🚫  Rejected %q (%d violation(s))", event.Key, len(res.Violations))
		case model.OutcomeSkipped:
			log.Printf("⏭️  Skipped %q", event.Key)
		}
	}

	return errors.Join(errs...)
}
