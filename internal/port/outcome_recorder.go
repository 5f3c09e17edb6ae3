package port

import (
	"context"

	"github.com/venueo/media-pipeline-go/internal/model"
)

// OutcomeRecorder publishes per-image terminal outcomes for observability.
// Recording must never block or fail the pipeline; implementations log
// their own errors.
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, key string, outcome model.Outcome)
}
