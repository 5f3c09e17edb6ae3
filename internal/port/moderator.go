package port

import (
	"context"

	"github.com/venueo/media-pipeline-go/internal/model"
)

// Moderator wraps the remote content-classification service. It returns
// every detection at or above minConfidence, or an error when the service
// is unreachable, times out, or replies with garbage. Deciding what a
// client error means for the pipeline is the caller's job, not the
// wrapper's.
type Moderator interface {
	DetectLabels(ctx context.Context, image []byte, minConfidence float64) ([]model.Detection, error)
}
