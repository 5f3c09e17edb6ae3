package port

import (
	"context"

	"github.com/venueo/media-pipeline-go/internal/model"
)

// UploadIngester runs one uploaded object through the full pipeline:
// moderation gate, resize, size-budget compression, publish and cleanup.
type UploadIngester interface {
	IngestUpload(ctx context.Context, event model.UploadEvent) (IngestResult, error)
}

// IngestResult describes the terminal state of one event. PublishedKey,
// QualityUsed and Violations are only set for the outcomes that produce
// them.
type IngestResult struct {
	Outcome      model.Outcome       `json:"outcome"`
	Category     model.AssetCategory `json:"category,omitempty"`
	PublishedKey string              `json:"published_key,omitempty"`
	QualityUsed  int                 `json:"quality_used,omitempty"`
	Violations   []model.Detection   `json:"violations,omitempty"`
}
