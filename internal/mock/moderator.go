package mock

import (
	"context"

	"github.com/venueo/media-pipeline-go/internal/model"
)

// Moderator implements the moderation client interface for tests.
type Moderator struct {
	DetectionsOut []model.Detection
	Err           error

	Called        bool
	ImageIn       []byte
	MinConfidence float64
}

func (m *Moderator) DetectLabels(ctx context.Context, image []byte, minConfidence float64) ([]model.Detection, error) {
	m.Called = true
	m.ImageIn = image
	m.MinConfidence = minConfidence
	if m.Err != nil {
		return nil, m.Err
	}
	return m.DetectionsOut, nil
}
