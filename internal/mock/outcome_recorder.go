package mock

import (
	"context"

	"github.com/venueo/media-pipeline-go/internal/model"
)

// Recorder implements the outcome recorder interface for tests.
type Recorder struct {
	Outcomes []model.Outcome
	Keys     []string
}

func (m *Recorder) RecordOutcome(ctx context.Context, key string, outcome model.Outcome) {
	m.Keys = append(m.Keys, key)
	m.Outcomes = append(m.Outcomes, outcome)
}

func (m *Recorder) Last() model.Outcome {
	if len(m.Outcomes) == 0 {
		return ""
	}
	return m.Outcomes[len(m.Outcomes)-1]
}
