package mock

import (
	"context"

	"github.com/venueo/media-pipeline-go/internal/model"
	"github.com/venueo/media-pipeline-go/internal/port"
)

// UploadIngester implements the ingester use case for tests. ResultsByKey
// scripts per-key results; ErrsByKey per-key failures.
type UploadIngester struct {
	ResultOut    port.IngestResult
	ResultsByKey map[string]port.IngestResult
	Err          error
	ErrsByKey    map[string]error

	Called bool
	Events []model.UploadEvent
}

func (m *UploadIngester) IngestUpload(ctx context.Context, event model.UploadEvent) (port.IngestResult, error) {
	m.Called = true
	m.Events = append(m.Events, event)
	if err, ok := m.ErrsByKey[event.Key]; ok {
		return port.IngestResult{Outcome: model.OutcomeError}, err
	}
	if m.Err != nil {
		return port.IngestResult{Outcome: model.OutcomeError}, m.Err
	}
	if res, ok := m.ResultsByKey[event.Key]; ok {
		return res, nil
	}
	return m.ResultOut, nil
}
