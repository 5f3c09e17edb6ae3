package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/venueo/media-pipeline-go/internal/compressor"
	"github.com/venueo/media-pipeline-go/internal/ingest_context"
	"github.com/venueo/media-pipeline-go/internal/logger"
	"github.com/venueo/media-pipeline-go/internal/model"
	"github.com/venueo/media-pipeline-go/internal/moderation"
	"github.com/venueo/media-pipeline-go/internal/port"
)

type uploadIngesterSrv struct {
	strg port.Storage
	mod  port.Moderator
	tc   port.Transcoder
	rec  port.OutcomeRecorder
	cfg  Config
}

// compile-time check: *uploadIngesterSrv must satisfy port.UploadIngester
var _ port.UploadIngester = (*uploadIngesterSrv)(nil)

// NewUploadIngester constructs the pipeline orchestrator.
func NewUploadIngester(strg port.Storage, mod port.Moderator, tc port.Transcoder, rec port.OutcomeRecorder, cfg Config) port.UploadIngester {
	return &uploadIngesterSrv{strg, mod, tc, rec, cfg}
}

// IngestUpload runs one uploaded object through the pipeline. Terminal
// outcomes:
//   - skipped: key outside the incoming prefix, no side effects;
//   - rejected: moderation blocked it, original deleted, no error;
//   - published: derivative written, original deleted.
//
// Any other failure propagates so the queue redelivers the event;
// re-running on an already-published key is an idempotent overwrite.
func (s *uploadIngesterSrv) IngestUpload(ctx context.Context, event model.UploadEvent) (port.IngestResult, error) {
	ctx = ingest_context.WithObjectKey(ctx, event.Key)

	if !strings.HasPrefix(event.Key, s.cfg.IncomingPrefix) {
		logger.Infof(ctx, "key outside %q, skipping", s.cfg.IncomingPrefix)
		return port.IngestResult{Outcome: model.OutcomeSkipped}, nil
	}

	relKey := strings.TrimPrefix(event.Key, s.cfg.IncomingPrefix)
	category := CategoryForKey(relKey)

	original, err := s.fetchOriginal(ctx, event)
	if err != nil {
		s.rec.RecordOutcome(ctx, event.Key, model.OutcomeError)
		return port.IngestResult{Outcome: model.OutcomeError}, err
	}

	verdict := s.moderate(ctx, original)
	if !verdict.Safe {
		// Deletion is silent: no published object, no user-facing error.
		logger.Warn(ctx, "moderation blocked image, deleting original",
			"violations", verdict.Violations)
		if err := s.strg.RemoveFile(ctx, event.Bucket, event.Key); err != nil {
			s.rec.RecordOutcome(ctx, event.Key, model.OutcomeError)
			return port.IngestResult{Outcome: model.OutcomeError}, fmt.Errorf("failed to delete rejected original %q: %w", event.Key, err)
		}
		s.rec.RecordOutcome(ctx, event.Key, model.OutcomeRejected)
		return port.IngestResult{
			Outcome:    model.OutcomeRejected,
			Category:   category,
			Violations: verdict.Violations,
		}, nil
	}

	img, err := s.tc.Decode(bytes.NewReader(original))
	if err != nil {
		s.rec.RecordOutcome(ctx, event.Key, model.OutcomeError)
		return port.IngestResult{Outcome: model.OutcomeError}, err
	}

	spec := specFor(category)
	resized := s.tc.Resize(img, spec.MaxWidth, spec.MaxHeight)

	res, err := compressor.Compress(resized, s.tc.Encode, compressor.Options{
		InitialQuality: spec.InitialQuality,
		Floor:          s.cfg.QualityFloor,
		Step:           s.cfg.QualityStep,
		MaxBytes:       s.cfg.MaxPublishBytes,
	})
	if err != nil {
		s.rec.RecordOutcome(ctx, event.Key, model.OutcomeError)
		return port.IngestResult{Outcome: model.OutcomeError}, err
	}
	if len(res.Bytes) > s.cfg.MaxPublishBytes {
		// Floor hit over budget: the category box under-shrank this image.
		logger.Warn(ctx, "publish size budget missed at quality floor",
			"size_bytes", len(res.Bytes),
			"max_bytes", s.cfg.MaxPublishBytes,
			"category", category.String())
	}

	publishedKey := PublishedKey(event.Key, s.cfg.IncomingPrefix, s.cfg.PublishedPrefix)
	if err := s.strg.SaveFile(ctx, event.Bucket, publishedKey, bytes.NewReader(res.Bytes), int64(len(res.Bytes)), map[string]string{
		"Content-Type":  OutputMimeType,
		"Cache-Control": PublishCacheControl,
	}); err != nil {
		s.rec.RecordOutcome(ctx, event.Key, model.OutcomeError)
		return port.IngestResult{Outcome: model.OutcomeError}, fmt.Errorf("failed to publish %q: %w", publishedKey, err)
	}

	if err := s.strg.RemoveFile(ctx, event.Bucket, event.Key); err != nil {
		s.rec.RecordOutcome(ctx, event.Key, model.OutcomeError)
		return port.IngestResult{Outcome: model.OutcomeError}, fmt.Errorf("failed to delete original %q after publish: %w", event.Key, err)
	}

	logger.Info(ctx, "published image",
		"published_key", publishedKey,
		"category", category.String(),
		"quality", res.Quality,
		"size_bytes", len(res.Bytes),
		"encode_iterations", res.Iterations)
	s.rec.RecordOutcome(ctx, event.Key, model.OutcomePublished)

	return port.IngestResult{
		Outcome:      model.OutcomePublished,
		Category:     category,
		PublishedKey: publishedKey,
		QualityUsed:  res.Quality,
	}, nil
}

// fetchOriginal stats before streaming: the storage client reports a
// missing object lazily on the first read, and the stat surfaces it as a
// mapped domain error up front instead.
func (s *uploadIngesterSrv) fetchOriginal(ctx context.Context, event model.UploadEvent) ([]byte, error) {
	info, err := s.strg.StatFile(ctx, event.Bucket, event.Key)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "fetching original",
		"size_bytes", info.SizeBytes,
		"content_type", info.ContentType)

	reader, err := s.strg.GetFile(ctx, event.Bucket, event.Key)
	if err != nil {
		return nil, err
	}
	defer func(reader io.ReadSeekCloser) { _ = reader.Close() }(reader)

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read original %q: %w", event.Key, err)
	}
	return data, nil
}

// moderate is the single fail-open branch: a client error means the
// classification service is down or unreachable, and availability of the
// upload flow wins over moderation coverage, so the image is treated as
// safe. A positive verdict is unaffected.
func (s *uploadIngesterSrv) moderate(ctx context.Context, image []byte) model.Verdict {
	mctx, cancel := context.WithTimeout(ctx, s.cfg.ModerationTimeout)
	defer cancel()

	detections, err := s.mod.DetectLabels(mctx, image, s.cfg.MinConfidence)
	if err != nil {
		logger.Warnf(ctx, "moderation unavailable, failing open: %v", err)
		return model.Verdict{Safe: true}
	}
	return moderation.Decide(detections, s.cfg.MinConfidence)
}
