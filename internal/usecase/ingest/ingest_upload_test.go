package ingest

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/venueo/media-pipeline-go/internal/mock"
	"github.com/venueo/media-pipeline-go/internal/model"
	"github.com/venueo/media-pipeline-go/internal/transcoder"
)

func testEvent(key string) model.UploadEvent {
	return model.UploadEvent{Bucket: "media", Key: key}
}

func newService(strg *mock.Storage, mod *mock.Moderator, tc *mock.Transcoder, rec *mock.Recorder) *uploadIngesterSrv {
	return &uploadIngesterSrv{strg, mod, tc, rec, DefaultConfig("media")}
}

func TestIngestUpload_SkipsForeignPrefix(t *testing.T) {
	strg := &mock.Storage{}
	mod := &mock.Moderator{}
	svc := newService(strg, mod, &mock.Transcoder{}, &mock.Recorder{})

	res, err := svc.IngestUpload(context.Background(), testEvent("avatars/u1.png"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != model.OutcomeSkipped {
		t.Errorf("outcome = %q; want skipped", res.Outcome)
	}
	if strg.StatCalled || strg.GetCalled || strg.SaveCalled || strg.RemoveCalled || mod.Called {
		t.Error("skip must produce no storage or moderation calls")
	}
}

func TestIngestUpload_OriginalAlreadyGone(t *testing.T) {
	// duplicate delivery after a successful run: the stat reports not-found
	strg := &mock.Storage{StatErr: ErrObjectNotFound}
	rec := &mock.Recorder{}
	svc := newService(strg, &mock.Moderator{}, &mock.Transcoder{}, rec)

	res, err := svc.IngestUpload(context.Background(), testEvent("uploads/x/photo.png"))
	if !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
	if res.Outcome != model.OutcomeError {
		t.Errorf("outcome = %q; want error", res.Outcome)
	}
	if strg.GetCalled {
		t.Error("no fetch should follow a failed stat")
	}
	if rec.Last() != model.OutcomeError {
		t.Errorf("recorded outcome = %q; want error", rec.Last())
	}
}

func TestIngestUpload_FetchError(t *testing.T) {
	strg := &mock.Storage{GetErr: errors.New("read fail")}
	rec := &mock.Recorder{}
	svc := newService(strg, &mock.Moderator{}, &mock.Transcoder{}, rec)

	res, err := svc.IngestUpload(context.Background(), testEvent("uploads/x/photo.png"))
	if err == nil || !strings.Contains(err.Error(), "read fail") {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if res.Outcome != model.OutcomeError {
		t.Errorf("outcome = %q; want error", res.Outcome)
	}
	if rec.Last() != model.OutcomeError {
		t.Errorf("recorded outcome = %q; want error", rec.Last())
	}
}

func TestIngestUpload_RejectsBlockedContent(t *testing.T) {
	strg := &mock.Storage{GetOut: []byte("imgdata")}
	mod := &mock.Moderator{DetectionsOut: []model.Detection{
		{Label: "Explicit Nudity", Confidence: 92},
	}}
	rec := &mock.Recorder{}
	svc := newService(strg, mod, &mock.Transcoder{}, rec)

	res, err := svc.IngestUpload(context.Background(), testEvent("uploads/x/photo.png"))
	if err != nil {
		t.Fatalf("rejection must not surface an error, got %v", err)
	}
	if res.Outcome != model.OutcomeRejected {
		t.Fatalf("outcome = %q; want rejected", res.Outcome)
	}
	if len(res.Violations) != 1 || res.Violations[0].Label != "Explicit Nudity" {
		t.Errorf("violations = %v", res.Violations)
	}
	if strg.SaveCalled {
		t.Error("no published object may be created for rejected content")
	}
	if !strg.RemoveCalled || strg.RemovedKeys[0] != "uploads/x/photo.png" {
		t.Error("rejected original must be deleted")
	}
	if rec.Last() != model.OutcomeRejected {
		t.Errorf("recorded outcome = %q; want rejected", rec.Last())
	}
}

func TestIngestUpload_AllowedLabelPublishes(t *testing.T) {
	// allowed-but-flagged content proceeds to publish
	strg := &mock.Storage{GetOut: []byte("imgdata")}
	mod := &mock.Moderator{DetectionsOut: []model.Detection{
		{Label: "Alcohol", Confidence: 88},
	}}
	svc := newService(strg, mod, &mock.Transcoder{}, &mock.Recorder{})

	res, err := svc.IngestUpload(context.Background(), testEvent("uploads/x/photo.png"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != model.OutcomePublished {
		t.Errorf("outcome = %q; want published", res.Outcome)
	}
	if !strg.SaveCalled {
		t.Error("expected publish write")
	}
}

func TestIngestUpload_FailOpenOnModerationError(t *testing.T) {
	strg := &mock.Storage{GetOut: []byte("imgdata")}
	mod := &mock.Moderator{Err: errors.New("timeout")}
	svc := newService(strg, mod, &mock.Transcoder{}, &mock.Recorder{})

	res, err := svc.IngestUpload(context.Background(), testEvent("uploads/x/photo.png"))
	if err != nil {
		t.Fatalf("fail-open must not surface the moderation error, got %v", err)
	}
	if res.Outcome != model.OutcomePublished {
		t.Errorf("outcome = %q; want published", res.Outcome)
	}
	if !mod.Called {
		t.Error("moderation must still be attempted")
	}
}

func TestIngestUpload_PublishMetadataAndCleanup(t *testing.T) {
	strg := &mock.Storage{GetOut: []byte("imgdata")}
	tc := &mock.Transcoder{}
	svc := newService(strg, &mock.Moderator{}, tc, &mock.Recorder{})

	res, err := svc.IngestUpload(context.Background(), testEvent("uploads/places/demo/cover/party.jpg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PublishedKey != "processed/places/demo/cover/party.webp" {
		t.Errorf("published key = %q", res.PublishedKey)
	}
	if res.Category != model.CategoryCover {
		t.Errorf("category = %q; want cover", res.Category)
	}
	if strg.SavedKey != res.PublishedKey {
		t.Errorf("saved key = %q", strg.SavedKey)
	}
	if ct := strg.SavedOpts["Content-Type"]; ct != "image/webp" {
		t.Errorf("content type = %q", ct)
	}
	if cc := strg.SavedOpts["Cache-Control"]; !strings.Contains(cc, "max-age=31536000") {
		t.Errorf("cache control = %q", cc)
	}
	// cover box drives the resize
	if tc.ResizeMaxWidth != 1920 || tc.ResizeMaxHeight != 1080 {
		t.Errorf("resize box = %dx%d; want 1920x1080", tc.ResizeMaxWidth, tc.ResizeMaxHeight)
	}
	// original gone after publish
	if len(strg.RemovedKeys) != 1 || strg.RemovedKeys[0] != "uploads/places/demo/cover/party.jpg" {
		t.Errorf("removed keys = %v", strg.RemovedKeys)
	}
}

func TestIngestUpload_QualityWalk(t *testing.T) {
	strg := &mock.Storage{GetOut: []byte("imgdata")}
	// logo starts at 90; over budget until 80
	tc := &mock.Transcoder{EncodeSizes: map[int]int{
		90: 3 << 20,
		85: 2 << 20,
		80: 500_000,
	}}
	svc := newService(strg, &mock.Moderator{}, tc, &mock.Recorder{})

	res, err := svc.IngestUpload(context.Background(), testEvent("uploads/v/logo.png"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.QualityUsed != 80 {
		t.Errorf("quality used = %d; want 80", res.QualityUsed)
	}
	if want := []int{90, 85, 80}; len(tc.EncodeQualities) != len(want) {
		t.Errorf("encode qualities = %v; want %v", tc.EncodeQualities, want)
	}
	if len(strg.SavedBytes) != 500_000 {
		t.Errorf("published %d bytes; want the fitting encode", len(strg.SavedBytes))
	}
}

func TestIngestUpload_DecodeError(t *testing.T) {
	strg := &mock.Storage{GetOut: []byte("not an image")}
	tc := &mock.Transcoder{DecodeErr: errors.New("decode fail")}
	rec := &mock.Recorder{}
	svc := newService(strg, &mock.Moderator{}, tc, rec)

	_, err := svc.IngestUpload(context.Background(), testEvent("uploads/x/bad.png"))
	if err == nil || !strings.Contains(err.Error(), "decode fail") {
		t.Fatalf("expected decode error, got %v", err)
	}
	if strg.SaveCalled || strg.RemoveCalled {
		t.Error("no storage writes on transcoding failure")
	}
	if rec.Last() != model.OutcomeError {
		t.Errorf("recorded outcome = %q; want error", rec.Last())
	}
}

func TestIngestUpload_SaveErrorPropagates(t *testing.T) {
	strg := &mock.Storage{GetOut: []byte("imgdata"), SaveErr: errors.New("save fail")}
	svc := newService(strg, &mock.Moderator{}, &mock.Transcoder{}, &mock.Recorder{})

	_, err := svc.IngestUpload(context.Background(), testEvent("uploads/x/photo.png"))
	if err == nil || !strings.Contains(err.Error(), "save fail") {
		t.Fatalf("expected save error, got %v", err)
	}
	if strg.RemoveCalled {
		t.Error("original must not be deleted when publish failed")
	}
}

func TestIngestUpload_DeleteAfterPublishErrorPropagates(t *testing.T) {
	strg := &mock.Storage{GetOut: []byte("imgdata"), RemoveErr: errors.New("remove fail")}
	svc := newService(strg, &mock.Moderator{}, &mock.Transcoder{}, &mock.Recorder{})

	_, err := svc.IngestUpload(context.Background(), testEvent("uploads/x/photo.png"))
	if err == nil || !strings.Contains(err.Error(), "remove fail") {
		t.Fatalf("expected remove error, got %v", err)
	}
	// the derivative was written before the failing delete; a redelivery
	// overwrites it with identical content
	if !strg.SaveCalled {
		t.Error("publish write should have happened before the delete")
	}
}

func TestIngestUpload_RejectedDeleteErrorPropagates(t *testing.T) {
	strg := &mock.Storage{GetOut: []byte("imgdata"), RemoveErr: errors.New("remove fail")}
	mod := &mock.Moderator{DetectionsOut: []model.Detection{{Label: "Drugs", Confidence: 90}}}
	svc := newService(strg, mod, &mock.Transcoder{}, &mock.Recorder{})

	_, err := svc.IngestUpload(context.Background(), testEvent("uploads/x/photo.png"))
	if err == nil || !strings.Contains(err.Error(), "remove fail") {
		t.Fatalf("expected remove error, got %v", err)
	}
	if strg.SaveCalled {
		t.Error("no publish write for rejected content")
	}
}

// End-to-end shape of scenario A with the real transcoder: a large safe
// JPEG lands under the cover box and the size budget.
func TestIngestUpload_LargeSafeJPEG(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, image.NewRGBA(image.Rect(0, 0, 3000, 2000)), &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	strg := &mock.Storage{GetOut: buf.Bytes()}
	svc := &uploadIngesterSrv{strg, &mock.Moderator{}, transcoder.NewWebPTranscoder(), &mock.Recorder{}, DefaultConfig("media")}

	res, err := svc.IngestUpload(context.Background(), testEvent("uploads/places/demo/cover/party.jpg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != model.OutcomePublished {
		t.Fatalf("outcome = %q; want published", res.Outcome)
	}
	if res.PublishedKey != "processed/places/demo/cover/party.webp" {
		t.Errorf("published key = %q", res.PublishedKey)
	}
	if len(strg.SavedBytes) == 0 || len(strg.SavedBytes) > 1<<20 {
		t.Errorf("published %d bytes; want 0 < n <= 1MiB", len(strg.SavedBytes))
	}

	// resized derivative fits the cover box
	tc := transcoder.NewWebPTranscoder()
	img, err := tc.Decode(bytes.NewReader(strg.SavedBytes))
	if err != nil {
		t.Fatalf("decode published webp: %v", err)
	}
	if b := img.Bounds(); b.Dx() > 1920 || b.Dy() > 1080 {
		t.Errorf("published dimensions %dx%d exceed 1920x1080", b.Dx(), b.Dy())
	}
}

// Re-running a published event must not error and must write the same key.
func TestIngestUpload_Rerunnable(t *testing.T) {
	strg := &mock.Storage{GetOut: []byte("imgdata")}
	svc := newService(strg, &mock.Moderator{}, &mock.Transcoder{}, &mock.Recorder{})

	first, err := svc.IngestUpload(context.Background(), testEvent("uploads/x/photo.png"))
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := svc.IngestUpload(context.Background(), testEvent("uploads/x/photo.png"))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.PublishedKey != second.PublishedKey {
		t.Errorf("published keys differ: %q vs %q", first.PublishedKey, second.PublishedKey)
	}
}
