package ingest

import (
	"time"

	"github.com/venueo/media-pipeline-go/internal/model"
)

const (
	OutputMimeType  = "image/webp"
	OutputExtension = ".webp"

	// Published objects are immutable derivatives, so downstream caches may
	// hold them for a year.
	PublishCacheControl = "public, max-age=31536000, immutable"
)

// Config carries every knob the orchestrator needs. Built once at startup,
// never mutated.
type Config struct {
	Bucket          string
	IncomingPrefix  string
	PublishedPrefix string

	// MinConfidence is both the floor sent to the classification service
	// and the threshold applied by the policy.
	MinConfidence     float64
	ModerationTimeout time.Duration

	MaxPublishBytes int
	QualityFloor    int
	QualityStep     int
}

// DefaultConfig returns the production defaults: 1 MiB publish budget,
// quality stepping down by 5 to a floor of 50, moderation floor at 75%.
func DefaultConfig(bucket string) Config {
	return Config{
		Bucket:            bucket,
		IncomingPrefix:    "uploads/",
		PublishedPrefix:   "processed/",
		MinConfidence:     75,
		ModerationTimeout: 10 * time.Second,
		MaxPublishBytes:   1 << 20,
		QualityFloor:      50,
		QualityStep:       5,
	}
}

// categorySpec is the static per-category resize and encode configuration.
type categorySpec struct {
	MaxWidth       int
	MaxHeight      int
	InitialQuality int
}

var categorySpecs = map[model.AssetCategory]categorySpec{
	model.CategoryCover:   {MaxWidth: 1920, MaxHeight: 1080, InitialQuality: 85},
	model.CategoryGallery: {MaxWidth: 1200, MaxHeight: 800, InitialQuality: 80},
	model.CategoryLogo:    {MaxWidth: 400, MaxHeight: 400, InitialQuality: 90},
	model.CategoryBanner:  {MaxWidth: 1920, MaxHeight: 600, InitialQuality: 85},
	model.CategoryDefault: {MaxWidth: 1200, MaxHeight: 800, InitialQuality: 80},
}

func specFor(cat model.AssetCategory) categorySpec {
	if s, ok := categorySpecs[cat]; ok {
		return s
	}
	return categorySpecs[model.CategoryDefault]
}
