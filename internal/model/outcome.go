package model

// Outcome is the terminal state of one upload's trip through the pipeline.
type Outcome string

const (
	// OutcomeSkipped means the key was outside the incoming prefix; nothing
	// was fetched or written.
	OutcomeSkipped Outcome = "skipped"
	// OutcomePublished means a compressed derivative was written and the
	// original deleted.
	OutcomePublished Outcome = "published"
	// OutcomeRejected means moderation blocked the image and the original
	// was deleted. Not an error.
	OutcomeRejected Outcome = "rejected"
	// OutcomeError means the pipeline failed mid-flight; the event is
	// expected to be redelivered.
	OutcomeError Outcome = "error"
)
