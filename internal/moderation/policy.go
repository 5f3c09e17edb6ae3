package moderation

import "github.com/venueo/media-pipeline-go/internal/model"

// blockedCategories is the platform policy: moderate strictness. Suggestive
// content, alcohol, gambling and action violence stay allowed; only the
// graphic subset of violence is blocked.
var blockedCategories = map[string]bool{
	"Explicit Nudity":          true,
	"Graphic Violence Or Gore": true,
	"Drugs":                    true,
	"Drug Paraphernalia":       true,
	"Pills":                    true,
	"Tobacco":                  true,
	"Hate Symbols":             true,
	"Extremist":                true,
	"Rude Gestures":            true,
	"Visually Disturbing":      true,
}

// Decide maps the detections for one image to a verdict. A detection counts
// as a violation when its label or parent label is on the blocked list and
// its confidence clears the threshold. Pure function, no I/O.
func Decide(detections []model.Detection, threshold float64) model.Verdict {
	var violations []model.Detection
	for _, d := range detections {
		if d.Confidence < threshold {
			continue
		}
		if blockedCategories[d.Label] || blockedCategories[d.ParentLabel] {
			violations = append(violations, d)
		}
	}
	return model.Verdict{
		Safe:       len(violations) == 0,
		Violations: violations,
	}
}
