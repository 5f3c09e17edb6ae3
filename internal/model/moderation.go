package model

// Detection is one concern reported by the content-classification service.
// Confidence is a percentage in [0,100]. ParentLabel is empty for top-level
// categories.
type Detection struct {
	Label       string  `json:"label"`
	ParentLabel string  `json:"parent_label,omitempty"`
	Confidence  float64 `json:"confidence"`
}

// Verdict is the policy decision for one image. Violations holds every
// detection that matched the blocked-category list, kept for audit logging.
// A verdict is computed fresh per upload and never stored.
type Verdict struct {
	Safe       bool        `json:"safe"`
	Violations []Detection `json:"violations,omitempty"`
}
