package domain

// DurationEstimate is the estimator collaborator's answer for a task
// description.
type DurationEstimate struct {
	Minutes    int     `json:"estimated_duration"`
	Unit       string  `json:"unit"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning,omitempty"`
}
