package model

// ClaimBreakdown counts verdicts per status bucket
type ClaimBreakdown struct {
	Supported          int `json:"supported" yaml:"supported"`
	PartiallySupported int `json:"partially_supported" yaml:"partially_supported"`
	NotSupported       int `json:"not_supported" yaml:"not_supported"`
	Contradicted       int `json:"contradicted" yaml:"contradicted"`
}

// Total returns the number of claims across all buckets
func (b ClaimBreakdown) Total() int {
	return b.Supported + b.PartiallySupported + b.NotSupported + b.Contradicted
}

// SynthesisResult is the final deliverable of the answer synthesizer.
// All fields are produced fresh per call; nothing is persisted.
type SynthesisResult struct {
	FinalAnswer     string         `json:"final_answer"`
	ConfidenceScore float64        `json:"confidence_score"` // 0-100, rounded to 2 decimals
	VerifiedSources []string       `json:"verified_sources"` // distinct source labels, order-insensitive
	Limitations     string         `json:"limitations"`
	ClaimBreakdown  ClaimBreakdown `json:"claim_breakdown"`
}
