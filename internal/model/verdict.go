package model

import (
	"fmt"
	"os"
)

// VerificationStatus classifies how well a claim is supported by evidence
type VerificationStatus string

const (
	StatusSupported          VerificationStatus = "SUPPORTED"           // Claim fully backed by evidence
	StatusPartiallySupported VerificationStatus = "PARTIALLY_SUPPORTED" // Evidence backs part of the claim
	StatusNotSupported       VerificationStatus = "NOT_SUPPORTED"       // No evidence found for the claim
	StatusContradicted       VerificationStatus = "CONTRADICTED"        // Evidence contradicts the claim
	StatusUnknown            VerificationStatus = "UNKNOWN"             // Defensive default for malformed verdicts
)

// IsRecognized reports whether the status participates in confidence aggregation.
// UNKNOWN and anything malformed are excluded from the average entirely.
func (s VerificationStatus) IsRecognized() bool {
	switch s {
	case StatusSupported, StatusPartiallySupported, StatusNotSupported, StatusContradicted:
		return true
	}
	return false
}

// ClaimVerdict is one verification outcome for one claim.
// Produced by the fact checker; the synthesizer only reads it.
type ClaimVerdict struct {
	Claim       string             `json:"claim" yaml:"claim"`
	Status      VerificationStatus `json:"verification_status" yaml:"verification_status"`
	Confidence  float64            `json:"confidence" yaml:"confidence"` // 0-100, caller-supplied
	Evidence    string             `json:"evidence,omitempty" yaml:"evidence,omitempty"`
	Explanation string             `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// VerdictSet maps claim text to its verdict. The claim text doubles as the key;
// two distinct claims with identical text overwrite each other. Accepted limitation.
type VerdictSet map[string]ClaimVerdict

// ParseVerdicts converts a loosely typed verdict mapping (as decoded from
// fact-checker JSON) into a VerdictSet. Malformed entries degrade instead of
// erroring: a non-mapping value becomes an UNKNOWN verdict with zero
// confidence, a mapping with a missing status defaults to NOT_SUPPORTED so it
// still dilutes the aggregate confidence, and a negative or non-numeric
// confidence is clamped to zero with a warning.
func ParseVerdicts(raw map[string]any) VerdictSet {
	verdicts := make(VerdictSet, len(raw))

	for claim, value := range raw {
		verdict := ClaimVerdict{
			Claim:  claim,
			Status: StatusUnknown,
		}

		if m, ok := value.(map[string]any); ok {
			verdict.Status = StatusNotSupported
			if s, ok := m["verification_status"].(string); ok && s != "" {
				verdict.Status = VerificationStatus(s)
			}
			verdict.Confidence = parseConfidence(claim, m["confidence"])
			if s, ok := m["evidence"].(string); ok {
				verdict.Evidence = s
			}
			if s, ok := m["explanation"].(string); ok {
				verdict.Explanation = s
			}
		}

		verdicts[claim] = verdict
	}

	return verdicts
}

// parseConfidence coerces a confidence value to float64. Negative or
// non-numeric values become 0 rather than propagating a type error.
func parseConfidence(claim string, value any) float64 {
	var confidence float64

	switch v := value.(type) {
	case float64:
		confidence = v
	case int:
		confidence = float64(v)
	case nil:
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Warning: non-numeric confidence %v for claim %q, using 0\n", value, truncate(claim, 60))
		return 0
	}

	if confidence < 0 {
		fmt.Fprintf(os.Stderr, "Warning: negative confidence %v for claim %q, using 0\n", confidence, truncate(claim, 60))
		return 0
	}

	return confidence
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
