package synth

import (
	"testing"

	"github.com/avolkov/veritas/internal/model"
)

func TestAggregateConfidence_Empty(t *testing.T) {
	if got := AggregateConfidence(model.VerdictSet{}); got != 0.0 {
		t.Errorf("expected 0.0 for empty verdicts, got %v", got)
	}

	if got := AggregateConfidence(nil); got != 0.0 {
		t.Errorf("expected 0.0 for nil verdicts, got %v", got)
	}
}

func TestAggregateConfidence_ContradictedDilutes(t *testing.T) {
	// A contradicted claim contributes to the divisor but not the numerator
	verdicts := model.VerdictSet{
		"The earth is flat": {
			Claim:      "The earth is flat",
			Status:     model.StatusContradicted,
			Confidence: 90,
		},
	}

	if got := AggregateConfidence(verdicts); got != 0.0 {
		t.Errorf("expected 0.0 for contradicted-only verdicts, got %v", got)
	}
}

func TestAggregateConfidence_WeightedMean(t *testing.T) {
	verdicts := model.VerdictSet{
		"claim one": {Status: model.StatusSupported, Confidence: 100},
		"claim two": {Status: model.StatusPartiallySupported, Confidence: 100},
	}

	// (100 + 100*0.7) / 2 = 85.0
	if got := AggregateConfidence(verdicts); got != 85.0 {
		t.Errorf("expected 85.0, got %v", got)
	}
}

func TestAggregateConfidence_MixedWithUnsupported(t *testing.T) {
	verdicts := model.VerdictSet{
		"supported":     {Status: model.StatusSupported, Confidence: 100},
		"not supported": {Status: model.StatusNotSupported, Confidence: 80},
		"contradicted":  {Status: model.StatusContradicted, Confidence: 95},
	}

	// 100 / 3 = 33.33 (unsupported and contradicted dilute the mean)
	if got := AggregateConfidence(verdicts); got != 33.33 {
		t.Errorf("expected 33.33, got %v", got)
	}
}

func TestAggregateConfidence_ClampedAt100(t *testing.T) {
	// Malformed upstream confidence above 100 must not leak through
	verdicts := model.VerdictSet{
		"claim": {Status: model.StatusSupported, Confidence: 150},
	}

	if got := AggregateConfidence(verdicts); got != 100.0 {
		t.Errorf("expected clamp to 100.0, got %v", got)
	}
}

func TestAggregateConfidence_UnknownExcluded(t *testing.T) {
	// UNKNOWN is excluded from both numerator and divisor
	verdicts := model.VerdictSet{
		"known":   {Status: model.StatusSupported, Confidence: 80},
		"unknown": {Status: model.StatusUnknown, Confidence: 100},
		"bogus":   {Status: model.VerificationStatus("BOGUS"), Confidence: 100},
	}

	if got := AggregateConfidence(verdicts); got != 80.0 {
		t.Errorf("expected 80.0 (unknown statuses excluded), got %v", got)
	}
}

func TestAggregateConfidence_OnlyUnrecognized(t *testing.T) {
	verdicts := model.VerdictSet{
		"a": {Status: model.StatusUnknown, Confidence: 100},
		"b": {Status: model.VerificationStatus("supported"), Confidence: 100}, // wrong case
	}

	if got := AggregateConfidence(verdicts); got != 0.0 {
		t.Errorf("expected 0.0 when no verdict has a recognized status, got %v", got)
	}
}

func TestAggregateConfidence_MissingStatusDilutes(t *testing.T) {
	// A checker verdict that arrives without a status parses to
	// NOT_SUPPORTED and must count in the divisor.
	verdicts := model.ParseVerdicts(map[string]any{
		"claim without status": map[string]any{
			"confidence": float64(50),
		},
		"supported claim": map[string]any{
			"verification_status": "SUPPORTED",
			"confidence":          float64(100),
		},
	})

	// (100 + 0) / 2
	if got := AggregateConfidence(verdicts); got != 50.0 {
		t.Errorf("expected 50.0, got %v", got)
	}
}

func TestAggregateConfidence_Rounding(t *testing.T) {
	verdicts := model.VerdictSet{
		"a": {Status: model.StatusSupported, Confidence: 100},
		"b": {Status: model.StatusSupported, Confidence: 100},
		"c": {Status: model.StatusNotSupported, Confidence: 0},
	}

	// 200 / 3 = 66.666... rounds to 66.67
	if got := AggregateConfidence(verdicts); got != 66.67 {
		t.Errorf("expected 66.67, got %v", got)
	}
}
