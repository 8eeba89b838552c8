package synth

import (
	"math"

	"github.com/avolkov/veritas/internal/model"
)

// partialWeight discounts the confidence contribution of partially
// supported claims.
const partialWeight = 0.7

// AggregateConfidence computes the single 0-100 confidence number for a
// verdict set as a weighted arithmetic mean:
//
//   - SUPPORTED contributes its confidence at full weight
//   - PARTIALLY_SUPPORTED contributes confidence x 0.7
//   - NOT_SUPPORTED and CONTRADICTED contribute zero but still count toward
//     the divisor, so they actively dilute the average
//   - unrecognized statuses (UNKNOWN, malformed) are excluded entirely
//
// A batch dominated by contradictions therefore scores low even if the few
// supported claims individually score 100. The result is rounded to two
// decimals and clamped to 100 to guard against malformed upstream confidence
// values above 100.
func AggregateConfidence(verdicts model.VerdictSet) float64 {
	if len(verdicts) == 0 {
		return 0
	}

	var total float64
	valid := 0

	for _, verdict := range verdicts {
		if !verdict.Status.IsRecognized() {
			continue
		}

		switch verdict.Status {
		case model.StatusSupported:
			total += verdict.Confidence
		case model.StatusPartiallySupported:
			total += verdict.Confidence * partialWeight
		}
		valid++
	}

	if valid == 0 {
		return 0
	}

	return math.Min(100, round2(total/float64(valid)))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
