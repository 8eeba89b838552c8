package synth

import (
	"sort"

	"github.com/avolkov/veritas/internal/model"
)

// Classification groups claim texts by verdict status. Every claim lands in
// exactly one bucket.
type Classification struct {
	Supported          []string
	PartiallySupported []string
	NotSupported       []string
	Contradicted       []string
}

// Breakdown returns the per-bucket counts
func (c Classification) Breakdown() model.ClaimBreakdown {
	return model.ClaimBreakdown{
		Supported:          len(c.Supported),
		PartiallySupported: len(c.PartiallySupported),
		NotSupported:       len(c.NotSupported),
		Contradicted:       len(c.Contradicted),
	}
}

// Classify dispatches each verdict into one of the four buckets by exact,
// case-sensitive status match. Anything else (UNKNOWN, missing, malformed)
// fails closed into NotSupported: unproven evidence rather than silently
// dropped or treated as supported.
//
// Claims are iterated in sorted order so output is deterministic.
func Classify(verdicts model.VerdictSet) Classification {
	claims := make([]string, 0, len(verdicts))
	for claim := range verdicts {
		claims = append(claims, claim)
	}
	sort.Strings(claims)

	var c Classification
	for _, claim := range claims {
		switch verdicts[claim].Status {
		case model.StatusSupported:
			c.Supported = append(c.Supported, claim)
		case model.StatusPartiallySupported:
			c.PartiallySupported = append(c.PartiallySupported, claim)
		case model.StatusContradicted:
			c.Contradicted = append(c.Contradicted, claim)
		default:
			c.NotSupported = append(c.NotSupported, claim)
		}
	}

	return c
}
