package synth

import (
	"context"
	"fmt"

	"github.com/avolkov/veritas/internal/llm"
	"github.com/avolkov/veritas/internal/model"
)

const systemPrompt = "You are a careful assistant that synthesizes final answers strictly from verified claims and the supplied context documents."

// Synthesizer turns fact-check verdicts and retrieved context into a final
// answer with a calibrated confidence score. The generation provider is
// injected by the caller, which also owns its lifecycle.
type Synthesizer struct {
	provider llm.Provider
}

// NewSynthesizer creates a synthesizer backed by the given provider
func NewSynthesizer(provider llm.Provider) *Synthesizer {
	return &Synthesizer{provider: provider}
}

// Synthesize produces a SynthesisResult for the query. It never fails
// outward: a generation error is converted into a degraded but valid result
// whose FinalAnswer carries the error description and whose Limitations is a
// fixed system-error string, while the confidence score and claim breakdown
// keep the values computed from the verdicts. One generation call per
// invocation, no retry.
//
// docs may arrive in any of the three tolerated retriever shapes; they are
// normalized before use.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, verdicts model.VerdictSet, docs []any) *model.SynthesisResult {
	passages := model.NormalizePassages(docs)

	sources := model.DistinctSources(passages)
	if sources == nil {
		sources = []string{}
	}

	confidence := AggregateConfidence(verdicts)
	classification := Classify(verdicts)
	breakdown := classification.Breakdown()

	prompt := BuildPrompt(query, classification, passages, confidence)

	resp, err := s.provider.Generate(ctx, llm.GenerateRequest{
		System: systemPrompt,
		Prompt: prompt,
	})
	if err != nil {
		return &model.SynthesisResult{
			FinalAnswer:     fmt.Sprintf("I encountered an error while generating the final answer: %v", err),
			ConfidenceScore: confidence,
			VerifiedSources: sources,
			Limitations:     "System error during answer generation",
			ClaimBreakdown:  breakdown,
		}
	}

	return &model.SynthesisResult{
		FinalAnswer:     resp.Text,
		ConfidenceScore: confidence,
		VerifiedSources: sources,
		Limitations: fmt.Sprintf("Based on verification: %d supported, %d not supported claims",
			breakdown.Supported, breakdown.NotSupported),
		ClaimBreakdown: breakdown,
	}
}
