package factcheck

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/avolkov/veritas/internal/llm"
	"github.com/avolkov/veritas/internal/model"
)

const checkerSystem = "You are a meticulous fact checker. You only classify claims by how well the supplied evidence supports them. You never use outside knowledge."

// Checker produces claim verdicts by asking the generation provider to
// extract the factual claims relevant to a question and verify each one
// against the retrieved evidence.
type Checker struct {
	provider llm.Provider
}

// NewChecker creates a checker backed by the given provider
func NewChecker(provider llm.Provider) *Checker {
	return &Checker{provider: provider}
}

// Check verifies claims for the query against the passages. A provider
// failure is returned as an error; a response the model garbled into
// unparseable JSON degrades to an empty verdict set with a warning, so the
// downstream synthesizer still produces its honest-limitations answer.
func (c *Checker) Check(ctx context.Context, query string, passages []model.Passage) (model.VerdictSet, error) {
	if len(passages) == 0 {
		return model.VerdictSet{}, nil
	}

	resp, err := c.provider.Generate(ctx, llm.GenerateRequest{
		System: checkerSystem,
		Prompt: buildVerificationPrompt(query, passages),
	})
	if err != nil {
		return nil, fmt.Errorf("verification call: %w", err)
	}

	raw, err := ExtractJSON(resp.Text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: fact checker returned unparseable verdicts: %v\n", err)
		return model.VerdictSet{}, nil
	}

	return model.ParseVerdicts(raw), nil
}

func buildVerificationPrompt(query string, passages []model.Passage) string {
	var evidence strings.Builder
	for _, p := range passages {
		fmt.Fprintf(&evidence, "[Source: %s]\n%s\n\n", p.Source, p.Content)
	}

	return fmt.Sprintf(`**TASK**: Extract the factual claims needed to answer the question below, then verify each claim strictly against the evidence documents.

**QUESTION**: %s

**EVIDENCE DOCUMENTS**:
%s
**INSTRUCTIONS**:
1. List each atomic factual claim relevant to the question
2. For each claim, decide: SUPPORTED, PARTIALLY_SUPPORTED, NOT_SUPPORTED, or CONTRADICTED
3. Give a confidence from 0 to 100
4. Quote the evidence that drove your decision

Respond with ONLY a JSON object mapping each claim text to its verdict:
{
  "<claim text>": {
    "verification_status": "SUPPORTED",
    "confidence": 95,
    "evidence": "<quoted evidence>",
    "explanation": "<one sentence>"
  }
}
`, query, evidence.String())
}
