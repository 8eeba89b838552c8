package synth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/avolkov/veritas/internal/model"
)

// BuildPrompt constructs the generation prompt. Two mutually exclusive
// templates are selected on a single branch: at least one supported claim
// produces the answer-synthesis template, zero supported claims produces the
// honest-limitations template.
func BuildPrompt(query string, c Classification, passages []model.Passage, confidence float64) string {
	if len(c.Supported) > 0 {
		return buildAnswerPrompt(query, c, passages, confidence)
	}
	return buildInsufficientPrompt(query, c, passages, confidence)
}

func buildAnswerPrompt(query string, c Classification, passages []model.Passage, confidence float64) string {
	return fmt.Sprintf(`**TASK**: You are a final answer synthesizer. Create a comprehensive, well-structured answer to the user's query using the verified claims and context provided.

**ORIGINAL QUERY**: %s

**VERIFICATION RESULTS**:
- SUPPORTED Claims: %d
- PARTIALLY SUPPORTED: %d
- NOT SUPPORTED: %d
- CONTRADICTED: %d

**SUPPORTED CLAIMS**:
%s

**SUPPORTING CONTEXT DOCUMENTS**:
%s

**INSTRUCTIONS**:
1. Create a clear, well-structured answer focusing on the SUPPORTED claims
2. Include specific details and examples from the context
3. Cite your sources using [Source: ...] notation
4. Be honest about any limitations or uncertainties
5. The overall confidence in this answer is %s%%

**FINAL ANSWER**:
`, query,
		len(c.Supported), len(c.PartiallySupported), len(c.NotSupported), len(c.Contradicted),
		bulletList(c.Supported),
		serializePassages(passages),
		formatConfidence(confidence))
}

func buildInsufficientPrompt(query string, c Classification, passages []model.Passage, confidence float64) string {
	return fmt.Sprintf(`**TASK**: You are a final answer synthesizer. The fact-checking process found limited support for claims related to the user's query.

**ORIGINAL QUERY**: %s

**VERIFICATION RESULTS**:
- SUPPORTED Claims: %d
- PARTIALLY SUPPORTED: %d
- NOT SUPPORTED: %d
- CONTRADICTED: %d

**CONTEXT DOCUMENTS**:
%s

**INSTRUCTIONS**:
1. Honestly state that limited verified information was found
2. Mention what the documents do contain that might be related
3. Suggest what additional information would be needed
4. The overall confidence in available information is %s%%

**FINAL ANSWER**:
`, query,
		len(c.Supported), len(c.PartiallySupported), len(c.NotSupported), len(c.Contradicted),
		serializePassages(passages),
		formatConfidence(confidence))
}

// serializePassages prefixes each passage with a bracketed source tag and
// joins with blank lines. No truncation: the generator gets the full text
// (the display-only formatter in the retriever truncates, this path does not).
func serializePassages(passages []model.Passage) string {
	parts := make([]string, len(passages))
	for i, p := range passages {
		parts[i] = fmt.Sprintf("[Source: %s]\n%s", p.Source, p.Content)
	}
	return strings.Join(parts, "\n\n")
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func formatConfidence(confidence float64) string {
	return strconv.FormatFloat(confidence, 'f', -1, 64)
}
