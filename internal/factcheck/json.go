package factcheck

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fencePattern        = regexp.MustCompile("```(?:json)?\\s*")
	objectPattern       = regexp.MustCompile(`(?s)\{.*\}`)
	trailingCommaObject = regexp.MustCompile(`,\s*\}`)
	trailingCommaArray  = regexp.MustCompile(`,\s*\]`)
)

// ExtractJSON pulls a JSON object out of LLM output. Models wrap JSON in
// markdown code fences and occasionally emit trailing commas; both are
// tolerated here before giving up.
func ExtractJSON(text string) (map[string]any, error) {
	text = fencePattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	match := objectPattern.FindString(text)
	if match == "" {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(match), &result); err == nil {
		return result, nil
	}

	// Retry after removing trailing commas
	repaired := trailingCommaObject.ReplaceAllString(match, "}")
	repaired = trailingCommaArray.ReplaceAllString(repaired, "]")
	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}

	return result, nil
}
