package model

import "fmt"

// Passage is a retrieved text fragment plus its originating document label,
// used as generation grounding.
type Passage struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}

// Documenter is the structured shape a retriever may hand us: an object
// exposing page content and metadata (the richest of the three tolerated
// input shapes).
type Documenter interface {
	PageContent() string
	Metadata() map[string]string
}

// NormalizePassages converts a heterogeneous sequence of retriever payloads
// into canonical passages. The retriever's payload shape has varied across
// integration versions, so three shapes are tolerated:
//
//  1. a Documenter (structured document with metadata),
//  2. a map with "metadata"/"content" keys,
//  3. any other value, coerced to a string.
//
// Passages without an explicit source get a synthetic "Document {i}" label
// (1-based).
func NormalizePassages(items []any) []Passage {
	passages := make([]Passage, 0, len(items))

	for i, item := range items {
		fallback := fmt.Sprintf("Document %d", i+1)

		switch doc := item.(type) {
		case Documenter:
			source := doc.Metadata()["source"]
			if source == "" {
				source = fallback
			}
			passages = append(passages, Passage{Content: doc.PageContent(), Source: source})

		case map[string]any:
			source := fallback
			if meta, ok := doc["metadata"].(map[string]any); ok {
				if s, ok := meta["source"].(string); ok && s != "" {
					source = s
				}
			}
			content, _ := doc["content"].(string)
			passages = append(passages, Passage{Content: content, Source: source})

		default:
			passages = append(passages, Passage{Content: fmt.Sprintf("%v", item), Source: fallback})
		}
	}

	return passages
}

// DistinctSources returns the deduplicated source labels across passages,
// preserving first-seen order.
func DistinctSources(passages []Passage) []string {
	seen := make(map[string]bool, len(passages))
	var sources []string
	for _, p := range passages {
		if !seen[p.Source] {
			seen[p.Source] = true
			sources = append(sources, p.Source)
		}
	}
	return sources
}
