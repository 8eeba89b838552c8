package embed

import (
	"context"
	"testing"

	"github.com/avolkov/veritas/internal/model"
)

func TestNewOpenAIEmbedder_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIEmbedder(model.EmbeddingConfig{}); err == nil {
		t.Error("expected error without API key")
	}
}

func TestNewOpenAIEmbedder_Defaults(t *testing.T) {
	e, err := NewOpenAIEmbedder(model.EmbeddingConfig{APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("NewOpenAIEmbedder: %v", err)
	}
	if e.ModelName() != "text-embedding-3-small" {
		t.Errorf("model = %q", e.ModelName())
	}
	if e.Dimension() != 1536 {
		t.Errorf("dimension = %d", e.Dimension())
	}
}

func TestEmbed_EmptyInput(t *testing.T) {
	e, err := NewOpenAIEmbedder(model.EmbeddingConfig{APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("NewOpenAIEmbedder: %v", err)
	}

	vectors, err := e.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if vectors != nil {
		t.Errorf("vectors = %v, want nil for empty input", vectors)
	}
}

func TestDimensionFor(t *testing.T) {
	cases := []struct {
		model string
		want  int
	}{
		{"text-embedding-3-small", 1536},
		{"text-embedding-3-large", 3072},
		{"text-embedding-ada-002", 1536},
		{"something-unknown", 1536},
	}
	for _, tc := range cases {
		if got := dimensionFor(tc.model); got != tc.want {
			t.Errorf("dimensionFor(%q) = %d, want %d", tc.model, got, tc.want)
		}
	}
}
