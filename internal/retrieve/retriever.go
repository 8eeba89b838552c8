package retrieve

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avolkov/veritas/internal/cache"
	"github.com/avolkov/veritas/internal/embed"
	"github.com/avolkov/veritas/internal/store"
)

// Document is a retrieved chunk plus its metadata. It satisfies
// model.Documenter, so retrieved documents pass through the synthesizer's
// passage adapter as the structured shape.
type Document struct {
	Content string
	Meta    map[string]string
}

// PageContent returns the chunk text
func (d Document) PageContent() string { return d.Content }

// Metadata returns the chunk metadata
func (d Document) Metadata() map[string]string { return d.Meta }

// Retriever embeds a query and finds the top-k most similar chunks in the
// vector store. An optional cache avoids re-embedding repeated queries.
type Retriever struct {
	embedder embed.Embedder
	vectors  store.VectorStore
	cache    cache.Cache // nil disables caching
	topK     int
}

// NewRetriever creates a retriever
func NewRetriever(embedder embed.Embedder, vectors store.VectorStore, c cache.Cache, topK int) *Retriever {
	if topK <= 0 {
		topK = 3
	}
	return &Retriever{
		embedder: embedder,
		vectors:  vectors,
		cache:    c,
		topK:     topK,
	}
}

// Retrieve returns the top-k documents for the query
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]Document, error) {
	vector, err := r.embedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := r.vectors.Search(vector, r.topK)
	if err != nil {
		return nil, fmt.Errorf("search vectors: %w", err)
	}

	docs := make([]Document, 0, len(results))
	for _, res := range results {
		docs = append(docs, Document{
			Content: res.Content,
			Meta: map[string]string{
				"source": res.Source,
			},
		})
	}

	return docs, nil
}

// embedQuery embeds the query text, consulting the cache first
func (r *Retriever) embedQuery(ctx context.Context, query string) ([]float32, error) {
	key := cache.Key("embed:"+r.embedder.ModelName(), query)

	if r.cache != nil {
		if data, found := r.cache.Get(key); found {
			var vector []float32
			if err := json.Unmarshal(data, &vector); err == nil && len(vector) == r.embedder.Dimension() {
				return vector, nil
			}
		}
	}

	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("expected 1 vector, got %d", len(vectors))
	}

	if r.cache != nil {
		if data, err := json.Marshal(vectors[0]); err == nil {
			_ = r.cache.Set(key, data, 0)
		}
	}

	return vectors[0], nil
}

const displayTruncateAt = 1000

// FormatDocuments renders retrieved documents for display, truncating each
// body to the first 1000 characters. Display only: the synthesis path
// serializes passages in full.
func FormatDocuments(docs []Document) string {
	formatted := make([]string, 0, len(docs))
	for i, doc := range docs {
		title := doc.Meta["source"]
		if title == "" {
			title = fmt.Sprintf("Document %d", i+1)
		}

		body := doc.Content
		if len(body) > displayTruncateAt {
			body = body[:displayTruncateAt] + "..."
		}

		formatted = append(formatted, fmt.Sprintf("### %s\n%s\n", title, body))
	}

	return strings.Join(formatted, "\n\n")
}
