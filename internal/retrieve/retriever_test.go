package retrieve

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/avolkov/veritas/internal/cache"
	"github.com/avolkov/veritas/internal/store"
)

// fakeEmbedder returns a fixed vector and counts calls
type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, nil
}

func (f *fakeEmbedder) Dimension() int    { return len(f.vector) }
func (f *fakeEmbedder) ModelName() string { return "fake-embedding" }

// fakeStore returns canned search results
type fakeStore struct {
	results []store.Result
	err     error
	lastK   int
}

func (f *fakeStore) Upsert(items []store.Item) error { return nil }

func (f *fakeStore) Search(query []float32, k int) ([]store.Result, error) {
	f.lastK = k
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeStore) Count() (int, error) { return len(f.results), nil }
func (f *fakeStore) Close() error        { return nil }

func TestRetrieve(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{1, 0}}
	vectors := &fakeStore{results: []store.Result{
		{ID: "a:0", Score: 0.9, Content: "chunk text", Source: "handbook"},
		{ID: "b:0", Score: 0.5, Content: "other text", Source: "faq"},
	}}

	r := NewRetriever(embedder, vectors, nil, 2)

	docs, err := r.Retrieve(context.Background(), "query")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	if docs[0].PageContent() != "chunk text" {
		t.Errorf("content = %q", docs[0].PageContent())
	}
	if docs[0].Metadata()["source"] != "handbook" {
		t.Errorf("metadata = %v", docs[0].Metadata())
	}
	if vectors.lastK != 2 {
		t.Errorf("search k = %d, want 2", vectors.lastK)
	}
}

func TestRetrieve_EmbedError(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{1, 0}, err: errors.New("api down")}
	r := NewRetriever(embedder, &fakeStore{}, nil, 3)

	if _, err := r.Retrieve(context.Background(), "query"); err == nil {
		t.Error("expected embed error to propagate")
	}
}

func TestRetrieve_SearchError(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{1, 0}}
	vectors := &fakeStore{err: errors.New("store closed")}
	r := NewRetriever(embedder, vectors, nil, 3)

	if _, err := r.Retrieve(context.Background(), "query"); err == nil {
		t.Error("expected search error to propagate")
	}
}

func TestRetrieve_CachesQueryEmbedding(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{1, 0}}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	r := NewRetriever(embedder, &fakeStore{}, c, 3)

	if _, err := r.Retrieve(context.Background(), "same query"); err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if _, err := r.Retrieve(context.Background(), "same query"); err != nil {
		t.Fatalf("Retrieve: %v", err)
	}

	if embedder.calls != 1 {
		t.Errorf("embedder called %d times, want 1 (second hit cached)", embedder.calls)
	}
}

func TestNewRetriever_TopKFallback(t *testing.T) {
	r := NewRetriever(&fakeEmbedder{vector: []float32{1}}, &fakeStore{}, nil, 0)
	if r.topK != 3 {
		t.Errorf("topK = %d, want fallback 3", r.topK)
	}
}

func TestFormatDocuments_Truncates(t *testing.T) {
	long := strings.Repeat("x", 1500)
	docs := []Document{
		{Content: long, Meta: map[string]string{"source": "big.txt"}},
		{Content: "short", Meta: map[string]string{}},
	}

	got := FormatDocuments(docs)

	if !strings.Contains(got, "### big.txt") {
		t.Error("missing source heading")
	}
	if !strings.Contains(got, strings.Repeat("x", 1000)+"...") {
		t.Error("long body should be truncated at 1000 characters with ellipsis")
	}
	if strings.Contains(got, strings.Repeat("x", 1001)) {
		t.Error("body exceeds the display truncation limit")
	}
	if !strings.Contains(got, "### Document 2\nshort") {
		t.Error("missing synthetic heading for unlabeled document")
	}
}

func TestFormatDocuments_Empty(t *testing.T) {
	if got := FormatDocuments(nil); got != "" {
		t.Errorf("got %q, want empty string", got)
	}
}
