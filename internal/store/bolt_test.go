package store

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T, dimension int) (*BoltStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vectors.db")
	s, err := Open(path, dimension)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestUpsertAndSearch(t *testing.T) {
	s, _ := openTestStore(t, 3)

	items := []Item{
		{ID: "a", Vector: []float32{1, 0, 0}, Content: "east", Source: "map.txt"},
		{ID: "b", Vector: []float32{0, 1, 0}, Content: "north", Source: "map.txt"},
		{ID: "c", Vector: []float32{0.9, 0.1, 0}, Content: "mostly east", Source: "map.txt"},
	}
	if err := s.Upsert(items); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	results, err := s.Search([]float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].ID != "a" {
		t.Errorf("top hit = %q, want exact match a", results[0].ID)
	}
	if results[1].ID != "c" {
		t.Errorf("second hit = %q, want c", results[1].ID)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("scores not descending: %v, %v", results[0].Score, results[1].Score)
	}
	if results[0].Content != "east" || results[0].Source != "map.txt" {
		t.Errorf("payload not carried: %+v", results[0])
	}
}

func TestSearch_EmptyStore(t *testing.T) {
	s, _ := openTestStore(t, 3)

	results, err := s.Search([]float32{1, 0, 0}, 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want none", results)
	}
}

func TestDimensionMismatch(t *testing.T) {
	s, _ := openTestStore(t, 3)

	err := s.Upsert([]Item{{ID: "x", Vector: []float32{1, 0}}})
	if err == nil {
		t.Error("expected dimension mismatch error on upsert")
	}

	if _, err := s.Search([]float32{1, 0}, 1); err == nil {
		t.Error("expected dimension mismatch error on search")
	}
}

func TestUpsert_Overwrites(t *testing.T) {
	s, _ := openTestStore(t, 2)

	if err := s.Upsert([]Item{{ID: "a", Vector: []float32{1, 0}, Content: "old"}}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := s.Upsert([]Item{{ID: "a", Vector: []float32{1, 0}, Content: "new"}}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	count, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 after overwrite", count)
	}

	results, err := s.Search([]float32{1, 0}, 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results[0].Content != "new" {
		t.Errorf("content = %q, want updated value", results[0].Content)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.db")

	s, err := Open(path, 2)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Upsert([]Item{{ID: "a", Vector: []float32{0, 1}, Content: "kept", Source: "s"}}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path, 2)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	count, err := reopened.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("count after reopen = %d, want 1", count)
	}

	results, err := reopened.Search([]float32{0, 1}, 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results[0].ID != "a" || results[0].Content != "kept" {
		t.Errorf("result = %+v", results[0])
	}
}

func TestCosineSimilarity(t *testing.T) {
	if got := cosineSimilarity([]float32{1, 0}, []float32{1, 0}); got != 1.0 {
		t.Errorf("identical vectors = %v, want 1.0", got)
	}
	if got := cosineSimilarity([]float32{1, 0}, []float32{0, 1}); got != 0.0 {
		t.Errorf("orthogonal vectors = %v, want 0.0", got)
	}
	if got := cosineSimilarity([]float32{0, 0}, []float32{1, 0}); got != 0.0 {
		t.Errorf("zero vector = %v, want 0.0", got)
	}
	if got := cosineSimilarity([]float32{1}, []float32{1, 0}); got != 0.0 {
		t.Errorf("length mismatch = %v, want 0.0", got)
	}
}
