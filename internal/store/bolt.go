package store

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"sync"

	"go.etcd.io/bbolt"
)

var bucketVectors = []byte("vectors")

// Item is a vector plus the chunk text and source it was derived from.
// Content and source are stored alongside the vector so retrieval does not
// need a second lookup.
type Item struct {
	ID      string
	Vector  []float32
	Content string
	Source  string
}

// Result is one search hit, higher score is better
type Result struct {
	ID      string
	Score   float64
	Content string
	Source  string
}

// VectorStore stores and searches embedding vectors
type VectorStore interface {
	Upsert(items []Item) error
	Search(query []float32, k int) ([]Result, error)
	Count() (int, error)
	Close() error
}

// BoltStore implements VectorStore using bbolt for persistence.
// Uses brute-force cosine search; fine for document collections of this size.
type BoltStore struct {
	db        *bbolt.DB
	dimension int
	mu        sync.RWMutex
	// In-memory mirror for fast search
	vectors map[string]storedVector
}

type storedVector struct {
	Vector  []float32 `json:"v"`
	Content string    `json:"c"`
	Source  string    `json:"s"`
}

// Open opens (or creates) a bbolt-backed vector store at path
func Open(path string, dimension int) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketVectors)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create vectors bucket: %w", err)
	}

	s := &BoltStore{
		db:        db,
		dimension: dimension,
		vectors:   make(map[string]storedVector),
	}

	if err := s.loadVectors(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load vectors: %w", err)
	}

	return s, nil
}

// loadVectors mirrors all persisted vectors into memory
func (s *BoltStore) loadVectors() error {
	return s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketVectors)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var stored storedVector
			if err := json.Unmarshal(v, &stored); err != nil {
				return nil // skip corrupted entries
			}
			s.vectors[string(k)] = stored
			return nil
		})
	})
}

// Upsert adds or updates vectors in the store
func (s *BoltStore) Upsert(items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketVectors)
		if b == nil {
			return fmt.Errorf("vectors bucket not found")
		}

		for _, item := range items {
			if len(item.Vector) != s.dimension {
				return fmt.Errorf("vector dimension mismatch: expected %d, got %d", s.dimension, len(item.Vector))
			}

			stored := storedVector{
				Vector:  item.Vector,
				Content: item.Content,
				Source:  item.Source,
			}
			data, err := json.Marshal(stored)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(item.ID), data); err != nil {
				return err
			}

			s.vectors[item.ID] = stored
		}

		return nil
	})
}

// Search finds the k nearest vectors by cosine similarity
func (s *BoltStore) Search(query []float32, k int) ([]Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(query) != s.dimension {
		return nil, fmt.Errorf("query dimension mismatch: expected %d, got %d", s.dimension, len(query))
	}
	if len(s.vectors) == 0 {
		return nil, nil
	}

	results := make([]Result, 0, len(s.vectors))
	for id, stored := range s.vectors {
		results = append(results, Result{
			ID:      id,
			Score:   cosineSimilarity(query, stored.Vector),
			Content: stored.Content,
			Source:  stored.Source,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if k > 0 && k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Count returns the number of stored vectors
func (s *BoltStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors), nil
}

// Close closes the underlying database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
