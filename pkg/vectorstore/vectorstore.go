// Package vectorstore provides an in-memory vector index searched by cosine
// similarity. It backs the retrieval tool in pkg/agents; a managed vector
// database can replace it behind the same Searcher interface.
package vectorstore

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Document is one indexed item: an identifier, the text shown to the
// synthesizer, and its embedding vector.
type Document struct {
	ID      string
	Content string
	Vector  []float32
}

// SearchResult pairs a document with its similarity score.
type SearchResult struct {
	Document Document
	Score    float64
}

// Searcher is the retrieval contract consumed by the search tool.
type Searcher interface {
	Search(ctx context.Context, vector []float32, k int) ([]SearchResult, error)
}

// Store is an in-memory, concurrency-safe vector index.
type Store struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// New creates an empty store.
func New() *Store {
	return &Store{docs: make(map[string]Document)}
}

// Upsert adds or replaces a document. The vector must be non-empty and
// match the dimension of previously stored vectors.
func (s *Store) Upsert(doc Document) error {
	if doc.ID == "" {
		return fmt.Errorf("document missing id")
	}
	if len(doc.Vector) == 0 {
		return fmt.Errorf("document %s has empty vector", doc.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.docs {
		if len(existing.Vector) != len(doc.Vector) {
			return fmt.Errorf("document %s vector dimension %d does not match store dimension %d",
				doc.ID, len(doc.Vector), len(existing.Vector))
		}
		break
	}

	s.docs[doc.ID] = doc
	return nil
}

// Len returns the number of indexed documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Search returns the k nearest documents by cosine similarity, best first.
func (s *Store) Search(_ context.Context, vector []float32, k int) ([]SearchResult, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("query vector is empty")
	}
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]SearchResult, 0, len(s.docs))
	for _, doc := range s.docs {
		score, err := cosineSimilarity(vector, doc.Vector)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", doc.ID, err)
		}
		results = append(results, SearchResult{Document: doc, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Document.ID < results[j].Document.ID
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// cosineSimilarity computes the normalized dot product of two vectors.
func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimension mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("zero-magnitude vector")
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
