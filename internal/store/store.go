package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/semsearch/internal/domain"
)

// Store is the in-memory document corpus. Documents keep the exact order of
// the source file, which aligns them positionally with the vector index.
// Immutable after Load; safe for concurrent readers.
type Store struct {
	docs []domain.Document
}

// Load reads a JSON array of documents from path and validates it.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read documents file: %w", err)
	}

	var docs []domain.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parse documents file %s: %w", path, err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("documents file %s is empty", path)
	}

	seen := make(map[string]struct{}, len(docs))
	for i, d := range docs {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("document at position %d: %w", i, err)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("duplicate document id %q at position %d", d.ID, i)
		}
		seen[d.ID] = struct{}{}
	}

	return &Store{docs: docs}, nil
}

// New creates a store from in-memory documents (used by tests and the indexer).
func New(docs []domain.Document) *Store {
	return &Store{docs: docs}
}

// Len returns the corpus size.
func (s *Store) Len() int { return len(s.docs) }

// At returns the document at position i. Callers must bounds-check first.
func (s *Store) At(i int) domain.Document { return s.docs[i] }

// Documents returns the underlying corpus slice. Callers must not mutate it.
func (s *Store) Documents() []domain.Document { return s.docs }
