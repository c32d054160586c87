package domain

import "fmt"

// Document is one searchable corpus entry. Documents are created together at
// load time and are immutable afterwards; their position in the corpus is the
// join key to the vector index.
type Document struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Validate checks document constraints.
func (d Document) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("document id is required")
	}
	return nil
}
