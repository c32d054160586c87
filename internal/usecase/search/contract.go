package search

import (
	"context"

	"github.com/kailas-cloud/semsearch/internal/domain"
	"github.com/kailas-cloud/semsearch/internal/index"
)

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Index returns nearest-neighbor hits for a query vector, ordered by
// ascending distance.
type Index interface {
	Search(vector []float32, k int) ([]index.Hit, error)
}

// DocumentStore resolves index positions back to source documents.
type DocumentStore interface {
	Len() int
	At(i int) domain.Document
}
