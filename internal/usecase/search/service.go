package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/semsearch/internal/domain"
	"github.com/kailas-cloud/semsearch/internal/domain/search/result"
	"github.com/kailas-cloud/semsearch/internal/metrics"
)

// Service is the query pipeline: embed the query, run nearest-neighbor
// search, and join hits back to documents. Stateless and re-entrant: the
// store and index are read-only, so concurrent Search calls need no locking.
type Service struct {
	embed Embedder
	index Index
	docs  DocumentStore
}

// New creates a search service.
func New(embed Embedder, idx Index, docs DocumentStore) *Service {
	return &Service{embed: embed, index: idx, docs: docs}
}

// Search returns up to topK documents nearest to query, ordered by ascending
// distance. Validation failures and any underlying embedding or index failure
// surface as domain.ErrQuery; no other error category escapes.
func (s *Service) Search(ctx context.Context, query string, topK int) ([]result.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query must not be empty", domain.ErrQuery)
	}
	if topK < 1 {
		return nil, fmt.Errorf("%w: top_k must be greater than zero", domain.ErrQuery)
	}

	emb, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: vectorize query: %w", domain.ErrQuery, err)
	}

	hits, err := s.index.Search(emb.Embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("%w: search index: %w", domain.ErrQuery, err)
	}

	results := make([]result.Result, 0, len(hits))
	for _, h := range hits {
		// Index backends may pad the result set with negative sentinel
		// positions when fewer than topK vectors exist. Those and anything
		// past the corpus end are dropped, not errors.
		if h.Position < 0 || h.Position >= s.docs.Len() {
			continue
		}
		doc := s.docs.At(h.Position)
		results = append(results, result.New(doc.ID, doc.Text, float64(h.Distance)))
	}

	metrics.SearchResultsCount.Observe(float64(len(results)))
	return results, nil
}
