package indexer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/semsearch/internal/domain"
	"github.com/kailas-cloud/semsearch/internal/index"
)

// DefaultBatchSize bounds how many texts go into one embedding API call.
const DefaultBatchSize = 32

// Builder embeds a corpus in batches and assembles the flat index. The same
// embedding model configured here must serve queries later; the files carry
// no model identity, so drift is invisible at load time.
type Builder struct {
	embedder  domain.BatchEmbedder
	batchSize int
	logger    *zap.Logger
}

// NewBuilder creates an index builder. batchSize <= 0 uses DefaultBatchSize.
func NewBuilder(embedder domain.BatchEmbedder, batchSize int, logger *zap.Logger) *Builder {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Builder{embedder: embedder, batchSize: batchSize, logger: logger}
}

// BuildIndex embeds every document text and builds a position-aligned flat
// index: vector i belongs to docs[i].
func (b *Builder) BuildIndex(ctx context.Context, docs []domain.Document) (*index.Flat, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents to index")
	}

	vectors := make([][]float32, 0, len(docs))
	var totalTokens int

	for start := 0; start < len(docs); start += b.batchSize {
		end := start + b.batchSize
		if end > len(docs) {
			end = len(docs)
		}

		texts := make([]string, 0, end-start)
		for _, d := range docs[start:end] {
			texts = append(texts, d.Text)
		}

		res, err := b.embedder.BatchEmbed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed batch [%d:%d]: %w", start, end, err)
		}
		vectors = append(vectors, res.Embeddings...)
		totalTokens += res.TotalTokens

		b.logger.Info("embedded batch",
			zap.Int("done", end),
			zap.Int("total", len(docs)),
			zap.Int("tokens", res.TotalTokens),
		)
	}

	idx, err := index.Build(vectors)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	b.logger.Info("index built",
		zap.Int("vectors", idx.Count()),
		zap.Int("dimensions", idx.Dim()),
		zap.Int("total_tokens", totalTokens),
	)
	return idx, nil
}
