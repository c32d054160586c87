package loader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/semsearch/internal/cache"
	"github.com/kailas-cloud/semsearch/internal/config"
	"github.com/kailas-cloud/semsearch/internal/domain"
	"github.com/kailas-cloud/semsearch/internal/index"
	"github.com/kailas-cloud/semsearch/internal/metrics"
	"github.com/kailas-cloud/semsearch/internal/repository/embcache"
	"github.com/kailas-cloud/semsearch/internal/store"
	openaiEmb "github.com/kailas-cloud/semsearch/internal/transport/openai"
	healthuc "github.com/kailas-cloud/semsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/semsearch/internal/usecase/search"
)

// Handle is one ready-to-query service instance: embedder chain + corpus +
// vector index, loaded once per process lifetime. Read-only after Load.
type Handle struct {
	Search *searchuc.Service
	Health *healthuc.Service

	docs *store.Store
	idx  *index.Flat
}

// DocumentCount returns the loaded corpus size.
func (h *Handle) DocumentCount() int { return h.docs.Len() }

// VectorCount returns the loaded index size.
func (h *Handle) VectorCount() int { return h.idx.Count() }

// Load builds a ready-to-query Handle from configuration. Every failure path
// (absent or unparsable corpus/index files, empty index) wraps
// domain.ErrInitialization: initialization failure is an operational
// condition, distinct from per-query errors.
func Load(ctx context.Context, cfg config.Config, cacheStore *cache.Store, logger *zap.Logger) (*Handle, error) {
	docs, err := store.Load(cfg.DocumentsPath())
	if err != nil {
		return nil, fmt.Errorf("%w: load documents: %w", domain.ErrInitialization, err)
	}

	idx, err := index.ReadFile(cfg.IndexPath())
	if err != nil {
		return nil, fmt.Errorf("%w: load index: %w", domain.ErrInitialization, err)
	}
	if idx.Count() == 0 {
		return nil, fmt.Errorf("%w: index %s has zero vectors", domain.ErrInitialization, cfg.IndexPath())
	}

	// Position i in the index must correspond to document i. A mismatch is
	// tolerated (out-of-range hits are dropped at query time) but signals
	// that the corpus and index were not built together.
	if idx.Count() != docs.Len() {
		logger.Warn("corpus/index size mismatch",
			zap.Int("documents", docs.Len()),
			zap.Int("vectors", idx.Count()),
		)
	}

	embedder, checker := buildEmbedder(cfg, cacheStore, logger)

	h := &Handle{
		Search: searchuc.New(embedder, idx, docs),
		docs:   docs,
		idx:    idx,
	}

	var pinger healthuc.CachePinger
	if cacheStore != nil {
		pinger = cacheStore
	}
	h.Health = healthuc.New(h, checker, pinger)

	logger.Info("search service initialized",
		zap.Int("documents", docs.Len()),
		zap.Int("vectors", idx.Count()),
		zap.Int("dimensions", idx.Dim()),
		zap.String("model", cfg.Embedding.Model),
		zap.Bool("embedding_cache", cacheStore != nil),
	)

	return h, nil
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instruction.
// The returned checker reaches through the chain to the provider.
func buildEmbedder(
	cfg config.Config, cacheStore *cache.Store, logger *zap.Logger,
) (domain.Embedder, domain.HealthChecker) {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})

	var embedder domain.Embedder = base
	var checker domain.HealthChecker = base

	if cacheStore != nil {
		cached := embcache.New(
			base, cacheStore, cfg.Embedding.Model,
			time.Duration(cfg.Cache.TTLHours)*time.Hour,
			metrics.EmbeddingCacheTotal, logger,
		)
		embedder = cached
		checker = cached
	}

	// Instruction prefix (outermost — cache key includes instruction).
	if instr := cfg.Embedding.QueryInstruction; instr != "" {
		embedder = domain.NewInstructionEmbedder(embedder, instr)
	}

	return embedder, checker
}

// Lazy defers Load to the first request, serializing concurrent first
// requests so that model, corpus, and index loading happens exactly once.
// A failed initialization is cached for the process lifetime; recovery
// requires fixing config/data and restarting.
type Lazy struct {
	load func(ctx context.Context) (*Handle, error)

	once   sync.Once
	handle *Handle
	err    error
}

// NewLazy creates a lazy loader around Load.
func NewLazy(cfg config.Config, cacheStore *cache.Store, logger *zap.Logger) *Lazy {
	return &Lazy{
		load: func(ctx context.Context) (*Handle, error) {
			return Load(ctx, cfg, cacheStore, logger)
		},
	}
}

// Handle returns the singleton service handle, initializing it on first use.
func (l *Lazy) Handle(ctx context.Context) (*Handle, error) {
	l.once.Do(func() {
		l.handle, l.err = l.load(ctx)
	})
	return l.handle, l.err
}
