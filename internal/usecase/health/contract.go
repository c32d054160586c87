package health

import "context"

// CachePinger checks cache backend availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// Corpus reports loaded corpus and index sizes.
type Corpus interface {
	DocumentCount() int
	VectorCount() int
}
