package request

import (
	"fmt"
	"strings"
)

// Search parameter limits.
const (
	// MinQueryLength is the minimum query length enforced at the HTTP boundary.
	MinQueryLength = 3
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultTopK    = 5
	MaxTopK        = 100
)

// Request is a validated search query.
type Request struct {
	query string
	topK  int
}

// New validates and normalizes search parameters. topK == 0 means "not set"
// and falls back to defaultTopK (DefaultTopK when defaultTopK is not positive).
func New(query string, topK, defaultTopK int) (Request, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return Request{}, fmt.Errorf("query must not be empty")
	}
	if len(trimmed) < MinQueryLength {
		return Request{}, fmt.Errorf("query must be at least %d characters long", MinQueryLength)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if topK < 0 {
		return Request{}, fmt.Errorf("top_k must be greater than zero")
	}
	if topK == 0 {
		topK = defaultTopK
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}

	return Request{query: query, topK: topK}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// TopK returns the number of nearest neighbors to retrieve.
func (r *Request) TopK() int { return r.topK }
