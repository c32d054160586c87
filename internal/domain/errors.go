package domain

import "errors"

var (
	// ErrInitialization signals a startup-time failure: missing configuration,
	// absent or malformed corpus/index files, or an empty index. Fatal to serving.
	ErrInitialization = errors.New("search service initialization failed")
	// ErrQuery signals a per-request failure: invalid query parameters or an
	// underlying embedding/index failure while handling one request.
	ErrQuery = errors.New("query failed")
	// ErrEmbeddingProvider signals an embedding provider failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")
)
