package semsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client is the semsearch HTTP API client.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// New creates a client for the semsearch service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o.apply(c)
	}
	return c
}

// Search runs a semantic search for query and returns the closest documents
// ordered by ascending distance.
func (c *Client) Search(ctx context.Context, query string, opts ...SearchOption) ([]Result, error) {
	body := searchRequest{Query: query}
	for _, o := range opts {
		o.apply(&body)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("semsearch: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("semsearch: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("semsearch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var results []Result
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("semsearch: decode response: %w", err)
	}
	return results, nil
}

// Health reports whether the service is reachable.
func (c *Client) Health(ctx context.Context) error {
	return c.getStatus(ctx, "/health")
}

// Ready reports whether the service has loaded its corpus and index and can
// reach the embedding provider.
func (c *Client) Ready(ctx context.Context) error {
	return c.getStatus(ctx, "/ready")
}

func (c *Client) getStatus(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("semsearch: build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("semsearch: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return nil
}
