package semsearch

import "net/http"

// Option configures the Client.
type Option interface {
	apply(*Client)
}

type optionFunc func(*Client)

func (f optionFunc) apply(c *Client) { f(c) }

// WithAPIKey sets a bearer token sent with every request.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *Client) {
		c.apiKey = key
	})
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *Client) {
		c.httpc = hc
	})
}

// SearchOption configures a single Search call.
type SearchOption interface {
	apply(*searchRequest)
}

type searchOptionFunc func(*searchRequest)

func (f searchOptionFunc) apply(r *searchRequest) { f(r) }

// WithTopK requests up to k results. The service default applies when unset.
func WithTopK(k int) SearchOption {
	return searchOptionFunc(func(r *searchRequest) {
		r.TopK = &k
	})
}
