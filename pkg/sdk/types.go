package semsearch

// Result is one search hit. Score is the L2 distance between the query and
// document embeddings; smaller means closer.
type Result struct {
	ID          string  `json:"id"`
	TextSnippet string  `json:"text_snippet"`
	Score       float64 `json:"score"`
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  *int   `json:"top_k,omitempty"`
}
