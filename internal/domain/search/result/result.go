package result

// SnippetMaxLen is the maximum snippet length in characters.
const SnippetMaxLen = 200

// Result is a single search hit. Score is the raw L2 distance reported by the
// vector index; lower means more similar.
type Result struct {
	id      string
	snippet string
	score   float64
}

// New creates a search result, truncating text to the snippet limit.
func New(id, text string, score float64) Result {
	return Result{id: id, snippet: Snippet(text), score: score}
}

// ID returns the document identifier.
func (r *Result) ID() string { return r.id }

// TextSnippet returns the truncated document text.
func (r *Result) TextSnippet() string { return r.snippet }

// Score returns the distance to the query vector.
func (r *Result) Score() float64 { return r.score }

// Snippet returns the first SnippetMaxLen characters of text. Truncation is
// positional, with no word-boundary awareness.
func Snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= SnippetMaxLen {
		return text
	}
	return string(runes[:SnippetMaxLen])
}
