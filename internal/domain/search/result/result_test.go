package result

import (
	"strings"
	"testing"
)

func TestNew_ShortText(t *testing.T) {
	r := New("doc_1", "short text", 0.42)
	if r.ID() != "doc_1" {
		t.Errorf("id = %q", r.ID())
	}
	if r.TextSnippet() != "short text" {
		t.Errorf("snippet = %q, want unmodified text", r.TextSnippet())
	}
	if r.Score() != 0.42 {
		t.Errorf("score = %v", r.Score())
	}
}

func TestSnippet_Truncates(t *testing.T) {
	text := strings.Repeat("x", 300)
	got := Snippet(text)
	if len(got) != SnippetMaxLen {
		t.Fatalf("len = %d, want %d", len(got), SnippetMaxLen)
	}
	if got != text[:SnippetMaxLen] {
		t.Error("snippet is not the text prefix")
	}
}

func TestSnippet_ExactLimit(t *testing.T) {
	text := strings.Repeat("y", SnippetMaxLen)
	if got := Snippet(text); got != text {
		t.Errorf("text at the limit should pass through, got %d chars", len(got))
	}
}

func TestSnippet_MultibyteRunes(t *testing.T) {
	// 250 cyrillic runes, 2 bytes each. The limit counts characters, so a
	// byte-based cut would land mid-rune.
	text := strings.Repeat("ж", 250)
	got := Snippet(text)
	runes := []rune(got)
	if len(runes) != SnippetMaxLen {
		t.Fatalf("rune count = %d, want %d", len(runes), SnippetMaxLen)
	}
	for _, r := range runes {
		if r != 'ж' {
			t.Fatalf("corrupted rune %q in snippet", r)
		}
	}
}
