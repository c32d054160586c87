package search

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/kailas-cloud/semsearch/internal/domain"
	"github.com/kailas-cloud/semsearch/internal/index"
)

// --- Mocks ---

type mockEmbedder struct {
	vec []float32
	err error

	mu     sync.Mutex
	called bool
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.mu.Lock()
	m.called = true
	m.mu.Unlock()
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

func (m *mockEmbedder) wasCalled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.called
}

type mockIndex struct {
	hits []index.Hit
	err  error

	mu    sync.Mutex
	lastK int
}

func (m *mockIndex) Search(_ []float32, k int) ([]index.Hit, error) {
	m.mu.Lock()
	m.lastK = k
	m.mu.Unlock()
	return m.hits, m.err
}

func (m *mockIndex) gotK() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastK
}

type mockStore struct {
	docs []domain.Document
}

func (m *mockStore) Len() int                { return len(m.docs) }
func (m *mockStore) At(i int) domain.Document { return m.docs[i] }

func threeDocs() *mockStore {
	return &mockStore{docs: []domain.Document{
		{ID: "doc_1", Text: "first"},
		{ID: "doc_2", Text: "second"},
		{ID: "doc_3", Text: "third"},
	}}
}

// --- Tests ---

func TestSearch_ReturnsJoinedResults(t *testing.T) {
	idx := &mockIndex{hits: []index.Hit{
		{Position: 2, Distance: 0.1},
		{Position: 0, Distance: 0.5},
	}}
	embed := &mockEmbedder{vec: []float32{0.1, 0.2}}
	svc := New(embed, idx, threeDocs())

	results, err := svc.Search(context.Background(), "test query", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !embed.wasCalled() {
		t.Error("expected Embed to be called")
	}
	if got := idx.gotK(); got != 2 {
		t.Errorf("index received k=%d, want 2", got)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].ID() != "doc_3" || results[0].Score() != 0.1 {
		t.Errorf("first result = %s/%v", results[0].ID(), results[0].Score())
	}
	if results[1].ID() != "doc_1" {
		t.Errorf("second result = %s", results[1].ID())
	}
}

func TestSearch_AscendingScores(t *testing.T) {
	idx := &mockIndex{hits: []index.Hit{
		{Position: 0, Distance: 0.1},
		{Position: 1, Distance: 0.2},
		{Position: 2, Distance: 0.9},
	}}
	svc := New(&mockEmbedder{vec: []float32{1}}, idx, threeDocs())

	results, err := svc.Search(context.Background(), "test query", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score() < results[i-1].Score() {
			t.Errorf("scores not ascending at %d", i)
		}
	}
}

func TestSearch_DropsOutOfRangePositions(t *testing.T) {
	idx := &mockIndex{hits: []index.Hit{
		{Position: -1, Distance: 0},
		{Position: 1, Distance: 0.3},
		{Position: 99, Distance: 0.4},
	}}
	svc := New(&mockEmbedder{vec: []float32{1}}, idx, threeDocs())

	results, err := svc.Search(context.Background(), "test query", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 (sentinels dropped)", len(results))
	}
	if results[0].ID() != "doc_2" {
		t.Errorf("result = %s, want doc_2", results[0].ID())
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{1}}
	svc := New(embed, &mockIndex{}, threeDocs())

	for _, q := range []string{"", "   "} {
		_, err := svc.Search(context.Background(), q, 5)
		if !errors.Is(err, domain.ErrQuery) {
			t.Errorf("query %q: expected ErrQuery, got %v", q, err)
		}
	}
	if embed.wasCalled() {
		t.Error("Embed should not run for invalid queries")
	}
}

func TestSearch_InvalidTopK(t *testing.T) {
	svc := New(&mockEmbedder{vec: []float32{1}}, &mockIndex{}, threeDocs())

	for _, k := range []int{0, -3} {
		_, err := svc.Search(context.Background(), "test query", k)
		if !errors.Is(err, domain.ErrQuery) {
			t.Errorf("topK %d: expected ErrQuery, got %v", k, err)
		}
	}
}

func TestSearch_EmbedFailure(t *testing.T) {
	embedErr := errors.New("provider down")
	svc := New(&mockEmbedder{err: embedErr}, &mockIndex{}, threeDocs())

	_, err := svc.Search(context.Background(), "test query", 5)
	if !errors.Is(err, domain.ErrQuery) {
		t.Fatalf("expected ErrQuery, got %v", err)
	}
	if !errors.Is(err, embedErr) {
		t.Error("expected the provider error to stay in the chain")
	}
}

func TestSearch_IndexFailure(t *testing.T) {
	idx := &mockIndex{err: errors.New("dim mismatch")}
	svc := New(&mockEmbedder{vec: []float32{1}}, idx, threeDocs())

	_, err := svc.Search(context.Background(), "test query", 5)
	if !errors.Is(err, domain.ErrQuery) {
		t.Fatalf("expected ErrQuery, got %v", err)
	}
}

func TestSearch_NoHits(t *testing.T) {
	svc := New(&mockEmbedder{vec: []float32{1}}, &mockIndex{}, threeDocs())

	results, err := svc.Search(context.Background(), "test query", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestSearch_Concurrent(t *testing.T) {
	idx := &mockIndex{hits: []index.Hit{{Position: 0, Distance: 0.1}}}
	svc := New(&mockEmbedder{vec: []float32{1}}, idx, threeDocs())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results, err := svc.Search(context.Background(), "concurrent query", 1)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if len(results) != 1 || results[0].ID() != "doc_1" {
				t.Errorf("unexpected results: %+v", results)
			}
		}()
	}
	wg.Wait()
}
