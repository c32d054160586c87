package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockCorpus struct {
	docs, vecs int
}

func (m *mockCorpus) DocumentCount() int { return m.docs }
func (m *mockCorpus) VectorCount() int   { return m.vecs }

type mockChecker struct {
	err error
}

func (m *mockChecker) HealthCheck(_ context.Context) error { return m.err }

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockCorpus{docs: 100, vecs: 100}, &mockChecker{}, &mockPinger{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status = %s, want %s", report.Status, Healthy)
	}
	for name, res := range report.Checks {
		if res != CheckOK {
			t.Errorf("check %s = %s", name, res)
		}
	}
	if len(report.Checks) != 3 {
		t.Errorf("got %d checks, want 3", len(report.Checks))
	}
}

func TestCheck_EmptyCorpus(t *testing.T) {
	svc := New(&mockCorpus{docs: 0, vecs: 0}, nil, nil)

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %s, want %s", report.Status, Degraded)
	}
	if report.Checks["corpus"] != CheckError {
		t.Errorf("corpus check = %s", report.Checks["corpus"])
	}
}

func TestCheck_EmbeddingDown(t *testing.T) {
	svc := New(&mockCorpus{docs: 10, vecs: 10}, &mockChecker{err: errors.New("unreachable")}, nil)

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %s, want %s", report.Status, Degraded)
	}
	if report.Checks["embedding"] != CheckError {
		t.Errorf("embedding check = %s", report.Checks["embedding"])
	}
	if report.Checks["corpus"] != CheckOK {
		t.Errorf("corpus check = %s", report.Checks["corpus"])
	}
}

func TestCheck_CacheDown(t *testing.T) {
	svc := New(&mockCorpus{docs: 10, vecs: 10}, &mockChecker{}, &mockPinger{err: errors.New("refused")})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %s, want %s", report.Status, Degraded)
	}
	if report.Checks["cache"] != CheckError {
		t.Errorf("cache check = %s", report.Checks["cache"])
	}
}

func TestCheck_NilOptionalComponents(t *testing.T) {
	svc := New(&mockCorpus{docs: 10, vecs: 10}, nil, nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status = %s, want %s", report.Status, Healthy)
	}
	if _, ok := report.Checks["embedding"]; ok {
		t.Error("embedding check should be absent when no checker is wired")
	}
	if _, ok := report.Checks["cache"]; ok {
		t.Error("cache check should be absent when no pinger is wired")
	}
}
