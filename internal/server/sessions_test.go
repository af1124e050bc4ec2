package server

import (
	"testing"
	"time"

	"resumelens/internal/analyzer"
	"resumelens/internal/config"
	"resumelens/internal/errors"
)

func testLogger(t *testing.T) *errors.Logger {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

func testProvider(t *testing.T) analyzer.Provider {
	t.Helper()
	cfg := &config.AnalyzerConfig{Mode: "demo", DemoDelay: time.Millisecond}
	provider, err := analyzer.NewDemoProvider(cfg, testLogger(t))
	if err != nil {
		t.Fatalf("failed to create demo provider: %v", err)
	}
	t.Cleanup(func() {
		_ = provider.Close()
	})
	return provider
}

func TestSessionStoreCreateAndGet(t *testing.T) {
	store := NewSessionStore(time.Minute, testLogger(t))
	defer store.Close()

	sess := store.Create(testProvider(t), testLogger(t))
	if sess.ID == "" {
		t.Fatal("session must get an ID")
	}
	if sess.Orchestrator == nil {
		t.Fatal("session must carry an orchestrator")
	}

	got, ok := store.Get(sess.ID)
	if !ok || got.ID != sess.ID {
		t.Errorf("expected to retrieve session %s, got %v ok=%v", sess.ID, got, ok)
	}
	if store.Count() != 1 {
		t.Errorf("expected 1 session, got %d", store.Count())
	}

	if _, ok := store.Get("no-such-session"); ok {
		t.Error("unknown session ID must not resolve")
	}
}

func TestSessionStoreEviction(t *testing.T) {
	store := NewSessionStore(time.Minute, testLogger(t))
	defer store.Close()

	stale := store.Create(testProvider(t), testLogger(t))
	fresh := store.Create(testProvider(t), testLogger(t))

	stale.mu.Lock()
	stale.lastSeen = time.Now().Add(-2 * time.Minute)
	stale.mu.Unlock()

	store.evictExpired()

	if _, ok := store.Get(stale.ID); ok {
		t.Error("expired session must be evicted")
	}
	if _, ok := store.Get(fresh.ID); !ok {
		t.Error("fresh session must survive eviction")
	}
}

func TestSessionGetRefreshesTTL(t *testing.T) {
	store := NewSessionStore(time.Minute, testLogger(t))
	defer store.Close()

	sess := store.Create(testProvider(t), testLogger(t))
	sess.mu.Lock()
	sess.lastSeen = time.Now().Add(-2 * time.Minute)
	sess.mu.Unlock()

	// Get touches the session, so eviction right after must keep it
	if _, ok := store.Get(sess.ID); !ok {
		t.Fatal("session must still resolve before eviction")
	}
	store.evictExpired()
	if _, ok := store.Get(sess.ID); !ok {
		t.Error("a recently touched session must survive eviction")
	}
}

func TestSessionReportAndCharts(t *testing.T) {
	store := NewSessionStore(time.Minute, testLogger(t))
	defer store.Close()
	sess := store.Create(testProvider(t), testLogger(t))

	if _, ok := sess.Report(); ok {
		t.Error("no report before an analysis completes")
	}
	if _, ok := sess.Chart("skills"); ok {
		t.Error("no chart before an analysis completes")
	}

	result := analyzer.DemoResult()
	result.Filename = "resume.pdf"
	sess.SetResult(result, 700, 420, 700, 300)

	view, ok := sess.Report()
	if !ok {
		t.Fatal("expected a report after SetResult")
	}
	if view.ScoreText != "83" {
		t.Errorf("expected score text 83, got %q", view.ScoreText)
	}

	skills, ok := sess.Chart("skills")
	if !ok {
		t.Fatal("expected a skills chart")
	}
	if !skills.Drawn() {
		t.Error("chart must be drawn on first access")
	}

	trend, ok := sess.Chart("trend")
	if !ok || !trend.Drawn() {
		t.Error("expected a drawn trend chart")
	}

	if _, ok := sess.Chart("pie"); ok {
		t.Error("unknown chart kind must not resolve")
	}
}

func TestSessionSetResultReplacesCharts(t *testing.T) {
	store := NewSessionStore(time.Minute, testLogger(t))
	defer store.Close()
	sess := store.Create(testProvider(t), testLogger(t))

	sess.SetResult(analyzer.DemoResult(), 700, 420, 700, 300)
	first, _ := sess.Chart("skills")

	// A new result discards the old surfaces instead of redrawing them
	sess.SetResult(analyzer.DemoResult(), 700, 420, 700, 300)
	second, _ := sess.Chart("skills")

	if first == second {
		t.Error("a new result must get fresh chart surfaces")
	}
}
