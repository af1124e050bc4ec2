package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"resumelens/internal/analyzer"
	"resumelens/internal/charts"
	"resumelens/internal/errors"
	"resumelens/internal/render"
	"resumelens/internal/types"
	"resumelens/internal/upload"
)

// Session models one client workflow: the selected file, its raw content,
// the analysis state machine, and the rendered report with its chart
// surfaces. State never outlives the session, mirroring a page reload
// discarding everything.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu          sync.Mutex
	lastSeen    time.Time
	fileContent []byte

	Orchestrator *analyzer.Orchestrator

	lastResult *types.AnalysisResult
	lastView   *render.ReportView

	skillsChart *charts.Surface
	trendChart  *charts.Surface
}

// Touch marks the session as recently used.
func (sess *Session) Touch() {
	sess.mu.Lock()
	sess.lastSeen = time.Now()
	sess.mu.Unlock()
}

// SetFileContent stores the uploaded resume bytes for the later analyze
// call.
func (sess *Session) SetFileContent(content []byte) {
	sess.mu.Lock()
	sess.fileContent = content
	sess.mu.Unlock()
}

// FileContent returns the stored resume bytes.
func (sess *Session) FileContent() []byte {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.fileContent
}

// SetResult stores a completed analysis and rebuilds the report view and
// chart surfaces from scratch. Previous chart surfaces are discarded, not
// redrawn over.
func (sess *Session) SetResult(result types.AnalysisResult, skillsW, skillsH, trendW, trendH int) {
	view := render.Render(result)

	sess.mu.Lock()
	sess.lastResult = &result
	sess.lastView = &view
	sess.skillsChart = charts.NewSurface(skillsW, skillsH)
	sess.trendChart = charts.NewSurface(trendW, trendH)
	sess.mu.Unlock()
}

// Report returns the current report view, if an analysis has completed.
func (sess *Session) Report() (render.ReportView, bool) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.lastView == nil {
		return render.ReportView{}, false
	}
	return *sess.lastView, true
}

// Chart returns the surface for the given chart kind, drawing it on first
// access. The surface's draw-once marker keeps repeated requests from
// re-rendering.
func (sess *Session) Chart(kind string) (*charts.Surface, bool) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.lastResult == nil {
		return nil, false
	}

	switch kind {
	case "skills":
		sess.skillsChart.DrawSkillBars(sess.lastResult.Skills.Extracted)
		return sess.skillsChart, true
	case "trend":
		sess.trendChart.DrawTrend(charts.ScoreTrend(sess.lastResult.ATSScore.OverallScore))
		return sess.trendChart, true
	default:
		return nil, false
	}
}

// SessionStore manages sessions with TTL-based eviction.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	done     chan struct{}
	logger   *errors.Logger
}

// NewSessionStore creates a store and starts the eviction goroutine.
func NewSessionStore(ttl time.Duration, logger *errors.Logger) *SessionStore {
	store := &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		done:     make(chan struct{}),
		logger:   logger,
	}

	go store.cleanupRoutine(ttl / 2)
	return store
}

// Create registers a new session around a fresh workflow controller.
func (st *SessionStore) Create(provider analyzer.Provider, logger *errors.Logger) *Session {
	controller := upload.NewController(logger)
	sess := &Session{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now(),
		lastSeen:     time.Now(),
		Orchestrator: analyzer.NewOrchestrator(controller, provider, logger),
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()

	return sess
}

// Get retrieves a session by ID and refreshes its last-seen time.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.Lock()
	sess, ok := st.sessions[id]
	st.mu.Unlock()
	if ok {
		sess.Touch()
	}
	return sess, ok
}

// Count returns the number of live sessions.
func (st *SessionStore) Count() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *SessionStore) cleanupRoutine(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st.evictExpired()
		case <-st.done:
			return
		}
	}
}

func (st *SessionStore) evictExpired() {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := time.Now()
	evicted := 0
	for id, sess := range st.sessions {
		sess.mu.Lock()
		expired := now.Sub(sess.lastSeen) > st.ttl
		sess.mu.Unlock()
		if expired {
			delete(st.sessions, id)
			evicted++
		}
	}

	if evicted > 0 && st.logger != nil {
		st.logger.Debug("Session cleanup completed",
			"evicted", evicted,
			"remaining", len(st.sessions))
	}
}

// Close stops the eviction goroutine.
func (st *SessionStore) Close() {
	close(st.done)
}
