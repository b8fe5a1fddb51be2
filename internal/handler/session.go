package handler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Shivanand-hulikatti/activity-roster/internal/service"
	"github.com/Shivanand-hulikatti/activity-roster/internal/view"
)

// Session is one page session: a view, the roster driving it, and the
// alerts waiting to be shown.
type Session struct {
	ID     string
	Roster *service.Roster
	prompt *webPrompter

	mu       sync.Mutex
	lastSeen time.Time
}

// State returns the session's view.
func (s *Session) State() *view.ViewState {
	return s.Roster.State()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// RosterFactory builds the roster for a new session.
type RosterFactory func(state *view.ViewState, prompt service.Prompter) *service.Roster

// Sessions holds the live page sessions keyed by id.
type Sessions struct {
	mu        sync.Mutex
	byID      map[string]*Session
	newRoster RosterFactory
	after     view.AfterFunc
	ttl       time.Duration
	now       func() time.Time
}

// NewSessions constructs a registry. after drives banner timers; nil uses
// the wall clock.
func NewSessions(newRoster RosterFactory, after view.AfterFunc, ttl time.Duration) *Sessions {
	return &Sessions{
		byID:      make(map[string]*Session),
		newRoster: newRoster,
		after:     after,
		ttl:       ttl,
		now:       time.Now,
	}
}

// Get returns the session with id and marks it active.
func (s *Sessions) Get(id string) (*Session, bool) {
	s.mu.Lock()
	sess, ok := s.byID[id]
	s.mu.Unlock()
	if ok {
		sess.touch(s.now())
	}
	return sess, ok
}

// Touch marks sess active, e.g. while its page holds a live connection.
func (s *Sessions) Touch(sess *Session) {
	sess.touch(s.now())
}

// Create starts a session and performs its initial load. A failed load
// still yields a session; its view shows the failure notice.
func (s *Sessions) Create(ctx context.Context) *Session {
	prompt := &webPrompter{}
	sess := &Session{
		ID:       uuid.NewString(),
		Roster:   s.newRoster(view.NewViewState(s.after), prompt),
		prompt:   prompt,
		lastSeen: s.now(),
	}
	_ = sess.Roster.Load(ctx)

	s.mu.Lock()
	s.byID[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Sweep drops sessions idle for longer than the ttl and returns how many.
func (s *Sessions) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, sess := range s.byID {
		if sess.idleSince(now) > s.ttl {
			delete(s.byID, id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// ─── Prompter ─────────────────────────────────────────────────────────────────

type confirmKey struct{}

// withConfirmation carries the user's answer to the confirmation page into
// the coordinator's Confirm call.
func withConfirmation(ctx context.Context, yes bool) context.Context {
	return context.WithValue(ctx, confirmKey{}, yes)
}

// webPrompter answers Confirm from the submitted confirmation form and
// queues alerts for the next page render.
type webPrompter struct {
	mu     sync.Mutex
	alerts []string
}

func (p *webPrompter) Confirm(ctx context.Context, _ string) bool {
	yes, _ := ctx.Value(confirmKey{}).(bool)
	return yes
}

func (p *webPrompter) Alert(_ context.Context, message string) {
	p.mu.Lock()
	p.alerts = append(p.alerts, message)
	p.mu.Unlock()
}

// takeAlerts returns and clears the queued alerts.
func (p *webPrompter) takeAlerts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.alerts
	p.alerts = nil
	return out
}
