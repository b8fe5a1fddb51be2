package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/activity-roster/internal/model"
	"github.com/Shivanand-hulikatti/activity-roster/internal/service"
	"github.com/Shivanand-hulikatti/activity-roster/internal/view"
)

type emptyStore struct{}

func (emptyStore) List(context.Context) (*model.ActivityCollection, error) {
	return model.NewActivityCollection(), nil
}

func (emptyStore) Signup(context.Context, string, string) (string, error) { return "", nil }

func (emptyStore) Unregister(context.Context, string, string) error { return nil }

func TestSessionsSweepDropsIdle(t *testing.T) {
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	s := NewSessions(func(state *view.ViewState, prompt service.Prompter) *service.Roster {
		return service.NewRoster(emptyStore{}, state, prompt, nil)
	}, nil, 10*time.Minute)
	s.now = func() time.Time { return now }

	idle := s.Create(context.Background())
	active := s.Create(context.Background())
	require.Equal(t, 2, s.Len())

	now = now.Add(8 * time.Minute)
	_, ok := s.Get(active.ID)
	require.True(t, ok)

	now = now.Add(5 * time.Minute)
	assert.Equal(t, 1, s.Sweep())

	_, ok = s.Get(idle.ID)
	assert.False(t, ok)
	_, ok = s.Get(active.ID)
	assert.True(t, ok)
}

func TestWebPrompter(t *testing.T) {
	p := &webPrompter{}

	assert.False(t, p.Confirm(context.Background(), "sure?"))
	assert.True(t, p.Confirm(withConfirmation(context.Background(), true), "sure?"))
	assert.False(t, p.Confirm(withConfirmation(context.Background(), false), "sure?"))

	p.Alert(context.Background(), "one")
	p.Alert(context.Background(), "two")
	assert.Equal(t, []string{"one", "two"}, p.takeAlerts())
	assert.Empty(t, p.takeAlerts())
}

// fakeNow is a settable clock for session bookkeeping.
type fakeNow struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeNow) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeNow) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestTouchKeepsSessionAlive(t *testing.T) {
	clock := &fakeNow{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	s := NewSessions(func(state *view.ViewState, prompt service.Prompter) *service.Roster {
		return service.NewRoster(emptyStore{}, state, prompt, nil)
	}, nil, 10*time.Minute)
	s.now = clock.now

	sess := s.Create(context.Background())
	clock.advance(9 * time.Minute)
	s.Touch(sess)
	clock.advance(9 * time.Minute)

	assert.Zero(t, s.Sweep())
	assert.Equal(t, 1, s.Len())
}

func TestLiveConnectionKeepsSessionAlive(t *testing.T) {
	prev := liveKeepAlive
	liveKeepAlive = 10 * time.Millisecond
	t.Cleanup(func() { liveKeepAlive = prev })

	clock := &fakeNow{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	sessions := NewSessions(func(state *view.ViewState, prompt service.Prompter) *service.Roster {
		return service.NewRoster(emptyStore{}, state, prompt, nil)
	}, nil, 10*time.Minute)
	sessions.now = clock.now
	sess := sessions.Create(context.Background())

	shell := NewShellHandler(sessions, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := httptest.NewServer(http.HandlerFunc(shell.Live))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	header := http.Header{}
	header.Add("Cookie", (&http.Cookie{Name: SessionCookie, Value: sess.ID}).String())
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), &websocket.DialOptions{HTTPHeader: header})
	require.NoError(t, err)
	defer conn.CloseNow()

	var frame map[string]string
	require.NoError(t, wsjson.Read(ctx, conn, &frame))

	// The page stays open with no view changes while time passes.
	clock.advance(9 * time.Minute)
	require.Eventually(t, func() bool {
		return sess.idleSince(clock.now()) == 0
	}, 2*time.Second, 10*time.Millisecond)

	clock.advance(9 * time.Minute)
	assert.Zero(t, sessions.Sweep())
}
