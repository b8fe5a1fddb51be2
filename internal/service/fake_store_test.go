package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/activity-roster/internal/model"
	"github.com/Shivanand-hulikatti/activity-roster/internal/repository"
)

// remoteStore is an in-memory stand-in for the activities backend.
type remoteStore struct {
	mu          sync.Mutex
	activities  *model.ActivityCollection
	lists       int
	signups     int
	unregisters int
	signupErr   *errorReply
	// noContent makes a successful unregister answer 204 with no body.
	noContent bool
}

type errorReply struct {
	status int
	detail string
}

func newRemoteStore(t *testing.T, activities *model.ActivityCollection) (*remoteStore, *repository.ActivityRepository) {
	t.Helper()
	s := &remoteStore{activities: activities}

	r := chi.NewRouter()
	r.Get("/activities", s.list)
	r.Post("/activities/{name}/signup", s.signup)
	r.Delete("/activities/{name}/participants", s.unregister)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	repo, err := repository.NewActivityRepository(srv.URL, srv.Client(), 5*time.Second)
	require.NoError(t, err)
	return s, repo
}

func (s *remoteStore) counts() (lists, signups, unregisters int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists, s.signups, s.unregisters
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *remoteStore) list(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	writeJSON(w, http.StatusOK, s.activities)
}

func (s *remoteStore) signup(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signups++

	if s.signupErr != nil {
		writeJSON(w, s.signupErr.status, model.ErrorResponse{Detail: s.signupErr.detail})
		return
	}

	name := chi.URLParam(r, "name")
	email := r.URL.Query().Get("email")
	rec, ok := s.activities.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Detail: "Activity not found"})
		return
	}
	rec.Participants = append(rec.Participants, model.EmailParticipant(email))
	s.activities.Set(name, rec)
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Signed up " + email + " for " + name})
}

func (s *remoteStore) unregister(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unregisters++

	name := chi.URLParam(r, "name")
	email := r.URL.Query().Get("email")
	rec, ok := s.activities.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Detail: "Activity not found"})
		return
	}
	for i, p := range rec.Participants {
		if p.Display().Email == email {
			rec.Participants = append(rec.Participants[:i:i], rec.Participants[i+1:]...)
			s.activities.Set(name, rec)
			if s.noContent {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Unregistered " + email + " from " + name})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, model.ErrorResponse{Detail: "Participant not found"})
}

// prompter answers confirmations with a fixed reply and records everything.
type prompter struct {
	answer    bool
	questions []string
	alerts    []string
}

func (p *prompter) Confirm(_ context.Context, question string) bool {
	p.questions = append(p.questions, question)
	return p.answer
}

func (p *prompter) Alert(_ context.Context, message string) {
	p.alerts = append(p.alerts, message)
}

func emails(n int, prefix string) []model.Participant {
	ps := make([]model.Participant, 0, n)
	for i := 0; i < n; i++ {
		ps = append(ps, model.EmailParticipant(prefix+string(rune('a'+i))+"@school.edu"))
	}
	return ps
}
