// Package service implements the roster coordinator: it loads the activity
// collection into the view, and runs signup and unregister against the
// remote store, reconciling the view with each outcome.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Shivanand-hulikatti/activity-roster/internal/model"
	"github.com/Shivanand-hulikatti/activity-roster/internal/repository"
	"github.com/Shivanand-hulikatti/activity-roster/internal/view"
)

// ErrMissingField is returned when signup is attempted without an activity
// or an email.
var ErrMissingField = errors.New("activity and email are required")

// ErrMissingKey is returned when unregister is attempted for a participant
// with no email.
var ErrMissingKey = errors.New("participant has no email to unregister")

// ErrDeclined is returned when the user does not confirm an unregister.
var ErrDeclined = errors.New("unregister not confirmed")

// User-facing texts.
const (
	SignupFallbackText     = "An error occurred"
	SignupFailedText       = "Failed to sign up. Please try again."
	UnregisterFallbackText = "Failed to unregister participant."
	UnregisterFailedText   = "Failed to unregister. Please try again."
)

// ActivityStore is the remote store as the coordinator sees it.
type ActivityStore interface {
	List(ctx context.Context) (*model.ActivityCollection, error)
	Signup(ctx context.Context, activity, email string) (string, error)
	Unregister(ctx context.Context, activity, email string) error
}

// Prompter asks the user blocking questions.
type Prompter interface {
	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, question string) bool
	// Alert shows message until the user acknowledges it.
	Alert(ctx context.Context, message string)
}

// Form is the signup form's input.
type Form struct {
	Activity string
	Email    string
}

// Result is the outcome of a signup or unregister.
type Result struct {
	OK      bool
	Message string
	Kind    view.Kind
	Err     error
}

// Roster coordinates one page session's view with the remote store.
type Roster struct {
	store    ActivityStore
	prompt   Prompter
	state    *view.ViewState
	renderer view.Renderer
	logger   *slog.Logger

	mu   sync.Mutex
	form Form
}

// NewRoster constructs a Roster over state. prompt must not be nil.
func NewRoster(store ActivityStore, state *view.ViewState, prompt Prompter, logger *slog.Logger) *Roster {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Roster{store: store, prompt: prompt, state: state, logger: logger}
	s.renderer = view.Renderer{OnRemove: func(ctx context.Context, activity, email string) error {
		return s.Unregister(ctx, activity, email).Err
	}}
	return s
}

// State returns the view this roster drives.
func (s *Roster) State() *view.ViewState {
	return s.state
}

// Form returns the current signup form input.
func (s *Roster) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

func (s *Roster) setForm(f Form) {
	s.mu.Lock()
	s.form = f
	s.mu.Unlock()
}

// Load fetches the whole collection and rebuilds the view from it. On
// failure the activity list is replaced with a notice and the error is
// logged; there is no retry.
func (s *Roster) Load(ctx context.Context) error {
	coll, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("fetch activities", "error", err)
		s.renderer.RenderError(s.state)
		return fmt.Errorf("load activities: %w", err)
	}

	s.logger.Debug("fetched activities", "count", coll.Len(), "names", coll.Names())
	s.renderer.Render(s.state, coll)
	return nil
}

// Signup enrolls email in activity. Success shows the server's message,
// clears the form and re-fetches the collection. Failure shows the server's
// detail and leaves the form and view as they were.
func (s *Roster) Signup(ctx context.Context, activity, email string) Result {
	s.setForm(Form{Activity: activity, Email: email})
	if activity == "" || email == "" {
		return Result{Message: ErrMissingField.Error(), Kind: view.KindError, Err: ErrMissingField}
	}

	msg, err := s.store.Signup(ctx, activity, email)
	if err != nil {
		text := SignupFailedText
		var de *repository.DetailError
		if errors.As(err, &de) {
			text = de.Detail
			if text == "" {
				text = SignupFallbackText
			}
		} else {
			s.logger.Error("sign up", "activity", activity, "error", err)
		}
		s.state.Banner.Show(text, view.KindError)
		return Result{Message: text, Kind: view.KindError, Err: err}
	}

	s.state.Banner.Show(msg, view.KindSuccess)
	s.setForm(Form{})

	// The new row and badge come from a fresh snapshot; a failed reload is
	// already reported in the list region.
	_ = s.Load(ctx)

	return Result{OK: true, Message: msg, Kind: view.KindSuccess}
}

// Unregister removes email from activity after the user confirms. Success
// patches the view in place without a re-fetch; failure raises an alert and
// leaves the view untouched.
func (s *Roster) Unregister(ctx context.Context, activity, email string) Result {
	if email == "" {
		return Result{Message: ErrMissingKey.Error(), Kind: view.KindError, Err: ErrMissingKey}
	}
	if !s.prompt.Confirm(ctx, fmt.Sprintf("Unregister %s from %s?", email, activity)) {
		return Result{Err: ErrDeclined}
	}

	if err := s.store.Unregister(ctx, activity, email); err != nil {
		text := UnregisterFailedText
		var de *repository.DetailError
		if errors.As(err, &de) {
			text = de.Detail
			if text == "" {
				text = UnregisterFallbackText
			}
		} else {
			s.logger.Error("unregister", "activity", activity, "error", err)
		}
		s.prompt.Alert(ctx, text)
		return Result{Message: text, Kind: view.KindError, Err: err}
	}

	if !s.state.RemoveRow(activity, email) {
		s.logger.Debug("unregistered participant not in view", "activity", activity)
	}
	return Result{OK: true, Kind: view.KindSuccess}
}
