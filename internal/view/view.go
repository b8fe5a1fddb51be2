// Package view turns activity collections into the page's view state: one
// card per activity, the activity dropdown, and the shared message banner.
// The renderer rebuilds everything on each fetch; RemoveRow is the only
// incremental edit.
package view

import (
	"context"
	"errors"
	"sync"

	"github.com/Shivanand-hulikatti/activity-roster/internal/model"
)

// LoadFailedText replaces the activity list when a fetch fails.
const LoadFailedText = "Failed to load activities. Please try again later."

// PlaceholderOption is the first dropdown entry.
const PlaceholderOption = "-- Select an activity --"

// ErrNotRemovable is returned by Row.Remove for rows without a deletion key.
var ErrNotRemovable = errors.New("participant has no email to unregister")

// RemoveFunc unregisters email from activity.
type RemoveFunc func(ctx context.Context, activity, email string) error

// Row is one rendered participant line.
type Row struct {
	Display string
	Email   string
	remove  func(ctx context.Context) error
}

// Removable reports whether the row carries a removal affordance.
func (r Row) Removable() bool {
	return r.remove != nil
}

// Remove invokes the row's removal handler.
func (r Row) Remove(ctx context.Context) error {
	if r.remove == nil {
		return ErrNotRemovable
	}
	return r.remove(ctx)
}

// Card is one rendered activity.
type Card struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	SpotsLeft       int
	Rows            []Row
}

// Option is one dropdown entry. The placeholder has an empty Value.
type Option struct {
	Value string
	Label string
}

// ViewState is the page's rendered state. The hosting shell owns one per
// page session; it is safe for concurrent use.
type ViewState struct {
	mu        sync.RWMutex
	cards     []Card
	options   []Option
	listError string

	subMu  sync.Mutex
	subs   map[int]func()
	nextID int

	Banner *Banner
}

// NewViewState returns an empty view. after drives the banner's hide timer;
// nil uses the wall clock.
func NewViewState(after AfterFunc) *ViewState {
	v := &ViewState{
		options: []Option{{Label: PlaceholderOption}},
		subs:    make(map[int]func()),
	}
	v.Banner = newBanner(after, v.notify)
	return v
}

// Subscribe registers fn to run after every view or banner change. The
// returned func removes it.
func (v *ViewState) Subscribe(fn func()) (cancel func()) {
	v.subMu.Lock()
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	v.subMu.Unlock()

	return func() {
		v.subMu.Lock()
		delete(v.subs, id)
		v.subMu.Unlock()
	}
}

func (v *ViewState) notify() {
	v.subMu.Lock()
	fns := make([]func(), 0, len(v.subs))
	for _, fn := range v.subs {
		fns = append(fns, fn)
	}
	v.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Cards returns a copy of the rendered cards in display order.
func (v *ViewState) Cards() []Card {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]Card, len(v.cards))
	for i, c := range v.cards {
		c.Rows = append([]Row(nil), c.Rows...)
		out[i] = c
	}
	return out
}

// Card returns a copy of the named card.
func (v *ViewState) Card(name string) (Card, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	for _, c := range v.cards {
		if c.Name == name {
			c.Rows = append([]Row(nil), c.Rows...)
			return c, true
		}
	}
	return Card{}, false
}

// Row returns the first row of activity whose deletion key is email.
func (v *ViewState) Row(activity, email string) (Row, bool) {
	c, ok := v.Card(activity)
	if !ok || email == "" {
		return Row{}, false
	}
	for _, r := range c.Rows {
		if r.Email == email {
			return r, true
		}
	}
	return Row{}, false
}

// Options returns the dropdown entries, placeholder first.
func (v *ViewState) Options() []Option {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]Option(nil), v.options...)
}

// ListError returns the text shown in place of the activity list, if any.
func (v *ViewState) ListError() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.listError
}

// RemoveRow drops the participant row for (activity, email) and recomputes
// that card's badge from the rows still shown. It reports whether a row was
// removed.
func (v *ViewState) RemoveRow(activity, email string) bool {
	v.mu.Lock()
	removed := false
	for i := range v.cards {
		c := &v.cards[i]
		if c.Name != activity {
			continue
		}
		for j, r := range c.Rows {
			if r.Email != "" && r.Email == email {
				c.Rows = append(c.Rows[:j:j], c.Rows[j+1:]...)
				c.SpotsLeft = c.MaxParticipants - len(c.Rows)
				removed = true
				break
			}
		}
		break
	}
	v.mu.Unlock()

	if removed {
		v.notify()
	}
	return removed
}

// ─── Renderer ─────────────────────────────────────────────────────────────────

// Renderer builds view state from an activity collection.
type Renderer struct {
	// OnRemove is bound into every row that has a deletion key. Nil renders
	// no removal affordances at all.
	OnRemove RemoveFunc
}

// Render replaces all cards and dropdown options in state with ones built
// from coll and clears any list error. It returns state.
func (r Renderer) Render(state *ViewState, coll *model.ActivityCollection) *ViewState {
	names := coll.Names()
	cards := make([]Card, 0, len(names))
	options := make([]Option, 0, len(names)+1)
	options = append(options, Option{Label: PlaceholderOption})

	for _, name := range names {
		rec, _ := coll.Get(name)
		cards = append(cards, r.card(name, rec))
		options = append(options, Option{Value: name, Label: name})
	}

	state.mu.Lock()
	state.cards = cards
	state.options = options
	state.listError = ""
	state.mu.Unlock()

	state.notify()
	return state
}

// RenderError replaces the activity list with the load-failure notice. The
// dropdown keeps only its placeholder.
func (r Renderer) RenderError(state *ViewState) *ViewState {
	state.mu.Lock()
	state.cards = nil
	state.options = []Option{{Label: PlaceholderOption}}
	state.listError = LoadFailedText
	state.mu.Unlock()

	state.notify()
	return state
}

func (r Renderer) card(name string, rec model.ActivityRecord) Card {
	rows := make([]Row, 0, len(rec.Participants))
	for _, p := range rec.Participants {
		d := p.Display()
		row := Row{Display: d.Display, Email: d.Email}
		if d.HasKey() && r.OnRemove != nil {
			activity, email, remove := name, d.Email, r.OnRemove
			row.remove = func(ctx context.Context) error {
				return remove(ctx, activity, email)
			}
		}
		rows = append(rows, row)
	}

	return Card{
		Name:            name,
		Description:     rec.Description,
		Schedule:        rec.Schedule,
		MaxParticipants: rec.MaxParticipants,
		SpotsLeft:       rec.SpotsLeft(),
		Rows:            rows,
	}
}
