package view

import (
	"sync"
	"time"
)

// MessageTTL is how long a banner message stays visible.
const MessageTTL = 5 * time.Second

// Kind is the presentation state of a banner message.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Timer is the part of *time.Timer the banner needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it through
// RealAfterFunc; tests substitute a manual clock.
type AfterFunc func(d time.Duration, f func()) Timer

// RealAfterFunc wraps time.AfterFunc.
func RealAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Message is the banner's current content.
type Message struct {
	Text    string
	Kind    Kind
	Visible bool
}

// Banner is the shared transient message. Each Show replaces the content
// and restarts the hide window; a superseded window never hides the newer
// message.
type Banner struct {
	mu       sync.Mutex
	msg      Message
	gen      uint64
	timer    Timer
	after    AfterFunc
	onChange func()
}

func newBanner(after AfterFunc, onChange func()) *Banner {
	if after == nil {
		after = RealAfterFunc
	}
	return &Banner{after: after, onChange: onChange}
}

// Show makes text visible with the given kind for MessageTTL.
func (b *Banner) Show(text string, kind Kind) {
	b.mu.Lock()
	b.gen++
	gen := b.gen
	prev := b.timer
	b.timer = nil
	b.msg = Message{Text: text, Kind: kind, Visible: true}
	b.mu.Unlock()

	if prev != nil {
		prev.Stop()
	}
	t := b.after(MessageTTL, func() { b.hide(gen) })

	b.mu.Lock()
	if b.gen == gen {
		b.timer = t
	} else {
		t.Stop()
	}
	b.mu.Unlock()

	b.changed()
}

// Message returns the current content.
func (b *Banner) Message() Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.msg
}

func (b *Banner) hide(gen uint64) {
	b.mu.Lock()
	if gen != b.gen || !b.msg.Visible {
		b.mu.Unlock()
		return
	}
	b.msg.Visible = false
	b.timer = nil
	b.mu.Unlock()

	b.changed()
}

func (b *Banner) changed() {
	if b.onChange != nil {
		b.onChange()
	}
}
