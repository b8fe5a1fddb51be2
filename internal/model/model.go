// Package model defines the core domain types for the activity roster:
// the activity collection served by the remote store, its records, and the
// participant shapes those records carry.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ActivityRecord is one sign-up-able activity as served by GET /activities.
type ActivityRecord struct {
	Description     string        `json:"description"`
	Schedule        string        `json:"schedule"`
	MaxParticipants int           `json:"max_participants"`
	Participants    []Participant `json:"participants"`
}

// SpotsLeft returns the remaining capacity. It goes negative when the store
// holds more participants than max_participants; callers must not clamp it.
func (r ActivityRecord) SpotsLeft() int {
	return r.MaxParticipants - len(r.Participants)
}

// UnmarshalJSON tolerates a missing max_participants (read as 0) and a
// participants value that is not an array (read as empty).
func (r *ActivityRecord) UnmarshalJSON(data []byte) error {
	var wire struct {
		Description     string          `json:"description"`
		Schedule        string          `json:"schedule"`
		MaxParticipants int             `json:"max_participants"`
		Participants    json.RawMessage `json:"participants"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	r.Description = wire.Description
	r.Schedule = wire.Schedule
	r.MaxParticipants = wire.MaxParticipants
	r.Participants = nil

	raw := bytes.TrimSpace(wire.Participants)
	if len(raw) == 0 || raw[0] != '[' {
		return nil
	}
	if err := json.Unmarshal(raw, &r.Participants); err != nil {
		return fmt.Errorf("participants: %w", err)
	}
	return nil
}

// MessageResponse is the success envelope of the signup and unregister endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the failure envelope the remote store sends with a
// non-success status.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
