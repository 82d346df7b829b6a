// Package handlers wires the curation pipeline behind operation-shaped
// entry points for the CLI.
package handlers

import (
	"time"

	"github.com/ersonp/feedback-curator/internal/domain/ports"
)

// SessionEvent is one line of a session's activity log.
type SessionEvent struct {
	At      time.Time
	Message string
}

// Session holds per-reviewer-session state: the last generated draft and an
// activity log. It is created by the caller at session start, passed into
// each pipeline call that needs it, and discarded when the session ends —
// never ambient global state.
type Session struct {
	LastPrompt string
	LastDraft  *ports.Draft

	events []SessionEvent
	now    func() time.Time
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{now: time.Now}
}

// Record appends a line to the session's activity log.
func (s *Session) Record(message string) {
	s.events = append(s.events, SessionEvent{At: s.now(), Message: message})
}

// Events returns the activity log in order.
func (s *Session) Events() []SessionEvent {
	return s.events
}
