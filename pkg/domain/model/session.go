package model

import (
	"time"

	"github.com/foodops-lab/rcagent/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ErrInvestigationNotActive is returned when a root cause confirmation is
// attempted before the investigation has started
var ErrInvestigationNotActive = goerr.New("investigation is not active")

// Investigation tracks how far an incident discussion has progressed.
// Both flags are monotonic: once set, nothing within a session clears them.
type Investigation struct {
	Active             bool
	RootCauseConfirmed bool
}

// Session holds the full state of one triage conversation: the selected
// line, the append-only message history and the investigation progression.
// Sessions live only as long as the process.
type Session struct {
	ID            types.SessionID
	LineID        types.LineID
	Messages      []*Message
	Investigation Investigation
	// LastVerdict is the classification of the most recent evidence upload.
	// The evidence series itself is ephemeral and never stored.
	LastVerdict types.Verdict
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSession creates a session bound to a production line
func NewSession(lineID types.LineID) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        types.NewSessionID(),
		LineID:    lineID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AppendMessage appends a message to the history. The first user message
// activates the investigation; the flag never reverts afterwards.
func (s *Session) AppendMessage(msg *Message) {
	s.Messages = append(s.Messages, msg)
	if msg.Role == types.RoleUser {
		s.Investigation.Active = true
	}
	s.UpdatedAt = time.Now().UTC()
}

// ConfirmRootCause marks the root cause as confirmed. It fails if the
// investigation has not started; once confirmed it stays confirmed.
func (s *Session) ConfirmRootCause() error {
	if !s.Investigation.Active {
		return goerr.Wrap(ErrInvestigationNotActive, "cannot confirm root cause",
			goerr.V("session_id", s.ID))
	}
	s.Investigation.RootCauseConfirmed = true
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// RecordVerdict stores the classification of the latest evidence upload
func (s *Session) RecordVerdict(verdict types.Verdict) {
	s.LastVerdict = verdict
	s.UpdatedAt = time.Now().UTC()
}

// LastUserText returns the text of the most recent user message, or the
// empty string when the user has not written anything yet
func (s *Session) LastUserText() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == types.RoleUser {
			if text := s.Messages[i].Text(); text != "" {
				return text
			}
		}
	}
	return ""
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	copied := &Session{
		ID:            s.ID,
		LineID:        s.LineID,
		Investigation: s.Investigation,
		LastVerdict:   s.LastVerdict,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if s.Messages != nil {
		copied.Messages = make([]*Message, len(s.Messages))
		for i, msg := range s.Messages {
			copied.Messages[i] = msg.Clone()
		}
	}
	return copied
}
