package types

import "github.com/google/uuid"

// SessionID is a UUID-based identifier for a triage session
type SessionID string

// NewSessionID generates a new UUID v4 SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// String returns the string representation of SessionID
func (s SessionID) String() string {
	return string(s)
}

// MessageID is a UUID-based identifier for a chat message
type MessageID string

// NewMessageID generates a new UUID v4 MessageID
func NewMessageID() MessageID {
	return MessageID(uuid.New().String())
}

// String returns the string representation of MessageID
func (m MessageID) String() string {
	return string(m)
}
