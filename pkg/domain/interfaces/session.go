package interfaces

import (
	"context"
	"errors"

	"github.com/foodops-lab/rcagent/pkg/domain/model"
	"github.com/foodops-lab/rcagent/pkg/domain/types"
)

// ErrSessionNotFound is returned when a session does not exist in the store
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository defines the interface for triage session persistence
type SessionRepository interface {
	// Create stores a new session
	Create(ctx context.Context, session *model.Session) error

	// Get retrieves a session by ID
	Get(ctx context.Context, sessionID types.SessionID) (*model.Session, error)

	// Put replaces the stored state of an existing session
	Put(ctx context.Context, session *model.Session) error
}
