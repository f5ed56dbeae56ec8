package memory

import (
	"context"
	"sync"

	"github.com/foodops-lab/rcagent/pkg/domain/interfaces"
	"github.com/foodops-lab/rcagent/pkg/domain/model"
	"github.com/foodops-lab/rcagent/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[types.SessionID]*model.Session
}

var _ interfaces.SessionRepository = &sessionRepository{}

func newSessionRepository() *sessionRepository {
	return &sessionRepository{
		sessions: make(map[types.SessionID]*model.Session),
	}
}

func (r *sessionRepository) Create(_ context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; exists {
		return goerr.New("session already exists", goerr.V("session_id", session.ID))
	}

	r.sessions[session.ID] = session.Clone()
	return nil
}

func (r *sessionRepository) Get(_ context.Context, sessionID types.SessionID) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[sessionID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrSessionNotFound, "session not found",
			goerr.V("session_id", sessionID))
	}

	return session.Clone(), nil
}

func (r *sessionRepository) Put(_ context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; !exists {
		return goerr.Wrap(interfaces.ErrSessionNotFound, "cannot update unknown session",
			goerr.V("session_id", session.ID))
	}

	r.sessions[session.ID] = session.Clone()
	return nil
}
