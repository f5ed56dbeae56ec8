package usecase

import (
	"context"

	"github.com/foodops-lab/rcagent/pkg/domain/interfaces"
	"github.com/foodops-lab/rcagent/pkg/domain/model"
	"github.com/foodops-lab/rcagent/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// SessionUseCase manages triage session lifecycle
type SessionUseCase struct {
	repo  interfaces.Repository
	lines *model.LineRegistry
}

// Create starts a new triage session bound to a production line
func (uc *SessionUseCase) Create(ctx context.Context, lineID types.LineID) (*model.Session, error) {
	if _, err := uc.lines.Get(lineID); err != nil {
		return nil, goerr.Wrap(err, "cannot create session for unknown line")
	}

	session := model.NewSession(lineID)
	if err := uc.repo.Session().Create(ctx, session); err != nil {
		return nil, goerr.Wrap(err, "failed to store session")
	}
	return session, nil
}

// Get retrieves a session by ID
func (uc *SessionUseCase) Get(ctx context.Context, sessionID types.SessionID) (*model.Session, error) {
	session, err := uc.repo.Session().Get(ctx, sessionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load session")
	}
	return session, nil
}
