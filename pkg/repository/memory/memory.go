// Package memory provides an in-memory repository implementation.
// It is the only backend: session state must not outlive the process.
package memory

import (
	"github.com/foodops-lab/rcagent/pkg/domain/interfaces"
)

// Repository is the in-memory implementation of interfaces.Repository
type Repository struct {
	session *sessionRepository
}

var _ interfaces.Repository = &Repository{}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		session: newSessionRepository(),
	}
}

// Session returns the session repository
func (r *Repository) Session() interfaces.SessionRepository {
	return r.session
}

// Close is a no-op for the in-memory backend
func (r *Repository) Close() error {
	return nil
}
