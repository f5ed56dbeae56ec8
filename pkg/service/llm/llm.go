// Package llm wraps the hosted generation service. The caller hands over a
// system framing block and the verbatim session history; the service answers
// with plain text.
package llm

import (
	"context"

	"github.com/foodops-lab/rcagent/pkg/domain/model"
)

// Client is the interface to the hosted generation service
type Client interface {
	// Generate sends the system framing and the full ordered history and
	// returns the generated reply text. The call is synchronous; the caller
	// blocks until completion or failure.
	Generate(ctx context.Context, systemPrompt string, history []*model.Message) (string, error)
}
