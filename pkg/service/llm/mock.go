package llm

import (
	"context"

	"github.com/foodops-lab/rcagent/pkg/domain/model"
)

// Mock is a test double for Client
type Mock struct {
	GenerateFunc func(ctx context.Context, systemPrompt string, history []*model.Message) (string, error)

	// Calls records the history length of each Generate invocation
	Calls []int
}

var _ Client = &Mock{}

func (m *Mock) Generate(ctx context.Context, systemPrompt string, history []*model.Message) (string, error) {
	m.Calls = append(m.Calls, len(history))
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, systemPrompt, history)
	}
	return "", nil
}
