package usecase

import (
	"github.com/foodops-lab/rcagent/pkg/domain/interfaces"
	"github.com/foodops-lab/rcagent/pkg/domain/model"
	"github.com/foodops-lab/rcagent/pkg/service/llm"
	"github.com/foodops-lab/rcagent/pkg/service/report"
)

// UseCases bundles all application use cases behind one constructor
type UseCases struct {
	repo    interfaces.Repository
	lines   *model.LineRegistry
	llm     llm.Client
	emitter *report.Emitter

	Session       *SessionUseCase
	Chat          *ChatUseCase
	Investigation *InvestigationUseCase
	Report        *ReportUseCase
}

type Option func(*UseCases)

// WithLLM sets the generation client. Without it the chat degrades to a
// configuration warning instead of calling the hosted service.
func WithLLM(client llm.Client) Option {
	return func(uc *UseCases) {
		uc.llm = client
	}
}

// WithEmitter sets the report emitter
func WithEmitter(emitter *report.Emitter) Option {
	return func(uc *UseCases) {
		uc.emitter = emitter
	}
}

// New creates the use case bundle
func New(repo interfaces.Repository, lines *model.LineRegistry, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:  repo,
		lines: lines,
	}
	for _, opt := range opts {
		opt(uc)
	}

	uc.Session = &SessionUseCase{repo: repo, lines: lines}
	uc.Chat = &ChatUseCase{repo: repo, lines: lines, llm: uc.llm}
	uc.Investigation = &InvestigationUseCase{repo: repo, lines: lines}
	uc.Report = &ReportUseCase{repo: repo, emitter: uc.emitter}

	return uc
}

// Lines returns the line registry the use cases operate on
func (uc *UseCases) Lines() *model.LineRegistry {
	return uc.lines
}
