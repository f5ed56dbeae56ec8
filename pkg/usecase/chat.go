package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/foodops-lab/rcagent/pkg/domain/interfaces"
	"github.com/foodops-lab/rcagent/pkg/domain/model"
	"github.com/foodops-lab/rcagent/pkg/domain/types"
	"github.com/foodops-lab/rcagent/pkg/service/llm"
	"github.com/foodops-lab/rcagent/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed prompt/panel_system.md
var panelSystemPromptTmpl string

var panelSystemPrompt = template.Must(template.New("panel_system").Parse(panelSystemPromptTmpl))

// WarningPrefix marks assistant turns that report a failure of the
// generation backend instead of a generated answer
const WarningPrefix = "⚠️"

// ChatUseCase drives the two-expert panel conversation
type ChatUseCase struct {
	repo  interfaces.Repository
	lines *model.LineRegistry
	llm   llm.Client
}

// BuildSystemPrompt renders the framing block for the selected line: its
// product, process flow and risk category verbatim, plus the fixed panel
// instructions establishing the two personas and their delimiters.
func (uc *ChatUseCase) BuildSystemPrompt(profile *model.LineProfile) string {
	var buf bytes.Buffer
	if err := panelSystemPrompt.Execute(&buf, profile); err != nil {
		// Template execution should not fail with valid data; fall back to a minimal framing
		return fmt.Sprintf("You are the AI Operating System for a food factory. Product: %s", profile.Product)
	}
	return buf.String()
}

// HandleMessage appends the user's turn, calls the generation service with
// the full history and records the reply. A message without any part is
// rejected before it reaches the history. The generation call is fail-soft:
// any backend failure is converted into a warning-prefixed assistant turn
// so the session keeps going.
func (uc *ChatUseCase) HandleMessage(ctx context.Context, sessionID types.SessionID, parts ...model.Part) (*model.Message, error) {
	session, err := uc.repo.Session().Get(ctx, sessionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load session")
	}

	profile, err := uc.lines.Get(session.LineID)
	if err != nil {
		return nil, goerr.Wrap(err, "session refers to unknown line")
	}

	userMsg, err := model.NewMessage(types.RoleUser, parts...)
	if err != nil {
		return nil, err
	}
	session.AppendMessage(userMsg)

	replyText := uc.generate(ctx, profile, session.Messages)

	assistantMsg, err := model.NewMessage(types.RoleAssistant, model.TextPart(replyText))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build assistant message")
	}
	session.AppendMessage(assistantMsg)

	if err := uc.repo.Session().Put(ctx, session); err != nil {
		return nil, goerr.Wrap(err, "failed to store session")
	}

	return assistantMsg, nil
}

func (uc *ChatUseCase) generate(ctx context.Context, profile *model.LineProfile, history []*model.Message) string {
	if uc.llm == nil {
		return WarningPrefix + " Generation service is not configured. Set the Gemini API key to enable the expert panel."
	}

	text, err := uc.llm.Generate(ctx, uc.BuildSystemPrompt(profile), history)
	if err != nil {
		_ = errutil.Handle(ctx, err, "generation call failed")
		return fmt.Sprintf("%s Connection Error: %v", WarningPrefix, err)
	}
	return text
}
