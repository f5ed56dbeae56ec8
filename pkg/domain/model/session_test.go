package model_test

import (
	"errors"
	"testing"

	"github.com/foodops-lab/rcagent/pkg/domain/model"
	"github.com/foodops-lab/rcagent/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func mustMessage(t *testing.T, role types.Role, text string) *model.Message {
	t.Helper()
	msg, err := model.NewMessage(role, model.TextPart(text))
	gt.NoError(t, err).Required()
	return msg
}

func TestSessionActivation(t *testing.T) {
	s := model.NewSession("line-4")
	gt.Value(t, s.Investigation.Active).Equal(false)
	gt.Value(t, s.Investigation.RootCauseConfirmed).Equal(false)

	s.AppendMessage(mustMessage(t, types.RoleUser, "specks in cup 12"))
	gt.Value(t, s.Investigation.Active).Equal(true)

	// Assistant turns never change activation; nothing reverts it
	s.AppendMessage(mustMessage(t, types.RoleAssistant, "MICRO:| likely mold"))
	gt.Value(t, s.Investigation.Active).Equal(true)
}

func TestSessionAssistantDoesNotActivate(t *testing.T) {
	s := model.NewSession("line-2")
	s.AppendMessage(mustMessage(t, types.RoleAssistant, "hello"))
	gt.Value(t, s.Investigation.Active).Equal(false)
}

func TestSessionConfirmRequiresActive(t *testing.T) {
	s := model.NewSession("line-4")
	err := s.ConfirmRootCause()
	if !errors.Is(err, model.ErrInvestigationNotActive) {
		t.Errorf("ConfirmRootCause on idle session = %v, want ErrInvestigationNotActive", err)
	}
	gt.Value(t, s.Investigation.RootCauseConfirmed).Equal(false)

	s.AppendMessage(mustMessage(t, types.RoleUser, "start"))
	gt.NoError(t, s.ConfirmRootCause())
	gt.Value(t, s.Investigation.RootCauseConfirmed).Equal(true)

	// Monotonic: confirming again keeps it confirmed
	gt.NoError(t, s.ConfirmRootCause())
	gt.Value(t, s.Investigation.RootCauseConfirmed).Equal(true)
}

func TestSessionLastUserText(t *testing.T) {
	s := model.NewSession("line-4")
	gt.Value(t, s.LastUserText()).Equal("")

	s.AppendMessage(mustMessage(t, types.RoleUser, "first"))
	s.AppendMessage(mustMessage(t, types.RoleAssistant, "reply"))
	s.AppendMessage(mustMessage(t, types.RoleUser, "second"))
	gt.Value(t, s.LastUserText()).Equal("second")

	// An image-only user message is skipped in favor of the last one with text
	imgMsg, err := model.NewMessage(types.RoleUser, model.ImagePart{MIMEType: "image/png", Data: []byte{1}})
	gt.NoError(t, err).Required()
	s.AppendMessage(imgMsg)
	gt.Value(t, s.LastUserText()).Equal("second")
}

func TestSessionClone(t *testing.T) {
	s := model.NewSession("line-2")
	s.AppendMessage(mustMessage(t, types.RoleUser, "hello"))
	s.RecordVerdict(types.VerdictCriticalBreach)

	copied := s.Clone()
	gt.Value(t, copied.ID).Equal(s.ID)
	gt.Value(t, copied.LastVerdict).Equal(types.VerdictCriticalBreach)
	gt.Array(t, copied.Messages).Length(1)

	copied.AppendMessage(mustMessage(t, types.RoleUser, "more"))
	gt.Array(t, s.Messages).Length(1)
}
