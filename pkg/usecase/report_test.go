package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/foodops-lab/rcagent/pkg/domain/model"
	"github.com/foodops-lab/rcagent/pkg/domain/types"
	"github.com/foodops-lab/rcagent/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestGenerateReportCriticalBreach(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(t, nil)
	sessionID := activeSession(t, uc, "line-2")

	_, err := uc.Investigation.EvaluateEvidence(ctx, sessionID, series(3.2))
	gt.NoError(t, err).Required()

	emitted, err := uc.Report.Generate(ctx, sessionID)
	gt.NoError(t, err).Required()
	gt.String(t, emitted.Name).NotEqual("")
	gt.Value(t, emitted.Record.Line).Equal(types.LineID("line-2"))
	gt.Value(t, emitted.Record.Issue).Equal("UHT Breach")
	gt.Value(t, emitted.Record.RootCause).Equal("Sterility Failure")
	gt.Value(t, emitted.Record.Action).Equal("STOP PRODUCTION")

	path, err := uc.Report.Open(emitted.Name)
	gt.NoError(t, err).Required()
	gt.String(t, path).NotEqual("")
}

func TestGenerateReportMechanicalFailure(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(t, nil)
	sessionID := activeSession(t, uc, "line-4")

	_, err := uc.Investigation.EvaluateEvidence(ctx, sessionID, series(10, 12, 14))
	gt.NoError(t, err).Required()
	_, err = uc.Investigation.RecordInspection(ctx, sessionID, types.SealCracked)
	gt.NoError(t, err).Required()

	emitted, err := uc.Report.Generate(ctx, sessionID)
	gt.NoError(t, err).Required()
	// Issue is lifted from the last user message of the discussion
	gt.Value(t, emitted.Record.Issue).Equal("white specks found")
	gt.Value(t, emitted.Record.RootCause).Equal("Mechanical Failure")
	gt.Value(t, emitted.Record.Action).Equal("Replace Seal")
}

func TestGenerateReportNotAvailable(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(t, nil)

	// Fresh session: no terminal branch reached
	session, err := uc.Session.Create(ctx, "line-4")
	gt.NoError(t, err).Required()
	_, err = uc.Report.Generate(ctx, session.ID)
	if !errors.Is(err, usecase.ErrReportNotAvailable) {
		t.Errorf("Generate on fresh session = %v, want ErrReportNotAvailable", err)
	}

	// Sporadic spike without confirmation is not terminal either
	sessionID := activeSession(t, uc, "line-4")
	_, err = uc.Investigation.EvaluateEvidence(ctx, sessionID, series(10))
	gt.NoError(t, err).Required()
	_, err = uc.Report.Generate(ctx, sessionID)
	if !errors.Is(err, usecase.ErrReportNotAvailable) {
		t.Errorf("Generate after unconfirmed spike = %v, want ErrReportNotAvailable", err)
	}

	// A clean verdict never yields a report
	cleanID := activeSession(t, uc, "line-2")
	_, err = uc.Investigation.EvaluateEvidence(ctx, cleanID, series(0.2))
	gt.NoError(t, err).Required()
	_, err = uc.Report.Generate(ctx, cleanID)
	if !errors.Is(err, usecase.ErrReportNotAvailable) {
		t.Errorf("Generate after clean verdict = %v, want ErrReportNotAvailable", err)
	}
}

func TestGenerateReportEachEmitIsUnique(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(t, nil)
	sessionID := activeSession(t, uc, "line-2")

	_, err := uc.Investigation.EvaluateEvidence(ctx, sessionID, series(3.2))
	gt.NoError(t, err).Required()

	first, err := uc.Report.Generate(ctx, sessionID)
	gt.NoError(t, err).Required()
	second, err := uc.Report.Generate(ctx, sessionID)
	gt.NoError(t, err).Required()

	if first.Name == second.Name {
		t.Errorf("repeated reports share the file name %q", first.Name)
	}
}

func TestGenerateReportIssueFallback(t *testing.T) {
	ctx := context.Background()

	mock := newTestUseCases(t, nil)
	session, err := mock.Session.Create(ctx, "line-4")
	gt.NoError(t, err).Required()

	// Activate via an image-only message so no user text exists
	imgMsg := model.ImagePart{MIMEType: "image/png", Data: []byte{1, 2}}
	_, err = mock.Chat.HandleMessage(ctx, session.ID, imgMsg)
	gt.NoError(t, err).Required()

	_, err = mock.Investigation.EvaluateEvidence(ctx, session.ID, series(10))
	gt.NoError(t, err).Required()
	_, err = mock.Investigation.RecordInspection(ctx, session.ID, types.SealCracked)
	gt.NoError(t, err).Required()

	emitted, err := mock.Report.Generate(ctx, session.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, emitted.Record.Issue).Equal("Visual Defect")
}
