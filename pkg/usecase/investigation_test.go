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

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		category  types.RiskCategory
		mean      float64
		threshold float64
		want      types.Verdict
	}{
		{"high-acid sporadic spike", types.RiskHighAcid, 12, 50, types.VerdictSporadicSpike},
		{"high-acid systemic failure", types.RiskHighAcid, 80, 50, types.VerdictSystemicFailure},
		{"high-acid at threshold", types.RiskHighAcid, 50, 50, types.VerdictSporadicSpike},
		{"low-acid critical breach", types.RiskLowAcid, 3.2, 1, types.VerdictCriticalBreach},
		{"low-acid clean", types.RiskLowAcid, 0.5, 1, types.VerdictClean},
		{"low-acid at threshold", types.RiskLowAcid, 1, 1, types.VerdictClean},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := usecase.Classify(tc.category, tc.mean, tc.threshold)
			gt.Value(t, got).Equal(tc.want)

			// Pure: repeated calls with identical input agree
			gt.Value(t, usecase.Classify(tc.category, tc.mean, tc.threshold)).Equal(got)
		})
	}
}

// activeSession creates a session with an active investigation
func activeSession(t *testing.T, uc *usecase.UseCases, lineID types.LineID) types.SessionID {
	t.Helper()
	ctx := context.Background()

	session, err := uc.Session.Create(ctx, lineID)
	gt.NoError(t, err).Required()
	_, err = uc.Chat.HandleMessage(ctx, session.ID, model.TextPart("white specks found"))
	gt.NoError(t, err).Required()
	return session.ID
}

func series(counts ...float64) model.EvidenceSeries {
	result := make(model.EvidenceSeries, len(counts))
	for i, c := range counts {
		result[i] = model.Observation{Date: "2026-08-01", Count: c}
	}
	return result
}

func TestEvaluateEvidenceSporadicSpike(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(t, nil)
	sessionID := activeSession(t, uc, "line-4")

	// mean = 12 against threshold 50
	eval, err := uc.Investigation.EvaluateEvidence(ctx, sessionID, series(10, 12, 14))
	gt.NoError(t, err).Required()
	gt.Value(t, eval.Mean).Equal(12.0)
	gt.Value(t, eval.Threshold).Equal(50.0)
	gt.Value(t, eval.Verdict).Equal(types.VerdictSporadicSpike)
	gt.Value(t, eval.InspectionRequired).Equal(true)

	loaded, err := uc.Session.Get(ctx, sessionID)
	gt.NoError(t, err).Required()
	gt.Value(t, loaded.LastVerdict).Equal(types.VerdictSporadicSpike)
}

func TestEvaluateEvidenceCriticalBreach(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(t, nil)
	sessionID := activeSession(t, uc, "line-2")

	// mean = 3.2 against threshold 1
	eval, err := uc.Investigation.EvaluateEvidence(ctx, sessionID, series(3.2, 3.2, 3.2))
	gt.NoError(t, err).Required()
	gt.Value(t, eval.Verdict).Equal(types.VerdictCriticalBreach)
	gt.Value(t, eval.InspectionRequired).Equal(false)
}

func TestEvaluateEvidenceEmptySeries(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(t, nil)

	for _, lineID := range []types.LineID{"line-4", "line-2"} {
		sessionID := activeSession(t, uc, lineID)
		_, err := uc.Investigation.EvaluateEvidence(ctx, sessionID, nil)
		if !errors.Is(err, model.ErrEmptyEvidence) {
			t.Errorf("line %s: EvaluateEvidence(empty) = %v, want ErrEmptyEvidence", lineID, err)
		}

		// No verdict may have been recorded
		loaded, err := uc.Session.Get(ctx, sessionID)
		gt.NoError(t, err).Required()
		gt.Value(t, loaded.LastVerdict).Equal(types.Verdict(""))
	}
}

func TestEvaluateEvidenceRequiresActiveInvestigation(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(t, nil)

	session, err := uc.Session.Create(ctx, "line-4")
	gt.NoError(t, err).Required()

	_, err = uc.Investigation.EvaluateEvidence(ctx, session.ID, series(1))
	if !errors.Is(err, model.ErrInvestigationNotActive) {
		t.Errorf("EvaluateEvidence on idle session = %v, want ErrInvestigationNotActive", err)
	}
}

func TestRecordInspectionCrackedSeal(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(t, nil)
	sessionID := activeSession(t, uc, "line-4")

	_, err := uc.Investigation.EvaluateEvidence(ctx, sessionID, series(10, 12, 14))
	gt.NoError(t, err).Required()

	result, err := uc.Investigation.RecordInspection(ctx, sessionID, types.SealCracked)
	gt.NoError(t, err).Required()
	gt.Value(t, result.Confirmed).Equal(true)

	loaded, err := uc.Session.Get(ctx, sessionID)
	gt.NoError(t, err).Required()
	gt.Value(t, loaded.Investigation.RootCauseConfirmed).Equal(true)
}

func TestRecordInspectionIntactSeal(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(t, nil)
	sessionID := activeSession(t, uc, "line-4")

	_, err := uc.Investigation.EvaluateEvidence(ctx, sessionID, series(10))
	gt.NoError(t, err).Required()

	result, err := uc.Investigation.RecordInspection(ctx, sessionID, types.SealIntact)
	gt.NoError(t, err).Required()
	gt.Value(t, result.Confirmed).Equal(false)
	gt.String(t, result.Note).Contains("piston head")

	loaded, err := uc.Session.Get(ctx, sessionID)
	gt.NoError(t, err).Required()
	gt.Value(t, loaded.Investigation.RootCauseConfirmed).Equal(false)
}

func TestRecordInspectionWithoutSpike(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCases(t, nil)
	sessionID := activeSession(t, uc, "line-2")

	_, err := uc.Investigation.EvaluateEvidence(ctx, sessionID, series(3.2))
	gt.NoError(t, err).Required()

	_, err = uc.Investigation.RecordInspection(ctx, sessionID, types.SealCracked)
	if !errors.Is(err, usecase.ErrInspectionNotApplicable) {
		t.Errorf("RecordInspection after breach = %v, want ErrInspectionNotApplicable", err)
	}
}
