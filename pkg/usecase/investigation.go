package usecase

import (
	"context"

	"github.com/foodops-lab/rcagent/pkg/domain/interfaces"
	"github.com/foodops-lab/rcagent/pkg/domain/model"
	"github.com/foodops-lab/rcagent/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// InvestigationUseCase evaluates uploaded evidence and tracks the manual
// inspection decision point
type InvestigationUseCase struct {
	repo  interfaces.Repository
	lines *model.LineRegistry
}

// Evaluation is the result of classifying one evidence upload
type Evaluation struct {
	Series             model.EvidenceSeries
	Mean               float64
	Threshold          float64
	Verdict            types.Verdict
	InspectionRequired bool
}

// Classify maps a mean contamination count onto a verdict for the given
// risk category. It is a pure function: same inputs, same verdict.
//
// Low-acid lines are sterility-critical, so any mean above their near-zero
// threshold is a critical breach. High-acid lines above threshold indicate a
// systemic hygiene failure; below it the spikes are sporadic and point at an
// intermittent mechanical cause.
func Classify(category types.RiskCategory, mean, threshold float64) types.Verdict {
	if category == types.RiskLowAcid {
		if mean > threshold {
			return types.VerdictCriticalBreach
		}
		return types.VerdictClean
	}

	if mean > threshold {
		return types.VerdictSystemicFailure
	}
	return types.VerdictSporadicSpike
}

// EvaluateEvidence computes the mean of the uploaded series and classifies
// it against the session line's threshold. The series itself is not stored;
// only the resulting verdict is recorded on the session.
func (uc *InvestigationUseCase) EvaluateEvidence(ctx context.Context, sessionID types.SessionID, series model.EvidenceSeries) (*Evaluation, error) {
	session, err := uc.repo.Session().Get(ctx, sessionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load session")
	}

	if !session.Investigation.Active {
		return nil, goerr.Wrap(model.ErrInvestigationNotActive, "evidence upload requires an active investigation",
			goerr.V("session_id", sessionID))
	}

	profile, err := uc.lines.Get(session.LineID)
	if err != nil {
		return nil, goerr.Wrap(err, "session refers to unknown line")
	}

	mean, err := series.Mean()
	if err != nil {
		return nil, err
	}

	verdict := Classify(profile.RiskCategory, mean, profile.Threshold)
	session.RecordVerdict(verdict)
	if err := uc.repo.Session().Put(ctx, session); err != nil {
		return nil, goerr.Wrap(err, "failed to store session")
	}

	return &Evaluation{
		Series:             series,
		Mean:               mean,
		Threshold:          profile.Threshold,
		Verdict:            verdict,
		InspectionRequired: verdict.RequiresInspection(),
	}, nil
}

// InspectionResult is the outcome of the manual dosing valve inspection
type InspectionResult struct {
	Outcome   types.InspectionOutcome
	Confirmed bool
	Note      string
}

// RecordInspection records the manual equipment inspection outcome. A
// cracked seal confirms the root cause (a one-way transition); an intact
// seal leaves the investigation open with a follow-up hint.
func (uc *InvestigationUseCase) RecordInspection(ctx context.Context, sessionID types.SessionID, outcome types.InspectionOutcome) (*InspectionResult, error) {
	if !outcome.IsValid() {
		return nil, goerr.New("invalid inspection outcome", goerr.V("outcome", outcome))
	}

	session, err := uc.repo.Session().Get(ctx, sessionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load session")
	}

	if session.LastVerdict != types.VerdictSporadicSpike {
		return nil, goerr.Wrap(ErrInspectionNotApplicable, "inspection outcome rejected",
			goerr.V("session_id", sessionID), goerr.V("last_verdict", session.LastVerdict))
	}

	if outcome == types.SealIntact {
		return &InspectionResult{
			Outcome: outcome,
			Note:    "O-ring intact. Check the piston head next.",
		}, nil
	}

	if err := session.ConfirmRootCause(); err != nil {
		return nil, goerr.Wrap(err, "failed to confirm root cause")
	}
	if err := uc.repo.Session().Put(ctx, session); err != nil {
		return nil, goerr.Wrap(err, "failed to store session")
	}

	return &InspectionResult{
		Outcome:   outcome,
		Confirmed: true,
		Note:      "Root cause confirmed: cracked dosing valve O-ring.",
	}, nil
}
