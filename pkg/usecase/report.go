package usecase

import (
	"context"
	"time"

	"github.com/foodops-lab/rcagent/pkg/domain/interfaces"
	"github.com/foodops-lab/rcagent/pkg/domain/model"
	"github.com/foodops-lab/rcagent/pkg/domain/types"
	"github.com/foodops-lab/rcagent/pkg/service/report"
	"github.com/m-mizutani/goerr/v2"
)

// ReportUseCase produces the incident report for a terminal investigation branch
type ReportUseCase struct {
	repo    interfaces.Repository
	emitter *report.Emitter
}

// EmittedReport names a rendered report document and its content
type EmittedReport struct {
	Name   string
	Record *model.ReportRecord
}

// Generate composes the report for the session's terminal branch and emits
// it. The sterility branch requires a critical breach verdict; the
// mechanical branch requires a confirmed root cause. Emission failures are
// surfaced, never swallowed.
func (uc *ReportUseCase) Generate(ctx context.Context, sessionID types.SessionID) (*EmittedReport, error) {
	session, err := uc.repo.Session().Get(ctx, sessionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load session")
	}

	var rec *model.ReportRecord
	switch {
	case session.LastVerdict == types.VerdictCriticalBreach:
		rec = &model.ReportRecord{
			Line:        session.LineID,
			Issue:       "UHT Breach",
			RootCause:   "Sterility Failure",
			Action:      "STOP PRODUCTION",
			GeneratedAt: time.Now().UTC(),
		}

	case session.Investigation.RootCauseConfirmed:
		issue := session.LastUserText()
		if issue == "" {
			issue = "Visual Defect"
		}
		rec = &model.ReportRecord{
			Line:        session.LineID,
			Issue:       issue,
			RootCause:   "Mechanical Failure",
			Action:      "Replace Seal",
			GeneratedAt: time.Now().UTC(),
		}

	default:
		return nil, goerr.Wrap(ErrReportNotAvailable, "report generation rejected",
			goerr.V("session_id", sessionID),
			goerr.V("last_verdict", session.LastVerdict),
			goerr.V("confirmed", session.Investigation.RootCauseConfirmed),
		)
	}

	if uc.emitter == nil {
		return nil, goerr.New("report emitter is not configured")
	}

	name, err := uc.emitter.Emit(rec)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to emit report", goerr.V("line", rec.Line))
	}

	return &EmittedReport{Name: name, Record: rec}, nil
}

// Open resolves an emitted report name to a path for download
func (uc *ReportUseCase) Open(name string) (string, error) {
	if uc.emitter == nil {
		return "", goerr.New("report emitter is not configured")
	}
	return uc.emitter.Path(name)
}
