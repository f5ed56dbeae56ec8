package usecase

import "errors"

// Sentinel errors for the use case layer
var (
	// ErrInspectionNotApplicable is returned when an inspection outcome is
	// recorded without a preceding sporadic spike verdict
	ErrInspectionNotApplicable = errors.New("inspection is only applicable after a sporadic spike verdict")

	// ErrReportNotAvailable is returned when no terminal investigation
	// branch has been reached yet
	ErrReportNotAvailable = errors.New("no report available for the current investigation state")
)
