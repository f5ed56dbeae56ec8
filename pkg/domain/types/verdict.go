package types

import "fmt"

// Verdict represents the classification of an evidence series' mean count
// against a line's alert threshold.
type Verdict string

const (
	// VerdictClean means counts on a low-acid line stayed at or below the threshold
	VerdictClean Verdict = "CLEAN"

	// VerdictCriticalBreach means counts above threshold on a sterility-critical line
	VerdictCriticalBreach Verdict = "CRITICAL_BREACH"

	// VerdictSystemicFailure means counts above threshold on a high-acid line
	VerdictSystemicFailure Verdict = "SYSTEMIC_FAILURE"

	// VerdictSporadicSpike means counts at or below threshold on a high-acid line,
	// pointing at an intermittent mechanical cause rather than a hygiene failure
	VerdictSporadicSpike Verdict = "SPORADIC_SPIKE"
)

// AllVerdicts returns all valid verdicts
func AllVerdicts() []Verdict {
	return []Verdict{
		VerdictClean,
		VerdictCriticalBreach,
		VerdictSystemicFailure,
		VerdictSporadicSpike,
	}
}

// IsValid checks if the verdict is valid
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictClean, VerdictCriticalBreach, VerdictSystemicFailure, VerdictSporadicSpike:
		return true
	default:
		return false
	}
}

// RequiresInspection reports whether the verdict opens the manual equipment
// inspection decision point
func (v Verdict) RequiresInspection() bool {
	return v == VerdictSporadicSpike
}

// String returns the string representation of the verdict
func (v Verdict) String() string {
	return string(v)
}

// ParseVerdict parses a string into a Verdict
func ParseVerdict(s string) (Verdict, error) {
	verdict := Verdict(s)
	if !verdict.IsValid() {
		return "", fmt.Errorf("invalid verdict: %s", s)
	}
	return verdict, nil
}
