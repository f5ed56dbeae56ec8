package types

import "fmt"

// InspectionOutcome represents the result of the manual dosing valve
// inspection triggered by a sporadic spike verdict.
type InspectionOutcome string

const (
	// SealIntact means the O-ring looked fine; the investigation continues elsewhere
	SealIntact InspectionOutcome = "seal-intact"

	// SealCracked means a cracked O-ring was found; this confirms the root cause
	SealCracked InspectionOutcome = "seal-cracked"
)

// IsValid checks if the inspection outcome is valid
func (o InspectionOutcome) IsValid() bool {
	switch o {
	case SealIntact, SealCracked:
		return true
	default:
		return false
	}
}

// String returns the string representation of the inspection outcome
func (o InspectionOutcome) String() string {
	return string(o)
}

// ParseInspectionOutcome parses a string into an InspectionOutcome
func ParseInspectionOutcome(s string) (InspectionOutcome, error) {
	outcome := InspectionOutcome(s)
	if !outcome.IsValid() {
		return "", fmt.Errorf("invalid inspection outcome: %s", s)
	}
	return outcome, nil
}
