package types

import "fmt"

// RiskCategory represents the microbiological risk class of a production line.
// High-acid lines are primarily at yeast/mold risk; low-acid lines are
// sterility-critical and at bacteria risk.
type RiskCategory string

const (
	RiskHighAcid RiskCategory = "high-acid"
	RiskLowAcid  RiskCategory = "low-acid"
)

// AllRiskCategories returns all valid risk categories
func AllRiskCategories() []RiskCategory {
	return []RiskCategory{
		RiskHighAcid,
		RiskLowAcid,
	}
}

// IsValid checks if the risk category is valid
func (c RiskCategory) IsValid() bool {
	switch c {
	case RiskHighAcid, RiskLowAcid:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk category
func (c RiskCategory) String() string {
	return string(c)
}

// ParseRiskCategory parses a string into a RiskCategory
func ParseRiskCategory(s string) (RiskCategory, error) {
	category := RiskCategory(s)
	if !category.IsValid() {
		return "", fmt.Errorf("invalid risk category: %s", s)
	}
	return category, nil
}
