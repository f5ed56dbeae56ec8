package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// LineID represents a unique identifier for a production line
type LineID string

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks if the LineID is valid
func (l LineID) Validate() error {
	if l == "" {
		return goerr.New("line ID cannot be empty")
	}
	if !idPattern.MatchString(string(l)) {
		return goerr.New("line ID must be lowercase alphanumeric with hyphens", goerr.V("id", l))
	}
	return nil
}

// String returns the string representation of LineID
func (l LineID) String() string {
	return string(l)
}
