package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// ErrEmptyEvidence is returned when an uploaded evidence series has no rows.
// An empty series is an input error, not a zero-contamination result.
var ErrEmptyEvidence = goerr.New("evidence series is empty")

// Observation is one sampled contamination count
type Observation struct {
	Date  string
	Count float64
}

// EvidenceSeries is an uploaded ordered sequence of contamination samples.
// It exists only for the duration of one upload-and-evaluate cycle.
type EvidenceSeries []Observation

// Mean returns the arithmetic mean of the count column. It fails on an
// empty series rather than returning zero.
func (s EvidenceSeries) Mean() (float64, error) {
	if len(s) == 0 {
		return 0, goerr.Wrap(ErrEmptyEvidence, "cannot compute mean")
	}
	var sum float64
	for _, obs := range s {
		sum += obs.Count
	}
	return sum / float64(len(s)), nil
}
