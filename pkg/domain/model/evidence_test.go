package model_test

import (
	"errors"
	"testing"

	"github.com/foodops-lab/rcagent/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestEvidenceSeriesMean(t *testing.T) {
	series := model.EvidenceSeries{
		{Date: "2026-08-01", Count: 10},
		{Date: "2026-08-02", Count: 12},
		{Date: "2026-08-03", Count: 14},
	}
	mean, err := series.Mean()
	gt.NoError(t, err)
	gt.Value(t, mean).Equal(12.0)
}

func TestEvidenceSeriesMeanEmpty(t *testing.T) {
	var series model.EvidenceSeries
	_, err := series.Mean()
	if !errors.Is(err, model.ErrEmptyEvidence) {
		t.Errorf("Mean() on empty series = %v, want ErrEmptyEvidence", err)
	}
}
