package evidence_test

import (
	"strings"
	"testing"

	"github.com/foodops-lab/rcagent/pkg/service/evidence"
	"github.com/m-mizutani/gt"
)

func TestParseCSV(t *testing.T) {
	input := "Date,Count\n2026-08-01,10\n2026-08-02,12\n2026-08-03,14\n"
	series, err := evidence.ParseCSV(strings.NewReader(input))
	gt.NoError(t, err).Required()
	gt.Array(t, series).Length(3)
	gt.Value(t, series[0].Date).Equal("2026-08-01")
	gt.Value(t, series[0].Count).Equal(10.0)
	gt.Value(t, series[2].Count).Equal(14.0)
}

func TestParseCSVColumnOrderAndCase(t *testing.T) {
	input := "count, date\n3.5, 2026-08-01\n"
	series, err := evidence.ParseCSV(strings.NewReader(input))
	gt.NoError(t, err).Required()
	gt.Array(t, series).Length(1)
	gt.Value(t, series[0].Count).Equal(3.5)
	gt.Value(t, series[0].Date).Equal("2026-08-01")
}

func TestParseCSVHeaderOnly(t *testing.T) {
	series, err := evidence.ParseCSV(strings.NewReader("Date,Count\n"))
	gt.NoError(t, err)
	gt.Array(t, series).Length(0)
}

func TestParseCSVErrors(t *testing.T) {
	cases := map[string]string{
		"empty file":        "",
		"missing count":     "Date,Value\n2026-08-01,3\n",
		"non-numeric count": "Date,Count\n2026-08-01,high\n",
		"ragged row":        "Date,Count\n2026-08-01\n",
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := evidence.ParseCSV(strings.NewReader(input)); err == nil {
				t.Errorf("ParseCSV(%q) = nil, want error", input)
			}
		})
	}
}
