// Package evidence parses uploaded lab-result spreadsheets into an
// evidence series. Files are not validated beyond what parsing naturally
// rejects.
package evidence

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/foodops-lab/rcagent/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// ParseCSV reads a lab-results CSV with a date-like column and a numeric
// count column (matched by header, case-insensitive). The returned series
// keeps row order. A file with a header but no data rows yields an empty
// series; classifying that is the evaluator's job.
func ParseCSV(r io.Reader) (model.EvidenceSeries, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, goerr.New("CSV file has no header row")
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read CSV header")
	}

	dateCol, countCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			dateCol = i
		case "count":
			countCol = i
		}
	}
	if dateCol < 0 || countCol < 0 {
		return nil, goerr.New("CSV header must contain Date and Count columns",
			goerr.V("header", header))
	}

	var series model.EvidenceSeries
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read CSV row", goerr.V("row", row))
		}

		count, err := strconv.ParseFloat(strings.TrimSpace(record[countCol]), 64)
		if err != nil {
			return nil, goerr.Wrap(err, "count column is not numeric",
				goerr.V("row", row), goerr.V("value", record[countCol]))
		}

		series = append(series, model.Observation{
			Date:  strings.TrimSpace(record[dateCol]),
			Count: count,
		})
	}

	return series, nil
}
