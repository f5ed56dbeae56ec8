// Package report renders incident reports as fixed-layout PDF documents.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/foodops-lab/rcagent/pkg/domain/model"
	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

var reportNamePattern = regexp.MustCompile(`^rca_report_[0-9]+_[0-9a-f]{8}\.pdf$`)

// Emitter writes report documents into a single output directory
type Emitter struct {
	dir string
}

// NewEmitter creates an Emitter, creating the output directory if needed
func NewEmitter(dir string) (*Emitter, error) {
	if dir == "" {
		return nil, goerr.New("report output directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, goerr.Wrap(err, "failed to create report directory", goerr.V("dir", dir))
	}
	return &Emitter{dir: dir}, nil
}

// Emit renders the record into a new uniquely named PDF and returns the file
// name. The document is rendered in memory and moved into place with a
// rename, so a failure never leaves a partial report behind.
func (e *Emitter) Emit(rec *model.ReportRecord) (string, error) {
	var buf bytes.Buffer
	if err := render(rec, &buf); err != nil {
		return "", goerr.Wrap(err, "failed to render report", goerr.V("line", rec.Line))
	}

	// Timestamp plus a random suffix keeps every report name unique even
	// within one nanosecond tick
	name := fmt.Sprintf("rca_report_%d_%s.pdf", rec.GeneratedAt.UnixNano(), uuid.New().String()[:8])

	tmp, err := os.CreateTemp(e.dir, ".rca_report_*.tmp")
	if err != nil {
		return "", goerr.Wrap(err, "failed to create temporary report file", goerr.V("dir", e.dir))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", goerr.Wrap(err, "failed to write report", goerr.V("path", tmpName))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", goerr.Wrap(err, "failed to close report file", goerr.V("path", tmpName))
	}

	if err := os.Rename(tmpName, filepath.Join(e.dir, name)); err != nil {
		_ = os.Remove(tmpName)
		return "", goerr.Wrap(err, "failed to finalize report", goerr.V("name", name))
	}

	return name, nil
}

// Path resolves a previously emitted report name to its absolute path.
// Names that were not produced by Emit are rejected.
func (e *Emitter) Path(name string) (string, error) {
	if !reportNamePattern.MatchString(name) {
		return "", goerr.New("invalid report name", goerr.V("name", name))
	}
	return filepath.Join(e.dir, name), nil
}

func render(rec *model.ReportRecord, buf *bytes.Buffer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Microbiological RCA Report", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(190, 10, "Date: "+rec.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(190, 10, "Line: "+rec.Line.String(), "", 1, "L", false, 0, "")
	pdf.CellFormat(190, 10, "Issue: "+rec.Issue, "", 1, "L", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 10, "Final Determination", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 10, "Root Cause: "+rec.RootCause, "", "L", false)
	pdf.Ln(5)
	pdf.MultiCell(0, 10, "Action: "+rec.Action, "", "L", false)

	return pdf.Output(buf)
}
