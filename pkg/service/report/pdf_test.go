package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/foodops-lab/rcagent/pkg/domain/model"
	"github.com/foodops-lab/rcagent/pkg/service/report"
	"github.com/m-mizutani/gt"
)

func testRecord() *model.ReportRecord {
	return &model.ReportRecord{
		Line:        "line-2",
		Issue:       "UHT Breach",
		RootCause:   "Sterility Failure",
		Action:      "STOP PRODUCTION",
		GeneratedAt: time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC),
	}
}

func TestEmit(t *testing.T) {
	dir := t.TempDir()
	emitter, err := report.NewEmitter(dir)
	gt.NoError(t, err).Required()

	name, err := emitter.Emit(testRecord())
	gt.NoError(t, err).Required()
	gt.String(t, name).NotEqual("")

	path, err := emitter.Path(name)
	gt.NoError(t, err).Required()

	data, err := os.ReadFile(path)
	gt.NoError(t, err).Required()
	if len(data) == 0 || !strings.HasPrefix(string(data[:4]), "%PDF") {
		t.Errorf("emitted file does not look like a PDF (%d bytes)", len(data))
	}

	// No temp files may linger after a successful emit
	entries, err := os.ReadDir(dir)
	gt.NoError(t, err).Required()
	gt.Array(t, entries).Length(1)
}

func TestEmitUniqueNames(t *testing.T) {
	emitter, err := report.NewEmitter(t.TempDir())
	gt.NoError(t, err).Required()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		name, err := emitter.Emit(testRecord())
		gt.NoError(t, err).Required()
		if seen[name] {
			t.Fatalf("duplicate report name: %s", name)
		}
		seen[name] = true
	}
}

func TestPathRejectsForeignNames(t *testing.T) {
	emitter, err := report.NewEmitter(t.TempDir())
	gt.NoError(t, err).Required()

	for _, name := range []string{
		"../etc/passwd",
		"rca_report.pdf",
		"rca_report_1_zzzzzzzz.exe",
		"",
	} {
		if _, err := emitter.Path(name); err == nil {
			t.Errorf("Path(%q) = nil, want error", name)
		}
	}
}

func TestEmitFailureLeavesNoPartialFile(t *testing.T) {
	dir := t.TempDir()
	emitter, err := report.NewEmitter(dir)
	gt.NoError(t, err).Required()

	// Make the directory unwritable so the temp file creation fails
	gt.NoError(t, os.Chmod(dir, 0o500)).Required()
	defer os.Chmod(dir, 0o750) //nolint:errcheck

	if _, err := emitter.Emit(testRecord()); err == nil {
		t.Skip("running as a user that ignores directory permissions")
	}

	entries, err := os.ReadDir(dir)
	gt.NoError(t, err).Required()
	for _, entry := range entries {
		t.Errorf("unexpected leftover file: %s", filepath.Join(dir, entry.Name()))
	}
}
