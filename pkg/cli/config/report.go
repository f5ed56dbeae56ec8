package config

import (
	"log/slog"

	"github.com/foodops-lab/rcagent/pkg/service/report"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Report holds configuration for report emission
type Report struct {
	dir string
}

// Flags returns CLI flags for report configuration
func (r *Report) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "report-dir",
			Usage:       "Directory for emitted PDF reports",
			Value:       "reports",
			Sources:     cli.EnvVars("RCAGENT_REPORT_DIR"),
			Destination: &r.dir,
		},
	}
}

// LogAttrs returns log attributes for the report configuration
func (r *Report) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("report_dir", r.dir),
	}
}

// Configure creates the report emitter, creating the output directory if
// needed
func (r *Report) Configure() (*report.Emitter, error) {
	emitter, err := report.NewEmitter(r.dir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize report emitter")
	}
	return emitter, nil
}
