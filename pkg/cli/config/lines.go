package config

import (
	_ "embed"
	"log/slog"
	"os"

	"github.com/foodops-lab/rcagent/pkg/domain/model"
	"github.com/foodops-lab/rcagent/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

//go:embed lines.toml
var defaultLinesTOML []byte

// Lines holds configuration for the production line catalog
type Lines struct {
	path string
}

// Flags returns CLI flags for line catalog configuration
func (l *Lines) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "lines",
			Usage:       "Path to the production line catalog (TOML). Defaults to the built-in catalog.",
			Sources:     cli.EnvVars("RCAGENT_LINES"),
			Destination: &l.path,
		},
	}
}

// LogAttrs returns log attributes for the line catalog configuration
func (l *Lines) LogAttrs() []slog.Attr {
	path := l.path
	if path == "" {
		path = "(built-in)"
	}
	return []slog.Attr{
		slog.String("lines", path),
	}
}

// LineCatalog is the TOML shape of the production line catalog
type LineCatalog struct {
	Lines []LineEntry `toml:"line"`
}

// LineEntry is one production line in the catalog file
type LineEntry struct {
	ID           string  `toml:"id"`
	Product      string  `toml:"product"`
	Flow         string  `toml:"flow"`
	LastCleaning string  `toml:"last_cleaning"`
	RiskCategory string  `toml:"risk_category"`
	Threshold    float64 `toml:"threshold"`
}

// Profile converts the catalog entry into a validated line profile
func (e *LineEntry) Profile() (*model.LineProfile, error) {
	category, err := types.ParseRiskCategory(e.RiskCategory)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid risk category", goerr.V("id", e.ID))
	}

	profile := &model.LineProfile{
		ID:           types.LineID(e.ID),
		Product:      e.Product,
		Flow:         e.Flow,
		LastCleaning: e.LastCleaning,
		RiskCategory: category,
		Threshold:    e.Threshold,
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

// Configure loads the line catalog and builds the registry. Without a path
// the built-in catalog is used.
func (l *Lines) Configure() (*model.LineRegistry, error) {
	data := defaultLinesTOML
	if l.path != "" {
		// #nosec G304 - path is expected to be provided by CLI argument
		loaded, err := os.ReadFile(l.path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read line catalog", goerr.V("path", l.path))
		}
		data = loaded
	}

	var catalog LineCatalog
	if err := toml.Unmarshal(data, &catalog); err != nil {
		return nil, goerr.Wrap(err, "failed to parse line catalog", goerr.V("path", l.path))
	}
	if len(catalog.Lines) == 0 {
		return nil, goerr.New("line catalog has no lines", goerr.V("path", l.path))
	}

	registry := model.NewLineRegistry()
	seen := make(map[string]bool)
	for _, entry := range catalog.Lines {
		if seen[entry.ID] {
			return nil, goerr.New("duplicate line ID", goerr.V("id", entry.ID))
		}
		seen[entry.ID] = true

		profile, err := entry.Profile()
		if err != nil {
			return nil, goerr.Wrap(err, "invalid line entry", goerr.V("id", entry.ID))
		}
		registry.Register(profile)
	}

	return registry, nil
}
