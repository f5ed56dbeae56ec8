package config

import (
	"context"
	"log/slog"

	"github.com/foodops-lab/rcagent/pkg/service/llm"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Gemini holds configuration for the Gemini generation client
type Gemini struct {
	apiKey string `masq:"secret"`
	model  string
}

// Flags returns CLI flags for Gemini configuration
func (g *Gemini) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-api-key",
			Usage:       "API key for the Gemini API",
			Sources:     cli.EnvVars("RCAGENT_GEMINI_API_KEY", "GEMINI_API_KEY"),
			Destination: &g.apiKey,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model ID",
			Value:       llm.DefaultModel,
			Sources:     cli.EnvVars("RCAGENT_GEMINI_MODEL"),
			Destination: &g.model,
		},
	}
}

// LogAttrs returns log attributes for the Gemini configuration. The API key
// itself is never logged.
func (g *Gemini) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Bool("api_key_set", g.apiKey != ""),
		slog.String("model", g.model),
	}
}

// Configure creates a Gemini client from the configured flags. Returns nil
// if no API key is configured; the expert panel then degrades to a warning
// instead of failing outright.
func (g *Gemini) Configure(ctx context.Context) (llm.Client, error) {
	if g.apiKey == "" {
		return nil, nil
	}

	client, err := llm.NewGemini(ctx, g.apiKey, g.model)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client")
	}

	return client, nil
}
