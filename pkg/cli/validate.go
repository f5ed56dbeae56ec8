package cli

import (
	"context"

	"github.com/foodops-lab/rcagent/pkg/cli/config"
	"github.com/foodops-lab/rcagent/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var linesCfg config.Lines

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the production line catalog",
		Flags:   linesCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			registry, err := linesCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "line catalog validation failed")
			}

			profiles := registry.List()
			logger.Info("Line catalog validation passed", "line_count", len(profiles))
			for _, p := range profiles {
				logger.Info("Line validated",
					"id", p.ID,
					"product", p.Product,
					"risk_category", p.RiskCategory,
					"threshold", p.Threshold,
				)
			}

			return nil
		},
	}
}
