package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/foodops-lab/rcagent/pkg/cli/config"
	httpctrl "github.com/foodops-lab/rcagent/pkg/controller/http"
	"github.com/foodops-lab/rcagent/pkg/repository/memory"
	"github.com/foodops-lab/rcagent/pkg/usecase"
	"github.com/foodops-lab/rcagent/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var linesCfg config.Lines
	var geminiCfg config.Gemini
	var reportCfg config.Report

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("RCAGENT_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, linesCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, reportCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			registry, err := linesCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load line catalog")
			}
			logger.LogAttrs(ctx, slog.LevelInfo, "Line catalog loaded",
				append(linesCfg.LogAttrs(), slog.Int("line_count", len(registry.List())))...)

			repo := memory.New()
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			emitter, err := reportCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize report emitter")
			}

			ucOpts := []usecase.Option{
				usecase.WithEmitter(emitter),
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient != nil {
				ucOpts = append(ucOpts, usecase.WithLLM(llmClient))
				logger.LogAttrs(ctx, slog.LevelInfo, "Gemini client enabled", geminiCfg.LogAttrs()...)
			} else {
				logger.Warn("Gemini API key not configured, expert panel replies with a warning")
			}

			uc := usecase.New(repo, registry, ucOpts...)

			httpHandler, err := httpctrl.New(uc)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logger.Info("Server shutdown completed")
				return nil
			}
		},
	}
}
