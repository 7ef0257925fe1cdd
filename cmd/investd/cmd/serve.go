package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fincity/investing-engine/internal/config"
	"github.com/fincity/investing-engine/internal/dialogue"
	"github.com/fincity/investing-engine/internal/gamestate"
	"github.com/fincity/investing-engine/internal/metrics"
	"github.com/fincity/investing-engine/internal/server"
	"github.com/fincity/investing-engine/internal/simulation"
	"github.com/fincity/investing-engine/pkg/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulation API over HTTP",
	Long: `Start the HTTP server exposing the simulation, Monte Carlo, coach
and player-state endpoints, plus a Prometheus metrics listener on a
separate port.

Example:
  investd serve --config config.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		cfg := config.Default()
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		return cfg, nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	engine := simulation.NewEngine()
	engine.SetWorkers(cfg.Simulation.Workers)
	engine.SetLogger(logger)

	store := gamestate.NewMemoryStore(cfg.GameStateTTL())

	var completer dialogue.Completer
	if cfg.OpenAI.APIKey != "" {
		completer = dialogue.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model,
			cfg.OpenAITimeout(), cfg.OpenAI.MaxRetries)
		logger.Infof("coach: AI completions enabled (model=%s)", cfg.OpenAI.Model)
	} else {
		logger.Infof("coach: no API key configured, using canned replies")
	}
	coach := dialogue.NewCoach(completer)
	coach.SetLogger(logger)

	handlers := server.NewHandlers(cfg, engine, store, coach, logger)
	srv := server.New(cfg, handlers, logger)

	metricsSrv := metrics.NewServer(cfg.Server.MetricsPort, logger)
	metricsSrv.Start()

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on :%d", cfg.Server.Port)
		errCh <- srv.Listen()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case sig := <-quit:
		logger.Infof("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if err := metricsSrv.Stop(ctx); err != nil {
		logger.Errorf("metrics shutdown: %v", err)
	}
	logger.Infof("shutdown complete")
	return nil
}
