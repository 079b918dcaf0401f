package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/benchprophet/benchprophet/internal/api"
	pkgconfig "github.com/benchprophet/benchprophet/internal/pkg/config"
	"github.com/benchprophet/benchprophet/internal/pkg/logging"
	"github.com/benchprophet/benchprophet/internal/pkg/storage"
	"github.com/benchprophet/benchprophet/internal/scraper/bbref"
)

const (
	defaultConfigPath = "configs/production.yaml"
)

type config struct {
	configPath string
}

func main() {
	if err := run(); err != nil {
		slog.Error("API server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	slog.Info("Starting API server...")

	cfg := parseFlags()
	slog.Info("Loading config", "path", cfg.configPath)

	appConfig, err := pkgconfig.Load(cfg.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.SetupLogger(&appConfig.Logging, "api")
	slog.Info("Config loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandler(ctx, cancel)

	store, closeStore, err := buildStore(appConfig)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	client := bbref.NewClient(appConfig.Scraper.Timeout, appConfig.Scraper.UserAgent, appConfig.Scraper.ChromeFallback)
	stats := bbref.NewTeamStatsClient(client, appConfig.Scraper.BaseURL, appConfig.Scraper.RequestDelay)

	server := api.NewServer(store, stats, slog.Default())
	return server.Run(ctx, api.AddrFor(appConfig.API.Port), appConfig.API.ReadHeaderTimeout)
}

// buildStore picks the data backend: postgres when a DSN is configured, the
// exported CSV files otherwise.
func buildStore(appConfig *pkgconfig.Config) (api.GameStore, func(), error) {
	if appConfig.Postgres.DSN != "" {
		st, err := storage.NewPostgresGameStorage(&appConfig.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres storage: %w", err)
		}
		slog.Info("serving games from postgres")
		return api.NewStorageStore(st), func() { _ = st.Close() }, nil
	}

	dir := appConfig.Output.Dir
	if dir == "" {
		dir = "."
	}
	slog.Info("serving games from dataset files", "dir", dir)
	return api.NewDatasetStore(dir, slog.Default()), nil, nil
}

func parseFlags() config {
	var cfg config

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&cfg.configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.Parse()
	return cfg
}

func setupSignalHandler(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal, stopping API server...", "signal", sig.String())
			cancel()
		case <-ctx.Done():
			signal.Stop(sigChan)
			close(sigChan)
		}
	}()
}
