package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/benchprophet/benchprophet/internal/pipeline"
	pkgconfig "github.com/benchprophet/benchprophet/internal/pkg/config"
	"github.com/benchprophet/benchprophet/internal/pkg/export"
	"github.com/benchprophet/benchprophet/internal/pkg/logging"
	"github.com/benchprophet/benchprophet/internal/pkg/notify"
	"github.com/benchprophet/benchprophet/internal/pkg/storage"
	"github.com/benchprophet/benchprophet/internal/scraper/bbref"
)

const (
	defaultConfigPath = "configs/production.yaml"
)

type config struct {
	configPath string
	seasons    string // Override season_years from config (e.g. "2023,2024")
	runFor     time.Duration
}

func main() {
	if err := run(); err != nil {
		slog.Error("Scraper failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	slog.Info("Starting scraper...")

	cfg := parseFlags()
	slog.Info("Loading config", "path", cfg.configPath)

	appConfig, err := pkgconfig.Load(cfg.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.SetupLogger(&appConfig.Logging, "scraper")
	slog.Info("Config loaded successfully")

	seasonYears := appConfig.Scraper.SeasonYears
	if cfg.seasons != "" {
		seasonYears, err = parseSeasonYears(cfg.seasons)
		if err != nil {
			return err
		}
	}
	if len(seasonYears) == 0 {
		return fmt.Errorf("no seasons to scrape: set scraper.season_years in config or pass -seasons")
	}

	ctx, cancel := createContext(cfg.runFor)
	defer cancel()
	setupSignalHandler(ctx, cancel)

	client := bbref.NewClient(appConfig.Scraper.Timeout, appConfig.Scraper.UserAgent, appConfig.Scraper.ChromeFallback)
	normalizer := bbref.NewNormalizer(appConfig.Scraper.DropColumns)
	scraper := bbref.NewScraper(client, normalizer, appConfig.Scraper.BaseURL, appConfig.Scraper.RequestDelay)

	enhancer := &pipeline.Enhancer{
		FormWindow:     appConfig.Pipeline.FormWindow,
		HeadToHeadAsOf: appConfig.Pipeline.HeadToHeadAsOf,
	}
	p := pipeline.New(scraper, enhancer)

	notifier := notify.NewTelegramNotifier(appConfig.Notifier.TelegramBotToken, appConfig.Notifier.TelegramChatID)

	started := time.Now()
	results, err := p.Run(ctx, seasonYears, appConfig.Scraper.Months)
	if err != nil {
		notifier.NotifyRunFailure(err)
		return err
	}

	summaries, err := exportResults(appConfig, results)
	if err != nil {
		notifier.NotifyRunFailure(err)
		return err
	}

	if appConfig.Postgres.DSN != "" {
		if err := persistResults(ctx, appConfig, results); err != nil {
			slog.Error("Failed to persist games, continuing", "error", err)
		}
	}

	notifier.NotifyRunSummary(summaries, time.Since(started))
	slog.Info("Scraper finished", "seasons", len(results), "elapsed", time.Since(started).Round(time.Second))
	return nil
}

func exportResults(appConfig *pkgconfig.Config, results []pipeline.SeasonResult) ([]notify.SeasonSummary, error) {
	outDir := appConfig.Output.Dir
	if outDir == "" {
		outDir = "."
	}
	exporter := export.NewExporter(outDir, slog.Default())

	summaries := make([]notify.SeasonSummary, 0, len(results))
	for _, r := range results {
		path, err := exporter.WriteSeason(r.Season, r.Games)
		if err != nil {
			return nil, fmt.Errorf("failed to export season %s: %w", r.Season, err)
		}
		summaries = append(summaries, notify.SeasonSummary{Season: r.Season, Games: len(r.Games), Path: path})
	}
	return summaries, nil
}

func persistResults(ctx context.Context, appConfig *pkgconfig.Config, results []pipeline.SeasonResult) error {
	st, err := storage.NewPostgresGameStorage(&appConfig.Postgres)
	if err != nil {
		return err
	}
	defer st.Close()

	for _, r := range results {
		if err := st.UpsertGames(ctx, r.Games); err != nil {
			return fmt.Errorf("season %s: %w", r.Season, err)
		}
		slog.Info("season persisted", "season", r.Season, "games", len(r.Games))
	}
	return nil
}

func parseFlags() config {
	var cfg config

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&cfg.configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.StringVar(&cfg.seasons, "seasons", "", "Override scraper.season_years: comma-separated end years (e.g. '2023,2024'). Empty = use config")
	flag.DurationVar(&cfg.runFor, "run-for", 0, "Auto-stop after duration (e.g. 10s, 1m). 0 = run until SIGINT/SIGTERM")
	flag.Parse()
	return cfg
}

func parseSeasonYears(s string) ([]int, error) {
	var years []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		year, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("bad season year %q: %w", part, err)
		}
		years = append(years, year)
	}
	return years, nil
}

func createContext(runFor time.Duration) (context.Context, context.CancelFunc) {
	if runFor > 0 {
		return context.WithTimeout(context.Background(), runFor)
	}
	return context.WithCancel(context.Background())
}

func setupSignalHandler(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal, stopping scraper...", "signal", sig.String())
			cancel()
		case <-ctx.Done():
			signal.Stop(sigChan)
			close(sigChan)
		}
	}()
}
