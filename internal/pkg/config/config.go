package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Scraper  ScraperConfig  `yaml:"scraper"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Output   OutputConfig   `yaml:"output"`
	Postgres PostgresConfig `yaml:"postgres"`
	API      APIConfig      `yaml:"api"`
	Logging  LoggingConfig  `yaml:"logging"`
	Notifier NotifierConfig `yaml:"notifier"`
}

type ScraperConfig struct {
	BaseURL        string        `yaml:"base_url"`
	UserAgent      string        `yaml:"user_agent"`
	Timeout        time.Duration `yaml:"timeout"`
	RequestDelay   time.Duration `yaml:"request_delay"`   // pause between month fetches
	ChromeFallback bool          `yaml:"chrome_fallback"` // render refused pages in headless Chrome
	SeasonYears    []int         `yaml:"season_years"`    // calendar years seasons end in (2024 = 2023-2024)
	Months         []string      `yaml:"months"`          // empty = full regular-season sequence
	DropColumns    []string      `yaml:"drop_columns"`    // schedule columns discarded by header name
}

type PipelineConfig struct {
	FormWindow int `yaml:"form_window"`
	// HeadToHeadAsOf switches matchup tallies from full-season totals (the
	// format consumers of the historical dataset expect) to strictly-prior
	// games only.
	HeadToHeadAsOf bool `yaml:"head_to_head_as_of"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"` // directory for per-season CSV files
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"` // empty disables persistence
}

type APIConfig struct {
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug/info/warn/error
}

type NotifierConfig struct {
	TelegramBotToken string `yaml:"telegram_bot_token"`
	TelegramChatID   int64  `yaml:"telegram_chat_id"`
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}
