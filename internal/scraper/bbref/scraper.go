package bbref

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"github.com/benchprophet/benchprophet/internal/pkg/models"
)

// DefaultBaseURL is the production source of month schedule pages.
const DefaultBaseURL = "https://www.basketball-reference.com"

// DefaultMonths is the regular-season month sequence in schedule order.
var DefaultMonths = []string{"october", "november", "december", "january", "february", "march", "april"}

var (
	monthFromURL = regexp.MustCompile(`games-(\w+)\.html`)
	yearFromURL  = regexp.MustCompile(`NBA_(\d+)`)
)

// Scraper fetches and normalizes month schedule pages from one source.
type Scraper struct {
	client       *Client
	normalizer   *Normalizer
	baseURL      string
	requestDelay time.Duration
}

// NewScraper builds a schedule scraper. requestDelay is the fixed pause
// between month fetches; the source rate-limits aggressively, so keep it at
// a second or more.
func NewScraper(client *Client, normalizer *Normalizer, baseURL string, requestDelay time.Duration) *Scraper {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if requestDelay <= 0 {
		requestDelay = time.Second
	}
	return &Scraper{
		client:       client,
		normalizer:   normalizer,
		baseURL:      baseURL,
		requestDelay: requestDelay,
	}
}

// MonthURL builds the schedule page URL for one month of a season.
// seasonYear is the calendar year the season ends in (2024 for 2023-2024).
func (s *Scraper) MonthURL(seasonYear int, month string) string {
	return fmt.Sprintf("%s/leagues/NBA_%d_games-%s.html", s.baseURL, seasonYear, month)
}

// SeasonAndMonthFromURL derives the season label and month tag from a month
// page URL. The identifiers live in the URL pattern, not in row content.
func SeasonAndMonthFromURL(url string) (season, month string, err error) {
	ym := yearFromURL.FindStringSubmatch(url)
	mm := monthFromURL.FindStringSubmatch(url)
	if ym == nil || mm == nil {
		return "", "", fmt.Errorf("cannot derive season/month from url %q", url)
	}
	year, err := strconv.Atoi(ym[1])
	if err != nil {
		return "", "", fmt.Errorf("bad season year in url %q: %w", url, err)
	}
	return fmt.Sprintf("%d-%d", year-1, year), mm[1], nil
}

// ScrapeMonth fetches one month page and returns its normalized game records.
// Rows failing normalization are logged and skipped inside NormalizeRow; a
// page with no usable rows at all is an error so the caller can skip the unit.
func (s *Scraper) ScrapeMonth(ctx context.Context, url string) ([]models.GameRecord, error) {
	season, month, err := SeasonAndMonthFromURL(url)
	if err != nil {
		return nil, err
	}

	slog.Info("scraping month page", "url", url)
	html, err := s.client.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}

	table, err := ParseSchedulePage(html)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}

	games := make([]models.GameRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		if g, ok := s.normalizer.NormalizeRow(table.Headers, row, season, month); ok {
			games = append(games, g)
		}
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("no usable rows on %s", url)
	}

	slog.Info("scraped month page", "season", season, "month", month, "games", len(games))
	return games, nil
}

// ScrapeSeason serially scrapes each month of one season with a fixed
// inter-request delay. A failed month is logged and skipped; the season's
// result is whatever the remaining months produced.
func (s *Scraper) ScrapeSeason(ctx context.Context, seasonYear int, months []string) []models.GameRecord {
	if len(months) == 0 {
		months = DefaultMonths
	}

	var all []models.GameRecord
	for i, month := range months {
		if ctx.Err() != nil {
			slog.Warn("season scrape interrupted", "season_year", seasonYear, "month", month)
			break
		}
		if i > 0 {
			select {
			case <-ctx.Done():
				return all
			case <-time.After(s.requestDelay):
			}
		}

		games, err := s.ScrapeMonth(ctx, s.MonthURL(seasonYear, month))
		if err != nil {
			slog.Warn("failed to scrape month, skipping", "season_year", seasonYear, "month", month, "error", err)
			continue
		}
		all = append(all, games...)
	}
	return all
}
