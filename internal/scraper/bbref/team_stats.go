package bbref

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// TeamStats is the season summary scraped from a team page.
type TeamStats struct {
	Team            string `json:"team"`
	Season          string `json:"season"`
	Record          string `json:"record"`
	OffensiveRating string `json:"offensive_rating"`
	DefensiveRating string `json:"defensive_rating"`
}

var recordRe = regexp.MustCompile(`Record:\s+(\d+-\d+)`)

// TeamStatsClient fetches team season pages, caching results per run so a
// team/season pair is never fetched twice.
type TeamStatsClient struct {
	client  *Client
	baseURL string
	delay   time.Duration

	mu    sync.Mutex
	cache map[string]*TeamStats
}

// NewTeamStatsClient builds a team page scraper sharing the page fetcher with
// the schedule scraper.
func NewTeamStatsClient(client *Client, baseURL string, delay time.Duration) *TeamStatsClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if delay <= 0 {
		delay = time.Second
	}
	return &TeamStatsClient{
		client:  client,
		baseURL: baseURL,
		delay:   delay,
		cache:   make(map[string]*TeamStats),
	}
}

// TeamSeasonStats fetches the stats summary for one team and season.
// pageAbbr is the basketball-reference team code (e.g. BRK); season is the
// pipeline label ("2023-2024"), converted to the site's short form here.
func (c *TeamStatsClient) TeamSeasonStats(ctx context.Context, pageAbbr, season string) (*TeamStats, error) {
	cacheKey := pageAbbr + "_" + season
	c.mu.Lock()
	if cached, ok := c.cache[cacheKey]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	// 2023-2024 -> 2023-24
	seasonShort := strings.Replace(season, "-20", "-", 1)
	url := fmt.Sprintf("%s/teams/%s/%s.html", c.baseURL, pageAbbr, seasonShort)

	slog.Info("fetching team stats page", "url", url)
	html, err := c.client.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}

	stats, err := parseTeamPage(html)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}
	stats.Team = pageAbbr
	stats.Season = season

	c.mu.Lock()
	c.cache[cacheKey] = stats
	c.mu.Unlock()

	// Small pause to be polite to the source.
	select {
	case <-ctx.Done():
	case <-time.After(c.delay):
	}

	return stats, nil
}

func parseTeamPage(html string) (*TeamStats, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	stats := &TeamStats{}

	summary := doc.Find(`div[data-template="Partials/Teams/Summary"]`).First()
	if summary.Length() > 0 {
		if m := recordRe.FindStringSubmatch(summary.Text()); m != nil {
			stats.Record = m[1]
		}
	}

	doc.Find("div#all_team_and_opponent table tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("th, td")
		if cells.Length() <= 8 {
			return
		}
		label := strings.TrimSpace(cells.First().Text())
		rating := strings.TrimSpace(cells.Eq(8).Text())
		switch label {
		case "Team":
			stats.OffensiveRating = rating
		case "Opponent":
			stats.DefensiveRating = rating
		}
	})

	if stats.Record == "" && stats.OffensiveRating == "" && stats.DefensiveRating == "" {
		return nil, fmt.Errorf("no team summary found on page")
	}
	return stats, nil
}
