package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/benchprophet/benchprophet/internal/pkg/models"
)

// ErrNoData is returned when every season/month unit failed to produce rows.
// Per-unit failures are recovered with a warning; this is the only condition
// that propagates to the caller.
var ErrNoData = errors.New("no usable games scraped for any season")

// SeasonSource yields the normalized games of one season. *bbref.Scraper is
// the production implementation.
type SeasonSource interface {
	ScrapeSeason(ctx context.Context, seasonYear int, months []string) []models.GameRecord
}

// SeasonResult is one season's final enriched dataset, chronologically
// ordered.
type SeasonResult struct {
	SeasonYear int
	Season     string
	Games      []models.GameRecord
}

// Pipeline composes ingestion, the enhancement pass, and the two sequential
// annotation passes over one or more seasons. All per-team state lives inside
// the individual passes and is rebuilt per call; a Pipeline itself is
// stateless across runs.
type Pipeline struct {
	source   SeasonSource
	enhancer *Enhancer
}

func New(source SeasonSource, enhancer *Enhancer) *Pipeline {
	if enhancer == nil {
		enhancer = &Enhancer{}
	}
	return &Pipeline{source: source, enhancer: enhancer}
}

// Run scrapes each season, accumulates the running history, and derives the
// feature set for every game. Seasons that yield nothing are logged and
// skipped; only a fully empty run is an error.
func (p *Pipeline) Run(ctx context.Context, seasonYears []int, months []string) ([]SeasonResult, error) {
	var (
		history []models.GameRecord
		results []SeasonResult
		total   int
	)

	for _, year := range seasonYears {
		label := fmt.Sprintf("%d-%d", year-1, year)
		slog.Info("processing season", "season", label)

		games := p.source.ScrapeSeason(ctx, year, months)
		if len(games) == 0 {
			slog.Warn("no usable games for season, skipping", "season", label)
			continue
		}
		total += len(games)

		// History accumulates across seasons so early-season form can
		// see the previous season's tail. Head-to-head stays within a
		// season via its own season filter.
		history = append(history, games...)

		enriched := p.EnrichSeason(games, history)
		results = append(results, SeasonResult{SeasonYear: year, Season: label, Games: enriched})
		slog.Info("season enriched", "season", label, "games", len(enriched))
	}

	if total == 0 {
		return nil, ErrNoData
	}
	return results, nil
}

// EnrichSeason derives every feature for one season's games: the enhancement
// pass against the accumulated history, the rest-days pass, a left-merge of
// the rest-day output back onto the enhanced set by natural key, and the
// running-record pass over the merged result.
func (p *Pipeline) EnrichSeason(games, history []models.GameRecord) []models.GameRecord {
	enhanced := p.enhancer.Enhance(games, history)
	withDays := RestDays(enhanced)
	merged := mergeRestDays(enhanced, withDays)
	return RunningRecords(merged)
}

// mergeRestDays left-merges rest-day annotations onto base by
// (date, home team, visitor team). Base rows without a match keep nil rest
// days.
func mergeRestDays(base, annotated []models.GameRecord) []models.GameRecord {
	type restDays struct {
		home, visitor *int
	}
	byKey := make(map[string]restDays, len(annotated))
	for _, g := range annotated {
		byKey[g.Key()] = restDays{home: g.DaysSinceLastHome, visitor: g.DaysSinceLastVisitor}
	}

	out := make([]models.GameRecord, 0, len(base))
	for _, g := range base {
		if rd, ok := byKey[g.Key()]; ok {
			g.DaysSinceLastHome = rd.home
			g.DaysSinceLastVisitor = rd.visitor
		}
		out = append(out, g)
	}
	return out
}
