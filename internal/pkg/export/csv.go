package export

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/benchprophet/benchprophet/internal/pkg/models"
)

// csvHeader is the column order of the final dataset files. It mirrors the
// field order of models.GameRecord.
var csvHeader = []string{
	"date",
	"season",
	"month",
	"visitor_team",
	"home_team",
	"visitor_pts",
	"home_pts",
	"recent_wins_home",
	"recent_losses_home",
	"recent_win_pct_home",
	"recent_wins_visitor",
	"recent_losses_visitor",
	"recent_win_pct_visitor",
	"matchup_wins_home",
	"matchup_wins_visitor",
	"total_matchups",
	"days_since_last_game_home",
	"days_since_last_game_visitor",
	"wins_before_game_home",
	"losses_before_game_home",
	"wins_before_game_visitor",
	"losses_before_game_visitor",
}

const dateLayout = "2006-01-02"

// Exporter writes one CSV file per season into a target directory.
type Exporter struct {
	dir    string
	logger *slog.Logger
}

func NewExporter(dir string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{dir: dir, logger: logger}
}

// SeasonFileName returns the dataset file name for a season label, e.g.
// "2023-2024" becomes "nba_2023_2024_final_data.csv".
func SeasonFileName(season string) string {
	parts := strings.Split(season, "-")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return fmt.Sprintf("nba_%s_final_data.csv", strings.Join(parts, "_"))
}

// WriteSeason writes the enriched games of one season to
// <dir>/nba_<start>_<end>_final_data.csv, overwriting any previous file.
// It returns the path of the written file.
func (e *Exporter) WriteSeason(season string, games []models.GameRecord) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	path := filepath.Join(e.dir, SeasonFileName(season))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for i := range games {
		if err := w.Write(gameToRow(&games[i])); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush %s: %w", path, err)
	}

	e.logger.Info("season exported", "season", season, "games", len(games), "path", path)
	return path, nil
}

func gameToRow(g *models.GameRecord) []string {
	date := ""
	if g.HasDate() {
		date = g.Date.Format(dateLayout)
	}
	return []string{
		date,
		g.Season,
		g.Month,
		g.VisitorTeam,
		g.HomeTeam,
		strconv.Itoa(g.VisitorPts),
		strconv.Itoa(g.HomePts),
		strconv.Itoa(g.RecentWinsHome),
		strconv.Itoa(g.RecentLossesHome),
		formatPct(g.RecentWinPctHome),
		strconv.Itoa(g.RecentWinsVisitor),
		strconv.Itoa(g.RecentLossesVisitor),
		formatPct(g.RecentWinPctVisitor),
		strconv.Itoa(g.MatchupWinsHome),
		strconv.Itoa(g.MatchupWinsVisitor),
		strconv.Itoa(g.TotalMatchups),
		intPtrString(g.DaysSinceLastHome),
		intPtrString(g.DaysSinceLastVisitor),
		intPtrString(g.WinsBeforeHome),
		intPtrString(g.LossesBeforeHome),
		intPtrString(g.WinsBeforeVisitor),
		intPtrString(g.LossesBeforeVisitor),
	}
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// intPtrString renders nil as an empty cell, matching how null derived
// values appear in the historical dataset.
func intPtrString(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

// ReadSeasonFile loads one exported dataset file back into memory. It is the
// inverse of WriteSeason and tolerates files with extra trailing columns.
func ReadSeasonFile(path string) ([]models.GameRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idx := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		idx[strings.TrimSpace(name)] = i
	}

	games := make([]models.GameRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := func(name string) string {
			i, ok := idx[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		var g models.GameRecord
		if v := cell("date"); v != "" {
			if d, err := time.Parse(dateLayout, v); err == nil {
				g.Date = d
			}
		}
		g.Season = cell("season")
		g.Month = cell("month")
		g.VisitorTeam = cell("visitor_team")
		g.HomeTeam = cell("home_team")
		g.VisitorPts = atoiOrZero(cell("visitor_pts"))
		g.HomePts = atoiOrZero(cell("home_pts"))
		g.RecentWinsHome = atoiOrZero(cell("recent_wins_home"))
		g.RecentLossesHome = atoiOrZero(cell("recent_losses_home"))
		g.RecentWinPctHome = atofOrZero(cell("recent_win_pct_home"))
		g.RecentWinsVisitor = atoiOrZero(cell("recent_wins_visitor"))
		g.RecentLossesVisitor = atoiOrZero(cell("recent_losses_visitor"))
		g.RecentWinPctVisitor = atofOrZero(cell("recent_win_pct_visitor"))
		g.MatchupWinsHome = atoiOrZero(cell("matchup_wins_home"))
		g.MatchupWinsVisitor = atoiOrZero(cell("matchup_wins_visitor"))
		g.TotalMatchups = atoiOrZero(cell("total_matchups"))
		g.DaysSinceLastHome = parseIntPtr(cell("days_since_last_game_home"))
		g.DaysSinceLastVisitor = parseIntPtr(cell("days_since_last_game_visitor"))
		g.WinsBeforeHome = parseIntPtr(cell("wins_before_game_home"))
		g.LossesBeforeHome = parseIntPtr(cell("losses_before_game_home"))
		g.WinsBeforeVisitor = parseIntPtr(cell("wins_before_game_visitor"))
		g.LossesBeforeVisitor = parseIntPtr(cell("losses_before_game_visitor"))
		games = append(games, g)
	}
	return games, nil
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func atofOrZero(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseIntPtr(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
