package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/benchprophet/benchprophet/internal/pkg/models"
)

func TestSeasonFileName(t *testing.T) {
	tests := []struct {
		season string
		want   string
	}{
		{"2023-2024", "nba_2023_2024_final_data.csv"},
		{"2019-2020", "nba_2019_2020_final_data.csv"},
		{"2023 - 2024", "nba_2023_2024_final_data.csv"},
	}
	for _, tt := range tests {
		if got := SeasonFileName(tt.season); got != tt.want {
			t.Errorf("SeasonFileName(%q) = %q, want %q", tt.season, got, tt.want)
		}
	}
}

func TestWriteAndReadSeason(t *testing.T) {
	dir := t.TempDir()
	rest := 3
	games := []models.GameRecord{
		{
			Date:              time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			Season:            "2023-2024",
			Month:             "january",
			VisitorTeam:       "Los Angeles Lakers",
			HomeTeam:          "Boston Celtics",
			VisitorPts:        98,
			HomePts:           111,
			RecentWinsHome:    3,
			RecentLossesHome:  2,
			RecentWinPctHome:  60.0,
			MatchupWinsHome:   2,
			TotalMatchups:     3,
			DaysSinceLastHome: &rest,
		},
		{
			Date:        time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
			Season:      "2023-2024",
			Month:       "january",
			VisitorTeam: "Miami Heat",
			HomeTeam:    "Chicago Bulls",
			VisitorPts:  100,
			HomePts:     99,
		},
	}

	e := NewExporter(dir, nil)
	path, err := e.WriteSeason("2023-2024", games)
	if err != nil {
		t.Fatalf("WriteSeason: %v", err)
	}
	if filepath.Base(path) != "nba_2023_2024_final_data.csv" {
		t.Errorf("file name = %s", filepath.Base(path))
	}

	back, err := ReadSeasonFile(path)
	if err != nil {
		t.Fatalf("ReadSeasonFile: %v", err)
	}
	if len(back) != 2 {
		t.Fatalf("got %d games back, want 2", len(back))
	}

	g := back[0]
	if !g.Date.Equal(games[0].Date) || g.HomeTeam != "Boston Celtics" || g.HomePts != 111 {
		t.Errorf("round trip mangled the game: %+v", g)
	}
	if g.RecentWinPctHome != 60.0 {
		t.Errorf("recent win pct = %v, want 60.0", g.RecentWinPctHome)
	}
	if g.DaysSinceLastHome == nil || *g.DaysSinceLastHome != 3 {
		t.Errorf("rest days = %v, want 3", g.DaysSinceLastHome)
	}
	if g.DaysSinceLastVisitor != nil {
		t.Error("empty cell must come back as nil")
	}
	if back[1].WinsBeforeHome != nil {
		t.Error("second game nil fields must survive the round trip")
	}
}

func TestWriteSeasonHeaderAndNulls(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, nil)
	path, err := e.WriteSeason("2023-2024", []models.GameRecord{
		{Season: "2023-2024", HomeTeam: "Boston Celtics", VisitorTeam: "Utah Jazz"},
	})
	if err != nil {
		t.Fatalf("WriteSeason: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1 row", len(lines))
	}
	if !strings.HasPrefix(lines[0], "date,season,month,visitor_team,home_team") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	// Nil derived fields become trailing empty cells.
	if !strings.HasSuffix(lines[1], ",,,,,") {
		t.Errorf("nil fields should serialize to empty cells: %s", lines[1])
	}
}

func TestReadSeasonFileMissing(t *testing.T) {
	if _, err := ReadSeasonFile(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
