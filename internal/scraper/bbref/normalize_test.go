package bbref

import (
	"testing"
	"time"
)

var scheduleHeaders = []string{
	"Date", "Start (ET)", "Visitor/Neutral", "PTS", "Home/Neutral", "PTS",
	"LOG", "Arena", "Attend.", "Notes",
}

func scheduleRow(date, visitor, vpts, home, hpts string) []CellValue {
	return []CellValue{
		{Text: date},
		{Text: "7:30p"},
		{Text: visitor, LinkTitle: visitor},
		{Text: vpts},
		{Text: home, LinkTitle: home},
		{Text: hpts},
		{Text: "Box Score"},
		{Text: "TD Garden"},
		{Text: "19,156"},
		{Text: ""},
	}
}

func TestNormalizeRow(t *testing.T) {
	n := NewNormalizer(nil)

	g, ok := n.NormalizeRow(scheduleHeaders,
		scheduleRow("Tue Oct 24 2023", "Los Angeles Lakers", "107", "Boston Celtics", "119"),
		"2023-2024", "october")
	if !ok {
		t.Fatal("expected a usable record")
	}
	if g.VisitorTeam != "Los Angeles Lakers" || g.HomeTeam != "Boston Celtics" {
		t.Errorf("teams = %q / %q", g.VisitorTeam, g.HomeTeam)
	}
	if g.VisitorPts != 107 || g.HomePts != 119 {
		t.Errorf("points = %d / %d, want 107 / 119", g.VisitorPts, g.HomePts)
	}
	if !g.Date.Equal(time.Date(2023, 10, 24, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v", g.Date)
	}
	if g.Season != "2023-2024" || g.Month != "october" {
		t.Errorf("season/month = %q / %q", g.Season, g.Month)
	}
}

func TestNormalizeRowPtsOrderSurvivesColumnFiltering(t *testing.T) {
	// The drop set removes columns between and around the PTS pair; the
	// first remaining PTS must still be the visitor's score.
	n := NewNormalizer([]string{"Start (ET)", "LOG", "Arena", "Attend.", "Notes"})
	g, ok := n.NormalizeRow(scheduleHeaders,
		scheduleRow("Wed Jan 3 2024", "Denver Nuggets", "99", "Miami Heat", "103"),
		"2023-2024", "january")
	if !ok {
		t.Fatal("expected a usable record")
	}
	if g.VisitorPts != 99 || g.HomePts != 103 {
		t.Errorf("points = %d / %d, want 99 / 103", g.VisitorPts, g.HomePts)
	}
}

func TestNormalizeRowLinkTitleWinsOverText(t *testing.T) {
	n := NewNormalizer(nil)
	row := scheduleRow("Tue Oct 24 2023", "LAL", "107", "BOS", "119")
	row[2].LinkTitle = "Los Angeles Lakers"
	row[4].LinkTitle = "Boston Celtics"
	g, ok := n.NormalizeRow(scheduleHeaders, row, "2023-2024", "october")
	if !ok {
		t.Fatal("expected a usable record")
	}
	if g.VisitorTeam != "Los Angeles Lakers" || g.HomeTeam != "Boston Celtics" {
		t.Errorf("teams = %q / %q, want full names from link titles", g.VisitorTeam, g.HomeTeam)
	}
}

func TestNormalizeRowShortRowIsPadded(t *testing.T) {
	n := NewNormalizer(nil)
	// A scheduled-but-unplayed game row often lacks trailing cells.
	row := scheduleRow("Sat Apr 13 2024", "Utah Jazz", "", "Phoenix Suns", "")[:6]
	g, ok := n.NormalizeRow(scheduleHeaders, row, "2023-2024", "april")
	if !ok {
		t.Fatal("short rows should be padded, not dropped")
	}
	if g.VisitorPts != 0 || g.HomePts != 0 {
		t.Errorf("unplayed game points = %d / %d, want 0 / 0", g.VisitorPts, g.HomePts)
	}
}

func TestNormalizeRowDropsUnusableRows(t *testing.T) {
	n := NewNormalizer(nil)

	if _, ok := n.NormalizeRow(scheduleHeaders, make([]CellValue, len(scheduleHeaders)), "2023-2024", "october"); ok {
		t.Error("entirely blank row must be discarded")
	}
	if _, ok := n.NormalizeRow(scheduleHeaders,
		scheduleRow("Tue Oct 24 2023", "", "107", "Boston Celtics", "119"), "2023-2024", "october"); ok {
		t.Error("row missing a team must be discarded")
	}
	if _, ok := n.NormalizeRow(scheduleHeaders,
		scheduleRow("sometime soon", "Los Angeles Lakers", "107", "Boston Celtics", "119"), "2023-2024", "october"); ok {
		t.Error("row with unparseable date must be discarded")
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct{ in, want string }{
		{"19,156", "19156"},
		{"Denver Nuggets*", "Denver Nuggets"},
		{"  x  ", "x"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cleanCell(tt.in); got != tt.want {
			t.Errorf("cleanCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
