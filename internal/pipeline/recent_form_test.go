package pipeline

import (
	"testing"
	"time"

	"github.com/benchprophet/benchprophet/internal/pkg/models"
)

func date(s string) time.Time {
	t, err := models.ParseGameDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func game(day, visitor string, vpts int, home string, hpts int) models.GameRecord {
	return models.GameRecord{
		Date:        date(day),
		Season:      "2023-2024",
		VisitorTeam: visitor,
		VisitorPts:  vpts,
		HomeTeam:    home,
		HomePts:     hpts,
	}
}

func TestRecentFormForCountsWinsAndLosses(t *testing.T) {
	history := []models.GameRecord{
		game("2024-01-01", "Los Angeles Lakers", 100, "Boston Celtics", 110), // loss
		game("2024-01-03", "Los Angeles Lakers", 105, "Denver Nuggets", 95),  // win
		game("2024-01-05", "Miami Heat", 90, "Los Angeles Lakers", 101),      // win
	}

	form := RecentFormFor("Los Angeles Lakers", date("2024-01-10"), 5, history)
	if form.Wins != 2 || form.Losses != 1 {
		t.Errorf("form = %d-%d, want 2-1", form.Wins, form.Losses)
	}
	if form.WinPct != 66.7 {
		t.Errorf("win pct = %v, want 66.7", form.WinPct)
	}
}

func TestRecentFormForNeverLooksAhead(t *testing.T) {
	history := []models.GameRecord{
		game("2024-01-01", "Los Angeles Lakers", 110, "Boston Celtics", 100),
		game("2024-01-05", "Los Angeles Lakers", 110, "Boston Celtics", 100), // same date as asOf
		game("2024-01-09", "Los Angeles Lakers", 110, "Boston Celtics", 100), // future
	}

	form := RecentFormFor("Los Angeles Lakers", date("2024-01-05"), 5, history)
	if form.Wins+form.Losses != 1 {
		t.Errorf("counted %d games, want 1: same-date and future games must be excluded",
			form.Wins+form.Losses)
	}
}

func TestRecentFormForWindowTakesMostRecent(t *testing.T) {
	var history []models.GameRecord
	// Six wins then two losses, most recent last.
	days := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06"}
	for _, d := range days {
		history = append(history, game(d, "Utah Jazz", 120, "Denver Nuggets", 100))
	}
	history = append(history,
		game("2024-01-07", "Utah Jazz", 90, "Denver Nuggets", 100),
		game("2024-01-08", "Utah Jazz", 91, "Denver Nuggets", 100),
	)

	form := RecentFormFor("Utah Jazz", date("2024-01-20"), 5, history)
	if form.Wins != 3 || form.Losses != 2 {
		t.Errorf("form = %d-%d, want 3-2 over the last five games", form.Wins, form.Losses)
	}
}

func TestRecentFormForShortHistoryIsNotAnError(t *testing.T) {
	history := []models.GameRecord{
		game("2024-01-01", "Utah Jazz", 120, "Denver Nuggets", 100),
	}
	form := RecentFormFor("Utah Jazz", date("2024-01-10"), 5, history)
	if form.Wins != 1 || form.Losses != 0 || form.WinPct != 100.0 {
		t.Errorf("form = %+v, want 1-0 at 100.0", form)
	}
}

func TestRecentFormForNoHistoryReturnsZeros(t *testing.T) {
	form := RecentFormFor("Utah Jazz", date("2024-01-10"), 5, nil)
	if form.Wins != 0 || form.Losses != 0 || form.WinPct != 0.0 {
		t.Errorf("form = %+v, want zeros", form)
	}
}

func TestRecentFormForUnparsedGameCountsAsLoss(t *testing.T) {
	// 0-0 is the unparsed sentinel; the 0 > 0 comparison scores it as a
	// loss for whichever team is being evaluated.
	history := []models.GameRecord{
		game("2024-01-01", "Utah Jazz", 0, "Denver Nuggets", 0),
	}
	for _, team := range []string{"Utah Jazz", "Denver Nuggets"} {
		form := RecentFormFor(team, date("2024-01-10"), 5, history)
		if form.Wins != 0 || form.Losses != 1 {
			t.Errorf("%s form = %d-%d, want 0-1", team, form.Wins, form.Losses)
		}
	}
}
