package pipeline

import (
	"testing"

	"github.com/benchprophet/benchprophet/internal/pkg/models"
)

func TestRunningRecordsPreGameCounts(t *testing.T) {
	games := []models.GameRecord{
		game("2024-01-01", "Utah Jazz", 120, "Boston Celtics", 100), // Jazz win
		game("2024-01-03", "Utah Jazz", 90, "Boston Celtics", 100),  // Celtics win
		game("2024-01-05", "Boston Celtics", 99, "Utah Jazz", 98),   // Celtics win (away)
	}

	out := RunningRecords(games)

	// First game: everyone enters at 0-0.
	for _, p := range []*int{out[0].WinsBeforeHome, out[0].LossesBeforeHome, out[0].WinsBeforeVisitor, out[0].LossesBeforeVisitor} {
		if p == nil || *p != 0 {
			t.Fatalf("first game pre-game record should be 0, got %v", p)
		}
	}

	// Second game: Jazz 1-0 visiting, Celtics 0-1 at home.
	if *out[1].WinsBeforeVisitor != 1 || *out[1].LossesBeforeVisitor != 0 {
		t.Errorf("visitor record = %d-%d, want 1-0", *out[1].WinsBeforeVisitor, *out[1].LossesBeforeVisitor)
	}
	if *out[1].WinsBeforeHome != 0 || *out[1].LossesBeforeHome != 1 {
		t.Errorf("home record = %d-%d, want 0-1", *out[1].WinsBeforeHome, *out[1].LossesBeforeHome)
	}

	// Third game: Celtics visit at 1-1, Jazz host at 1-1.
	if *out[2].WinsBeforeVisitor != 1 || *out[2].LossesBeforeVisitor != 1 {
		t.Errorf("visitor record = %d-%d, want 1-1", *out[2].WinsBeforeVisitor, *out[2].LossesBeforeVisitor)
	}
	if *out[2].WinsBeforeHome != 1 || *out[2].LossesBeforeHome != 1 {
		t.Errorf("home record = %d-%d, want 1-1", *out[2].WinsBeforeHome, *out[2].LossesBeforeHome)
	}
}

func TestRunningRecordsMonotonicity(t *testing.T) {
	days := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06"}
	var games []models.GameRecord
	for i, d := range days {
		// Alternate wins and losses for the Jazz.
		if i%2 == 0 {
			games = append(games, game(d, "Utah Jazz", 120, "Boston Celtics", 100))
		} else {
			games = append(games, game(d, "Utah Jazz", 90, "Boston Celtics", 100))
		}
	}

	out := RunningRecords(games)
	prevWins, prevLosses := -1, -1
	for i, g := range out {
		w, l := *g.WinsBeforeVisitor, *g.LossesBeforeVisitor
		if w < prevWins || l < prevLosses {
			t.Fatalf("game %d: record %d-%d regressed from %d-%d", i, w, l, prevWins, prevLosses)
		}
		if i > 0 && (w+l)-(prevWins+prevLosses) != 1 {
			t.Fatalf("game %d: exactly one component must increase per played game", i)
		}
		prevWins, prevLosses = w, l
	}
}

func TestRunningRecordsSkipsRowsWithMissingPoints(t *testing.T) {
	games := []models.GameRecord{
		game("2024-01-01", "Utah Jazz", 120, "Boston Celtics", 100),
		game("2024-01-03", "Utah Jazz", 0, "Boston Celtics", 0), // unparsed
		game("2024-01-05", "Utah Jazz", 110, "Boston Celtics", 100),
	}

	out := RunningRecords(games)

	if out[1].WinsBeforeVisitor != nil {
		t.Error("row with unparsed points must pass through unannotated")
	}
	// The unparsed game must not have mutated state: the Jazz enter the
	// third game at 1-0, not 1-1 or 2-0.
	if *out[2].WinsBeforeVisitor != 1 || *out[2].LossesBeforeVisitor != 0 {
		t.Errorf("visitor record = %d-%d, want 1-0", *out[2].WinsBeforeVisitor, *out[2].LossesBeforeVisitor)
	}
}

func TestRunningRecordsFreshStatePerCall(t *testing.T) {
	games := []models.GameRecord{
		game("2024-01-01", "Utah Jazz", 120, "Boston Celtics", 100),
	}
	RunningRecords(games)
	out := RunningRecords(games)
	if *out[0].WinsBeforeVisitor != 0 {
		t.Error("state must not leak between calls")
	}
}
