package pipeline

import (
	"sort"
	"time"

	"github.com/benchprophet/benchprophet/internal/pkg/models"
)

// sortByDate orders games chronologically (stable, so same-day games keep
// their source order). The sequential passes depend on this ordering; the
// system this replaces trusted the input order instead, which silently broke
// whenever months were ingested out of sequence.
func sortByDate(games []models.GameRecord) []models.GameRecord {
	out := make([]models.GameRecord, len(games))
	copy(out, games)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// RestDays is a single forward pass that annotates every game with how many
// days each participant has rested since its previous game. State is a fresh
// team -> last-played-date map per call, read for both sides before it is
// updated for the current game.
//
// A team's first appearance gets a nil rest-day value. Rows missing a date or
// either team pass through unannotated and leave the state untouched. Input
// is re-sorted chronologically before the pass.
func RestDays(games []models.GameRecord) []models.GameRecord {
	ordered := sortByDate(games)
	lastPlayed := make(map[string]time.Time)

	out := make([]models.GameRecord, 0, len(ordered))
	for _, g := range ordered {
		if !g.HasDate() || !g.HasTeams() {
			g.DaysSinceLastVisitor = nil
			g.DaysSinceLastHome = nil
			out = append(out, g)
			continue
		}

		if last, ok := lastPlayed[g.VisitorTeam]; ok {
			days := daysBetween(last, g.Date)
			g.DaysSinceLastVisitor = &days
		} else {
			g.DaysSinceLastVisitor = nil
		}
		if last, ok := lastPlayed[g.HomeTeam]; ok {
			days := daysBetween(last, g.Date)
			g.DaysSinceLastHome = &days
		} else {
			g.DaysSinceLastHome = nil
		}
		out = append(out, g)

		lastPlayed[g.VisitorTeam] = g.Date
		lastPlayed[g.HomeTeam] = g.Date
	}
	return out
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
