package pipeline

import (
	"github.com/benchprophet/benchprophet/internal/pkg/models"
)

// teamRecord is one team's cumulative win/loss state.
type teamRecord struct {
	wins   int
	losses int
}

// RunningRecords is a single forward pass that annotates every game with both
// teams' records entering that game, then updates the winner's and loser's
// counters. Unseen teams start at 0-0. State is a fresh map per call.
//
// Rows missing a date, either team, or either point total pass through
// unannotated and do not mutate state: an unparsed score must not corrupt a
// team's record for the rest of the run. Input is re-sorted chronologically
// before the pass.
func RunningRecords(games []models.GameRecord) []models.GameRecord {
	ordered := sortByDate(games)
	records := make(map[string]teamRecord)

	out := make([]models.GameRecord, 0, len(ordered))
	for _, g := range ordered {
		if !g.HasDate() || !g.HasTeams() || !g.HasPoints() {
			g.WinsBeforeHome, g.LossesBeforeHome = nil, nil
			g.WinsBeforeVisitor, g.LossesBeforeVisitor = nil, nil
			out = append(out, g)
			continue
		}

		home := records[g.HomeTeam]
		visitor := records[g.VisitorTeam]
		g.WinsBeforeHome = intPtr(home.wins)
		g.LossesBeforeHome = intPtr(home.losses)
		g.WinsBeforeVisitor = intPtr(visitor.wins)
		g.LossesBeforeVisitor = intPtr(visitor.losses)
		out = append(out, g)

		if g.VisitorPts > g.HomePts {
			visitor.wins++
			home.losses++
		} else {
			visitor.losses++
			home.wins++
		}
		records[g.VisitorTeam] = visitor
		records[g.HomeTeam] = home
	}
	return out
}

func intPtr(v int) *int {
	return &v
}
