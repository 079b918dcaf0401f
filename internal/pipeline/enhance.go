package pipeline

import (
	"log/slog"
	"time"

	"github.com/benchprophet/benchprophet/internal/pkg/models"
)

// Enhancer runs the per-record enhancement pass: recent form for both sides
// and the head-to-head tally for the pair, computed against the accumulated
// history. It holds no per-run state, so enhancing twice yields identical
// output; existing derived values are always recomputed from scratch.
type Enhancer struct {
	// FormWindow is the recent-form lookback, DefaultFormWindow when zero.
	FormWindow int
	// HeadToHeadAsOf restricts head-to-head tallies to games strictly
	// before each record's date instead of the full season.
	HeadToHeadAsOf bool
}

// Enhance returns a copy of games with the enhancement features filled in.
// history must contain every accumulated record, including the games
// themselves; each game's own date bounds what counts as "recent".
func (e *Enhancer) Enhance(games, history []models.GameRecord) []models.GameRecord {
	out := make([]models.GameRecord, 0, len(games))
	for _, g := range games {
		if !g.HasTeams() || !g.HasDate() {
			// Normalization should have dropped these already.
			slog.Warn("skipping enhancement for incomplete record",
				"date", g.Date, "visitor", g.VisitorTeam, "home", g.HomeTeam)
			out = append(out, g)
			continue
		}
		if !g.HasPoints() {
			slog.Warn("zero points detected for game",
				"date", g.Date.Format("2006-01-02"), "visitor", g.VisitorTeam, "home", g.HomeTeam)
		}

		visitorForm := RecentFormFor(g.VisitorTeam, g.Date, e.FormWindow, history)
		homeForm := RecentFormFor(g.HomeTeam, g.Date, e.FormWindow, history)

		var asOf time.Time
		if e.HeadToHeadAsOf {
			asOf = g.Date
		}
		h2h := HeadToHeadTally(g.HomeTeam, g.VisitorTeam, g.Season, asOf, history)

		g.RecentWinsHome = homeForm.Wins
		g.RecentLossesHome = homeForm.Losses
		g.RecentWinPctHome = homeForm.WinPct
		g.RecentWinsVisitor = visitorForm.Wins
		g.RecentLossesVisitor = visitorForm.Losses
		g.RecentWinPctVisitor = visitorForm.WinPct
		g.MatchupWinsHome = h2h.AWins
		g.MatchupWinsVisitor = h2h.BWins
		g.TotalMatchups = h2h.Total
		out = append(out, g)
	}
	return out
}
