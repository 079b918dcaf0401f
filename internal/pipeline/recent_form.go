package pipeline

import (
	"math"
	"sort"
	"time"

	"github.com/benchprophet/benchprophet/internal/pkg/models"
)

// DefaultFormWindow is how many recent games feed the form features.
const DefaultFormWindow = 5

// RecentForm is a team's win/loss tally over its last few games.
type RecentForm struct {
	Wins   int
	Losses int
	WinPct float64
}

// RecentFormFor computes a team's form as of a date: wins and losses over its
// last window games strictly before asOf, plus the win percentage rounded to
// one decimal. Same-date games never count; a team with no qualifying history
// gets zeros, which is a valid answer, not an error.
//
// Games whose points never parsed (0-0) still count, and the 0 > 0 comparison
// scores them as losses for the team being evaluated. That matches the source
// data this dataset has to stay compatible with.
func RecentFormFor(team string, asOf time.Time, window int, history []models.GameRecord) RecentForm {
	if window <= 0 {
		window = DefaultFormWindow
	}

	var prior []models.GameRecord
	for _, g := range history {
		if g.VisitorTeam != team && g.HomeTeam != team {
			continue
		}
		if !g.HasDate() || !g.Date.Before(asOf) {
			continue
		}
		prior = append(prior, g)
	}

	sort.SliceStable(prior, func(i, j int) bool {
		return prior[i].Date.After(prior[j].Date)
	})
	if len(prior) > window {
		prior = prior[:window]
	}

	var form RecentForm
	for _, g := range prior {
		var won bool
		if g.VisitorTeam == team {
			won = g.VisitorPts > g.HomePts
		} else {
			won = g.HomePts > g.VisitorPts
		}
		if won {
			form.Wins++
		} else {
			form.Losses++
		}
	}

	if total := form.Wins + form.Losses; total > 0 {
		pct := float64(form.Wins) / float64(total) * 100
		form.WinPct = math.Round(pct*10) / 10
	}
	return form
}
