package pipeline

import (
	"time"

	"github.com/benchprophet/benchprophet/internal/pkg/models"
)

// HeadToHead is the symmetric win tally between two teams within one season.
// AWins + BWins == Total always holds.
type HeadToHead struct {
	AWins int
	BWins int
	Total int
}

// HeadToHeadTally counts the games teamA and teamB played against each other
// within season, attributing each win to whichever team scored higher
// regardless of which side it played that night.
//
// When asOf is non-zero, only games strictly before asOf count, giving true
// "history to date" semantics. The zero value counts the whole season — the
// behavior of the dataset this pipeline replaces, which leaks same-season
// future games into the feature. Callers choose via the head_to_head_as_of
// config switch; the default stays output-compatible.
func HeadToHeadTally(teamA, teamB, season string, asOf time.Time, history []models.GameRecord) HeadToHead {
	var h HeadToHead
	for _, g := range history {
		if g.Season != season {
			continue
		}
		if !asOf.IsZero() && (!g.HasDate() || !g.Date.Before(asOf)) {
			continue
		}
		pair := (g.VisitorTeam == teamA && g.HomeTeam == teamB) ||
			(g.VisitorTeam == teamB && g.HomeTeam == teamA)
		if !pair {
			continue
		}

		var aWon bool
		if g.VisitorTeam == teamA {
			aWon = g.VisitorPts > g.HomePts
		} else {
			aWon = g.HomePts > g.VisitorPts
		}
		if aWon {
			h.AWins++
		} else {
			h.BWins++
		}
	}
	h.Total = h.AWins + h.BWins
	return h
}
