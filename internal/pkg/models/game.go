package models

import (
	"time"
)

// GameRecord is one NBA game as scraped from a month schedule page, plus the
// derived features filled in by the pipeline passes.
//
// VisitorPts/HomePts use 0 as the "could not parse" sentinel: a real NBA team
// never scores zero, so 0 always means the source cell was missing or
// malformed. Both cases are logged the same way at parse time.
type GameRecord struct {
	Date        time.Time `json:"date"`
	Season      string    `json:"season"`
	Month       string    `json:"month"`
	VisitorTeam string    `json:"visitor_team"`
	HomeTeam    string    `json:"home_team"`
	VisitorPts  int       `json:"visitor_pts"`
	HomePts     int       `json:"home_pts"`

	// Enhancement pass: recent form over the last 5 games strictly before
	// Date, and head-to-head tallies for the pair within Season.
	RecentWinsHome      int     `json:"recent_wins_home"`
	RecentLossesHome    int     `json:"recent_losses_home"`
	RecentWinPctHome    float64 `json:"recent_win_pct_home"`
	RecentWinsVisitor   int     `json:"recent_wins_visitor"`
	RecentLossesVisitor int     `json:"recent_losses_visitor"`
	RecentWinPctVisitor float64 `json:"recent_win_pct_visitor"`
	MatchupWinsHome     int     `json:"matchup_wins_home"`
	MatchupWinsVisitor  int     `json:"matchup_wins_visitor"`
	TotalMatchups       int     `json:"total_matchups"`

	// Sequential passes. Nil means the value is undefined for this row
	// (first appearance of the team, or an unusable row that was passed
	// through without annotation).
	DaysSinceLastHome    *int `json:"days_since_last_game_home"`
	DaysSinceLastVisitor *int `json:"days_since_last_game_visitor"`
	WinsBeforeHome       *int `json:"wins_before_game_home"`
	LossesBeforeHome     *int `json:"losses_before_game_home"`
	WinsBeforeVisitor    *int `json:"wins_before_game_visitor"`
	LossesBeforeVisitor  *int `json:"losses_before_game_visitor"`
}

// HasDate reports whether the game has a parsed calendar date.
func (g *GameRecord) HasDate() bool {
	return !g.Date.IsZero()
}

// HasTeams reports whether both team identities are present.
func (g *GameRecord) HasTeams() bool {
	return g.VisitorTeam != "" && g.HomeTeam != ""
}

// HasPoints reports whether both point totals parsed to something real.
func (g *GameRecord) HasPoints() bool {
	return g.VisitorPts > 0 && g.HomePts > 0
}

// HomeWon reports whether the home team is scored as the winner. Ties cannot
// happen in this sport, so visitor-not-higher means a home win; this also
// matches how unparsed 0-0 games are attributed by the source data.
func (g *GameRecord) HomeWon() bool {
	return g.HomePts >= g.VisitorPts
}
