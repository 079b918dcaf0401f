package models

import (
	"strings"
	"time"
)

// GameKey builds the natural key (date, home team, visitor team) used to join
// per-pass outputs back onto the enhanced dataset and as the storage key.
//
// Team names are expected to be canonical by the time a key is built, but the
// key still normalizes case and whitespace so that a consumer-side uppercase
// variant maps to the same game. Format: date|home|visitor.
func GameKey(date time.Time, homeTeam, visitorTeam string) string {
	ds := "unknown-date"
	if !date.IsZero() {
		ds = date.Format("2006-01-02")
	}
	return ds + "|" + normalizeKeyPart(homeTeam) + "|" + normalizeKeyPart(visitorTeam)
}

// Key returns the game's natural key.
func (g *GameRecord) Key() string {
	return GameKey(g.Date, g.HomeTeam, g.VisitorTeam)
}

func normalizeKeyPart(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "|", " ")
	return strings.Join(strings.Fields(s), " ")
}
