package bbref

import (
	"log/slog"
	"strings"

	"github.com/benchprophet/benchprophet/internal/pkg/models"
	"github.com/benchprophet/benchprophet/internal/pkg/teams"
)

// CellValue is the content of one table cell: its visible text plus the title
// attribute of a hyperlink inside it, when present. The title is usually the
// authoritative full team name, so it wins over the link text.
type CellValue struct {
	Text      string
	LinkTitle string
}

// defaultDropColumns are schedule-table columns that carry no signal for the
// pipeline. Header names must match the source exactly.
var defaultDropColumns = []string{"LOG", "Arena", "Start (ET)", "Attend.", "Notes"}

// Normalizer turns one scraped schedule row into a typed GameRecord.
type Normalizer struct {
	dropColumns map[string]bool
}

// NewNormalizer builds a normalizer that discards the given columns by header
// name. A nil slice selects the default drop set.
func NewNormalizer(dropColumns []string) *Normalizer {
	if dropColumns == nil {
		dropColumns = defaultDropColumns
	}
	drop := make(map[string]bool, len(dropColumns))
	for _, h := range dropColumns {
		drop[h] = true
	}
	return &Normalizer{dropColumns: drop}
}

// cleanCell strips thousands separators and trailing markers from a cell.
func cleanCell(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "*", "")
	return strings.TrimSpace(s)
}

// NormalizeRow assembles a GameRecord from one row of (header, cell) pairs.
// Rows shorter than the header list are padded with empty cells so column
// alignment survives. Returns ok=false for rows that are entirely blank or
// missing a required field (date or either team identity); such rows are
// dropped from structured output with a logged warning, never a hard error.
//
// The two PTS columns are positional: the first is the visitor's score, the
// second is the home team's. That ordering is a structural assumption of the
// source table and is resolved against the filtered header list, so dropping
// columns cannot shift it.
func (n *Normalizer) NormalizeRow(headers []string, cells []CellValue, season, month string) (models.GameRecord, bool) {
	values := make([]string, 0, len(headers))
	kept := make([]string, 0, len(headers))
	for i, h := range headers {
		if n.dropColumns[h] {
			continue
		}
		var v string
		if i < len(cells) {
			if t := strings.TrimSpace(cells[i].LinkTitle); t != "" {
				v = t
			} else {
				v = cleanCell(cells[i].Text)
			}
		}
		kept = append(kept, h)
		values = append(values, v)
	}

	blank := true
	for _, v := range values {
		if v != "" {
			blank = false
			break
		}
	}
	if blank {
		return models.GameRecord{}, false
	}

	g := models.GameRecord{Season: season, Month: month}
	var dateText string
	ptsSeen := 0
	for i, h := range kept {
		switch {
		case h == "Date":
			dateText = values[i]
		case strings.Contains(h, "Visitor"):
			g.VisitorTeam = canonicalTeam(values[i])
		case strings.Contains(h, "Home"):
			g.HomeTeam = canonicalTeam(values[i])
		case h == "PTS":
			if ptsSeen == 0 {
				g.VisitorPts = ResolvePoints(values[i])
			} else if ptsSeen == 1 {
				g.HomePts = ResolvePoints(values[i])
			}
			ptsSeen++
		}
	}

	if dateText == "" || !g.HasTeams() {
		slog.Warn("dropping row with missing required fields",
			"date", dateText, "visitor", g.VisitorTeam, "home", g.HomeTeam, "season", season)
		return models.GameRecord{}, false
	}

	date, err := models.ParseGameDate(dateText)
	if err != nil {
		slog.Warn("dropping row with unparseable date", "date", dateText, "season", season, "error", err)
		return models.GameRecord{}, false
	}
	g.Date = date

	return g, true
}

// canonicalTeam maps a textual team reference onto the fixed franchise
// enumeration. Unknown names keep their cleaned text so the row survives,
// but every such case is logged: downstream joins rely on canonical keys.
func canonicalTeam(raw string) string {
	clean := cleanCell(raw)
	if clean == "" {
		return ""
	}
	if name, ok := teams.Canonical(clean); ok {
		return name
	}
	slog.Warn("no canonical franchise for team name", "team", raw)
	return clean
}
