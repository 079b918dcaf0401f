package models

import (
	"fmt"
	"strings"
	"time"
)

// gameDateLayouts are the accepted textual date formats, tried in order.
// basketball-reference schedule pages use "Tue Oct 24 2023"; already-exported
// datasets use ISO dates.
var gameDateLayouts = []string{
	"Mon Jan 2 2006",
	"2006-01-02",
}

// ParseGameDate parses a game date, trying each accepted layout in sequence.
// Exhausting the list is a per-row parse failure for the caller to log and
// recover from, never a reason to abort a run.
func ParseGameDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range gameDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q", s)
}
