package bbref

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

var digitRun = regexp.MustCompile(`\d+`)

// ResolvePoints extracts a non-negative score from a heterogeneous points
// cell. Missing or empty values resolve to 0, the "unparsed" sentinel. A
// direct integer parse is tried first; failing that, the first run of digits
// anywhere in the string is used. Digit-free garbage resolves to 0 with a
// warning, since that is a silent-data-loss condition rather than a fatal one.
func ResolvePoints(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n
	}
	if m := digitRun.FindString(s); m != "" {
		n, err := strconv.Atoi(m)
		if err == nil {
			return n
		}
	}
	slog.Warn("could not parse points value", "value", raw)
	return 0
}
