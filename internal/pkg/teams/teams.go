package teams

import (
	"sort"
	"strings"
)

// Franchise is one NBA team. Name is the canonical key used everywhere in the
// pipeline; Abbr is the abbreviation handed to API consumers; PageAbbr is the
// code basketball-reference uses in team page URLs (differs for three teams).
type Franchise struct {
	Name       string
	Abbr       string
	PageAbbr   string
	Conference string
}

const (
	ConferenceEastern = "Eastern"
	ConferenceWestern = "Western"
)

var franchises = []Franchise{
	{Name: "Atlanta Hawks", Abbr: "ATL", PageAbbr: "ATL", Conference: ConferenceEastern},
	{Name: "Boston Celtics", Abbr: "BOS", PageAbbr: "BOS", Conference: ConferenceEastern},
	{Name: "Brooklyn Nets", Abbr: "BKN", PageAbbr: "BRK", Conference: ConferenceEastern},
	{Name: "Charlotte Hornets", Abbr: "CHA", PageAbbr: "CHO", Conference: ConferenceEastern},
	{Name: "Chicago Bulls", Abbr: "CHI", PageAbbr: "CHI", Conference: ConferenceEastern},
	{Name: "Cleveland Cavaliers", Abbr: "CLE", PageAbbr: "CLE", Conference: ConferenceEastern},
	{Name: "Dallas Mavericks", Abbr: "DAL", PageAbbr: "DAL", Conference: ConferenceWestern},
	{Name: "Denver Nuggets", Abbr: "DEN", PageAbbr: "DEN", Conference: ConferenceWestern},
	{Name: "Detroit Pistons", Abbr: "DET", PageAbbr: "DET", Conference: ConferenceEastern},
	{Name: "Golden State Warriors", Abbr: "GSW", PageAbbr: "GSW", Conference: ConferenceWestern},
	{Name: "Houston Rockets", Abbr: "HOU", PageAbbr: "HOU", Conference: ConferenceWestern},
	{Name: "Indiana Pacers", Abbr: "IND", PageAbbr: "IND", Conference: ConferenceEastern},
	{Name: "Los Angeles Clippers", Abbr: "LAC", PageAbbr: "LAC", Conference: ConferenceWestern},
	{Name: "Los Angeles Lakers", Abbr: "LAL", PageAbbr: "LAL", Conference: ConferenceWestern},
	{Name: "Memphis Grizzlies", Abbr: "MEM", PageAbbr: "MEM", Conference: ConferenceWestern},
	{Name: "Miami Heat", Abbr: "MIA", PageAbbr: "MIA", Conference: ConferenceEastern},
	{Name: "Milwaukee Bucks", Abbr: "MIL", PageAbbr: "MIL", Conference: ConferenceEastern},
	{Name: "Minnesota Timberwolves", Abbr: "MIN", PageAbbr: "MIN", Conference: ConferenceWestern},
	{Name: "New Orleans Pelicans", Abbr: "NOP", PageAbbr: "NOP", Conference: ConferenceWestern},
	{Name: "New York Knicks", Abbr: "NYK", PageAbbr: "NYK", Conference: ConferenceEastern},
	{Name: "Oklahoma City Thunder", Abbr: "OKC", PageAbbr: "OKC", Conference: ConferenceWestern},
	{Name: "Orlando Magic", Abbr: "ORL", PageAbbr: "ORL", Conference: ConferenceEastern},
	{Name: "Philadelphia 76ers", Abbr: "PHI", PageAbbr: "PHI", Conference: ConferenceEastern},
	{Name: "Phoenix Suns", Abbr: "PHX", PageAbbr: "PHO", Conference: ConferenceWestern},
	{Name: "Portland Trail Blazers", Abbr: "POR", PageAbbr: "POR", Conference: ConferenceWestern},
	{Name: "Sacramento Kings", Abbr: "SAC", PageAbbr: "SAC", Conference: ConferenceWestern},
	{Name: "San Antonio Spurs", Abbr: "SAS", PageAbbr: "SAS", Conference: ConferenceWestern},
	{Name: "Toronto Raptors", Abbr: "TOR", PageAbbr: "TOR", Conference: ConferenceEastern},
	{Name: "Utah Jazz", Abbr: "UTA", PageAbbr: "UTA", Conference: ConferenceWestern},
	{Name: "Washington Wizards", Abbr: "WAS", PageAbbr: "WAS", Conference: ConferenceEastern},
}

var (
	byName = make(map[string]Franchise, len(franchises))
	byAbbr = make(map[string]Franchise, len(franchises)*2)
)

func init() {
	for _, f := range franchises {
		byName[strings.ToLower(f.Name)] = f
		byAbbr[f.Abbr] = f
		byAbbr[f.PageAbbr] = f
	}
}

// All returns the 30 franchises sorted by full name.
func All() []Franchise {
	out := make([]Franchise, len(franchises))
	copy(out, franchises)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Canonical resolves a textual team reference to the canonical full name.
// Matching order: exact full name (case-insensitive), abbreviation, then
// substring containment either way. Substring matching mirrors how the source
// tables are matched, but because it runs once here, every downstream
// comparison is exact equality over canonical names.
func Canonical(name string) (string, bool) {
	clean := strings.Join(strings.Fields(name), " ")
	if clean == "" {
		return "", false
	}
	if f, ok := byName[strings.ToLower(clean)]; ok {
		return f.Name, true
	}
	if f, ok := byAbbr[strings.ToUpper(clean)]; ok {
		return f.Name, true
	}
	lower := strings.ToLower(clean)
	for _, f := range franchises {
		fl := strings.ToLower(f.Name)
		if strings.Contains(fl, lower) || strings.Contains(lower, fl) {
			return f.Name, true
		}
	}
	return "", false
}

// ByAbbr looks up a franchise by abbreviation. Both the consumer
// abbreviations (BKN, CHA, PHX) and the basketball-reference page codes
// (BRK, CHO, PHO) are accepted.
func ByAbbr(abbr string) (Franchise, bool) {
	f, ok := byAbbr[strings.ToUpper(strings.TrimSpace(abbr))]
	return f, ok
}

// ByName looks up a franchise by its canonical full name.
func ByName(name string) (Franchise, bool) {
	f, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}
