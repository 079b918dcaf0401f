package teams

import "testing"

func TestCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Boston Celtics", "Boston Celtics", true},
		{"  boston celtics ", "Boston Celtics", true},
		{"Celtics", "Boston Celtics", true},
		{"BOS", "Boston Celtics", true},
		{"BRK", "Brooklyn Nets", true},
		{"BKN", "Brooklyn Nets", true},
		{"PHO", "Phoenix Suns", true},
		{"Portland Trail Blazers (OT)", "Portland Trail Blazers", true},
		{"Seattle SuperSonics", "", false},
		{"", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		got, ok := Canonical(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Canonical(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAllCoversThirtyFranchises(t *testing.T) {
	all := All()
	if len(all) != 30 {
		t.Fatalf("expected 30 franchises, got %d", len(all))
	}
	east, west := 0, 0
	for _, f := range all {
		switch f.Conference {
		case ConferenceEastern:
			east++
		case ConferenceWestern:
			west++
		default:
			t.Errorf("franchise %q has unknown conference %q", f.Name, f.Conference)
		}
		if f.Abbr == "" || f.PageAbbr == "" {
			t.Errorf("franchise %q missing abbreviation", f.Name)
		}
	}
	if east != 15 || west != 15 {
		t.Errorf("conference split = %d east / %d west, want 15/15", east, west)
	}
}

func TestByAbbrAliases(t *testing.T) {
	for _, abbr := range []string{"BKN", "BRK"} {
		f, ok := ByAbbr(abbr)
		if !ok || f.Name != "Brooklyn Nets" {
			t.Errorf("ByAbbr(%q) = (%v, %v), want Brooklyn Nets", abbr, f.Name, ok)
		}
	}
	if _, ok := ByAbbr("XXX"); ok {
		t.Error("ByAbbr(XXX) should not resolve")
	}
}
