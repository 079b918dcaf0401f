package bbref

import "testing"

const samplePage = `<html><body>
<table id="schedule">
<thead><tr>
<th>Date</th><th>Start (ET)</th><th>Visitor/Neutral</th><th>PTS</th>
<th>Home/Neutral</th><th>PTS</th><th>LOG</th><th>Arena</th><th>Attend.</th><th>Notes</th>
</tr></thead>
<tbody>
<tr>
<th><a href="/boxscores/x.html">Tue, Oct 24, 2023</a></th>
<td>7:30p</td>
<td><a href="/teams/LAL/2024.html" title="Los Angeles Lakers">LA Lakers</a></td>
<td>107</td>
<td><a href="/teams/BOS/2024.html" title="Boston Celtics">Boston</a></td>
<td>119</td>
<td><a href="/boxscores/x.html">Box Score</a></td>
<td>TD Garden</td>
<td>19,156</td>
<td></td>
</tr>
<tr class="thead"><td colspan="10">Date</td></tr>
<tr>
<th>Wed, Oct 25, 2023</th>
<td>7:00p</td>
<td><a title="Atlanta Hawks">Atlanta</a></td>
<td>110</td>
<td><a title="Charlotte Hornets">Charlotte</a></td>
<td>116</td>
<td></td><td>Spectrum Center</td><td>17,105</td><td></td>
</tr>
<tr><td>too short</td></tr>
</tbody>
</table>
</body></html>`

func TestParseSchedulePage(t *testing.T) {
	table, err := ParseSchedulePage(samplePage)
	if err != nil {
		t.Fatalf("ParseSchedulePage: %v", err)
	}
	if len(table.Headers) != 10 {
		t.Fatalf("got %d headers, want 10: %v", len(table.Headers), table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2 (repeated header and short rows skipped)", len(table.Rows))
	}

	first := table.Rows[0]
	if first[2].LinkTitle != "Los Angeles Lakers" {
		t.Errorf("visitor link title = %q", first[2].LinkTitle)
	}
	if first[4].LinkTitle != "Boston Celtics" {
		t.Errorf("home link title = %q", first[4].LinkTitle)
	}
	if first[3].Text != "107" || first[5].Text != "119" {
		t.Errorf("points cells = %q / %q", first[3].Text, first[5].Text)
	}
}

func TestParseSchedulePageFallbackTable(t *testing.T) {
	page := `<html><body>
<table><thead><tr><th>Rk</th><th>Player</th></tr></thead><tbody></tbody></table>
<table><thead><tr><th>Date</th><th>Visitor/Neutral</th><th>PTS</th><th>Home/Neutral</th><th>PTS</th></tr></thead>
<tbody><tr><th>Tue, Oct 24, 2023</th><td>A</td><td>1</td><td>B</td><td>2</td></tr></tbody></table>
</body></html>`
	table, err := ParseSchedulePage(page)
	if err != nil {
		t.Fatalf("ParseSchedulePage: %v", err)
	}
	if len(table.Headers) != 5 || len(table.Rows) != 1 {
		t.Errorf("fallback table not selected: headers=%v rows=%d", table.Headers, len(table.Rows))
	}
}

func TestParseSchedulePageNoTable(t *testing.T) {
	if _, err := ParseSchedulePage("<html><body><p>nothing here</p></body></html>"); err == nil {
		t.Error("expected an error when no schedule table exists")
	}
}

func TestNormalizeParsedSample(t *testing.T) {
	table, err := ParseSchedulePage(samplePage)
	if err != nil {
		t.Fatalf("ParseSchedulePage: %v", err)
	}
	n := NewNormalizer(nil)
	var games int
	for _, row := range table.Rows {
		if g, ok := n.NormalizeRow(table.Headers, row, "2023-2024", "october"); ok {
			games++
			if !g.HasTeams() || !g.HasDate() {
				t.Errorf("normalized game incomplete: %+v", g)
			}
		}
	}
	if games != 2 {
		t.Errorf("normalized %d games, want 2", games)
	}
}
