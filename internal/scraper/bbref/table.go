package bbref

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ScheduleTable is the raw schedule grid of one month page: the header row
// plus every data row as (text, link title) cells, in source order.
type ScheduleTable struct {
	Headers []string
	Rows    [][]CellValue
}

var scheduleHeaderRe = regexp.MustCompile(`(?i)Visitor|Home|Date`)

// ParseSchedulePage extracts the schedule table from a month page. The table
// is normally id="schedule"; when the markup shifts, any table whose header
// mentions Visitor/Home/Date is accepted as a fallback.
func ParseSchedulePage(html string) (*ScheduleTable, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	table := doc.Find("table#schedule").First()
	if table.Length() == 0 {
		doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
			matched := false
			t.Find("th").EachWithBreak(func(_ int, th *goquery.Selection) bool {
				if scheduleHeaderRe.MatchString(th.Text()) {
					matched = true
					return false
				}
				return true
			})
			if matched {
				table = t
				return false
			}
			return true
		})
	}
	if table.Length() == 0 {
		return nil, fmt.Errorf("no schedule table found on page")
	}

	var headers []string
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})
	if len(headers) == 0 {
		return nil, fmt.Errorf("schedule table has no header row")
	}

	var rows [][]CellValue
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		// Mid-table repeated header rows carry class="thead".
		if tr.HasClass("thead") {
			return
		}
		cellsSel := tr.Find("td, th")
		if cellsSel.Length() < 3 {
			return
		}
		cells := make([]CellValue, 0, cellsSel.Length())
		cellsSel.Each(func(_ int, c *goquery.Selection) {
			cv := CellValue{Text: c.Text()}
			if link := c.Find("a").First(); link.Length() > 0 {
				cv.LinkTitle = link.AttrOr("title", "")
			}
			cells = append(cells, cv)
		})
		rows = append(rows, cells)
	})

	return &ScheduleTable{Headers: headers, Rows: rows}, nil
}
