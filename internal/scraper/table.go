package scraper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/fixture-bot/internal/match"
)

// Cell is one table cell: its visible text and the first link inside it
type Cell struct {
	Text string `json:"text"`
	Href string `json:"href,omitempty"`
}

// Row is one body row of a table
type Row struct {
	Cells []Cell `json:"cells"`
}

// Table is an HTML table reduced to named columns and rows of cells
type Table struct {
	Caption string   `json:"caption,omitempty"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Require fails with match.ErrParsing when any of the named columns is missing.
func (t *Table) Require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if t.Index(c) < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return errors.Wrapf(match.ErrParsing, "table %q missing columns %s", t.Caption, strings.Join(missing, ", "))
	}
	return nil
}

// Cell returns the cell of row i in the named column. Missing cells are empty.
func (t *Table) Cell(i int, column string) Cell {
	col := t.Index(column)
	if col < 0 || i < 0 || i >= len(t.Rows) || col >= len(t.Rows[i].Cells) {
		return Cell{}
	}
	return t.Rows[i].Cells[col]
}

// Text is shorthand for Cell(i, column).Text.
func (t *Table) Text(i int, column string) string {
	return t.Cell(i, column).Text
}

// findTables returns every table in doc whose text matches pattern, in document order.
// Tables embedded in HTML comments are included at the position of the comment.
func findTables(doc *goquery.Document, pattern *regexp.Regexp) []Table {
	tables := make([]Table, 0)
	for _, sel := range tableSelections(doc) {
		if !pattern.MatchString(sel.Text()) {
			continue
		}
		tables = append(tables, parseTable(sel))
	}
	return tables
}

// tableSelections walks the document and collects <table> elements, descending into
// comment nodes that contain markup.
func tableSelections(doc *goquery.Document) []*goquery.Selection {
	var found []*goquery.Selection

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.ElementNode && n.Data == "table":
			found = append(found, goquery.NewDocumentFromNode(n).Selection)
			return
		case n.Type == html.CommentNode && strings.Contains(n.Data, "<table"):
			inner, err := goquery.NewDocumentFromReader(strings.NewReader(n.Data))
			if err == nil {
				inner.Find("table").Each(func(_ int, sel *goquery.Selection) {
					found = append(found, sel)
				})
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range doc.Nodes {
		walk(n)
	}
	return found
}

// parseTable extracts the column names and body rows of a table selection
func parseTable(sel *goquery.Selection) Table {
	t := Table{
		Caption: cleanText(sel.Find("caption").First().Text()),
		Rows:    make([]Row, 0),
	}

	headerRows := sel.Find("thead tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return !tr.HasClass("over_header")
	})
	bodyRows := sel.Find("tbody tr")

	var header *goquery.Selection
	if headerRows.Length() > 0 {
		header = headerRows.Last()
	} else {
		// No <thead>: the first row is the header
		all := sel.Find("tr")
		header = all.First()
		bodyRows = all.Slice(min(1, all.Length()), all.Length())
	}

	t.Columns = uniqueColumns(header.Find("th, td").Map(func(_ int, cell *goquery.Selection) string {
		return cleanText(cell.Text())
	}))

	bodyRows.Each(func(_ int, tr *goquery.Selection) {
		if skipRow(tr) {
			return
		}
		row := Row{Cells: make([]Cell, 0, len(t.Columns))}
		tr.Children().Filter("th, td").Each(func(_ int, cell *goquery.Selection) {
			href, _ := cell.Find("a[href]").First().Attr("href")
			row.Cells = append(row.Cells, Cell{
				Text: cleanText(cell.Text()),
				Href: strings.TrimSpace(href),
			})
		})
		if len(row.Cells) > 0 {
			t.Rows = append(t.Rows, row)
		}
	})

	return t
}

// skipRow reports repeated header rows and spacers fbref inserts between months
func skipRow(tr *goquery.Selection) bool {
	return tr.HasClass("thead") || tr.HasClass("spacer") || tr.HasClass("over_header")
}

// uniqueColumns suffixes repeated column names: xG, xG.1, xG.2
func uniqueColumns(names []string) []string {
	seen := make(map[string]int, len(names))
	out := make([]string, len(names))
	for i, name := range names {
		if n, ok := seen[name]; ok {
			out[i] = fmt.Sprintf("%s.%d", name, n)
			seen[name] = n + 1
			continue
		}
		seen[name] = 1
		out[i] = name
	}
	return out
}

// cleanText collapses runs of whitespace, non-breaking spaces included
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
