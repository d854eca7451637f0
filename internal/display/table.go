package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pdiddy/scholar-scraper/pkg/types"
)

const (
	titleWidth = 60
	fieldWidth = 40
)

var (
	publicationHeader = []string{"#", "title", "authors", "publication", "year", "cited by"}
	citingHeader      = []string{"#", "title", "authors", "publication", "year"}
)

// Table renders a borderless listing table.
type Table struct {
	table  *tablewriter.Table
	header []string
	rows   [][]string
}

// NewTable builds a table writing to w.
func NewTable(w io.Writer, header []string) *Table {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)
	return &Table{table: table, header: header}
}

// AddRow appends one row.
func (t *Table) AddRow(row []string) {
	t.rows = append(t.rows, row)
}

// Render writes the table.
func (t *Table) Render() {
	t.table.Header(t.header)
	t.table.Bulk(t.rows)
	t.table.Render()
}

// RenderPublications writes a profile listing table. A positive show caps
// the rendered rows, with a trailing count of what was elided.
func RenderPublications(w io.Writer, pubs []types.Publication, show int) {
	shown := pubs
	if show > 0 && len(pubs) > show {
		shown = pubs[:show]
	}

	t := NewTable(w, publicationHeader)
	for i, p := range shown {
		t.AddRow(publicationRow(i+1, p))
	}
	t.Render()

	if elided := len(pubs) - len(shown); elided > 0 {
		fmt.Fprintf(w, "  ... and %d more\n", elided)
	}
}

// RenderCitingRecords writes a cited-by listing table with the same show
// cap behavior as RenderPublications.
func RenderCitingRecords(w io.Writer, recs []types.CitingRecord, show int) {
	shown := recs
	if show > 0 && len(recs) > show {
		shown = recs[:show]
	}

	t := NewTable(w, citingHeader)
	for i, r := range shown {
		t.AddRow([]string{
			strconv.Itoa(i + 1),
			truncate(r.Title, titleWidth),
			truncate(r.Authors, fieldWidth),
			truncate(r.Venue, fieldWidth),
			yearCell(r.Year),
		})
	}
	t.Render()

	if elided := len(recs) - len(shown); elided > 0 {
		fmt.Fprintf(w, "  ... and %d more\n", elided)
	}
}

// publicationRow renders one listing row. The cited-by cell shows the count
// when a cited-by listing exists and "-" when nothing cites the paper yet,
// so the usable --paper targets are visible at a glance.
func publicationRow(id int, p types.Publication) []string {
	citedBy := "-"
	if p.HasCitedBy() {
		citedBy = strconv.Itoa(p.CitationCount)
	}
	return []string{
		strconv.Itoa(id),
		truncate(p.Title, titleWidth),
		truncate(p.Authors, fieldWidth),
		truncate(p.Venue, fieldWidth),
		yearCell(p.Year),
		citedBy,
	}
}

func yearCell(y int) string {
	if y == types.YearUnknown {
		return ""
	}
	return strconv.Itoa(y)
}

// truncate shortens s to max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
