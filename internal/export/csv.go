// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-scraper/pkg/types"
)

var (
	profileHeader = []string{"paper_id", "title", "authors", "publication", "year", "citations", "link"}
	citersHeader  = []string{"title", "authors", "publication", "year"}
)

// WriteProfileCSV writes a profile listing to path. The paper_id column is
// the 1-based listing position, which is also what the citations command's
// --paper flag addresses.
func WriteProfileCSV(path string, pubs []types.Publication) error {
	rows := make([][]string, 0, len(pubs)+1)
	rows = append(rows, profileHeader)
	for i, p := range pubs {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.Title,
			p.Authors,
			p.Venue,
			yearField(p.Year),
			strconv.Itoa(p.CitationCount),
			p.Link,
		})
	}
	return writeCSV(path, rows)
}

// WriteCitersCSV writes a cited-by listing to path.
func WriteCitersCSV(path string, recs []types.CitingRecord) error {
	rows := make([][]string, 0, len(recs)+1)
	rows = append(rows, citersHeader)
	for _, r := range recs {
		rows = append(rows, []string{r.Title, r.Authors, r.Venue, yearField(r.Year)})
	}
	return writeCSV(path, rows)
}

// yearField renders an unknown year as an empty cell rather than a zero.
func yearField(y int) string {
	if y == types.YearUnknown {
		return ""
	}
	return strconv.Itoa(y)
}

// writeCSV writes rows through a temp file in the destination directory so
// an interrupted export never leaves a truncated file at path.
func writeCSV(path string, rows [][]string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	w := csv.NewWriter(tmpFile)
	writeErr := w.WriteAll(rows)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing rows: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

var (
	unsafeRe   = regexp.MustCompile(`[^\w\s-]`)
	collapseRe = regexp.MustCompile(`[-\s]+`)
)

// stemLimit bounds the title portion of a citers filename; Scholar titles
// run long.
const stemLimit = 50

// CitersFilename builds the export filename stem for one publication's
// cited-by listing: the sanitized title, the publication year ("unknown"
// when the listing had none), and a "_citers" suffix. The caller appends
// the format extension.
func CitersFilename(title string, year int) string {
	stem := unsafeRe.ReplaceAllString(title, "")
	stem = collapseRe.ReplaceAllString(stem, "_")
	stem = strings.Trim(stem, "_")
	if len(stem) > stemLimit {
		stem = strings.Trim(stem[:stemLimit], "_")
	}
	if stem == "" {
		stem = "paper"
	}
	y := "unknown"
	if year != types.YearUnknown {
		y = strconv.Itoa(year)
	}
	return fmt.Sprintf("%s_%s_citers", stem, y)
}
