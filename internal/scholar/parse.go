// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar implements the two extraction pipelines: profile listings
// and cited-by listings. Both walk pages through a browser session, parse
// snapshots into flat record lists, and share a lifecycle state machine,
// pacing, and the manual-intervention suspension path.
package scholar

import (
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-scraper/internal/dom"
	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// scholarBaseURL is the base against which relative listing hrefs resolve.
// Package variable so tests can point records at fixture hosts.
var scholarBaseURL = "https://scholar.google.com"

// citesMarker identifies a real cited-by listing href. Zero-citation rows
// carry a dead anchor without it.
const citesMarker = "cites="

var (
	yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	numRe  = regexp.MustCompile(`\d+`)
	// resultMarkerRe strips "[PDF]", "[HTML]", "[CITATION]" style prefixes
	// from result titles.
	resultMarkerRe = regexp.MustCompile(`^(\s*\[[A-Z]+\])+\s*`)
)

// parseProfileRows reads every publication row from a profile snapshot, in
// display order. Rows with no extractable title are returned as ParseErrors,
// not records; missing fields within a usable row default instead of
// failing.
func parseProfileRows(snap *dom.Snapshot, sel SelectorSet) ([]types.Publication, []*ParseError) {
	var (
		pubs    []types.Publication
		skipped []*ParseError
	)
	for i, row := range snap.FindAll(sel.ProfileRow) {
		pub, err := parsePublicationRow(row, sel)
		if err != nil {
			skipped = append(skipped, &ParseError{Index: i, Reason: err.Error()})
			continue
		}
		pubs = append(pubs, pub)
	}
	return pubs, skipped
}

func parsePublicationRow(row *dom.Element, sel SelectorSet) (types.Publication, error) {
	var pub types.Publication

	title := row.First(sel.ProfileTitle)
	if title == nil || title.Text() == "" {
		return pub, errNoTitle
	}
	pub.Title = title.Text()
	if href, ok := title.Attr("href"); ok {
		pub.Link = absoluteURL(href)
	}

	grays := row.FindAll(sel.ProfileGray)
	if len(grays) > 0 {
		pub.Authors = grays[0].Text()
	}
	if len(grays) > 1 {
		pub.Venue = grays[1].Text()
	}

	if y := row.First(sel.ProfileYear); y != nil {
		pub.Year = parseYear(y.Text())
	}

	if c := row.First(sel.ProfileCitation); c != nil {
		pub.CitationCount = parseCount(c.Text())
		if href, ok := c.Attr("href"); ok && strings.Contains(href, citesMarker) {
			pub.CitedByURL = absoluteURL(href)
		}
	}
	return pub, nil
}

// errNoTitle is the one defect that makes a row unusable.
var errNoTitle = errors.New("no title")

// parseCitingResults reads every result row from a cited-by snapshot, in
// display order.
func parseCitingResults(snap *dom.Snapshot, sel SelectorSet) ([]types.CitingRecord, []*ParseError) {
	var (
		recs    []types.CitingRecord
		skipped []*ParseError
	)
	for i, res := range sel.Results(snap) {
		rec, err := parseCitingResult(res, sel)
		if err != nil {
			skipped = append(skipped, &ParseError{Index: i, Reason: err.Error()})
			continue
		}
		recs = append(recs, rec)
	}
	return recs, skipped
}

func parseCitingResult(res *dom.Element, sel SelectorSet) (types.CitingRecord, error) {
	var rec types.CitingRecord

	title := res.First(sel.ResultTitle)
	if title == nil {
		return rec, errNoTitle
	}
	// Prefer the anchor text: it excludes the "[PDF]" markers that precede
	// linked titles. Unlinked "[CITATION]" entries have no anchor, so fall
	// back to the full heading with markers stripped.
	text := ""
	if a := title.First("a"); a != nil {
		text = a.Text()
	} else {
		text = resultMarkerRe.ReplaceAllString(title.Text(), "")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return rec, errNoTitle
	}
	rec.Title = text

	if by := res.First(sel.ResultByline); by != nil {
		rec.Authors, rec.Venue, rec.Year = splitByline(by.Text())
	}
	return rec, nil
}

// splitByline breaks a result byline ("authors - venue, year - host") into
// its parts. The format is inherently ambiguous when venue names contain
// commas, so this is a best-effort split on " - ": authors are the first
// segment, the year is the last plausible year in the second, and the venue
// is the second segment with the year and dangling punctuation removed. The
// third segment, when present, is the serving host and is dropped.
func splitByline(s string) (authors, venue string, year int) {
	parts := strings.Split(s, " - ")
	authors = strings.TrimSpace(parts[0])
	if len(parts) < 2 {
		return authors, "", types.YearUnknown
	}

	vy := parts[1]
	year = parseYear(vy)
	if year != types.YearUnknown {
		locs := yearRe.FindAllStringIndex(vy, -1)
		last := locs[len(locs)-1]
		vy = vy[:last[0]] + vy[last[1]:]
	}
	venue = strings.Trim(vy, " , ")
	return authors, venue, year
}

// parseYear returns the last plausible publication year in s, or
// types.YearUnknown. Bylines put the year after the venue, so when a venue
// name itself contains a year the last match is the safer read.
func parseYear(s string) int {
	matches := yearRe.FindAllString(s, -1)
	if len(matches) == 0 {
		return types.YearUnknown
	}
	y, err := strconv.Atoi(matches[len(matches)-1])
	if err != nil {
		return types.YearUnknown
	}
	return y
}

// parseCount returns the first integer in s ("123", "Cited by 123"), or 0
// when s has none. Zero-citation rows render an empty cell.
func parseCount(s string) int {
	m := numRe.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// absoluteURL resolves a listing href against the Scholar base. Absolute
// inputs pass through untouched.
func absoluteURL(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil || u.IsAbs() {
		return href
	}
	base, err := url.Parse(scholarBaseURL)
	if err != nil {
		return href
	}
	return base.ResolveReference(u).String()
}

// normalizeTitle lowers and whitespace-collapses a title for duplicate
// comparison.
func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
