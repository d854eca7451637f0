// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scholar-scraper
// extraction and export layers.
package types

// YearUnknown is the Year value used when a listing row carries no
// recognizable publication year.
const YearUnknown = 0

// Publication is one row of a Google Scholar profile listing, immutable once
// produced. Records are ordered as encountered during page traversal; the
// extractor performs no de-duplication.
type Publication struct {
	// Title is the publication title as displayed in the profile row.
	Title string `json:"title" yaml:"title"`

	// Authors is the author line exactly as displayed (a single string,
	// not split into names).
	Authors string `json:"authors" yaml:"authors"`

	// Venue is the journal, conference, or publisher line as displayed.
	Venue string `json:"venue" yaml:"venue"`

	// Year is the publication year, or YearUnknown when the row has none.
	Year int `json:"year" yaml:"year"`

	// CitationCount is the number of citing papers. Rows without a count
	// default to 0.
	CitationCount int `json:"citation_count" yaml:"citation_count"`

	// CitedByURL is the absolute URL of the cited-by listing for this
	// publication. Empty when the row has no citation link.
	CitedByURL string `json:"cited_by_url,omitempty" yaml:"cited_by_url,omitempty"`

	// Link is the absolute URL of the publication detail page.
	Link string `json:"link,omitempty" yaml:"link,omitempty"`
}

// HasCitedBy reports whether the publication carries a cited-by listing link.
func (p Publication) HasCitedBy() bool {
	return p.CitedByURL != ""
}

// CitingRecord is one result row of a cited-by listing, immutable once
// produced and ordered as encountered across result pages.
type CitingRecord struct {
	// Title is the citing paper's title with result-type markers
	// (e.g. "[PDF]", "[CITATION]") stripped.
	Title string `json:"title" yaml:"title"`

	// Authors is the author portion of the result byline.
	Authors string `json:"authors" yaml:"authors"`

	// Venue is the venue portion of the result byline, best effort.
	Venue string `json:"venue" yaml:"venue"`

	// Year is the publication year, or YearUnknown when the byline has none.
	Year int `json:"year" yaml:"year"`
}
