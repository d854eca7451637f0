// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dom provides read-only access to a captured HTML page: selector
// queries and element text/attribute reads over a single point-in-time
// snapshot. Extractors parse snapshots instead of querying the live page so
// one navigation yields one consistent view.
package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Snapshot is a parsed copy of a page's HTML at one instant. It is immutable;
// re-snapshot the session to observe later changes.
type Snapshot struct {
	doc *goquery.Document
	raw string
}

// Parse builds a Snapshot from raw HTML.
func Parse(html string) (*Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing page HTML: %w", err)
	}
	return &Snapshot{doc: doc, raw: html}, nil
}

// FindAll returns every element matching the CSS selector, in document order.
func (s *Snapshot) FindAll(selector string) []*Element {
	var out []*Element
	s.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, &Element{sel: sel})
	})
	return out
}

// First returns the first element matching the selector, or nil when nothing
// matches.
func (s *Snapshot) First(selector string) *Element {
	sel := s.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return &Element{sel: sel}
}

// Has reports whether any element matches the selector.
func (s *Snapshot) Has(selector string) bool {
	return s.doc.Find(selector).Length() > 0
}

// ContainsText reports whether the page source contains the substring,
// case-insensitive.
func (s *Snapshot) ContainsText(substr string) bool {
	return strings.Contains(strings.ToLower(s.raw), strings.ToLower(substr))
}

// HTML returns the raw page source the snapshot was parsed from.
func (s *Snapshot) HTML() string {
	return s.raw
}

// Element is a single node within a Snapshot.
type Element struct {
	sel *goquery.Selection
}

// Text returns the element's rendered text with surrounding whitespace
// trimmed.
func (e *Element) Text() string {
	return strings.TrimSpace(e.sel.Text())
}

// Attr returns the value of the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// FindAll returns descendant elements matching the selector, in document
// order.
func (e *Element) FindAll(selector string) []*Element {
	var out []*Element
	e.sel.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, &Element{sel: sel})
	})
	return out
}

// First returns the first descendant element matching the selector, or nil.
func (e *Element) First(selector string) *Element {
	sel := e.sel.Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return &Element{sel: sel}
}

// Disabled reports whether the element carries a disabled attribute or a
// class name containing "disabled". Scholar marks exhausted paging controls
// both ways.
func (e *Element) Disabled() bool {
	if _, ok := e.sel.Attr("disabled"); ok {
		return true
	}
	class, _ := e.sel.Attr("class")
	return strings.Contains(class, "disabled")
}
