// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dom

import "testing"

const fixturePage = `<html><body>
<table id="listing">
<tr class="row"><td class="title">  First Paper  </td><td class="count"><a href="/scholar?cites=111">12</a></td></tr>
<tr class="row"><td class="title">Second Paper</td><td class="count"></td></tr>
</table>
<button id="more" class="gs_btn gs_btn_disabled" disabled>Show more</button>
<button id="next" aria-label="Next">Next</button>
<div id="notice">Please show you&#39;re not a robot</div>
</body></html>`

func mustParse(t *testing.T, html string) *Snapshot {
	t.Helper()
	snap, err := Parse(html)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return snap
}

func TestFindAllReturnsDocumentOrder(t *testing.T) {
	snap := mustParse(t, fixturePage)

	rows := snap.FindAll("tr.row")
	if len(rows) != 2 {
		t.Fatalf("FindAll(tr.row) = %d rows, want 2", len(rows))
	}
	if got := rows[0].First(".title").Text(); got != "First Paper" {
		t.Errorf("first row title = %q, want %q", got, "First Paper")
	}
	if got := rows[1].First(".title").Text(); got != "Second Paper" {
		t.Errorf("second row title = %q, want %q", got, "Second Paper")
	}
}

func TestTextTrimsWhitespace(t *testing.T) {
	snap := mustParse(t, fixturePage)
	el := snap.First("tr.row .title")
	if el == nil {
		t.Fatal("First(tr.row .title) = nil")
	}
	if got := el.Text(); got != "First Paper" {
		t.Errorf("Text() = %q, want %q", got, "First Paper")
	}
}

func TestAttr(t *testing.T) {
	snap := mustParse(t, fixturePage)

	link := snap.First("td.count a")
	if link == nil {
		t.Fatal("no count link found")
	}
	href, ok := link.Attr("href")
	if !ok || href != "/scholar?cites=111" {
		t.Errorf("Attr(href) = %q, %v; want %q, true", href, ok, "/scholar?cites=111")
	}
	if _, ok := link.Attr("disabled"); ok {
		t.Error("Attr(disabled) on link = present, want absent")
	}
}

func TestFirstMissingSelectorIsNil(t *testing.T) {
	snap := mustParse(t, fixturePage)
	if el := snap.First("#does-not-exist"); el != nil {
		t.Errorf("First(#does-not-exist) = %v, want nil", el)
	}
	if snap.Has("#does-not-exist") {
		t.Error("Has(#does-not-exist) = true, want false")
	}
}

func TestDisabled(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		selector string
		want     bool
	}{
		{"disabled attribute", fixturePage, "#more", true},
		{"enabled control", fixturePage, "#next", false},
		{"disabled class only", `<button id="b" class="gs_btn_pdl_disabled">x</button>`, "#b", true},
		{"plain element", `<a id="a" href="#">x</a>`, "#a", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := mustParse(t, tt.html)
			el := snap.First(tt.selector)
			if el == nil {
				t.Fatalf("First(%s) = nil", tt.selector)
			}
			if got := el.Disabled(); got != tt.want {
				t.Errorf("Disabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContainsTextCaseInsensitive(t *testing.T) {
	snap := mustParse(t, fixturePage)
	if !snap.ContainsText("NOT A ROBOT") {
		t.Error("ContainsText(NOT A ROBOT) = false, want true")
	}
	if snap.ContainsText("unusual traffic") {
		t.Error("ContainsText(unusual traffic) = true, want false")
	}
}
