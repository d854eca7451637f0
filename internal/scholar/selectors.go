// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-scraper/internal/dom"
)

// SelectorSet names every page element the extractors touch. Scholar markup
// drifts; keeping the selectors in one loadable set makes drift a config
// edit instead of a code change. Fields left empty in an override file keep
// their defaults.
type SelectorSet struct {
	// Profile listing.
	ProfileTable    string `yaml:"profile_table"`
	ProfileRow      string `yaml:"profile_row"`
	ProfileTitle    string `yaml:"profile_title"`
	ProfileGray     string `yaml:"profile_gray"`
	ProfileYear     string `yaml:"profile_year"`
	ProfileCitation string `yaml:"profile_citation"`
	ShowMore        string `yaml:"show_more"`

	// Cited-by result pages. Result and Next are fallback chains tried in
	// order; Scholar has shipped several generations of both.
	Result       []string `yaml:"result"`
	ResultTitle  string   `yaml:"result_title"`
	ResultByline string   `yaml:"result_byline"`
	Next         []string `yaml:"next"`

	// Verification challenge detection: element selectors and page-source
	// substrings. Only consulted after expected content failed to appear.
	Challenge     []string `yaml:"challenge"`
	ChallengeText []string `yaml:"challenge_text"`
}

// DefaultSelectors returns the selector set for current Google Scholar
// markup.
func DefaultSelectors() SelectorSet {
	return SelectorSet{
		ProfileTable:    "#gsc_a_b",
		ProfileRow:      "tr.gsc_a_tr",
		ProfileTitle:    "a.gsc_a_at",
		ProfileGray:     ".gs_gray",
		ProfileYear:     "td.gsc_a_y",
		ProfileCitation: "td.gsc_a_c a",
		ShowMore:        "#gsc_bpf_more",

		Result:       []string{".gs_ri", ".gs_r"},
		ResultTitle:  ".gs_rt",
		ResultByline: ".gs_a",
		Next: []string{
			"button[aria-label='Next']",
			"a[aria-label='Next']",
			"#gs_nma",
			"#gs_n td[align='left'] a",
		},

		Challenge: []string{
			"#gs_captcha_ccl",
			"#recaptcha",
			"form#captcha-form",
		},
		ChallengeText: []string{
			"captcha",
			"unusual traffic",
		},
	}
}

// LoadSelectorFile reads a YAML selector override file on top of the
// defaults.
func LoadSelectorFile(path string) (SelectorSet, error) {
	set := DefaultSelectors()
	data, err := os.ReadFile(path)
	if err != nil {
		return set, fmt.Errorf("reading selector file: %w", err)
	}
	if err := yaml.Unmarshal(data, &set); err != nil {
		return set, fmt.Errorf("parsing selector file %s: %w", path, err)
	}
	return set, nil
}

// ShowMoreControl returns the show-more control, or nil when the page has
// none.
func (s SelectorSet) ShowMoreControl(snap *dom.Snapshot) *dom.Element {
	return snap.First(s.ShowMore)
}

// NextControl returns the first next-page control found by the fallback
// chain and the selector that found it. A disabled control means the listing
// is on its final page; nil means no control at all.
func (s SelectorSet) NextControl(snap *dom.Snapshot) (*dom.Element, string) {
	for _, sel := range s.Next {
		if el := snap.First(sel); el != nil {
			return el, sel
		}
	}
	return nil, ""
}

// Results returns the result rows found by the fallback chain.
func (s SelectorSet) Results(snap *dom.Snapshot) []*dom.Element {
	for _, sel := range s.Result {
		if els := snap.FindAll(sel); len(els) > 0 {
			return els
		}
	}
	return nil
}

// ChallengePresent reports whether the snapshot looks like a verification
// interstitial rather than listing content. Listing pages can legitimately
// contain challenge words in paper titles, so callers classify expected
// content first and treat this as the fallback reading.
func (s SelectorSet) ChallengePresent(snap *dom.Snapshot) bool {
	for _, sel := range s.Challenge {
		if snap.Has(sel) {
			return true
		}
	}
	for _, sub := range s.ChallengeText {
		if snap.ContainsText(sub) {
			return true
		}
	}
	return false
}
