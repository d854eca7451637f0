// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestProfileSinglePage(t *testing.T) {
	page := profilePage(moreDone,
		pubRow("Alpha study", "A Author, B Author", "Journal of Alpha", "2019", "42", "/scholar?cites=111"),
		pubRow("Beta note", "C Author", "Beta Letters", "2021", "", ""),
		pubRow("Gamma survey", "D Author", "Gamma Review", "2023", "7", "https://scholar.google.com/scholar?cites=333"),
	)
	fs := newFakeSession(map[string]string{testProfileURL: page}, nil)

	ex := NewProfileExtractor(fs, testProfileConfig())
	listing, err := ex.Extract(context.Background(), testProfileURL)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if len(listing.Publications) != 3 {
		t.Fatalf("len(Publications) = %d, want 3", len(listing.Publications))
	}
	if listing.Clicks != 0 {
		t.Errorf("Clicks = %d, want 0", listing.Clicks)
	}
	if listing.Rounds != 1 {
		t.Errorf("Rounds = %d, want 1", listing.Rounds)
	}
	if listing.SkippedRows != 0 {
		t.Errorf("SkippedRows = %d, want 0", listing.SkippedRows)
	}

	first := listing.Publications[0]
	if first.Title != "Alpha study" {
		t.Errorf("Title = %q, want %q", first.Title, "Alpha study")
	}
	if first.Authors != "A Author, B Author" {
		t.Errorf("Authors = %q, want %q", first.Authors, "A Author, B Author")
	}
	if first.Venue != "Journal of Alpha" {
		t.Errorf("Venue = %q, want %q", first.Venue, "Journal of Alpha")
	}
	if first.Year != 2019 {
		t.Errorf("Year = %d, want 2019", first.Year)
	}
	if first.CitationCount != 42 {
		t.Errorf("CitationCount = %d, want 42", first.CitationCount)
	}
	if first.CitedByURL != "https://scholar.google.com/scholar?cites=111" {
		t.Errorf("CitedByURL = %q, want resolved cites link", first.CitedByURL)
	}
	if !strings.HasPrefix(first.Link, "https://scholar.google.com/citations?") {
		t.Errorf("Link = %q, want absolute citations link", first.Link)
	}

	second := listing.Publications[1]
	if second.CitationCount != 0 {
		t.Errorf("uncited CitationCount = %d, want 0", second.CitationCount)
	}
	if second.CitedByURL != "" {
		t.Errorf("uncited CitedByURL = %q, want empty", second.CitedByURL)
	}
	if second.HasCitedBy() {
		t.Error("uncited row should not report a cited-by link")
	}

	third := listing.Publications[2]
	if third.CitedByURL != "https://scholar.google.com/scholar?cites=333" {
		t.Errorf("absolute CitedByURL = %q, want passthrough", third.CitedByURL)
	}

	if ex.Phase() != PhaseDone {
		t.Errorf("Phase = %q, want %q", ex.Phase(), PhaseDone)
	}
	if len(fs.navLog) != 1 || fs.navLog[0] != testProfileURL {
		t.Errorf("navLog = %v, want one visit to profile", fs.navLog)
	}
}

// expansionScript scripts a profile whose listing grows to counts[i] rows
// after the i'th show-more click. Every state but the last carries a live
// show-more control; the last carries an exhausted one.
func expansionScript(counts []int) (string, []string) {
	last := len(counts) - 1
	page := func(i int) string {
		control := moreLive
		if i == last {
			control = moreDone
		}
		return profilePage(control, numberedPubRows(counts[i])...)
	}
	states := make([]string, 0, last)
	for i := 1; i < len(counts); i++ {
		states = append(states, page(i))
	}
	return page(0), states
}

func TestProfileExpansionCounts(t *testing.T) {
	tests := []struct {
		name       string
		counts     []int // visible rows per state; last state is exhausted
		wantRounds int
		wantClicks int
	}{
		{name: "fits one view", counts: []int{3}, wantRounds: 1, wantClicks: 0},
		{name: "one expansion", counts: []int{20, 25}, wantRounds: 2, wantClicks: 1},
		{name: "exact page multiple", counts: []int{20, 40}, wantRounds: 2, wantClicks: 1},
		{name: "two expansions", counts: []int{20, 40, 50}, wantRounds: 3, wantClicks: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, states := expansionScript(tt.counts)
			fs := newFakeSession(
				map[string]string{testProfileURL: first},
				map[string][]string{"#gsc_bpf_more": states},
			)

			ex := NewProfileExtractor(fs, testProfileConfig())
			listing, err := ex.Extract(context.Background(), testProfileURL)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}

			total := tt.counts[len(tt.counts)-1]
			if len(listing.Publications) != total {
				t.Errorf("len(Publications) = %d, want %d", len(listing.Publications), total)
			}
			if listing.Rounds != tt.wantRounds {
				t.Errorf("Rounds = %d, want %d", listing.Rounds, tt.wantRounds)
			}
			if listing.Clicks != tt.wantClicks {
				t.Errorf("Clicks = %d, want %d", listing.Clicks, tt.wantClicks)
			}
			for i, pub := range listing.Publications {
				want := fmt.Sprintf("Paper %03d", i+1)
				if pub.Title != want {
					t.Fatalf("Publications[%d].Title = %q, want %q", i, pub.Title, want)
				}
			}
			for _, sel := range fs.clickLog {
				if sel != "#gsc_bpf_more" {
					t.Errorf("clicked %q, want only the show-more control", sel)
				}
			}
		})
	}
}

func TestProfileExpansionCap(t *testing.T) {
	first, states := expansionScript([]int{20, 40, 50})
	fs := newFakeSession(
		map[string]string{testProfileURL: first},
		map[string][]string{"#gsc_bpf_more": states},
	)

	cfg := testProfileConfig()
	cfg.MaxExpansions = 1
	var buf bytes.Buffer
	ex := NewProfileExtractor(fs, cfg, WithProgress(&buf))
	listing, err := ex.Extract(context.Background(), testProfileURL)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if listing.Clicks != 1 {
		t.Errorf("Clicks = %d, want 1", listing.Clicks)
	}
	if len(listing.Publications) != 40 {
		t.Errorf("len(Publications) = %d, want 40", len(listing.Publications))
	}
	if !strings.Contains(buf.String(), "expansion cap reached") {
		t.Errorf("output should mention the cap, got %q", buf.String())
	}
}

func TestProfileRepeatRunsIdentical(t *testing.T) {
	run := func() *ProfileListing {
		t.Helper()
		first, states := expansionScript([]int{20, 40, 45})
		fs := newFakeSession(
			map[string]string{testProfileURL: first},
			map[string][]string{"#gsc_bpf_more": states},
		)
		ex := NewProfileExtractor(fs, testProfileConfig())
		listing, err := ex.Extract(context.Background(), testProfileURL)
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		return listing
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated runs over an unchanged profile should produce identical listings")
	}
}

func TestProfileMissingFieldsDefault(t *testing.T) {
	sparse := `<tr class="gsc_a_tr"><td class="gsc_a_t"><a class="gsc_a_at" href="/citations?view_op=view_citation&citation_for_view=xy">Sparse entry</a></td><td class="gsc_a_c"><a href="javascript:void(0)" class="gsc_a_ac gs_ibl"></a></td><td class="gsc_a_y"><span class="gsc_a_h"></span></td></tr>`
	page := profilePage(moreDone, sparse)
	fs := newFakeSession(map[string]string{testProfileURL: page}, nil)

	ex := NewProfileExtractor(fs, testProfileConfig())
	listing, err := ex.Extract(context.Background(), testProfileURL)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if len(listing.Publications) != 1 {
		t.Fatalf("len(Publications) = %d, want 1", len(listing.Publications))
	}
	pub := listing.Publications[0]
	if pub.Title != "Sparse entry" {
		t.Errorf("Title = %q, want %q", pub.Title, "Sparse entry")
	}
	if pub.Authors != "" || pub.Venue != "" {
		t.Errorf("Authors/Venue = %q/%q, want empty", pub.Authors, pub.Venue)
	}
	if pub.Year != 0 {
		t.Errorf("Year = %d, want 0", pub.Year)
	}
	if pub.CitationCount != 0 {
		t.Errorf("CitationCount = %d, want 0", pub.CitationCount)
	}
	if pub.CitedByURL != "" {
		t.Errorf("CitedByURL = %q, want empty", pub.CitedByURL)
	}
}

func TestProfileSkipsUntitledRows(t *testing.T) {
	broken := `<tr class="gsc_a_tr"><td class="gsc_a_t"><div class="gs_gray">Orphan byline</div></td></tr>`
	page := profilePage(moreDone,
		pubRow("Kept one", "A Author", "Venue", "2020", "1", "/scholar?cites=1"),
		broken,
		pubRow("Kept two", "B Author", "Venue", "2021", "2", "/scholar?cites=2"),
	)
	fs := newFakeSession(map[string]string{testProfileURL: page}, nil)

	var buf bytes.Buffer
	ex := NewProfileExtractor(fs, testProfileConfig(), WithProgress(&buf))
	listing, err := ex.Extract(context.Background(), testProfileURL)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if len(listing.Publications) != 2 {
		t.Fatalf("len(Publications) = %d, want 2", len(listing.Publications))
	}
	if listing.SkippedRows != 1 {
		t.Errorf("SkippedRows = %d, want 1", listing.SkippedRows)
	}
	if listing.Publications[0].Title != "Kept one" || listing.Publications[1].Title != "Kept two" {
		t.Errorf("surviving titles = %q, %q", listing.Publications[0].Title, listing.Publications[1].Title)
	}
	if !strings.Contains(buf.String(), "warning:") {
		t.Errorf("output should warn about the skipped row, got %q", buf.String())
	}
}

func TestProfileChallengeThenResume(t *testing.T) {
	realPage := profilePage(moreDone, numberedPubRows(3)...)
	fs := newFakeSession(map[string]string{testProfileURL: challengePage}, nil)

	resolved := 0
	handler := InterventionFunc(func(_ context.Context, challenge *InterventionRequired) error {
		resolved++
		if challenge.URL != testProfileURL {
			t.Errorf("challenge.URL = %q, want %q", challenge.URL, testProfileURL)
		}
		fs.current = realPage
		return nil
	})

	var phases []Phase
	ex := NewProfileExtractor(fs, testProfileConfig(),
		WithInterventionHandler(handler),
		WithObserver(func(_, to Phase) { phases = append(phases, to) }),
	)
	listing, err := ex.Extract(context.Background(), testProfileURL)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if resolved != 1 {
		t.Errorf("handler invoked %d times, want 1", resolved)
	}
	if len(listing.Publications) != 3 {
		t.Errorf("len(Publications) = %d, want 3", len(listing.Publications))
	}
	sawIntervention := false
	for _, p := range phases {
		if p == PhaseIntervention {
			sawIntervention = true
		}
	}
	if !sawIntervention {
		t.Errorf("phases = %v, want an intervention pass", phases)
	}
	if ex.Phase() != PhaseDone {
		t.Errorf("Phase = %q, want %q", ex.Phase(), PhaseDone)
	}
}

func TestProfileChallengeWithoutHandler(t *testing.T) {
	fs := newFakeSession(map[string]string{testProfileURL: challengePage}, nil)

	ex := NewProfileExtractor(fs, testProfileConfig())
	_, err := ex.Extract(context.Background(), testProfileURL)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsIntervention(err) {
		t.Errorf("IsIntervention(%v) = false, want true", err)
	}
	if ex.Phase() != PhaseFailed {
		t.Errorf("Phase = %q, want %q", ex.Phase(), PhaseFailed)
	}
}

func TestProfileChallengeHandlerGivesUp(t *testing.T) {
	fs := newFakeSession(map[string]string{testProfileURL: challengePage}, nil)

	handler := InterventionFunc(func(_ context.Context, _ *InterventionRequired) error {
		return errors.New("operator walked away")
	})
	ex := NewProfileExtractor(fs, testProfileConfig(), WithInterventionHandler(handler))
	_, err := ex.Extract(context.Background(), testProfileURL)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsIntervention(err) {
		t.Errorf("IsIntervention(%v) = false, want true", err)
	}
	if !strings.Contains(err.Error(), "operator walked away") {
		t.Errorf("error should carry the handler's reason, got %v", err)
	}
	if ex.Phase() != PhaseFailed {
		t.Errorf("Phase = %q, want %q", ex.Phase(), PhaseFailed)
	}
}

func TestProfileNavigationFailure(t *testing.T) {
	fs := newFakeSession(map[string]string{}, nil)
	fs.navErr = errors.New("net::ERR_NAME_NOT_RESOLVED")

	ex := NewProfileExtractor(fs, testProfileConfig())
	_, err := ex.Extract(context.Background(), testProfileURL)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsNavigation(err) {
		t.Errorf("IsNavigation(%v) = false, want true", err)
	}
	if !strings.Contains(err.Error(), testProfileURL) {
		t.Errorf("error should name the URL, got %v", err)
	}
	if ex.Phase() != PhaseFailed {
		t.Errorf("Phase = %q, want %q", ex.Phase(), PhaseFailed)
	}
}

func TestProfileTableNeverAppears(t *testing.T) {
	blank := `<html><body><div id="gs_bdy">nothing to see</div></body></html>`
	fs := newFakeSession(map[string]string{testProfileURL: blank}, nil)

	ex := NewProfileExtractor(fs, testProfileConfig())
	_, err := ex.Extract(context.Background(), testProfileURL)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsNavigation(err) {
		t.Errorf("IsNavigation(%v) = false, want true", err)
	}
	if ex.Phase() != PhaseFailed {
		t.Errorf("Phase = %q, want %q", ex.Phase(), PhaseFailed)
	}
}

func TestProfilePhaseSequence(t *testing.T) {
	page := profilePage(moreDone, numberedPubRows(2)...)
	fs := newFakeSession(map[string]string{testProfileURL: page}, nil)

	var got []Phase
	ex := NewProfileExtractor(fs, testProfileConfig(),
		WithObserver(func(_, to Phase) { got = append(got, to) }))
	if _, err := ex.Extract(context.Background(), testProfileURL); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := []Phase{PhaseNavigating, PhaseExpanding, PhaseParsing, PhaseDone}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("phases = %v, want %v", got, want)
	}
}
