// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"fmt"

	"github.com/pdiddy/scholar-scraper/internal/browser"
	"github.com/pdiddy/scholar-scraper/internal/dom"
	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// CitationListing is the outcome of one cited-by extraction run.
type CitationListing struct {
	// Records holds every parsed result, pages concatenated in page order.
	Records []types.CitingRecord

	// Pages counts result pages parsed.
	Pages int

	// NextClicks counts next-page clicks performed; one fewer than Pages
	// on a complete multi-page walk.
	NextClicks int

	// SkippedRows counts results dropped for having no usable title.
	SkippedRows int
}

// CitationExtractor walks a cited-by listing page by page: parse every
// result on the current page, click the next-page control if one is live,
// repeat. The only page bound is the control's absence, unless the
// configuration caps pages.
type CitationExtractor struct {
	r   *runner
	cfg types.CitationConfig
}

// NewCitationExtractor builds an extractor bound to one browser session.
// The session is borrowed for the duration of Extract; the caller closes
// it.
func NewCitationExtractor(session browser.Session, cfg types.CitationConfig, opts ...Option) *CitationExtractor {
	return &CitationExtractor{
		r:   newRunner(session, cfg.MinDelay, cfg.MaxDelay, opts),
		cfg: cfg,
	}
}

// Phase returns the extractor's current lifecycle phase.
func (e *CitationExtractor) Phase() Phase {
	return e.r.machine.Phase()
}

// Extract runs the extraction against citedByURL. Records arrive in page
// order; partial results are not returned on error.
func (e *CitationExtractor) Extract(ctx context.Context, citedByURL string) (*CitationListing, error) {
	listing, err := e.extract(ctx, citedByURL)
	if err != nil {
		e.r.fail()
		return nil, err
	}
	return listing, nil
}

func (e *CitationExtractor) extract(ctx context.Context, citedByURL string) (*CitationListing, error) {
	r := e.r
	if err := r.step(PhaseNavigating); err != nil {
		return nil, err
	}
	r.printf("navigating: %s", citedByURL)

	navCtx, cancel := context.WithTimeout(ctx, e.cfg.NavigationTimeout)
	err := r.session.Navigate(navCtx, citedByURL)
	cancel()
	if err != nil {
		return nil, &NavigationError{URL: citedByURL, Err: err}
	}
	if err := r.step(PhasePaginating); err != nil {
		return nil, err
	}

	listing := &CitationListing{}
	for {
		ok, err := e.awaitResults(ctx, citedByURL)
		if err != nil {
			return nil, err
		}
		if !ok {
			if listing.Pages == 0 {
				// A cited-by page with zero results is a legitimate empty
				// listing, not a failure.
				if err := r.step(PhaseDone); err != nil {
					return nil, err
				}
				r.printf("citations done: no citing records found")
				return listing, nil
			}
			return nil, &NavigationError{URL: citedByURL, Err: fmt.Errorf("results never appeared on page %d", listing.Pages+1)}
		}

		if err := r.step(PhaseParsing); err != nil {
			return nil, err
		}
		snap, err := r.session.Snapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading results page: %w", err)
		}
		recs, skipped := parseCitingResults(snap, r.selectors)
		for _, pe := range skipped {
			r.printf("  warning: %v", pe)
		}
		listing.Pages++
		listing.Records = append(listing.Records, recs...)
		listing.SkippedRows += len(skipped)
		r.printf("  page %d: %d records", listing.Pages, len(recs))

		if e.cfg.MaxPages > 0 && listing.Pages >= e.cfg.MaxPages {
			r.printf("page cap reached (%d)", listing.Pages)
			break
		}
		next, nextSel := r.selectors.NextControl(snap)
		if next == nil || next.Disabled() {
			break
		}

		if err := r.step(PhasePaginating); err != nil {
			return nil, err
		}
		if err := r.pacer.Wait(ctx); err != nil {
			return nil, err
		}
		marker := snap.HTML()
		if err := r.session.Click(ctx, nextSel); err != nil {
			return nil, fmt.Errorf("clicking next page: %w", err)
		}
		listing.NextClicks++

		turned, err := r.session.WaitUntil(ctx, func(s *dom.Snapshot) bool {
			return s.HTML() != marker
		}, e.cfg.RenderTimeout)
		if err != nil {
			return nil, fmt.Errorf("waiting for next page: %w", err)
		}
		if !turned {
			return nil, &NavigationError{URL: citedByURL, Err: fmt.Errorf("next page never rendered")}
		}
	}

	if err := r.step(PhaseDone); err != nil {
		return nil, err
	}
	r.printf("citations done: %d records across %d pages (%d next clicks, %d skipped)",
		len(listing.Records), listing.Pages, listing.NextClicks, listing.SkippedRows)
	return listing, nil
}

// awaitResults waits for result rows on the current page, suspending on a
// visible challenge. Returns false when the page settled without any
// results.
func (e *CitationExtractor) awaitResults(ctx context.Context, citedByURL string) (bool, error) {
	r := e.r
	for {
		_, err := r.session.WaitUntil(ctx, func(s *dom.Snapshot) bool {
			return len(r.selectors.Results(s)) > 0 || r.selectors.ChallengePresent(s)
		}, e.cfg.RenderTimeout)
		if err != nil {
			return false, fmt.Errorf("waiting for results: %w", err)
		}
		snap, err := r.session.Snapshot(ctx)
		if err != nil {
			return false, fmt.Errorf("reading results page: %w", err)
		}
		switch {
		case len(r.selectors.Results(snap)) > 0:
			return true, nil
		case r.selectors.ChallengePresent(snap):
			if err := r.intervene(ctx, citedByURL, "challenge on results page", PhasePaginating); err != nil {
				return false, err
			}
		default:
			return false, nil
		}
	}
}

// FindCitedBy selects the 1-based paper index from a profile listing,
// validating that the publication carries a cited-by link. Indexes match
// the paper_id column of profile exports.
func FindCitedBy(pubs []types.Publication, paper int) (types.Publication, error) {
	if paper < 1 || paper > len(pubs) {
		return types.Publication{}, fmt.Errorf("paper %d out of range: profile has %d publications", paper, len(pubs))
	}
	pub := pubs[paper-1]
	if !pub.HasCitedBy() {
		return pub, fmt.Errorf("%q: %w", pub.Title, ErrNoCitedBy)
	}
	return pub, nil
}

// DedupeCitingRecords drops records whose normalized title already
// appeared, preserving first-seen order. Scholar occasionally repeats an
// entry across result pages; the raw listing keeps every occurrence, this
// post-step removes the repeats. Returns the filtered slice and the number
// removed.
func DedupeCitingRecords(recs []types.CitingRecord) ([]types.CitingRecord, int) {
	seen := make(map[string]struct{}, len(recs))
	out := make([]types.CitingRecord, 0, len(recs))
	for _, rec := range recs {
		key := normalizeTitle(rec.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out, len(recs) - len(out)
}
