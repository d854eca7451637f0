// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"fmt"

	"github.com/pdiddy/scholar-scraper/internal/browser"
	"github.com/pdiddy/scholar-scraper/internal/dom"
	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// ProfileListing is the outcome of one profile extraction run.
type ProfileListing struct {
	// Publications holds every parsed row in display order.
	Publications []types.Publication

	// Rounds counts expansion-loop passes, including the final pass that
	// found the show-more control exhausted or absent. A listing that fits
	// on one view costs exactly one round.
	Rounds int

	// Clicks counts show-more clicks actually performed.
	Clicks int

	// SkippedRows counts rows dropped for having no usable title.
	SkippedRows int
}

// ProfileExtractor walks a Scholar profile's publication table: expand the
// listing until the show-more control is exhausted, then parse every
// visible row. Re-running against an unchanged profile yields an identical
// listing.
type ProfileExtractor struct {
	r   *runner
	cfg types.ProfileConfig
}

// NewProfileExtractor builds an extractor bound to one browser session. The
// session is borrowed for the duration of Extract; the caller closes it.
func NewProfileExtractor(session browser.Session, cfg types.ProfileConfig, opts ...Option) *ProfileExtractor {
	return &ProfileExtractor{
		r:   newRunner(session, cfg.MinDelay, cfg.MaxDelay, opts),
		cfg: cfg,
	}
}

// Phase returns the extractor's current lifecycle phase.
func (e *ProfileExtractor) Phase() Phase {
	return e.r.machine.Phase()
}

// Extract runs the extraction against profileURL. The record slice is
// ordered as encountered; partial results are not returned on error.
func (e *ProfileExtractor) Extract(ctx context.Context, profileURL string) (*ProfileListing, error) {
	listing, err := e.extract(ctx, profileURL)
	if err != nil {
		e.r.fail()
		return nil, err
	}
	return listing, nil
}

func (e *ProfileExtractor) extract(ctx context.Context, profileURL string) (*ProfileListing, error) {
	r := e.r
	if err := r.step(PhaseNavigating); err != nil {
		return nil, err
	}
	r.printf("navigating: %s", profileURL)

	navCtx, cancel := context.WithTimeout(ctx, e.cfg.NavigationTimeout)
	err := r.session.Navigate(navCtx, profileURL)
	cancel()
	if err != nil {
		return nil, &NavigationError{URL: profileURL, Err: err}
	}
	if err := r.step(PhaseExpanding); err != nil {
		return nil, err
	}
	if err := e.awaitTable(ctx, profileURL); err != nil {
		return nil, err
	}

	listing := &ProfileListing{}
expand:
	for {
		listing.Rounds++
		snap, err := r.session.Snapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading profile page: %w", err)
		}
		more := r.selectors.ShowMoreControl(snap)
		if more == nil || more.Disabled() {
			break
		}
		if e.cfg.MaxExpansions > 0 && listing.Clicks >= e.cfg.MaxExpansions {
			r.printf("expansion cap reached after %d clicks", listing.Clicks)
			break
		}

		before := len(snap.FindAll(r.selectors.ProfileRow))
		if err := r.pacer.Wait(ctx); err != nil {
			return nil, err
		}
		if err := r.session.Click(ctx, r.selectors.ShowMore); err != nil {
			return nil, fmt.Errorf("clicking show-more: %w", err)
		}
		listing.Clicks++

		// Bounded wait for one of: new rows, an exhausted control, or a
		// challenge page replacing the listing.
		_, err = r.session.WaitUntil(ctx, func(s *dom.Snapshot) bool {
			if len(s.FindAll(r.selectors.ProfileRow)) > before {
				return true
			}
			if m := r.selectors.ShowMoreControl(s); m == nil || m.Disabled() {
				return true
			}
			return r.selectors.ChallengePresent(s)
		}, e.cfg.RenderTimeout)
		if err != nil {
			return nil, fmt.Errorf("waiting for rows: %w", err)
		}

		snap, err = r.session.Snapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading profile page: %w", err)
		}
		switch {
		case len(snap.FindAll(r.selectors.ProfileRow)) > before:
			r.printf("  expanded: %d rows visible", len(snap.FindAll(r.selectors.ProfileRow)))
		case r.selectors.ChallengePresent(snap):
			if err := r.intervene(ctx, profileURL, "challenge during listing expansion", PhaseExpanding); err != nil {
				return nil, err
			}
		default:
			// No new rows and no challenge: the listing has settled.
			break expand
		}
	}

	if err := r.step(PhaseParsing); err != nil {
		return nil, err
	}
	snap, err := r.session.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading profile page: %w", err)
	}
	pubs, skipped := parseProfileRows(snap, r.selectors)
	for _, pe := range skipped {
		r.printf("  warning: %v", pe)
	}
	listing.Publications = pubs
	listing.SkippedRows = len(skipped)

	if err := r.step(PhaseDone); err != nil {
		return nil, err
	}
	r.printf("profile done: %d publications (%d expansions, %d skipped)",
		len(pubs), listing.Clicks, listing.SkippedRows)
	return listing, nil
}

// awaitTable waits for the publication table to render, suspending on a
// visible challenge. A profile page without the table and without a
// challenge is a navigation failure.
func (e *ProfileExtractor) awaitTable(ctx context.Context, profileURL string) error {
	r := e.r
	for {
		_, err := r.session.WaitUntil(ctx, func(s *dom.Snapshot) bool {
			return s.Has(r.selectors.ProfileTable) || r.selectors.ChallengePresent(s)
		}, e.cfg.RenderTimeout)
		if err != nil {
			return fmt.Errorf("waiting for publication table: %w", err)
		}
		snap, err := r.session.Snapshot(ctx)
		if err != nil {
			return fmt.Errorf("reading profile page: %w", err)
		}
		switch {
		case snap.Has(r.selectors.ProfileTable):
			return nil
		case r.selectors.ChallengePresent(snap):
			if err := r.intervene(ctx, profileURL, "challenge before publication listing", PhaseExpanding); err != nil {
				return err
			}
		default:
			return &NavigationError{URL: profileURL, Err: fmt.Errorf("publication table never appeared")}
		}
	}
}
