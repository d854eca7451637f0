// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package browser owns the automated browser session. The extractors depend
// only on the Session interface; the production implementation drives a real
// Chrome over the DevTools protocol, and tests substitute scripted sessions.
package browser

import (
	"context"
	"time"

	"github.com/pdiddy/scholar-scraper/internal/dom"
)

// Session is a controllable browser page. One session holds one page at a
// time and is owned exclusively by the extraction call that created it;
// operations are strictly sequential.
type Session interface {
	// Navigate loads the URL and waits for the document to be ready.
	Navigate(ctx context.Context, url string) error

	// Snapshot captures the current page HTML for parsing. Later page
	// mutations are not visible in an already-captured snapshot.
	Snapshot(ctx context.Context) (*dom.Snapshot, error)

	// Click scrolls the first element matching the selector into view and
	// clicks it. Click targets in this system are stable selectors (the
	// show-more and next-page controls), so the selector is the element
	// handle.
	Click(ctx context.Context, selector string) error

	// WaitUntil polls page snapshots until pred returns true or the timeout
	// expires. The bool result distinguishes timeout (false, nil) from a
	// session failure.
	WaitUntil(ctx context.Context, pred func(*dom.Snapshot) bool, timeout time.Duration) (bool, error)

	// Close releases the browser. The session is unusable afterwards.
	Close() error
}
