// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/pdiddy/scholar-scraper/internal/dom"
	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// waitPollInterval is how often WaitUntil re-snapshots the page.
const waitPollInterval = 250 * time.Millisecond

// ChromeSession drives a real Chrome or Chromium instance via chromedp.
type ChromeSession struct {
	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc
}

var _ Session = (*ChromeSession)(nil)

// NewChromeSession launches a browser configured per cfg. Launch failures
// (no executable, startup error) surface here rather than on first use.
func NewChromeSession(cfg types.BrowserConfig) (*ChromeSession, error) {
	execPath, err := LocateChrome(cfg.ExecPath)
	if err != nil {
		return nil, err
	}

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.ExecPath(execPath),
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		// Scholar serves verification challenges to sessions that admit to
		// being automated.
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight),
	)
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)

	// An empty Run starts the browser process eagerly.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, fmt.Errorf("starting browser %s: %w", execPath, err)
	}

	return &ChromeSession{
		ctx:         browserCtx,
		cancelCtx:   cancelCtx,
		cancelAlloc: cancelAlloc,
	}, nil
}

// run executes chromedp actions on the session's browser context while
// honoring the caller's cancellation and deadline.
func (s *ChromeSession) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

// Navigate loads the URL and waits for the document body to be ready.
func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	err := s.run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

// Snapshot captures the full page HTML and parses it.
func (s *ChromeSession) Snapshot(ctx context.Context) (*dom.Snapshot, error) {
	var html string
	if err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("capturing page: %w", err)
	}
	return dom.Parse(html)
}

// Click scrolls the element into view and clicks it, falling back to a
// scripted click when the native one is intercepted by an overlay.
func (s *ChromeSession) Click(ctx context.Context, selector string) error {
	err := s.run(ctx,
		chromedp.ScrollIntoView(selector, chromedp.ByQuery),
		chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible),
	)
	if err == nil {
		return nil
	}
	js := fmt.Sprintf("document.querySelector(%q).click()", selector)
	if jsErr := s.run(ctx, chromedp.Evaluate(js, nil)); jsErr != nil {
		return fmt.Errorf("clicking %s: %w", selector, err)
	}
	return nil
}

// WaitUntil polls snapshots every waitPollInterval until pred holds. Returns
// (false, nil) on timeout so callers can distinguish "content never appeared"
// from a broken session.
func (s *ChromeSession) WaitUntil(ctx context.Context, pred func(*dom.Snapshot) bool, timeout time.Duration) (bool, error) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	tick := time.NewTicker(waitPollInterval)
	defer tick.Stop()

	for {
		snap, err := s.Snapshot(ctx)
		if err != nil {
			return false, err
		}
		if pred(snap) {
			return true, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-deadline.C:
			return false, nil
		case <-tick.C:
		}
	}
}

// Close shuts the browser down and releases its resources.
func (s *ChromeSession) Close() error {
	s.cancelCtx()
	s.cancelAlloc()
	return nil
}
