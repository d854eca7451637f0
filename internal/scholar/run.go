// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/scholar-scraper/internal/browser"
)

// runner holds the collaborators shared by both extractors: the browser
// session, selector set, lifecycle machine, pacing, progress output, and
// the intervention path. Each extraction run owns its runner exclusively.
type runner struct {
	session   browser.Session
	selectors SelectorSet
	handler   InterventionHandler
	progress  io.Writer
	observer  func(from, to Phase)
	machine   *Machine
	pacer     *Pacer
}

// Option configures an extractor.
type Option func(*runner)

// WithSelectors overrides the default selector set.
func WithSelectors(s SelectorSet) Option {
	return func(r *runner) { r.selectors = s }
}

// WithInterventionHandler installs the resolver invoked when a verification
// challenge interrupts extraction. Without one, a challenge fails the run.
func WithInterventionHandler(h InterventionHandler) Option {
	return func(r *runner) { r.handler = h }
}

// WithProgress directs human-readable progress lines to w.
func WithProgress(w io.Writer) Option {
	return func(r *runner) { r.progress = w }
}

// WithObserver registers a callback invoked on every phase transition.
func WithObserver(fn func(from, to Phase)) Option {
	return func(r *runner) { r.observer = fn }
}

func newRunner(session browser.Session, minDelay, maxDelay time.Duration, opts []Option) *runner {
	r := &runner{
		session:   session,
		selectors: DefaultSelectors(),
		progress:  io.Discard,
	}
	for _, o := range opts {
		o(r)
	}
	r.machine = NewMachine(r.observer)
	r.pacer = NewPacer(minDelay, maxDelay)
	return r
}

func (r *runner) printf(format string, args ...any) {
	fmt.Fprintf(r.progress, format+"\n", args...)
}

// step advances the lifecycle machine. An illegal step is an extractor bug,
// not a page condition.
func (r *runner) step(p Phase) error {
	if err := r.machine.To(p); err != nil {
		return fmt.Errorf("extraction state: %w", err)
	}
	return nil
}

// fail marks the run failed, unless it already reached a terminal phase.
func (r *runner) fail() {
	if !r.machine.Terminal() {
		_ = r.machine.To(PhaseFailed)
	}
}

// intervene suspends the run on a verification challenge and blocks in the
// handler until it is resolved, then returns the machine to resume. With no
// handler installed the challenge surfaces as the run's error.
func (r *runner) intervene(ctx context.Context, pageURL, reason string, resume Phase) error {
	if err := r.step(PhaseIntervention); err != nil {
		return err
	}
	challenge := &InterventionRequired{URL: pageURL, Reason: reason}
	if r.handler == nil {
		return challenge
	}
	r.printf("manual intervention required: %s", reason)
	if err := r.handler.Resolve(ctx, challenge); err != nil {
		return fmt.Errorf("%w (handler: %v)", challenge, err)
	}
	r.printf("intervention resolved, resuming")
	return r.step(resume)
}
