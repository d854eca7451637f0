// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"errors"
	"fmt"
)

// ErrNoCitedBy reports a publication without a cited-by listing link;
// nothing cites it yet, so there is no listing to walk.
var ErrNoCitedBy = errors.New("publication has no cited-by link")

// NavigationError reports a page that failed to load, or required content
// that never appeared. It aborts the extraction that hit it.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation failed for %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// ParseError reports a listing row too deformed to yield a usable record.
// Parse errors are absorbed: the row is skipped, counted, and extraction
// continues.
type ParseError struct {
	Index  int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d unusable: %s", e.Index, e.Reason)
}

// InterventionRequired signals that the page is showing a verification
// challenge instead of expected content. It suspends rather than aborts:
// the run's InterventionHandler resolves it and extraction resumes. It only
// surfaces as an error when no handler is installed or the handler gives up.
type InterventionRequired struct {
	URL    string
	Reason string
}

func (e *InterventionRequired) Error() string {
	return fmt.Sprintf("manual intervention required at %s: %s", e.URL, e.Reason)
}

// IsNavigation reports whether err is a NavigationError.
func IsNavigation(err error) bool {
	var e *NavigationError
	return errors.As(err, &e)
}

// IsIntervention reports whether err is an unresolved InterventionRequired.
func IsIntervention(err error) bool {
	var e *InterventionRequired
	return errors.As(err, &e)
}
