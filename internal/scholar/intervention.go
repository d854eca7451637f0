// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import "context"

// InterventionHandler resolves a verification challenge. Resolve blocks
// until the challenge has been dealt with, typically by a human completing
// it in the visible browser window. Returning nil resumes the extraction,
// which re-checks the page; returning an error fails the run. There is no
// automatic retry anywhere in the extractors; the handler is the only
// recovery path.
type InterventionHandler interface {
	Resolve(ctx context.Context, challenge *InterventionRequired) error
}

// InterventionFunc adapts a function to the InterventionHandler interface.
type InterventionFunc func(ctx context.Context, challenge *InterventionRequired) error

// Resolve calls f.
func (f InterventionFunc) Resolve(ctx context.Context, challenge *InterventionRequired) error {
	return f(ctx, challenge)
}
