package scholar

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces consecutive page actions to a human-like rhythm: a rate
// floor of one action per MinDelay, plus uniform random jitter up to
// MaxDelay. Scholar tolerates slow clients and challenges fast ones. This
// is politeness pacing only; nothing is ever re-attempted.
type Pacer struct {
	limiter *rate.Limiter
	jitter  time.Duration
	rng     *rand.Rand
}

// NewPacer builds a Pacer from the configured delay bounds. Non-positive
// bounds disable pacing entirely, which is what tests want.
func NewPacer(min, max time.Duration) *Pacer {
	if min <= 0 && max <= 0 {
		return &Pacer{}
	}
	if min <= 0 {
		min = max
	}
	if max < min {
		max = min
	}
	return &Pacer{
		limiter: rate.NewLimiter(rate.Every(min), 1),
		jitter:  max - min,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Wait blocks until this action's slot arrives, then sleeps the jitter. The
// first action after construction passes immediately.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}
	if p.jitter <= 0 {
		return nil
	}
	d := time.Duration(p.rng.Int63n(int64(p.jitter) + 1))
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
