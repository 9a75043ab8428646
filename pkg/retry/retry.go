// Package retry reconnects to network-backed stores that may come up after
// the CLI does. Delays double from an initial value up to a cap, with jitter.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// PermanentError stops Do at once. Store drivers use it for failures no
// retry can fix, such as a malformed DATABASE_URL.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent marks err as not worth retrying. Permanent(nil) is nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err carries a Permanent mark.
func IsPermanent(err error) bool {
	var p *PermanentError
	return errors.As(err, &p)
}

// Retrier holds a backoff policy. The zero value is not usable; use New.
type Retrier struct {
	attempts int
	initial  time.Duration
	max      time.Duration
	jitter   float64
	onRetry  func(attempt int, err error, delay time.Duration)
}

// Option adjusts a Retrier. Out-of-range values are ignored.
type Option func(*Retrier)

// WithMaxAttempts counts the first call. Default 3.
func WithMaxAttempts(n int) Option {
	return func(r *Retrier) {
		if n > 0 {
			r.attempts = n
		}
	}
}

// WithInitialDelay sets the wait after the first failure. Default 100ms.
func WithInitialDelay(d time.Duration) Option {
	return func(r *Retrier) {
		if d > 0 {
			r.initial = d
		}
	}
}

// WithMaxDelay caps every wait. Default 5s.
func WithMaxDelay(d time.Duration) Option {
	return func(r *Retrier) {
		if d > 0 {
			r.max = d
		}
	}
}

// WithJitter spreads each wait by up to ±j of its length, 0 <= j <= 1.
func WithJitter(j float64) Option {
	return func(r *Retrier) {
		if j >= 0 && j <= 1 {
			r.jitter = j
		}
	}
}

// WithOnRetry is called after a failed attempt, before waiting.
func WithOnRetry(fn func(attempt int, err error, delay time.Duration)) Option {
	return func(r *Retrier) { r.onRetry = fn }
}

func New(opts ...Option) *Retrier {
	r := &Retrier{
		attempts: 3,
		initial:  100 * time.Millisecond,
		max:      5 * time.Second,
		jitter:   0.1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do calls op until it returns nil, a permanent error or the attempts run
// out. A cancelled ctx ends the loop early; the last error from op wins over
// the context error when there is one. Permanent errors come back unwrapped.
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	var last error
	for attempt := 1; ; attempt++ {
		if ctx.Err() != nil {
			if last == nil {
				last = ctx.Err()
			}
			return last
		}

		err := op(ctx)
		if err == nil {
			return nil
		}
		var perm *PermanentError
		if errors.As(err, &perm) {
			return perm.Err
		}
		last = err
		if attempt >= r.attempts {
			return last
		}

		wait := r.delay(attempt)
		if r.onRetry != nil {
			r.onRetry(attempt, err, wait)
		}
		select {
		case <-ctx.Done():
			return last
		case <-time.After(wait):
		}
	}
}

// delay is initial * 2^(attempt-1), capped at max, then jittered.
func (r *Retrier) delay(attempt int) time.Duration {
	d := r.initial
	for i := 1; i < attempt && d < r.max; i++ {
		d *= 2
	}
	d = min(d, r.max)
	if r.jitter > 0 {
		spread := float64(d) * r.jitter
		d += time.Duration(spread * (rand.Float64()*2 - 1))
	}
	return max(d, 0)
}

// Do runs op under a Retrier built from opts.
func Do(ctx context.Context, op func(ctx context.Context) error, opts ...Option) error {
	return New(opts...).Do(ctx, op)
}

// StoreRetrier is the policy for connecting to PostgreSQL or Redis: five
// attempts within roughly six seconds.
func StoreRetrier(onRetry func(attempt int, err error, delay time.Duration)) *Retrier {
	return New(
		WithMaxAttempts(5),
		WithInitialDelay(200*time.Millisecond),
		WithMaxDelay(3*time.Second),
		WithJitter(0.1),
		WithOnRetry(onRetry),
	)
}
