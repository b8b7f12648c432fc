package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable marks a backend that cannot be reached.
var ErrUnavailable = errors.New("cache unavailable")

// transientError marks a failure that may succeed on a later attempt.
type transientError struct{ err error }

func (e transientError) Error() string { return e.err.Error() }
func (e transientError) Unwrap() error { return e.err }

// Transient marks err as worth retrying, e.g. a dropped connection.
// Transient(nil) is nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return transientError{err}
}

// IsTransient reports whether err or anything it wraps was marked with
// [Transient].
func IsTransient(err error) bool {
	var te transientError
	return errors.As(err, &te)
}

// Backoff is a retry policy: Attempts tries in total, sleeping Delay after
// the first failure and doubling up to Max after each further one.
type Backoff struct {
	Attempts int
	Delay    time.Duration
	Max      time.Duration
}

// DefaultBackoff is used by backends that are not given a policy.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 100 * time.Millisecond, Max: time.Second}

// Do calls fn until it succeeds, fails with an error not marked
// [Transient], or runs out of attempts. The last error is returned without
// its transient marker; a cancelled ctx returns ctx.Err().
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	delay := b.Delay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); !IsTransient(err) {
			return err
		}
		if attempt >= b.Attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		if delay *= 2; b.Max > 0 && delay > b.Max {
			delay = b.Max
		}
	}
	if te, ok := err.(transientError); ok {
		return te.err
	}
	return err
}
