package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// ErrUnavailable marks transient backend failures such as refused or
// timed-out connections. Only these are retried.
var ErrUnavailable = errors.New("cache backend unavailable")

// Backoff retries operations that fail with ErrUnavailable, doubling the
// wait after every attempt.
type Backoff struct {
	Attempts int
	Initial  time.Duration
}

// DefaultBackoff is the policy RedisCache starts with.
var DefaultBackoff = Backoff{Attempts: 3, Initial: 200 * time.Millisecond}

// Do calls fn until it succeeds, fails permanently, runs out of attempts
// or ctx is done. fn always runs at least once.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	delay := b.Initial
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !errors.Is(err, ErrUnavailable) || attempt >= b.Attempts {
			return err
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}

// unavailable wraps network failures in ErrUnavailable and passes every
// other error through.
func unavailable(err error) error {
	var netErr net.Error
	if err == nil || !errors.As(err, &netErr) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
