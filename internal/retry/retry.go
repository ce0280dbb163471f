// Package retry holds the backoff policy shared by the remote-call clients.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultMaxAttempts     = 3
	defaultInitialInterval = time.Second
)

// Policy is the retry budget for one remote operation: MaxAttempts total
// calls with 2^i * InitialInterval sleeps between them (i counting from 0),
// no jitter and no cap. The zero value means 3 attempts starting at 1s.
type Policy struct {
	MaxAttempts     int
	InitialInterval time.Duration
}

func (p Policy) normalized() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.InitialInterval <= 0 {
		p.InitialInterval = defaultInitialInterval
	}
	return p
}

// Do runs op until it succeeds or the attempt budget is spent. notify, if
// non-nil, is invoked with the error and the upcoming delay before each
// sleep. Context cancellation stops the loop early.
func (p Policy) Do(ctx context.Context, op func() error, notify func(err error, next time.Duration)) error {
	p = p.normalized()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.InitialInterval
	bo.RandomizationFactor = 0
	bo.Multiplier = 2
	bo.MaxInterval = 24 * time.Hour
	bo.MaxElapsedTime = 0
	bo.Reset()

	wrapped := backoff.WithMaxRetries(backoff.WithContext(bo, ctx), uint64(p.MaxAttempts-1))

	var n backoff.Notify
	if notify != nil {
		n = backoff.Notify(notify)
	}
	return backoff.RetryNotify(op, wrapped, n)
}
