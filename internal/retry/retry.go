// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

// Package retry implements the capped exponential backoff policy shared by
// every remote call in go-ghostkey (blob store, chain RPC, faucet).
//
// Retries are strictly sequential: attempt N+1 never starts before attempt N
// has returned and the backoff delay has elapsed. The policy never retries an
// error unless the operation explicitly marked it retryable via [Transient].
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Defaults for the canonical policy. There is a single delay ceiling for all
// call sites.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 1000 * time.Millisecond
	DefaultMaxDelay    = 10000 * time.Millisecond
)

// Policy describes one retry loop: how many attempts to make and how long to
// wait between them. The delay before retry n (1-based) is
// min(BaseDelay * 2^n, MaxDelay).
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration

	// Sleep suspends the loop between attempts. Left nil it uses a
	// context-aware time.Sleep; tests inject a recorder here.
	Sleep func(ctx context.Context, d time.Duration) error

	// OnAttempt, when set, is invoked before each attempt with the 1-based
	// attempt number. Used for diagnostics only.
	OnAttempt func(attempt int)
}

// DefaultPolicy returns the canonical policy: 3 attempts, 1s base delay,
// 10s ceiling.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
	}
}

// Delay returns the backoff delay applied after the given 1-based attempt
// has failed: BaseDelay doubled per attempt, capped at MaxDelay.
func (p Policy) Delay(attempt int) time.Duration {
	d := p.BaseDelay << uint(attempt)
	if d > p.MaxDelay || d < 0 {
		return p.MaxDelay
	}
	return d
}

// transientError marks an error as retryable.
type transientError struct {
	err error
}

func (t *transientError) Error() string { return t.err.Error() }
func (t *transientError) Unwrap() error { return t.err }

// Transient wraps err to signal the retry loop that the failure is expected
// to clear on its own (rate limiting, temporary unavailability) and the
// operation should be attempted again after a backoff.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err was marked retryable via [Transient].
func IsTransient(err error) bool {
	var t *transientError
	return errors.As(err, &t)
}

// Do runs fn up to p.MaxAttempts times. Errors not marked via [Transient]
// abort the loop immediately and are returned as-is. When all attempts fail
// the last error is returned wrapped with the attempt count.
//
// ctx is checked before every attempt; cancellation aborts the loop (and any
// in-flight backoff sleep) with ctx.Err().
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.OnAttempt != nil {
			p.OnAttempt(attempt)
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		lastErr = err

		if attempt < p.MaxAttempts {
			if err := sleep(ctx, p.Delay(attempt)); err != nil {
				return err
			}
		}
	}

	return fmt.Errorf("%d attempts exhausted: %w", p.MaxAttempts, lastErr)
}

// sleepCtx blocks for d or until ctx is cancelled, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
