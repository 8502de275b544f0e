package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSleeper captures the delays the retry loop asked for without
// actually sleeping.
type recordingSleeper struct {
	delays []time.Duration
}

func (r *recordingSleeper) sleep(_ context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

func testPolicy(s *recordingSleeper) Policy {
	p := DefaultPolicy()
	p.Sleep = s.sleep
	return p
}

func TestDelay_DoublesAndCaps(t *testing.T) {
	p := Policy{BaseDelay: 1000 * time.Millisecond, MaxDelay: 10000 * time.Millisecond}

	assert.Equal(t, 2000*time.Millisecond, p.Delay(1))
	assert.Equal(t, 4000*time.Millisecond, p.Delay(2))
	assert.Equal(t, 8000*time.Millisecond, p.Delay(3))
	assert.Equal(t, 10000*time.Millisecond, p.Delay(4), "delay must be capped at MaxDelay")
	assert.Equal(t, 10000*time.Millisecond, p.Delay(60), "shift overflow must still cap")
}

func TestDo_SucceedsOnThirdAttempt(t *testing.T) {
	sleeper := &recordingSleeper{}
	calls := 0

	err := Do(context.Background(), testPolicy(sleeper), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return Transient(errors.New("unavailable"))
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	// Two failures: backoff of base*2 then base*4.
	assert.Equal(t, []time.Duration{2000 * time.Millisecond, 4000 * time.Millisecond}, sleeper.delays)
}

func TestDo_ExhaustsAfterMaxAttempts(t *testing.T) {
	sleeper := &recordingSleeper{}
	rateLimited := errors.New("rate limited")
	calls := 0

	err := Do(context.Background(), testPolicy(sleeper), func(ctx context.Context) error {
		calls++
		return Transient(rateLimited)
	})

	require.Error(t, err)
	assert.Equal(t, DefaultMaxAttempts, calls)
	assert.ErrorIs(t, err, rateLimited, "exhaustion error must carry the last underlying error")
	// No sleep after the final attempt.
	assert.Len(t, sleeper.delays, DefaultMaxAttempts-1)
}

func TestDo_FatalErrorAbortsImmediately(t *testing.T) {
	sleeper := &recordingSleeper{}
	fatal := errors.New("bad request")
	calls := 0

	err := Do(context.Background(), testPolicy(sleeper), func(ctx context.Context) error {
		calls++
		return fatal
	})

	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
	assert.Empty(t, sleeper.delays)
}

func TestDo_ObservesAttemptNumbers(t *testing.T) {
	sleeper := &recordingSleeper{}
	p := testPolicy(sleeper)

	var attempts []int
	p.OnAttempt = func(n int) { attempts = append(attempts, n) }

	_ = Do(context.Background(), p, func(ctx context.Context) error {
		return Transient(errors.New("unavailable"))
	})

	assert.Equal(t, []int{1, 2, 3}, attempts)
}

func TestDo_HonoursCancellationBeforeAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, DefaultPolicy(), func(ctx context.Context) error {
		calls++
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls, "no attempt may start after cancellation")
}

func TestTransient_NilStaysNil(t *testing.T) {
	require.NoError(t, Transient(nil))
	assert.False(t, IsTransient(errors.New("plain")))
	assert.True(t, IsTransient(Transient(errors.New("wrapped"))))
}
