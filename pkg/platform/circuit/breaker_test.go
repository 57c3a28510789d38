package circuit

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var errRemote = errors.New("remote failed")

func failing() error { return errRemote }
func passing() error { return nil }

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b := New("analyzer", WithFailureThreshold(3))

	for range 2 {
		change, err := b.Execute(failing)
		require.ErrorIs(t, err, errRemote)
		assert.False(t, change.Opened)
	}
	change, _ := b.Execute(failing)
	assert.True(t, change.Opened)
	assert.Equal(t, StateOpen, b.State())

	_, err := b.Execute(passing)
	assert.ErrorIs(t, err, ErrOpen)
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b := New("analyzer", WithFailureThreshold(2))

	_, _ = b.Execute(failing)
	_, _ = b.Execute(passing)
	_, _ = b.Execute(failing)

	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_HalfOpenProbe(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	b := New("analyzer", WithFailureThreshold(1), WithCooldown(10*time.Second), WithClock(clock.Now))

	_, _ = b.Execute(failing)
	require.Equal(t, StateOpen, b.State())

	clock.Advance(10 * time.Second)
	assert.Equal(t, StateHalfOpen, b.State())

	t.Run("only one probe is admitted", func(t *testing.T) {
		assert.True(t, b.Allow())
		assert.False(t, b.Allow())
	})

	t.Run("failed probe re-opens", func(t *testing.T) {
		b.RecordFailure()
		assert.Equal(t, StateOpen, b.State())
	})

	t.Run("successful probe closes", func(t *testing.T) {
		clock.Advance(10 * time.Second)
		change, err := b.Execute(passing)
		require.NoError(t, err)
		assert.True(t, change.Closed)
		assert.Equal(t, StateClosed, b.State())
	})
}

func TestBreaker_IgnoredErrorsCountAsSuccess(t *testing.T) {
	b := New("analyzer", WithFailureThreshold(1))
	clientErr := errors.New("bad image")

	_, err := b.Execute(func() error { return clientErr }, func(err error) bool { return errors.Is(err, clientErr) })

	assert.ErrorIs(t, err, clientErr)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_Reset(t *testing.T) {
	b := New("analyzer", WithFailureThreshold(1))
	_, _ = b.Execute(failing)
	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "closed", b.State().String())
}
