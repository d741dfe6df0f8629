package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakePinger) fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakePinger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestHealthMonitorTransitions(t *testing.T) {
	p := &fakePinger{}
	var transitions []Status
	m := NewHealthMonitor(p, time.Minute, func(prev, next HealthState) {
		transitions = append(transitions, next.Status)
	})
	ctx := context.Background()

	assert.Equal(t, StatusUnknown, m.State().Status)

	state := m.Check(ctx)
	assert.Equal(t, StatusConnected, state.Status)
	assert.NoError(t, state.LastError)
	assert.False(t, state.CheckedAt.IsZero())

	// same status twice does not fire the callback
	m.Check(ctx)

	down := errors.New("connection refused")
	p.fail(down)
	state = m.Check(ctx)
	assert.Equal(t, StatusDisconnected, state.Status)
	assert.ErrorIs(t, state.LastError, down)
	assert.Equal(t, state, m.State())

	p.fail(nil)
	m.Check(ctx)

	assert.Equal(t, []Status{StatusConnected, StatusDisconnected, StatusConnected}, transitions)
}

func TestHealthMonitorDefaultInterval(t *testing.T) {
	m := NewHealthMonitor(&fakePinger{}, 0, nil)
	assert.Equal(t, DefaultHealthInterval, m.interval)
}

func TestHealthMonitorStartStop(t *testing.T) {
	p := &fakePinger{}
	m := NewHealthMonitor(p, time.Second, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, m.Start(ctx))
	assert.Equal(t, 1, p.count())
	assert.Equal(t, StatusConnected, m.State().Status)

	assert.Eventually(t, func() bool { return p.count() >= 2 }, 3*time.Second, 50*time.Millisecond)

	m.Stop()
	stopped := p.count()
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, stopped, p.count())

	// stopping twice is harmless
	m.Stop()
}

func TestHealthMonitorRestartReplacesSchedule(t *testing.T) {
	p := &fakePinger{}
	m := NewHealthMonitor(p, time.Second, nil)
	first, cancelFirst := context.WithCancel(context.Background())
	defer cancelFirst()

	require.NoError(t, m.Start(first))
	require.NoError(t, m.Start(context.Background()))
	assert.Equal(t, 2, p.count())

	// the first context no longer owns the schedule
	cancelFirst()
	assert.Eventually(t, func() bool { return p.count() >= 3 }, 3*time.Second, 50*time.Millisecond)

	m.Stop()
	stopped := p.count()
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, stopped, p.count(), "only one schedule should have been running")
}

func TestHealthMonitorContextCancelStops(t *testing.T) {
	p := &fakePinger{}
	m := NewHealthMonitor(p, time.Second, nil)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, m.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool {
		m.mu.RLock()
		defer m.mu.RUnlock()
		return m.cron == nil
	}, time.Second, 10*time.Millisecond)
}
