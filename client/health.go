package client

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const DefaultHealthInterval = 30 * time.Second

type Status string

const (
	StatusUnknown      Status = "unknown"
	StatusConnected    Status = "connected"
	StatusDisconnected Status = "disconnected"
)

type HealthState struct {
	Status    Status
	LastError error
	CheckedAt time.Time
}

// Pinger is anything that can report API reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthMonitor polls the API on a fixed interval and remembers the last
// outcome. onChange runs after every status transition.
type HealthMonitor struct {
	pinger   Pinger
	interval time.Duration
	onChange func(prev, next HealthState)

	mu    sync.RWMutex
	state HealthState
	cron  *cron.Cron
	done  chan struct{}
}

func NewHealthMonitor(p Pinger, interval time.Duration, onChange func(prev, next HealthState)) *HealthMonitor {
	if interval <= 0 {
		interval = DefaultHealthInterval
	}
	return &HealthMonitor{
		pinger:   p,
		interval: interval,
		onChange: onChange,
		state:    HealthState{Status: StatusUnknown},
	}
}

// Start checks once right away, then every interval until Stop or ctx ends.
// Starting a running monitor replaces the previous schedule.
func (m *HealthMonitor) Start(ctx context.Context) error {
	m.Stop()
	m.Check(ctx)

	c := cron.New()
	if _, err := c.AddFunc("@every "+m.interval.String(), func() { m.Check(ctx) }); err != nil {
		return err
	}
	done := make(chan struct{})

	m.mu.Lock()
	m.cron = c
	m.done = done
	m.mu.Unlock()
	c.Start()

	go func() {
		select {
		case <-ctx.Done():
			m.halt(done)
		case <-done:
		}
	}()
	return nil
}

// Stop halts polling and waits for a running check to finish.
func (m *HealthMonitor) Stop() {
	m.halt(nil)
}

// halt stops the current run. A non-nil run only stops the schedule it
// belongs to.
func (m *HealthMonitor) halt(run chan struct{}) {
	m.mu.Lock()
	if m.done == nil || (run != nil && run != m.done) {
		m.mu.Unlock()
		return
	}
	c, done := m.cron, m.done
	m.cron, m.done = nil, nil
	m.mu.Unlock()

	close(done)
	<-c.Stop().Done()
}

// Check pings once and records the result.
func (m *HealthMonitor) Check(ctx context.Context) HealthState {
	err := m.pinger.Ping(ctx)
	next := HealthState{Status: StatusConnected, CheckedAt: time.Now()}
	if err != nil {
		next.Status = StatusDisconnected
		next.LastError = err
	}

	m.mu.Lock()
	prev := m.state
	m.state = next
	m.mu.Unlock()

	if prev.Status != next.Status && m.onChange != nil {
		m.onChange(prev, next)
	}
	return next
}

func (m *HealthMonitor) State() HealthState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}
