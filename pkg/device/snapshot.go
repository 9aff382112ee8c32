package device

import (
	"context"
	"sync"
	"time"
)

// Snapshot is a point-in-time view of the device state that conditions
// are evaluated against. It is captured once per rule execution so that
// all conditions of a rule see the same state.
type Snapshot struct {
	Now           time.Time
	BatteryLevel  int // percent, 0-100
	Charging      bool
	Connected     bool
	NetworkType   string // "wifi", "ethernet", "cellular", ""
	ForegroundApp string
	ScreenOn      bool
}

// Provider supplies device state snapshots.
type Provider interface {
	// Snapshot returns the current device state.
	Snapshot(ctx context.Context) (Snapshot, error)
}

// StaticProvider returns a fixed snapshot with the clock filled in at
// call time. It is used in tests and as a fallback when no platform
// provider is available.
type StaticProvider struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
}

// NewStaticProvider creates a provider that always returns snap.
func NewStaticProvider(snap Snapshot) *StaticProvider {
	return &StaticProvider{
		snap: snap,
		now:  time.Now,
	}
}

// Snapshot returns the configured state. If the configured snapshot has
// a zero timestamp, the current time is used instead.
func (p *StaticProvider) Snapshot(ctx context.Context) (Snapshot, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snap := p.snap
	if snap.Now.IsZero() {
		snap.Now = p.now()
	}
	return snap, nil
}

// Set replaces the snapshot returned by subsequent calls.
func (p *StaticProvider) Set(snap Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.snap = snap
}
