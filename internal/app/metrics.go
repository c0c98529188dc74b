package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks session activity outside shortcut dispatch, which the
// dispatcher counts itself.
type Metrics struct {
	polls            atomic.Uint64
	quickToolChanges atomic.Uint64
	reloads          atomic.Uint64
	reloadFailures   atomic.Uint64
	keymapWarnings   atomic.Uint64
	lastReloadNs     atomic.Int64

	startTime time.Time
}

// NewMetrics creates a metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordPoll records one held-key poll and whether the quick tool changed.
func (m *Metrics) RecordPoll(changed bool) {
	m.polls.Add(1)
	if changed {
		m.quickToolChanges.Add(1)
	}
}

// RecordReload records a keymap reload with its warning count.
func (m *Metrics) RecordReload(duration time.Duration, warnings int, failed bool) {
	m.reloads.Add(1)
	m.lastReloadNs.Store(duration.Nanoseconds())
	m.keymapWarnings.Add(uint64(warnings))
	if failed {
		m.reloadFailures.Add(1)
	}
}

// Snapshot returns a point-in-time copy.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Uptime:           time.Since(m.startTime),
		Polls:            m.polls.Load(),
		QuickToolChanges: m.quickToolChanges.Load(),
		Reloads:          m.reloads.Load(),
		ReloadFailures:   m.reloadFailures.Load(),
		KeymapWarnings:   m.keymapWarnings.Load(),
		LastReload:       time.Duration(m.lastReloadNs.Load()),
	}
}

// MetricsSnapshot is a point-in-time view of Metrics.
type MetricsSnapshot struct {
	Uptime           time.Duration
	Polls            uint64
	QuickToolChanges uint64
	Reloads          uint64
	ReloadFailures   uint64
	KeymapWarnings   uint64
	LastReload       time.Duration
}
