package dispatcher

import (
	"sync/atomic"
	"time"
)

// Metrics collects dispatch statistics. Counters are lock-free.
type Metrics struct {
	keyEvents atomic.Uint64
	outcomes  [outcomeCount]atomic.Uint64

	commandErrors atomic.Uint64
	panics        atomic.Uint64
	closeRequests atomic.Uint64

	totalLatency atomic.Int64
	peakLatency  atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordKeyDown records one dispatched key-down and its outcome.
func (m *Metrics) RecordKeyDown(o Outcome, latency time.Duration) {
	m.keyEvents.Add(1)
	if int(o) < len(m.outcomes) {
		m.outcomes[o].Add(1)
	}

	ns := latency.Nanoseconds()
	m.totalLatency.Add(ns)
	for {
		current := m.peakLatency.Load()
		if ns <= current {
			break
		}
		if m.peakLatency.CompareAndSwap(current, ns) {
			break
		}
	}
}

// RecordCommandError records a command that failed.
func (m *Metrics) RecordCommandError() {
	m.commandErrors.Add(1)
}

// RecordPanic records a command that panicked.
func (m *Metrics) RecordPanic() {
	m.panics.Add(1)
}

// RecordCloseRequest records a close-app request.
func (m *Metrics) RecordCloseRequest() {
	m.closeRequests.Add(1)
}

// Stats is a point-in-time view of the metrics.
type Stats struct {
	KeyEvents     uint64
	Unmatched     uint64
	Suppressed    uint64
	Commands      uint64
	Blocked       uint64
	ToolSwitches  uint64
	ToolNoops     uint64
	PassThrough   uint64
	CommandErrors uint64
	Panics        uint64
	CloseRequests uint64

	AvgLatency  time.Duration
	PeakLatency time.Duration
	Uptime      time.Duration
}

// Stats returns a snapshot of the metrics.
func (m *Metrics) Stats() Stats {
	s := Stats{
		KeyEvents:     m.keyEvents.Load(),
		Unmatched:     m.outcomes[OutcomeUnmatched].Load(),
		Suppressed:    m.outcomes[OutcomeSuppressed].Load(),
		Commands:      m.outcomes[OutcomeCommand].Load(),
		Blocked:       m.outcomes[OutcomeCommandBlocked].Load(),
		ToolSwitches:  m.outcomes[OutcomeToolSelected].Load(),
		ToolNoops:     m.outcomes[OutcomeToolNoop].Load(),
		PassThrough:   m.outcomes[OutcomePassThrough].Load(),
		CommandErrors: m.commandErrors.Load(),
		Panics:        m.panics.Load(),
		CloseRequests: m.closeRequests.Load(),
		PeakLatency:   time.Duration(m.peakLatency.Load()),
		Uptime:        time.Since(m.startTime),
	}
	if s.KeyEvents > 0 {
		s.AvgLatency = time.Duration(m.totalLatency.Load() / int64(s.KeyEvents))
	}
	return s
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.keyEvents.Store(0)
	for i := range m.outcomes {
		m.outcomes[i].Store(0)
	}
	m.commandErrors.Store(0)
	m.panics.Store(0)
	m.closeRequests.Store(0)
	m.totalLatency.Store(0)
	m.peakLatency.Store(0)
	m.startTime = time.Now()
}
