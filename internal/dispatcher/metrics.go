package dispatcher

import (
	"sort"
	"sync"
	"time"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	// Per-name metrics
	actionMetrics map[string]*ActionMetrics

	// Names that were dispatched without a registered action
	unmatched map[string]uint64

	// Global counters
	totalDispatches uint64
	totalUnmatched  uint64
	totalPanics     uint64

	// Timing
	totalDuration time.Duration
}

// ActionMetrics holds metrics for a specific event name.
type ActionMetrics struct {
	Name          string
	DispatchCount uint64
	PanicCount    uint64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	LastDispatch  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		actionMetrics: make(map[string]*ActionMetrics),
		unmatched:     make(map[string]uint64),
	}
}

// RecordDispatch records a matched dispatch.
func (m *Metrics) RecordDispatch(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration

	am := m.actionMetrics[name]
	if am == nil {
		am = &ActionMetrics{
			Name:        name,
			MinDuration: duration,
			MaxDuration: duration,
		}
		m.actionMetrics[name] = am
	}

	am.DispatchCount++
	am.TotalDuration += duration
	am.LastDispatch = time.Now()

	if duration < am.MinDuration {
		am.MinDuration = duration
	}
	if duration > am.MaxDuration {
		am.MaxDuration = duration
	}
}

// RecordUnmatched records a dispatch for a name without an action.
func (m *Metrics) RecordUnmatched(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalUnmatched++
	m.unmatched[name]++
}

// RecordPanic records a panic recovery.
func (m *Metrics) RecordPanic(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalPanics++

	am := m.actionMetrics[name]
	if am == nil {
		am = &ActionMetrics{Name: name}
		m.actionMetrics[name] = am
	}
	am.PanicCount++
}

// TotalDispatches returns the number of matched dispatches.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalUnmatched returns the number of dispatches without an action.
func (m *Metrics) TotalUnmatched() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalUnmatched
}

// TotalPanics returns the total number of panics recovered.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// Unmatched returns how often name was dispatched without an action.
func (m *Metrics) Unmatched(name string) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.unmatched[name]
}

// AverageDuration returns the average handler duration.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.totalDispatches == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalDispatches)
}

// ActionStats returns a copy of the metrics for name, or nil.
func (m *Metrics) ActionStats(name string) *ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	am := m.actionMetrics[name]
	if am == nil {
		return nil
	}

	c := *am
	return &c
}

// TopActions returns the n most dispatched names. n <= 0 returns none.
func (m *Metrics) TopActions(n int) []*ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	actions := make([]*ActionMetrics, 0, len(m.actionMetrics))
	for _, am := range m.actionMetrics {
		c := *am
		actions = append(actions, &c)
	}

	sort.Slice(actions, func(i, j int) bool {
		if actions[i].DispatchCount != actions[j].DispatchCount {
			return actions[i].DispatchCount > actions[j].DispatchCount
		}
		return actions[i].Name < actions[j].Name
	})

	n = max(0, min(n, len(actions)))
	return actions[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actionMetrics = make(map[string]*ActionMetrics)
	m.unmatched = make(map[string]uint64)
	m.totalDispatches = 0
	m.totalUnmatched = 0
	m.totalPanics = 0
	m.totalDuration = 0
}

// MetricsSnapshot is a point-in-time copy of the global counters.
type MetricsSnapshot struct {
	TotalDispatches uint64
	TotalUnmatched  uint64
	TotalPanics     uint64
	TotalDuration   time.Duration
	AverageDuration time.Duration
	ActionCount     int
	Timestamp       time.Time
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := MetricsSnapshot{
		TotalDispatches: m.totalDispatches,
		TotalUnmatched:  m.totalUnmatched,
		TotalPanics:     m.totalPanics,
		TotalDuration:   m.totalDuration,
		ActionCount:     len(m.actionMetrics),
		Timestamp:       time.Now(),
	}

	if m.totalDispatches > 0 {
		snapshot.AverageDuration = m.totalDuration / time.Duration(m.totalDispatches)
	}

	return snapshot
}

// AverageActionDuration returns the average duration for a specific name.
func (am *ActionMetrics) AverageActionDuration() time.Duration {
	if am.DispatchCount == 0 {
		return 0
	}
	return am.TotalDuration / time.Duration(am.DispatchCount)
}
