package telemetry

import (
	"sync/atomic"
	"time"
)

// QueueMetrics counts the traffic through one command queue.
type QueueMetrics struct {
	appends        atomic.Uint64
	rejections     atomic.Uint64
	dequeues       atomic.Uint64
	searches       atomic.Uint64
	searchMisses   atomic.Uint64
	searchDuration atomic.Int64
}

// Snapshot is a point-in-time copy of QueueMetrics.
type Snapshot struct {
	Appends       uint64
	Rejections    uint64
	Dequeues      uint64
	Searches      uint64
	SearchMisses  uint64
	AverageSearch time.Duration
}

func NewQueueMetrics() *QueueMetrics {
	return &QueueMetrics{}
}

// RecordAppend counts an append attempt.
func (m *QueueMetrics) RecordAppend(err error) {
	if err != nil {
		m.rejections.Add(1)
		return
	}
	m.appends.Add(1)
}

// RecordDequeue counts a successful dequeue.
func (m *QueueMetrics) RecordDequeue() {
	m.dequeues.Add(1)
}

// TraceSearch starts timing a line search and returns the function that
// reports its outcome.
func (m *QueueMetrics) TraceSearch() func(found bool) {
	start := time.Now()
	m.searches.Add(1)
	return func(found bool) {
		m.searchDuration.Add(time.Since(start).Nanoseconds())
		if !found {
			m.searchMisses.Add(1)
		}
	}
}

// Snapshot returns the collected values.
func (m *QueueMetrics) Snapshot() Snapshot {
	s := Snapshot{
		Appends:      m.appends.Load(),
		Rejections:   m.rejections.Load(),
		Dequeues:     m.dequeues.Load(),
		Searches:     m.searches.Load(),
		SearchMisses: m.searchMisses.Load(),
	}
	if s.Searches > 0 {
		s.AverageSearch = time.Duration(m.searchDuration.Load() / int64(s.Searches))
	}
	return s
}

// Reset zeroes every counter.
func (m *QueueMetrics) Reset() {
	m.appends.Store(0)
	m.rejections.Store(0)
	m.dequeues.Store(0)
	m.searches.Store(0)
	m.searchMisses.Store(0)
	m.searchDuration.Store(0)
}
