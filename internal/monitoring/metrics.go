package monitoring

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

// MetricsCollector receives the counters, timings and values recorded
// around serialization. Tags become labels.
type MetricsCollector interface {
	IncrementCounter(name string, tags map[string]string)
	RecordTiming(name string, duration time.Duration, tags map[string]string)
	RecordValue(name string, value float64, tags map[string]string)

	// Flush reports problems met while recording, if any.
	Flush() error
}

// NoOpMetricsCollector discards everything.
type NoOpMetricsCollector struct{}

func (*NoOpMetricsCollector) IncrementCounter(string, map[string]string)            {}
func (*NoOpMetricsCollector) RecordTiming(string, time.Duration, map[string]string) {}
func (*NoOpMetricsCollector) RecordValue(string, float64, map[string]string)        {}
func (*NoOpMetricsCollector) Flush() error                                          { return nil }

// series holds everything recorded under one name and tag set.
type series struct {
	count   int64
	timings []time.Duration
	values  []float64
}

// InMemoryMetricsCollector keeps every recording in memory. It is meant
// for tests.
type InMemoryMetricsCollector struct {
	mu     sync.RWMutex
	series map[string]*series
}

// NewInMemoryMetricsCollector creates an empty in-memory collector.
func NewInMemoryMetricsCollector() *InMemoryMetricsCollector {
	return &InMemoryMetricsCollector{series: make(map[string]*series)}
}

// record runs fn on the series of name and tags under the write lock.
func (m *InMemoryMetricsCollector) record(name string, tags map[string]string, fn func(*series)) {
	key := keyWithTags(name, tags)
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.series[key]
	if !ok {
		s = &series{}
		m.series[key] = s
	}
	fn(s)
}

// lookup returns a copy of the series of name and tags.
func (m *InMemoryMetricsCollector) lookup(name string, tags map[string]string) series {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.series[keyWithTags(name, tags)]
	if !ok {
		return series{}
	}
	return series{count: s.count, timings: slices.Clone(s.timings), values: slices.Clone(s.values)}
}

func (m *InMemoryMetricsCollector) IncrementCounter(name string, tags map[string]string) {
	m.record(name, tags, func(s *series) { s.count++ })
}

func (m *InMemoryMetricsCollector) RecordTiming(name string, duration time.Duration, tags map[string]string) {
	m.record(name, tags, func(s *series) { s.timings = append(s.timings, duration) })
}

func (m *InMemoryMetricsCollector) RecordValue(name string, value float64, tags map[string]string) {
	m.record(name, tags, func(s *series) { s.values = append(s.values, value) })
}

func (m *InMemoryMetricsCollector) Flush() error {
	return nil
}

// GetCounter returns the counter of name with exactly these tags.
func (m *InMemoryMetricsCollector) GetCounter(name string, tags map[string]string) int64 {
	return m.lookup(name, tags).count
}

// CounterTotal sums a counter over every tag combination.
func (m *InMemoryMetricsCollector) CounterTotal(name string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var total int64
	for key, s := range m.series {
		if key == name || strings.HasPrefix(key, name+",") {
			total += s.count
		}
	}
	return total
}

// GetTimings returns a copy of the timings of name with these tags.
func (m *InMemoryMetricsCollector) GetTimings(name string, tags map[string]string) []time.Duration {
	return m.lookup(name, tags).timings
}

// GetValues returns a copy of the values of name with these tags.
func (m *InMemoryMetricsCollector) GetValues(name string, tags map[string]string) []float64 {
	return m.lookup(name, tags).values
}

// Reset drops every recording.
func (m *InMemoryMetricsCollector) Reset() {
	m.mu.Lock()
	m.series = make(map[string]*series)
	m.mu.Unlock()
}

// keyWithTags builds `name,k1=v1,k2=v2` with tags in key order.
func keyWithTags(name string, tags map[string]string) string {
	if len(tags) == 0 {
		return name
	}

	keys := lo.Keys(tags)
	slices.Sort(keys)

	var b strings.Builder
	b.WriteString(name)
	for _, k := range keys {
		b.WriteString(",")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(tags[k])
	}
	return b.String()
}
