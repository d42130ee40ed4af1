package monitoring

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
)

var (
	// durationBuckets span 5µs to about 1.3s.
	durationBuckets = prometheus.ExponentialBuckets(0.000005, 4, 10)

	// valueBuckets span 1 to 512.
	valueBuckets = prometheus.ExponentialBuckets(1, 2, 10)
)

// PrometheusMetricsCollector exports metrics through a Prometheus
// registerer. Vectors are created and registered on first use; their label
// names are the sorted tag keys of that first sample.
type PrometheusMetricsCollector struct {
	registerer prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
	errs       []error
}

// NewPrometheusMetricsCollector creates a collector registering on r, or on
// prometheus.DefaultRegisterer when r is nil.
func NewPrometheusMetricsCollector(r prometheus.Registerer) *PrometheusMetricsCollector {
	if r == nil {
		r = prometheus.DefaultRegisterer
	}
	return &PrometheusMetricsCollector{
		registerer: r,
		counters:   make(map[string]*prometheus.CounterVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

func (p *PrometheusMetricsCollector) IncrementCounter(name string, tags map[string]string) {
	fqName := metricName(name, "_total")
	labels := labelNames(tags)

	p.mu.Lock()
	vec, ok := p.counters[fqName]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: fqName,
			Help: "Number of " + strings.ReplaceAll(name, ".", " ") + " events.",
		}, labels)
		vec = register(p, vec)
		p.counters[fqName] = vec
	}
	p.mu.Unlock()

	if vec == nil {
		return
	}
	if counter, err := vec.GetMetricWith(prometheus.Labels(tags)); err == nil {
		counter.Inc()
	} else {
		p.recordError(err)
	}
}

func (p *PrometheusMetricsCollector) RecordTiming(name string, duration time.Duration, tags map[string]string) {
	p.observe(metricName(name, "_seconds"), name, durationBuckets, duration.Seconds(), tags)
}

func (p *PrometheusMetricsCollector) RecordValue(name string, value float64, tags map[string]string) {
	p.observe(metricName(name, ""), name, valueBuckets, value, tags)
}

func (p *PrometheusMetricsCollector) observe(fqName, name string, buckets []float64, value float64, tags map[string]string) {
	p.mu.Lock()
	vec, ok := p.histograms[fqName]
	if !ok {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    fqName,
			Help:    "Distribution of " + strings.ReplaceAll(name, ".", " ") + ".",
			Buckets: buckets,
		}, labelNames(tags))
		vec = register(p, vec)
		p.histograms[fqName] = vec
	}
	p.mu.Unlock()

	if vec == nil {
		return
	}
	if histogram, err := vec.GetMetricWith(prometheus.Labels(tags)); err == nil {
		histogram.Observe(value)
	} else {
		p.recordError(err)
	}
}

// Flush reports the registration and labelling problems met so far.
// Prometheus is pull based, so there is nothing to push.
func (p *PrometheusMetricsCollector) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return errors.Join(p.errs...)
}

func (p *PrometheusMetricsCollector) recordError(err error) {
	p.mu.Lock()
	p.errs = append(p.errs, err)
	p.mu.Unlock()
}

// register registers vec, reusing an identical collector that is already
// registered. It returns nil when the registration fails. p.mu must be held.
func register[V prometheus.Collector](p *PrometheusMetricsCollector, vec V) V {
	err := p.registerer.Register(vec)
	if err == nil {
		return vec
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(V); ok {
			return existing
		}
	}

	p.errs = append(p.errs, err)
	var zero V
	return zero
}

// metricName converts a dotted metric name into a Prometheus one and
// appends the unit suffix when it is missing.
func metricName(name, suffix string) string {
	fqName := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == ':':
			return r
		default:
			return '_'
		}
	}, name)
	if !strings.HasSuffix(fqName, suffix) {
		fqName += suffix
	}
	return fqName
}

func labelNames(tags map[string]string) []string {
	names := lo.Keys(tags)
	slices.Sort(names)
	return names
}
