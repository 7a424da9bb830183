// Package telemetry provides structured counter/histogram/gauge emission
// for the matcher cascade and its collaborators, trimmed of schema
// validation and batching since no component needs either: every event is
// handed to the sink as-is, one at a time, with no schema check.
package telemetry

import (
	"math"
	"strings"
	"sync"
	"time"
)

// MetricType names the shape of a MetricsEvent's Value field.
type MetricType string

const (
	TypeCounter   MetricType = "counter"
	TypeHistogram MetricType = "histogram"
	TypeGauge     MetricType = "gauge"
)

// DefaultHistogramBucketsMS are the bucket boundaries used for any metric
// whose name ends in "_ms".
var DefaultHistogramBucketsMS = []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000}

// HistogramBucket is one cumulative bucket in a HistogramSummary.
type HistogramBucket struct {
	LE    float64
	Count int64
}

// HistogramSummary is a pre-bucketed histogram observation.
type HistogramSummary struct {
	Count   int64
	Sum     float64
	Buckets []HistogramBucket
}

// MetricsEvent is the structured record a System emits. Sink is free to
// serialize it however it likes (the CLI's default Sink writes it through
// the obslog logger as a structured field).
type MetricsEvent struct {
	Timestamp string
	Name      string
	Type      MetricType
	Value     any
	Tags      map[string]string
	Unit      string
}

// Sink receives every MetricsEvent a System emits. The default System with
// a nil Sink discards events — telemetry is always optional.
type Sink interface {
	Emit(event MetricsEvent)
}

// System emits counters, gauges, and histograms to an optional Sink.
type System struct {
	mu   sync.Mutex
	sink Sink
}

// NewSystem creates a System. A nil sink means "telemetry disabled" —
// every call becomes a no-op, without needing a separate enabled flag.
func NewSystem(sink Sink) *System {
	return &System{sink: sink}
}

func (s *System) Counter(name string, value float64, tags map[string]string) {
	s.emit(MetricsEvent{Timestamp: now(), Name: name, Type: TypeCounter, Value: value, Tags: tags})
}

func (s *System) Gauge(name string, value float64, tags map[string]string) {
	s.emit(MetricsEvent{Timestamp: now(), Name: name, Type: TypeGauge, Value: value, Tags: tags})
}

// Histogram records a duration. Metrics whose name ends in "_ms" are
// bucketed per ADR-0007; others are emitted as a raw millisecond value.
func (s *System) Histogram(name string, duration time.Duration, tags map[string]string) {
	if strings.HasSuffix(name, "_ms") {
		summary := HistogramSummary{
			Count:   1,
			Sum:     float64(duration.Milliseconds()),
			Buckets: bucketize(duration, DefaultHistogramBucketsMS),
		}
		s.emit(MetricsEvent{Timestamp: now(), Name: name, Type: TypeHistogram, Value: summary, Tags: tags, Unit: "ms"})
		return
	}
	ms := float64(duration.Nanoseconds()) / 1e6
	s.emit(MetricsEvent{Timestamp: now(), Name: name, Type: TypeHistogram, Value: ms, Tags: tags, Unit: "ms"})
}

func (s *System) emit(event MetricsEvent) {
	s.mu.Lock()
	sink := s.sink
	s.mu.Unlock()
	if sink == nil {
		return
	}
	sink.Emit(event)
}

func bucketize(duration time.Duration, boundaries []float64) []HistogramBucket {
	ms := float64(duration.Milliseconds())
	out := make([]HistogramBucket, len(boundaries)+1)
	for i, b := range boundaries {
		count := int64(0)
		if ms <= b {
			count = 1
		}
		out[i] = HistogramBucket{LE: b, Count: count}
	}
	out[len(boundaries)] = HistogramBucket{LE: math.Inf(1), Count: 1}
	return out
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
