package observability

import "sync"

// Metrics provides counter and histogram recording primitives.
type Metrics interface {
	IncCounter(name string, value float64, labels map[string]string)
	ObserveHistogram(name string, value float64, labels map[string]string)
}

// Canonical instrument names emitted by the client.
const (
	MetricRequests       = "ninebyfour.client.requests"
	MetricFailures       = "ninebyfour.client.failures"
	MetricRequestLatency = "ninebyfour.client.request_duration_ms"
	MetricPollTicks      = "ninebyfour.poll.ticks"
	MetricSourceFailures = "ninebyfour.merge.source_failures"
)

var defaultMetrics Metrics = noopMetrics{}

// SetMetrics overrides the global metrics implementation used by the client.
func SetMetrics(metrics Metrics) {
	if metrics == nil {
		defaultMetrics = noopMetrics{}
		return
	}
	defaultMetrics = metrics
}

// Telemetry returns the current global metrics collector.
func Telemetry() Metrics {
	return defaultMetrics
}

type noopMetrics struct{}

func (noopMetrics) IncCounter(string, float64, map[string]string)       {}
func (noopMetrics) ObserveHistogram(string, float64, map[string]string) {}

// ClientMetricsSnapshot captures client-focused runtime counters.
type ClientMetricsSnapshot struct {
	RequestsByOperation map[string]int `json:"requests_by_operation"`
	FailuresByKind      map[string]int `json:"failures_by_kind"`
	PollTicks           map[string]int `json:"poll_ticks"`
}

// RuntimeMetrics accumulates client counters in-memory. It implements
// Metrics, so it can be installed with SetMetrics to capture what the
// client emits, then read back with Snapshot.
type RuntimeMetrics struct {
	mu     sync.Mutex
	client ClientMetricsSnapshot
}

var _ Metrics = (*RuntimeMetrics)(nil)

// NewRuntimeMetrics constructs a metrics accumulator with empty maps.
func NewRuntimeMetrics() *RuntimeMetrics {
	metrics := new(RuntimeMetrics)
	metrics.client = ClientMetricsSnapshot{
		RequestsByOperation: make(map[string]int),
		FailuresByKind:      make(map[string]int),
		PollTicks:           make(map[string]int),
	}
	return metrics
}

// IncCounter buckets known counters into the snapshot by their defining
// label. Unknown names are dropped.
func (m *RuntimeMetrics) IncCounter(name string, value float64, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch name {
	case MetricRequests:
		m.client.RequestsByOperation[labels["operation"]] += int(value)
	case MetricFailures:
		m.client.FailuresByKind[labels["kind"]] += int(value)
	case MetricPollTicks:
		m.client.PollTicks[labels["subscription"]] += int(value)
	}
}

// ObserveHistogram is accepted but not accumulated; the snapshot only
// carries counters.
func (m *RuntimeMetrics) ObserveHistogram(string, float64, map[string]string) {}

// Snapshot copies the current metrics state for reporting.
func (m *RuntimeMetrics) Snapshot() ClientMetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := ClientMetricsSnapshot{
		RequestsByOperation: make(map[string]int, len(m.client.RequestsByOperation)),
		FailuresByKind:      make(map[string]int, len(m.client.FailuresByKind)),
		PollTicks:           make(map[string]int, len(m.client.PollTicks)),
	}
	for k, v := range m.client.RequestsByOperation {
		snapshot.RequestsByOperation[k] = v
	}
	for k, v := range m.client.FailuresByKind {
		snapshot.FailuresByKind[k] = v
	}
	for k, v := range m.client.PollTicks {
		snapshot.PollTicks[k] = v
	}
	return snapshot
}
