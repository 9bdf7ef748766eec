// Package metrics records per-operation outcomes and latencies for the
// record manager. PrometheusRecorder keeps them in a private registry so
// several instances (tests, multiple stores) never collide.
package metrics

import (
	"context"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "recordkeeper"

	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Recorder observes the result of one operation.
type Recorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) Observe(context.Context, string, bool, time.Duration) {}

type PrometheusRecorder struct {
	registry  *prometheus.Registry
	total     *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

func NewPrometheusRecorder() *PrometheusRecorder {
	r := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Record manager operations by outcome.",
		}, []string{"operation", "outcome"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Record manager operation latency.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 3, 5, 10},
		}, []string{"operation"}),
	}
	r.registry.MustRegister(r.total, r.durations)
	return r
}

// Registry exposes the private registry, e.g. for promhttp or testutil.
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *PrometheusRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	outcome := OutcomeError
	if success {
		outcome = OutcomeSuccess
	}
	r.total.WithLabelValues(operation, outcome).Inc()
	r.durations.WithLabelValues(operation).Observe(duration.Seconds())
}

// OperationStats is the aggregate for one operation.
type OperationStats struct {
	Operation     string
	Success       uint64
	Errors        uint64
	TotalDuration time.Duration
}

// Snapshot gathers the registry into per-operation totals sorted by name.
func (r *PrometheusRecorder) Snapshot() ([]OperationStats, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}

	byOp := map[string]*OperationStats{}
	get := func(op string) *OperationStats {
		s, ok := byOp[op]
		if !ok {
			s = &OperationStats{Operation: op}
			byOp[op] = s
		}
		return s
	}

	for _, mf := range families {
		switch mf.GetName() {
		case namespace + "_operations_total":
			for _, m := range mf.GetMetric() {
				labels := map[string]string{}
				for _, lp := range m.GetLabel() {
					labels[lp.GetName()] = lp.GetValue()
				}
				s := get(labels["operation"])
				n := uint64(m.GetCounter().GetValue())
				if labels["outcome"] == OutcomeSuccess {
					s.Success += n
				} else {
					s.Errors += n
				}
			}
		case namespace + "_operation_duration_seconds":
			for _, m := range mf.GetMetric() {
				var op string
				for _, lp := range m.GetLabel() {
					if lp.GetName() == "operation" {
						op = lp.GetValue()
					}
				}
				secs := m.GetHistogram().GetSampleSum()
				get(op).TotalDuration += time.Duration(secs * float64(time.Second))
			}
		}
	}

	out := make([]OperationStats, 0, len(byOp))
	for _, s := range byOp {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Operation < out[j].Operation })
	return out, nil
}
