package metrics

import (
	"kampus/shared/failure"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "kampus"

	ResultOK       = "ok"
	ResultError    = "error"
	ResultNotFound = "not_found"
	ResultRejected = "rejected"

	FallbackMissing = "missing"
	FallbackCorrupt = "corrupt"
)

// Metrics groups the collectors of one session on a private registry.
type Metrics struct {
	Registry          *prometheus.Registry
	Mutations         *prometheus.CounterVec
	SnapshotWrites    *prometheus.CounterVec
	SnapshotFallbacks *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		Mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_mutations_total",
				Help:      "Store commands by store, operation and result",
			},
			[]string{"store", "operation", "result"},
		),
		SnapshotWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshot_writes_total",
				Help:      "Snapshot writes by storage key and result",
			},
			[]string{"key", "result"},
		),
		SnapshotFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshot_load_fallbacks_total",
				Help:      "Loads that fell back to defaults, by storage key and reason",
			},
			[]string{"key", "reason"},
		),
	}
}

func (m *Metrics) ObserveMutation(store, operation string, err error) {
	m.Mutations.WithLabelValues(store, operation, resultOf(err)).Inc()
}

func (m *Metrics) ObserveSnapshotWrite(key string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}

	m.SnapshotWrites.WithLabelValues(key, result).Inc()
}

func (m *Metrics) ObserveFallback(key, reason string) {
	m.SnapshotFallbacks.WithLabelValues(key, reason).Inc()
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case failure.IsNotFound(err):
		return ResultNotFound
	case failure.IsBadRequest(err), failure.IsConflict(err):
		return ResultRejected
	default:
		return ResultError
	}
}

// Snapshot flattens every counter of the registry into "name{labels}" -> value, for
// printing without an exposition endpoint.
func (m *Metrics) Snapshot() (map[string]float64, error) {
	families, err := m.Registry.Gather()
	if err != nil {
		return nil, err
	}

	out := map[string]float64{}

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			name := family.GetName()

			labels := ""
			for i, pair := range metric.GetLabel() {
				if i > 0 {
					labels += ","
				}

				labels += pair.GetName() + "=" + pair.GetValue()
			}

			if labels != "" {
				name += "{" + labels + "}"
			}

			out[name] = metric.GetCounter().GetValue()
		}
	}

	return out, nil
}
