// Package metrics provides Prometheus instrumentation for regulators.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Label values for the edge label of Executions.
const (
	EdgeLeading  = "leading"
	EdgeTrailing = "trailing"
	EdgeFlush    = "flush"
)

// Registry holds all metric instances for regulators.
type Registry struct {
	Calls      *prometheus.CounterVec
	Executions *prometheus.CounterVec
	Suppressed *prometheus.CounterVec
	Cancels    *prometheus.CounterVec
	Pending    *prometheus.GaugeVec
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
// It panics if a collector cannot be registered.
func NewRegistry(reg prometheus.Registerer) *Registry {
	registry, err := NewRegistryWithConfig(Config{Registry: reg})
	if err != nil {
		panic(err)
	}
	return registry
}

// NewRegistryWithConfig creates a metrics registry from config. Collectors
// already registered under the same names are reused, so several
// regulators can share one Prometheus registerer.
func NewRegistryWithConfig(config Config) (*Registry, error) {
	reg := config.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	namespace := config.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	labels := []string{"mode", "regulator_name"}

	calls, err := register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "calls_total",
			Help:        "Total number of wrapper invocations",
			ConstLabels: config.Labels,
		},
		labels,
	))
	if err != nil {
		return nil, err
	}

	executions, err := register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "executions_total",
			Help:        "Total number of executions of the wrapped function",
			ConstLabels: config.Labels,
		},
		append(labels, "edge"),
	))
	if err != nil {
		return nil, err
	}

	suppressed, err := register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "suppressed_total",
			Help:        "Total number of calls discarded without executing",
			ConstLabels: config.Labels,
		},
		labels,
	))
	if err != nil {
		return nil, err
	}

	cancels, err := register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "cancels_total",
			Help:        "Total number of pending executions discarded by cancel",
			ConstLabels: config.Labels,
		},
		labels,
	))
	if err != nil {
		return nil, err
	}

	pending, err := register(reg, prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "pending",
			Help:        "Whether a scheduled execution is outstanding (0 or 1)",
			ConstLabels: config.Labels,
		},
		labels,
	))
	if err != nil {
		return nil, err
	}

	return &Registry{
		Calls:      calls,
		Executions: executions,
		Suppressed: suppressed,
		Cancels:    cancels,
		Pending:    pending,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}
