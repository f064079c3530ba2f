package regulator

import (
	"github.com/vnykmshr/regulator/pkg/metrics"
)

var _ metrics.Instrumentable = (*Regulator[struct{}])(nil)

// EnableMetrics enables metrics collection.
func (r *Regulator[T]) EnableMetrics(config metrics.Config) error {
	registry, err := metrics.NewRegistryWithConfig(config)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.registry = registry
	r.metricsEnabled = true
	r.observePending(r.stop != nil)
	return nil
}

// DisableMetrics disables metrics collection.
func (r *Regulator[T]) DisableMetrics() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metricsEnabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (r *Regulator[T]) MetricsEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.metricsEnabled
}

// The observe helpers below must be called with r.mu held.

func (r *Regulator[T]) observeCall() {
	if r.metricsEnabled {
		r.registry.Calls.WithLabelValues(r.mode.String(), r.name).Inc()
	}
}

func (r *Regulator[T]) observeExecution(edge string) {
	if r.metricsEnabled {
		r.registry.Executions.WithLabelValues(r.mode.String(), r.name, edge).Inc()
	}
}

func (r *Regulator[T]) observeSuppressed() {
	if r.metricsEnabled {
		r.registry.Suppressed.WithLabelValues(r.mode.String(), r.name).Inc()
	}
}

func (r *Regulator[T]) observeCancel() {
	if r.metricsEnabled {
		r.registry.Cancels.WithLabelValues(r.mode.String(), r.name).Inc()
	}
}

func (r *Regulator[T]) observePending(pending bool) {
	if !r.metricsEnabled {
		return
	}
	v := 0.0
	if pending {
		v = 1
	}
	r.registry.Pending.WithLabelValues(r.mode.String(), r.name).Set(v)
}
