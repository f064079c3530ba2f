package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryWithConfig_ReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := NewRegistryWithConfig(Config{Registry: reg})
	require.NoError(t, err)
	second, err := NewRegistryWithConfig(Config{Registry: reg})
	require.NoError(t, err)

	first.Calls.WithLabelValues("throttle", "a").Inc()
	second.Calls.WithLabelValues("throttle", "a").Inc()

	require.Equal(t, 2.0, testutil.ToFloat64(first.Calls.WithLabelValues("throttle", "a")))
}

func TestNewRegistryWithConfig_DistinctNamespaces(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := NewRegistryWithConfig(Config{Registry: reg, Namespace: "one"})
	require.NoError(t, err)
	_, err = NewRegistryWithConfig(Config{Registry: reg, Namespace: "two"})
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	// Vectors without children are not gathered.
	require.Equal(t, 0, count)
}

func TestNewRegistryWithConfig_ConstLabels(t *testing.T) {
	reg := prometheus.NewRegistry()

	registry, err := NewRegistryWithConfig(Config{
		Registry: reg,
		Labels:   prometheus.Labels{"service": "editor"},
	})
	require.NoError(t, err)

	registry.Pending.WithLabelValues("debounce", "autosave").Set(1)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)

	labels := families[0].GetMetric()[0].GetLabel()
	found := false
	for _, l := range labels {
		if l.GetName() == "service" && l.GetValue() == "editor" {
			found = true
		}
	}
	require.True(t, found, "constant label should be attached")
}

func TestNewRegistryWithConfig_ConflictingCollector(t *testing.T) {
	reg := prometheus.NewRegistry()

	// Same fully-qualified name, different label dimensions.
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: DefaultNamespace,
		Name:      "calls_total",
		Help:      "conflicting",
	}))

	_, err := NewRegistryWithConfig(Config{Registry: reg})
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.True(t, cfg.Enabled)
	require.Equal(t, DefaultNamespace, cfg.Namespace)
	require.NotNil(t, cfg.Registry)
}
