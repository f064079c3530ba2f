package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Example_basicUsage demonstrates basic metrics configuration.
func Example_basicUsage() {
	// Create a separate registry for this example
	registry := NewRegistry(prometheus.NewRegistry())

	registry.Calls.WithLabelValues("throttle", "search").Add(10)
	registry.Executions.WithLabelValues("throttle", "search", EdgeTrailing).Add(2)
	registry.Suppressed.WithLabelValues("throttle", "search").Add(8)

	fmt.Println(testutil.ToFloat64(registry.Calls.WithLabelValues("throttle", "search")))
	fmt.Println(testutil.ToFloat64(registry.Suppressed.WithLabelValues("throttle", "search")))

	// Output:
	// 10
	// 8
}

// Example_customNamespace demonstrates overriding the metric namespace.
func Example_customNamespace() {
	reg := prometheus.NewRegistry()

	registry, err := NewRegistryWithConfig(Config{
		Enabled:   true,
		Registry:  reg,
		Namespace: "ui",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	registry.Cancels.WithLabelValues("debounce", "resize").Inc()

	families, _ := reg.Gather()
	for _, mf := range families {
		fmt.Println(mf.GetName())
	}

	// Output:
	// ui_cancels_total
}
