// Package metrics provides Prometheus instrumentation for regulators.
//
// # Quick Start
//
// Enable metrics through the regulator configuration:
//
//	cfg := regulator.DefaultConfig()
//	cfg.Wait = 200 * time.Millisecond
//	cfg.Name = "search_box"
//	cfg.Metrics = metrics.DefaultConfig()
//
//	r, err := regulator.NewWithConfig(search, cfg)
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Available Metrics
//
//   - regulator_calls_total: Total number of wrapper invocations
//   - regulator_executions_total: Executions of the wrapped function, by edge
//   - regulator_suppressed_total: Calls discarded without executing
//   - regulator_cancels_total: Pending executions discarded by cancel
//   - regulator_pending: 1 while a scheduled execution is outstanding
//
// # Labels
//
//   - mode: "throttle" or "debounce"
//   - regulator_name: name of the regulator instance
//   - edge: "leading", "trailing" or "flush" (executions only)
//
// # Custom Registry
//
// Collectors are registered on Config.Registry. Registering the same
// namespace twice on one registerer reuses the existing collectors, so any
// number of regulators may share a registry:
//
//	reg := prometheus.NewRegistry()
//	cfg.Metrics = metrics.Config{Enabled: true, Registry: reg, Namespace: "ui"}
//
// # Runtime Control
//
// Regulators implement Instrumentable:
//
//	r.DisableMetrics()
//	err := r.EnableMetrics(metrics.DefaultConfig())
//	enabled := r.MetricsEnabled()
package metrics
