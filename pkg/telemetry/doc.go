// Package telemetry provides Prometheus metrics and OpenTelemetry tracing
// for the launcher shell.
//
// # Prometheus Metrics
//
// Metrics collected (namespace "launcher" by default):
//
//   - launcher_navigations_total: page loads by page and status
//   - launcher_navigation_duration_seconds: page load latency
//   - launcher_bridge_attempts_total: host invocation attempts by command, strategy and outcome
//   - launcher_bridge_unavailable_total: commands for which no strategy produced a result
//   - launcher_theme_changes_total: applied themes by value and source
//   - launcher_http_requests_total / launcher_http_request_duration_seconds: served requests
//
// Wiring:
//
//	reg := prometheus.NewRegistry()
//	m := telemetry.NewMetrics(telemetry.WithRegistry(reg))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// A nil *Metrics is valid and records nothing, so components can take an
// optional metrics dependency without nil checks.
//
// # Tracing
//
// StartSpan and EndSpan wrap the global OpenTelemetry tracer provider. The
// composer opens one span per navigation and the bridge one per command.
// Configure a provider with otel.SetTracerProvider before use; without one
// the spans are no-ops.
package telemetry
