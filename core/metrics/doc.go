// Package metrics defines the recording interfaces and run records used by
// the optimizer's observability sinks. Concrete exporters live under
// infra/metrics and depend only on these types.
package metrics
