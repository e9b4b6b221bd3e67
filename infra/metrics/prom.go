package metrics

import (
	coremetrics "github.com/mgallet/horaire/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records optimization runs in Prometheus metrics.
type PromSink struct {
	scheduled *prometheus.CounterVec
	failed    *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	hours     *prometheus.GaugeVec
}

// NewPromSink registers optimizer metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	scheduled := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "optimizer_tasks_scheduled_total",
		Help: "Total number of tasks successfully scheduled",
	}, []string{"algorithm"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "optimizer_tasks_failed_total",
		Help: "Total number of tasks the optimizer could not place",
	}, []string{"algorithm"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "optimizer_run_duration_seconds",
		Help:    "Wall clock duration of optimization runs",
		Buckets: prometheus.DefBuckets,
	}, []string{"algorithm"})
	hours := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "optimizer_scheduled_hours",
		Help: "Total hours placed by the last optimization run",
	}, []string{"algorithm"})

	if err := reg.Register(scheduled); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			scheduled = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(failed); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			failed = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(hours); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			hours = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{scheduled: scheduled, failed: failed, duration: duration, hours: hours}, nil
}

// RecordRun updates the counters for one optimization run.
func (s *PromSink) RecordRun(rec coremetrics.RunRecord) error {
	s.scheduled.WithLabelValues(rec.Algorithm).Add(float64(rec.Scheduled))
	s.failed.WithLabelValues(rec.Algorithm).Add(float64(rec.Failed))
	s.duration.WithLabelValues(rec.Algorithm).Observe(rec.Duration.Seconds())
	s.hours.WithLabelValues(rec.Algorithm).Set(rec.ScheduledHours)
	return nil
}
