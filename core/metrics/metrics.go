package metrics

import "time"

// RunRecord captures the outcome of one optimization run.
type RunRecord struct {
	Algorithm      string
	Scheduled      int
	Failed         int
	ScheduledHours float64
	Duration       time.Duration
	Time           time.Time
}

// DayLoad is the total booked hours on one calendar day after a run.
type DayLoad struct {
	Day   string
	Hours float64
}

// MetricsSink records optimization outcomes for observability purposes.
type MetricsSink interface {
	RecordRun(rec RunRecord) error
}

// DayLoadRecorder optionally records the resulting per-day load profile.
type DayLoadRecorder interface {
	RecordDayLoads(algorithm string, loads []DayLoad) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordRun(RunRecord) error { return nil }

// Config selects and configures the metric sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}
