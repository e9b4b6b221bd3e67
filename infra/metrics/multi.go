package metrics

import coremetrics "github.com/mgallet/horaire/core/metrics"

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the record to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordRun(rec coremetrics.RunRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordDayLoads forwards the day loads to sinks that support them.
func (m *MultiSink) RecordDayLoads(algorithm string, loads []coremetrics.DayLoad) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.DayLoadRecorder); ok {
			if err := rec.RecordDayLoads(algorithm, loads); err != nil {
				return err
			}
		}
	}
	return nil
}
