package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mgallet/horaire/config"
	"github.com/mgallet/horaire/core/events"
	coremetrics "github.com/mgallet/horaire/core/metrics"
	"github.com/mgallet/horaire/core/model"
	"github.com/mgallet/horaire/core/optimizer"
	"github.com/mgallet/horaire/infra/holiday"
	"github.com/mgallet/horaire/infra/logger"
	inframetrics "github.com/mgallet/horaire/infra/metrics"
	"github.com/mgallet/horaire/internal/eventbus"
)

// Plan is the input document: the task batch plus the day occupancy already
// committed outside it.
type Plan struct {
	// StartDate is the earliest allocation day as YYYY-MM-DD. Empty means
	// today.
	StartDate           string             `json:"start_date"`
	Tasks               []*model.Task      `json:"tasks"`
	ExistingAllocations map[string]float64 `json:"existing_allocations"`
}

// LoadPlan reads a plan document from a JSON file.
func LoadPlan(path string) (*Plan, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Plan
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	return &p, nil
}

// Service wires the optimizer to its configuration, metric sinks and event
// bus.
type Service struct {
	cfg  *config.Config
	log  logger.Logger
	sink coremetrics.MetricsSink
	bus  eventbus.EventBus
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	cfg.Logging.Apply()
	sink, err := inframetrics.FromConfig(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	return &Service{
		cfg:  cfg,
		log:  logger.New("service"),
		sink: sink,
		bus:  eventbus.New(),
	}, nil
}

// Close releases the event bus.
func (s *Service) Close() error {
	s.bus.Close()
	return nil
}

// Run loads the plan, executes the configured strategy and writes the
// result. algorithm overrides the configured one when non-empty.
func (s *Service) Run(ctx context.Context, planPath, outPath, algorithm string) error {
	alg := algorithm
	if alg == "" {
		alg = s.cfg.Optimizer.Algorithm
	}
	strategy, err := optimizer.New(alg, s.cfg.Optimizer.Settings)
	if err != nil {
		return fmt.Errorf("resolve algorithm: %w", err)
	}

	plan, err := LoadPlan(planPath)
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}
	checker, err := holiday.NewListChecker(s.cfg.Holidays)
	if err != nil {
		return fmt.Errorf("holidays: %w", err)
	}

	start := model.Midnight(time.Now())
	if plan.StartDate != "" {
		start, err = model.ParseDayKey(plan.StartDate)
		if err != nil {
			return fmt.Errorf("start_date: %w", err)
		}
	}

	params := optimizer.Params{
		StartDate:      start,
		MaxHoursPerDay: s.cfg.Optimizer.MaxHoursPerDay,
		Holidays:       checker,
		IncludeAllDays: s.cfg.Optimizer.IncludeAllDays,
		DayStartHour:   s.cfg.Optimizer.DayStartHour,
		DayEndHour:     s.cfg.Optimizer.DayEndHour,
		HorizonDays:    s.cfg.Optimizer.HorizonDays,
		Seed:           s.cfg.Optimizer.Seed,
	}

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := inframetrics.StartPromServer(s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	s.watchEvents(ctx)

	tasks := eligible(plan.Tasks)
	s.log.Infof("optimizing %d tasks with %s from %s", len(tasks), alg, model.DayKey(start))

	t0 := time.Now()
	res, err := strategy.Optimize(tasks, plan.ExistingAllocations, params)
	if err != nil {
		return fmt.Errorf("optimize: %w", err)
	}
	elapsed := time.Since(t0)

	s.publish(alg, res, elapsed)
	s.record(alg, res, elapsed)

	if err := writeResult(outPath, res); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	s.log.Infof("scheduled %d tasks, %d failures in %s", len(res.Tasks), len(res.Failures), elapsed)
	return nil
}

// eligible applies the caller-side filter: fixed and completed tasks never
// enter the optimizer. Tasks without an id get one assigned.
func eligible(tasks []*model.Task) []*model.Task {
	out := make([]*model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t == nil || t.Fixed || t.Completed {
			continue
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		out = append(out, t)
	}
	return out
}

func (s *Service) publish(alg string, res *optimizer.Result, elapsed time.Duration) {
	for _, t := range res.Tasks {
		ev := events.TaskScheduled{TaskID: t.ID, Hours: t.AllocatedHours()}
		if t.PlannedStart != nil {
			ev.Start = *t.PlannedStart
		}
		if t.PlannedEnd != nil {
			ev.End = *t.PlannedEnd
		}
		s.bus.Publish(ev)
	}
	for _, f := range res.Failures {
		s.bus.Publish(events.TaskFailed{TaskID: f.Task.ID, Reason: f.Reason})
	}
	s.bus.Publish(events.RunCompleted{
		Algorithm: alg,
		Scheduled: len(res.Tasks),
		Failed:    len(res.Failures),
		Duration:  elapsed,
	})
}

func (s *Service) record(alg string, res *optimizer.Result, elapsed time.Duration) {
	var hours float64
	for _, t := range res.Tasks {
		hours += t.AllocatedHours()
	}
	rec := coremetrics.RunRecord{
		Algorithm:      alg,
		Scheduled:      len(res.Tasks),
		Failed:         len(res.Failures),
		ScheduledHours: hours,
		Duration:       elapsed,
		Time:           time.Now(),
	}
	if err := s.sink.RecordRun(rec); err != nil {
		s.log.Errorf("record run: %v", err)
	}
	if dlr, ok := s.sink.(coremetrics.DayLoadRecorder); ok {
		if err := dlr.RecordDayLoads(alg, dayLoads(res.DailyAllocations)); err != nil {
			s.log.Errorf("record day loads: %v", err)
		}
	}
}

func dayLoads(alloc map[string]float64) []coremetrics.DayLoad {
	loads := make([]coremetrics.DayLoad, 0, len(alloc))
	for day, hours := range alloc {
		loads = append(loads, coremetrics.DayLoad{Day: day, Hours: hours})
	}
	sort.Slice(loads, func(i, j int) bool { return loads[i].Day < loads[j].Day })
	return loads
}

// watchEvents logs bus events until the context is canceled.
func (s *Service) watchEvents(ctx context.Context) {
	sub := s.bus.Subscribe()
	go func() {
		defer s.bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.TaskScheduled:
					s.log.Debugw("task scheduled", map[string]any{
						"task_id": e.TaskID,
						"start":   e.Start,
						"end":     e.End,
						"hours":   e.Hours,
					})
				case events.TaskFailed:
					s.log.Warnf("task %s not scheduled: %s", e.TaskID, e.Reason)
				}
			}
		}
	}()
}

func writeResult(path string, res *optimizer.Result) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	if path == "" || path == "-" {
		_, err = os.Stdout.Write(append(b, '\n'))
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
