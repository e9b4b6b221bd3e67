package events

import "time"

// RunCompleted is published once per optimization run.
type RunCompleted struct {
	Algorithm string
	Scheduled int
	Failed    int
	Duration  time.Duration
}

// TaskScheduled is published for each task that received a placement.
type TaskScheduled struct {
	TaskID string
	Start  time.Time
	End    time.Time
	Hours  float64
}

// TaskFailed is published for each task the optimizer could not place.
type TaskFailed struct {
	TaskID string
	Reason string
}
