// Package events defines the optimization related events emitted on the
// event bus.
//
// Available event types:
//   - RunCompleted: an optimization run finished
//   - TaskScheduled: a task received a placement
//   - TaskFailed: a task could not be placed
package events
