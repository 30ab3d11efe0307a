package app

import (
	"tableflip.dev/bento/pkg/overflow"
	"tableflip.dev/bento/pkg/task"
)

// Mode is the current interaction mode of the planner. Exactly one mode is
// active at a time: Idle, Extracting, AwaitingDuration, OverflowChoice or
// OverflowSelection.
type Mode interface {
	Name() string
	isMode()
}

// Idle accepts new text and direct task actions.
type Idle struct{}

// Extracting waits for the extractor to return task names.
type Extracting struct{}

// AwaitingDuration asks for the duration of Queue[0].
type AwaitingDuration struct {
	Queue []string
}

// Current is the task name whose duration is being asked for.
func (m AwaitingDuration) Current() string {
	return m.Queue[0]
}

// OverflowChoice asks how to resolve Pending, which fit in neither session.
// Queue holds the names still waiting after it.
type OverflowChoice struct {
	Pending *task.Task
	Queue   []string
}

// OverflowSelection builds the keep-set for a forced session.
type OverflowSelection struct {
	Selection *overflow.Selection
	Queue     []string
}

func (Idle) Name() string              { return "idle" }
func (Extracting) Name() string        { return "extracting" }
func (AwaitingDuration) Name() string  { return "awaiting-duration" }
func (OverflowChoice) Name() string    { return "overflow-choice" }
func (OverflowSelection) Name() string { return "overflow-selection" }

func (Idle) isMode()              {}
func (Extracting) isMode()        {}
func (AwaitingDuration) isMode()  {}
func (OverflowChoice) isMode()    {}
func (OverflowSelection) isMode() {}

// nextMode advances the intake queue: ask for the next name or go idle.
func nextMode(queue []string) Mode {
	if len(queue) == 0 {
		return Idle{}
	}
	return AwaitingDuration{Queue: queue}
}
