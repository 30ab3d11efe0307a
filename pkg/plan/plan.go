// Package plan holds the set of tasks for a single calendar day.
package plan

import (
	"errors"
	"time"

	"tableflip.dev/bento/pkg/task"
)

const layoutISO = "2006-01-02"

// ErrNotFound is returned when no task has the requested id.
var ErrNotFound = errors.New("plan: task not found")

// Plan is the task store for one day. Tasks keep insertion order for display.
type Plan struct {
	Tasks []*task.Task `json:"tasks"`
	Date  string       `json:"date"`
}

// New returns an empty plan for the given date.
func New(date string) *Plan {
	return &Plan{Tasks: []*task.Task{}, Date: date}
}

// DateOf formats t as the plan's calendar date in t's location.
func DateOf(t time.Time) string {
	return t.Format(layoutISO)
}

// Find returns the task with the given id.
func (p *Plan) Find(id string) (*task.Task, error) {
	if p == nil {
		return nil, ErrNotFound
	}
	for _, t := range p.Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, ErrNotFound
}

// Add appends t to the plan.
func (p *Plan) Add(t *task.Task) {
	p.Tasks = append(p.Tasks, t)
}

// Remove deletes the task with the given id.
func (p *Plan) Remove(id string) error {
	for i, t := range p.Tasks {
		if t.ID == id {
			p.Tasks = append(p.Tasks[:i], p.Tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// In returns the tasks at loc in plan order.
func (p *Plan) In(loc task.Location) []*task.Task {
	if p == nil {
		return nil
	}
	out := make([]*task.Task, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		if t.Location == loc {
			out = append(out, t)
		}
	}
	return out
}

// Complete reports whether loc has at least one task and all of them are done.
func (p *Plan) Complete(loc task.Location) bool {
	tasks := p.In(loc)
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the plan.
func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}
	cp := &Plan{Date: p.Date, Tasks: make([]*task.Task, 0, len(p.Tasks))}
	for _, t := range p.Tasks {
		cp.Tasks = append(cp.Tasks, t.Clone())
	}
	return cp
}
