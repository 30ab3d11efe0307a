// Package placement decides which session a task lands in.
//
// Initial placement of a new task and an explicit move of an existing task are
// separate entry points. Only initial placement can signal ErrOverflow; the
// explicit paths report a *CapacityError and leave the task where it was.
package placement

import (
	"errors"
	"fmt"

	"tableflip.dev/bento/pkg/capacity"
	"tableflip.dev/bento/pkg/task"
)

// ErrOverflow is returned by Initial when neither session has room.
var ErrOverflow = errors.New("placement: no session has room")

// CapacityError is an advisory returned when an explicit change would push a
// session over its limit. The plan is left unchanged.
type CapacityError struct {
	// Location is the session that was full, or empty when every session was.
	Location task.Location
	Message  string
}

func (e *CapacityError) Error() string {
	return e.Message
}

func fullError(loc task.Location) *CapacityError {
	return &CapacityError{
		Location: loc,
		Message:  fmt.Sprintf("%s box is full. Move something to Tomorrow instead?", loc.Title()),
	}
}

var noRoom = &CapacityError{Message: "No room left in today's boxes. Move something to tomorrow first."}

// Initial picks a session for a new task of the given duration: morning when it
// fits, else evening, else ErrOverflow.
func Initial(tasks []*task.Task, minutes int) (task.Location, error) {
	for _, loc := range task.Sessions() {
		if capacity.Fits(loc, capacity.Used(loc, tasks), minutes) {
			return loc, nil
		}
	}
	return "", ErrOverflow
}

// Move relocates t to target when the target has room for it. Usage of the
// target is computed without t so moving within a session never double counts.
// Moving to tomorrow always succeeds.
func Move(tasks []*task.Task, t *task.Task, target task.Location) error {
	if target.IsSession() {
		used := capacity.UsedExcluding(target, tasks, t.ID)
		if !capacity.Fits(target, used, t.Minutes) {
			return fullError(target)
		}
	}
	t.Location = target
	return nil
}

// Pack brings t into today, trying morning then evening. It never starts an
// overflow resolution.
func Pack(tasks []*task.Task, t *task.Task) (task.Location, error) {
	for _, loc := range task.Sessions() {
		used := capacity.UsedExcluding(loc, tasks, t.ID)
		if capacity.Fits(loc, used, t.Minutes) {
			t.Location = loc
			return loc, nil
		}
	}
	return "", noRoom
}

// Resize changes the duration of t when its session still has room for the new
// duration.
func Resize(tasks []*task.Task, t *task.Task, minutes int) error {
	if minutes <= 0 {
		return task.ErrInvalidDuration
	}
	if t.Location.IsSession() && minutes > t.Minutes {
		used := capacity.UsedExcluding(t.Location, tasks, t.ID)
		if !capacity.Fits(t.Location, used, minutes) {
			return fullError(t.Location)
		}
	}
	t.Minutes = minutes
	return nil
}
