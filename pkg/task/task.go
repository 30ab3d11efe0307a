// Package task defines the unit of work placed into bento sessions.
package task

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidDuration is returned when a duration is not a positive number of
// minutes.
var ErrInvalidDuration = errors.New("task: duration must be a positive number of minutes")

// Task is a named activity with a duration, a completion flag and a location.
// Priority is a function of Minutes and is only materialized on the wire.
type Task struct {
	ID        string
	Name      string
	Minutes   int
	Completed bool
	Location  Location
}

// New creates an incomplete task with a fresh identity.
func New(name string, minutes int, loc Location) (*Task, error) {
	if minutes <= 0 {
		return nil, ErrInvalidDuration
	}
	return &Task{
		ID:       uuid.NewString(),
		Name:     name,
		Minutes:  minutes,
		Location: loc,
	}, nil
}

// Priority classifies the task by its duration.
func (t *Task) Priority() Priority {
	return PriorityFor(t.Minutes)
}

// Clone returns a copy that shares nothing with t.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

func (t *Task) String() string {
	return fmt.Sprintf("%s (%dm, %s)", t.Name, t.Minutes, t.Location)
}

type wireTask struct {
	ID        string   `json:"id"`
	Name      string   `json:"task_name"`
	Minutes   int      `json:"duration_minutes"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
	Location  Location `json:"location"`
}

// MarshalJSON writes the persisted shape, including the derived priority.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireTask{
		ID:        t.ID,
		Name:      t.Name,
		Minutes:   t.Minutes,
		Priority:  PriorityFor(t.Minutes),
		Completed: t.Completed,
		Location:  t.Location,
	})
}

// UnmarshalJSON reads the persisted shape. A stored priority must be a known
// class but is otherwise ignored in favour of the duration.
func (t *Task) UnmarshalJSON(data []byte) error {
	var w wireTask
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.ID == "" {
		return errors.New("task: missing id")
	}
	if w.Minutes <= 0 {
		return fmt.Errorf("task %s: %w", w.ID, ErrInvalidDuration)
	}
	if w.Location == "" {
		return fmt.Errorf("task %s: missing location", w.ID)
	}
	*t = Task{
		ID:        w.ID,
		Name:      w.Name,
		Minutes:   w.Minutes,
		Completed: w.Completed,
		Location:  w.Location,
	}
	return nil
}
