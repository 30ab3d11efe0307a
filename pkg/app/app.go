package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/bento/pkg/extract"
	"tableflip.dev/bento/pkg/logging"
	"tableflip.dev/bento/pkg/placement"
	"tableflip.dev/bento/pkg/plan"
	"tableflip.dev/bento/pkg/store"
	"tableflip.dev/bento/pkg/task"
)

// Service holds the planner state and sequences every user action against it.
// UIs and CLIs share it so none of them carry placement logic. A Service is
// not safe for concurrent use.
type Service struct {
	Persistence store.Persistence
	Extractor   extract.Extractor
	Logger      logging.Logger
	// Now returns the current time; the plan date is its local calendar date.
	Now func() time.Time

	plan     *plan.Plan
	lifetime int
	mode     Mode
	notified map[task.Location]bool
}

var (
	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("app: task not found")
	// ErrWrongMode is returned when an action is not valid in the current mode.
	ErrWrongMode = errors.New("app: action not available")
	// ErrInvalidDuration is returned for duration input that is not a positive
	// whole number of minutes.
	ErrInvalidDuration = task.ErrInvalidDuration
	// ErrNotDeferred is returned when packing a task that is already in today.
	ErrNotDeferred = errors.New("app: only tomorrow tasks can be packed")
)

// Outcome describes the effect of an action.
type Outcome struct {
	// Task is the task acted on, as it is after the action.
	Task *task.Task `json:"task,omitempty"`
	// Overflow is set when a new task fit nowhere and the service is now in
	// OverflowChoice.
	Overflow bool `json:"overflow,omitempty"`
	// Notice is a one-off celebration when a session became complete.
	Notice string `json:"notice,omitempty"`
}

func (s *Service) log() logging.Logger {
	if s.Logger == nil {
		return logging.Nop()
	}
	return s.Logger
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Today is the current local calendar date in plan format. The day turns at
// local midnight, not UTC midnight.
func (s *Service) Today() string {
	return plan.DateOf(s.now())
}

// Plan returns a copy of the current plan, nil before the first task.
func (s *Service) Plan() *plan.Plan {
	return s.plan.Clone()
}

// Lifetime is the running completion counter.
func (s *Service) Lifetime() int {
	return s.lifetime
}

// Mode returns the current interaction mode.
func (s *Service) Mode() Mode {
	if s.mode == nil {
		return Idle{}
	}
	return s.mode
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.Watch(ctx)
}

func (s *Service) requireMode(name string) error {
	if got := s.Mode().Name(); got != name {
		return fmt.Errorf("%w while %s", ErrWrongMode, got)
	}
	return nil
}

func (s *Service) ensurePlan() *plan.Plan {
	if s.plan == nil {
		s.plan = plan.New(s.Today())
	}
	return s.plan
}

func (s *Service) tasks() []*task.Task {
	if s.plan == nil {
		return nil
	}
	return s.plan.Tasks
}

func (s *Service) find(id string) (*task.Task, error) {
	t, err := s.plan.Find(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, nil
}

// commit announces newly completed sessions and persists the state.
func (s *Service) commit(ctx context.Context, out *Outcome) error {
	out.Notice = s.evaluateNotices()
	if out.Task != nil {
		out.Task = out.Task.Clone()
	}
	return s.save(ctx)
}

func (s *Service) save(ctx context.Context) error {
	if s.plan == nil && s.lifetime == 0 {
		return nil
	}
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	state := &store.State{CurrentPlan: s.plan.Clone(), LifetimeCompletions: s.lifetime}
	if err := s.Persistence.Save(ctx, state); err != nil {
		s.log().Error("save failed", "err", err)
		return fmt.Errorf("app: save: %w", err)
	}
	return nil
}

// Toggle flips completion of the task and moves the lifetime counter with it.
func (s *Service) Toggle(ctx context.Context, id string) (Outcome, error) {
	if err := s.requireMode("idle"); err != nil {
		return Outcome{}, err
	}
	t, err := s.find(id)
	if err != nil {
		return Outcome{}, err
	}
	t.Completed = !t.Completed
	if t.Completed {
		s.lifetime++
	} else {
		s.lifetime--
	}
	s.log().Debug("toggled", "id", id, "completed", t.Completed, "lifetime", s.lifetime)
	out := Outcome{Task: t}
	err = s.commit(ctx, &out)
	return out, err
}

// Edit renames and resizes a task. An empty name keeps the current name and a
// non-positive duration keeps the current duration. Growing a task beyond
// what its session can hold fails with a *placement.CapacityError.
func (s *Service) Edit(ctx context.Context, id, name string, minutes int) (Outcome, error) {
	if err := s.requireMode("idle"); err != nil {
		return Outcome{}, err
	}
	t, err := s.find(id)
	if err != nil {
		return Outcome{}, err
	}
	if minutes > 0 && minutes != t.Minutes {
		if err := placement.Resize(s.tasks(), t, minutes); err != nil {
			return Outcome{}, err
		}
	}
	if strings.TrimSpace(name) != "" {
		t.Name = name
	}
	out := Outcome{Task: t}
	err = s.commit(ctx, &out)
	return out, err
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, id string) (Outcome, error) {
	if err := s.requireMode("idle"); err != nil {
		return Outcome{}, err
	}
	t, err := s.find(id)
	if err != nil {
		return Outcome{}, err
	}
	if err := s.plan.Remove(id); err != nil {
		return Outcome{}, err
	}
	out := Outcome{Task: t}
	err = s.commit(ctx, &out)
	return out, err
}

// Move relocates a task on request. A full target session yields a
// *placement.CapacityError and the task stays put; no overflow resolution is
// started. Moving a task to where it already is does nothing.
func (s *Service) Move(ctx context.Context, id string, target task.Location) (Outcome, error) {
	if err := s.requireMode("idle"); err != nil {
		return Outcome{}, err
	}
	t, err := s.find(id)
	if err != nil {
		return Outcome{}, err
	}
	if t.Location == target {
		return Outcome{Task: t.Clone()}, nil
	}
	if err := placement.Move(s.tasks(), t, target); err != nil {
		s.log().Info("move rejected", "id", id, "target", target, "err", err)
		return Outcome{}, err
	}
	out := Outcome{Task: t}
	err = s.commit(ctx, &out)
	return out, err
}

// Pack brings a tomorrow task into today, morning first.
func (s *Service) Pack(ctx context.Context, id string) (Outcome, error) {
	if err := s.requireMode("idle"); err != nil {
		return Outcome{}, err
	}
	t, err := s.find(id)
	if err != nil {
		return Outcome{}, err
	}
	if t.Location != task.Tomorrow {
		return Outcome{}, ErrNotDeferred
	}
	if _, err := placement.Pack(s.tasks(), t); err != nil {
		s.log().Info("pack rejected", "id", id, "err", err)
		return Outcome{}, err
	}
	out := Outcome{Task: t}
	err = s.commit(ctx, &out)
	return out, err
}
