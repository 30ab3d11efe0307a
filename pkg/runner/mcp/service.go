// Package mcp provides the Model Context Protocol server integration for bento.
package mcp

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/bento/pkg/app"
	"tableflip.dev/bento/pkg/capacity"
	"tableflip.dev/bento/pkg/overflow"
	"tableflip.dev/bento/pkg/task"
)

// Service serializes MCP calls onto one planner service.
type Service struct {
	mu  sync.Mutex
	app *app.Service
}

// NewService wraps svc for use by the MCP server.
func NewService(svc *app.Service) *Service {
	return &Service{app: svc}
}

// SessionView is a session with its tasks.
type SessionView struct {
	app.SessionReport
	Remaining int          `json:"remaining"`
	Tasks     []*task.Task `json:"tasks"`
}

// CandidateView is one row of an open selection.
type CandidateView struct {
	Task       *task.Task `json:"task"`
	Kept       bool       `json:"kept"`
	Selectable bool       `json:"selectable"`
	Pending    bool       `json:"pending,omitempty"`
}

// SelectionView describes an open overflow selection.
type SelectionView struct {
	Session     task.Location   `json:"session"`
	KeptMinutes int             `json:"keptMinutes"`
	Limit       int             `json:"limit"`
	Candidates  []CandidateView `json:"candidates"`
}

// ModeView is the transport form of app.Mode.
type ModeView struct {
	Name      string         `json:"name"`
	Current   string         `json:"current,omitempty"`
	Queue     []string       `json:"queue,omitempty"`
	Pending   *task.Task     `json:"pending,omitempty"`
	Choices   []string       `json:"choices,omitempty"`
	Selection *SelectionView `json:"selection,omitempty"`
}

// PlanView is the whole planner state as seen by an MCP client.
type PlanView struct {
	Date                string        `json:"date,omitempty"`
	Sessions            []SessionView `json:"sessions"`
	Tomorrow            []*task.Task  `json:"tomorrow"`
	LifetimeCompletions int           `json:"lifetimeCompletions"`
	Mode                ModeView      `json:"mode"`
}

// ActionResult pairs an outcome with the state it left behind.
type ActionResult struct {
	app.Outcome
	State PlanView `json:"state"`
}

// refresh picks up writes made by other bento processes. An intake in
// progress is kept.
func (s *Service) refresh(ctx context.Context) error {
	if _, idle := s.app.Mode().(app.Idle); !idle {
		return nil
	}
	return s.app.Load(ctx)
}

// Plan returns the current state.
func (s *Service) Plan(ctx context.Context) (PlanView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refresh(ctx); err != nil {
		return PlanView{}, err
	}
	return s.view(), nil
}

func (s *Service) view() PlanView {
	p := s.app.Plan()
	r := s.app.Report()
	v := PlanView{
		Date:                r.Date,
		Tomorrow:            p.In(task.Tomorrow),
		LifetimeCompletions: r.Lifetime,
		Mode:                modeView(s.app.Mode()),
	}
	if v.Tomorrow == nil {
		v.Tomorrow = []*task.Task{}
	}
	for _, sr := range r.Sessions {
		tasks := p.In(sr.Location)
		if tasks == nil {
			tasks = []*task.Task{}
		}
		v.Sessions = append(v.Sessions, SessionView{SessionReport: sr, Remaining: sr.Remaining(), Tasks: tasks})
	}
	return v
}

func modeView(m app.Mode) ModeView {
	v := ModeView{Name: m.Name()}
	switch m := m.(type) {
	case app.AwaitingDuration:
		v.Current = m.Current()
		v.Queue = m.Queue
	case app.OverflowChoice:
		v.Pending = m.Pending.Clone()
		v.Queue = m.Queue
		for _, c := range overflow.AllChoices() {
			v.Choices = append(v.Choices, string(c))
		}
	case app.OverflowSelection:
		v.Queue = m.Queue
		v.Pending = m.Selection.Pending.Clone()
		v.Selection = selectionView(m.Selection)
	}
	return v
}

func selectionView(sel *overflow.Selection) *SelectionView {
	limit, _ := capacity.Limit(sel.Session)
	v := &SelectionView{Session: sel.Session, KeptMinutes: sel.KeptMinutes(), Limit: limit}
	for _, c := range sel.Candidates {
		v.Candidates = append(v.Candidates, CandidateView{
			Task:       c.Clone(),
			Kept:       sel.IsKept(c.ID),
			Selectable: sel.Selectable(c.ID),
			Pending:    c.ID == sel.Pending.ID,
		})
	}
	return v
}

// do runs fn under the lock and reports the resulting state.
func (s *Service) do(ctx context.Context, fn func() (app.Outcome, error)) (ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refresh(ctx); err != nil {
		return ActionResult{}, err
	}
	out, err := fn()
	if err != nil {
		return ActionResult{}, err
	}
	return ActionResult{Outcome: out, State: s.view()}, nil
}

// byRef resolves ref before running fn with the task id.
func (s *Service) byRef(ctx context.Context, ref string, fn func(id string) (app.Outcome, error)) (ActionResult, error) {
	return s.do(ctx, func() (app.Outcome, error) {
		id, err := s.app.Resolve(ref)
		if err != nil {
			return app.Outcome{}, err
		}
		return fn(id)
	})
}

// Extract runs the extractor over text and queues what it finds.
func (s *Service) Extract(ctx context.Context, text string) (ActionResult, error) {
	return s.do(ctx, func() (app.Outcome, error) {
		return app.Outcome{}, s.app.Extract(ctx, text)
	})
}

// Queue queues names for sizing without the extractor.
func (s *Service) Queue(ctx context.Context, names []string) (ActionResult, error) {
	if len(names) == 0 {
		return ActionResult{}, errors.New("names must not be empty")
	}
	return s.do(ctx, func() (app.Outcome, error) {
		return app.Outcome{}, s.app.Queue(names...)
	})
}

func (s *Service) SubmitDuration(ctx context.Context, minutes string) (ActionResult, error) {
	return s.do(ctx, func() (app.Outcome, error) {
		return s.app.SubmitDuration(ctx, minutes)
	})
}

func (s *Service) AddTask(ctx context.Context, name string, minutes int) (ActionResult, error) {
	return s.do(ctx, func() (app.Outcome, error) {
		return s.app.AddTask(ctx, name, minutes)
	})
}

func (s *Service) ChooseOverflow(ctx context.Context, choice overflow.Choice) (ActionResult, error) {
	return s.do(ctx, func() (app.Outcome, error) {
		return s.app.ChooseOverflow(ctx, choice)
	})
}

func (s *Service) ToggleCandidate(ctx context.Context, id string) (ActionResult, error) {
	return s.do(ctx, func() (app.Outcome, error) {
		return app.Outcome{}, s.app.ToggleCandidate(id)
	})
}

func (s *Service) ConfirmSelection(ctx context.Context) (ActionResult, error) {
	return s.do(ctx, func() (app.Outcome, error) {
		return s.app.ConfirmSelection(ctx)
	})
}

func (s *Service) CancelIntake(ctx context.Context) (ActionResult, error) {
	return s.do(ctx, func() (app.Outcome, error) {
		s.app.CancelIntake()
		return app.Outcome{}, nil
	})
}

func (s *Service) Toggle(ctx context.Context, ref string) (ActionResult, error) {
	return s.byRef(ctx, ref, func(id string) (app.Outcome, error) {
		return s.app.Toggle(ctx, id)
	})
}

func (s *Service) Edit(ctx context.Context, ref, name string, minutes int) (ActionResult, error) {
	return s.byRef(ctx, ref, func(id string) (app.Outcome, error) {
		return s.app.Edit(ctx, id, name, minutes)
	})
}

func (s *Service) Delete(ctx context.Context, ref string) (ActionResult, error) {
	return s.byRef(ctx, ref, func(id string) (app.Outcome, error) {
		return s.app.Delete(ctx, id)
	})
}

func (s *Service) Move(ctx context.Context, ref string, to task.Location) (ActionResult, error) {
	return s.byRef(ctx, ref, func(id string) (app.Outcome, error) {
		return s.app.Move(ctx, id, to)
	})
}

func (s *Service) Pack(ctx context.Context, ref string) (ActionResult, error) {
	return s.byRef(ctx, ref, func(id string) (app.Outcome, error) {
		return s.app.Pack(ctx, id)
	})
}
