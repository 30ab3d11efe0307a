// Package overflow resolves a new task that fits in neither session.
//
// The user either defers the task to tomorrow or forces it into a session. A
// forced choice opens a Selection over the session's tasks plus the pending
// one. Whatever is kept when the selection is confirmed stays in the session
// and everything else goes to tomorrow.
package overflow

import (
	"errors"

	"tableflip.dev/bento/pkg/capacity"
	"tableflip.dev/bento/pkg/plan"
	"tableflip.dev/bento/pkg/task"
)

var (
	// ErrUnknownCandidate is returned when toggling an id that is not offered.
	ErrUnknownCandidate = errors.New("overflow: unknown candidate")
	// ErrSelectionOverCapacity is returned when keeping a candidate would push
	// the kept total past the session limit.
	ErrSelectionOverCapacity = errors.New("overflow: selection would exceed session capacity")
)

// CanSelect reports whether candidate can join kept without the kept total
// exceeding the session limit.
func CanSelect(session task.Location, candidate *task.Task, kept []*task.Task) bool {
	total := 0
	for _, k := range kept {
		total += k.Minutes
	}
	return capacity.Fits(session, total, candidate.Minutes)
}

// Selection is the keep-set being built for one session.
type Selection struct {
	Session    task.Location
	Pending    *task.Task
	Candidates []*task.Task

	kept map[string]bool
}

// NewSelection offers the current tasks of session plus pending. Nothing is
// kept initially.
func NewSelection(session task.Location, p *plan.Plan, pending *task.Task) *Selection {
	s := &Selection{
		Session: session,
		Pending: pending.Clone(),
		kept:    make(map[string]bool),
	}
	for _, t := range p.In(session) {
		s.Candidates = append(s.Candidates, t.Clone())
	}
	s.Pending.Location = session
	s.Candidates = append(s.Candidates, s.Pending)
	return s
}

func (s *Selection) candidate(id string) *task.Task {
	for _, c := range s.Candidates {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// IsKept reports whether the candidate with id is currently kept.
func (s *Selection) IsKept(id string) bool {
	return s.kept[id]
}

// Kept returns the kept candidates in offer order.
func (s *Selection) Kept() []*task.Task {
	out := make([]*task.Task, 0, len(s.kept))
	for _, c := range s.Candidates {
		if s.kept[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

// KeptMinutes is the total duration of the kept candidates.
func (s *Selection) KeptMinutes() int {
	total := 0
	for _, c := range s.Kept() {
		total += c.Minutes
	}
	return total
}

// Selectable reports whether the candidate with id can be toggled right now.
// A kept candidate can always be released.
func (s *Selection) Selectable(id string) bool {
	c := s.candidate(id)
	if c == nil {
		return false
	}
	if s.kept[id] {
		return true
	}
	return CanSelect(s.Session, c, s.Kept())
}

// Toggle keeps or releases the candidate with id. Keeping a candidate that
// does not fit fails and changes nothing.
func (s *Selection) Toggle(id string) error {
	c := s.candidate(id)
	if c == nil {
		return ErrUnknownCandidate
	}
	if s.kept[id] {
		delete(s.kept, id)
		return nil
	}
	if !CanSelect(s.Session, c, s.Kept()) {
		return ErrSelectionOverCapacity
	}
	s.kept[id] = true
	return nil
}

// Confirm writes the selection into p. Kept candidates are assigned to the
// session and every other candidate to tomorrow. The pending task is added to
// p either way.
func (s *Selection) Confirm(p *plan.Plan) {
	for _, c := range s.Candidates {
		loc := task.Tomorrow
		if s.kept[c.ID] {
			loc = s.Session
		}
		if c.ID == s.Pending.ID {
			added := c.Clone()
			added.Location = loc
			p.Add(added)
			continue
		}
		if t, err := p.Find(c.ID); err == nil {
			t.Location = loc
		}
	}
}
