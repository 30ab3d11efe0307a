package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/bento/pkg/extract"
	"tableflip.dev/bento/pkg/overflow"
	"tableflip.dev/bento/pkg/placement"
	"tableflip.dev/bento/pkg/task"
)

// ParseDuration reads the leading whole number of minutes, so "45m" and
// "45.5" are both 45. Input without leading digits, and totals of zero or
// less, are ErrInvalidDuration.
func ParseDuration(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, ErrInvalidDuration
	}
	minutes, err := strconv.Atoi(s[:end])
	if err != nil || minutes <= 0 {
		return 0, ErrInvalidDuration
	}
	return minutes, nil
}

// StartExtraction enters Extracting. It is the first half of Extract for
// callers that run the extractor themselves.
func (s *Service) StartExtraction() error {
	if err := s.requireMode("idle"); err != nil {
		return err
	}
	s.mode = Extracting{}
	return nil
}

// FinishExtraction completes a StartExtraction with the extractor result. A
// failure or an empty result returns to Idle; otherwise the names are queued
// for duration entry.
func (s *Service) FinishExtraction(names []string, extractErr error) error {
	if err := s.requireMode("extracting"); err != nil {
		return err
	}
	if extractErr != nil {
		s.mode = Idle{}
		s.log().Error("extraction failed", "err", extractErr)
		return fmt.Errorf("app: extract tasks: %w", extractErr)
	}
	names = extract.Dedupe(names)
	s.log().Debug("extracted", "count", len(names))
	s.mode = nextMode(names)
	return nil
}

// Extract runs the configured extractor over text and queues the names it
// finds. Blank text does nothing.
func (s *Service) Extract(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if s.Extractor == nil {
		return errors.New("app: no extractor configured")
	}
	if err := s.StartExtraction(); err != nil {
		return err
	}
	names, err := s.Extractor.Extract(ctx, text)
	return s.FinishExtraction(names, err)
}

// Queue queues names for duration entry without running the extractor.
func (s *Service) Queue(names ...string) error {
	if err := s.StartExtraction(); err != nil {
		return err
	}
	return s.FinishExtraction(names, nil)
}

// SubmitDuration sizes the current queued name and places it. Invalid input
// returns ErrInvalidDuration and leaves the mode as it was. When neither
// session has room the service moves to OverflowChoice and the outcome is
// marked Overflow.
func (s *Service) SubmitDuration(ctx context.Context, raw string) (Outcome, error) {
	mode, ok := s.Mode().(AwaitingDuration)
	if !ok {
		return Outcome{}, fmt.Errorf("%w while %s", ErrWrongMode, s.Mode().Name())
	}
	minutes, err := ParseDuration(raw)
	if err != nil {
		return Outcome{}, err
	}
	t, err := task.New(mode.Current(), minutes, "")
	if err != nil {
		return Outcome{}, err
	}
	rest := mode.Queue[1:]

	loc, err := placement.Initial(s.tasks(), minutes)
	if errors.Is(err, placement.ErrOverflow) {
		s.log().Info("overflow", "task", t.Name, "minutes", minutes)
		s.mode = OverflowChoice{Pending: t, Queue: rest}
		return Outcome{Task: t.Clone(), Overflow: true}, nil
	}
	if err != nil {
		return Outcome{}, err
	}
	t.Location = loc
	s.ensurePlan().Add(t)
	s.mode = nextMode(rest)
	out := Outcome{Task: t}
	err = s.commit(ctx, &out)
	return out, err
}

// AddTask queues a single name and sizes it in one step. On invalid input the
// service stays Idle.
func (s *Service) AddTask(ctx context.Context, name string, minutes int) (Outcome, error) {
	if err := s.requireMode("idle"); err != nil {
		return Outcome{}, err
	}
	if minutes <= 0 {
		return Outcome{}, ErrInvalidDuration
	}
	s.mode = AwaitingDuration{Queue: []string{name}}
	return s.SubmitDuration(ctx, strconv.Itoa(minutes))
}

// ChooseOverflow resolves OverflowChoice. Defer stores the pending task for
// tomorrow and advances the queue. A forced choice opens the selection over
// that session.
func (s *Service) ChooseOverflow(ctx context.Context, choice overflow.Choice) (Outcome, error) {
	mode, ok := s.Mode().(OverflowChoice)
	if !ok {
		return Outcome{}, fmt.Errorf("%w while %s", ErrWrongMode, s.Mode().Name())
	}
	if choice == overflow.Defer {
		t := mode.Pending
		t.Location = task.Tomorrow
		s.ensurePlan().Add(t)
		s.mode = nextMode(mode.Queue)
		out := Outcome{Task: t}
		err := s.commit(ctx, &out)
		return out, err
	}
	session, ok := choice.Session()
	if !ok {
		return Outcome{}, fmt.Errorf("app: unknown overflow choice %q", choice)
	}
	sel := overflow.NewSelection(session, s.ensurePlan(), mode.Pending)
	s.mode = OverflowSelection{Selection: sel, Queue: mode.Queue}
	return Outcome{Task: mode.Pending.Clone()}, nil
}

// ToggleCandidate keeps or releases a candidate in OverflowSelection.
func (s *Service) ToggleCandidate(id string) error {
	mode, ok := s.Mode().(OverflowSelection)
	if !ok {
		return fmt.Errorf("%w while %s", ErrWrongMode, s.Mode().Name())
	}
	return mode.Selection.Toggle(id)
}

// ConfirmSelection applies the selection: kept candidates stay in the session
// and the rest go to tomorrow. The queue advances by one.
func (s *Service) ConfirmSelection(ctx context.Context) (Outcome, error) {
	mode, ok := s.Mode().(OverflowSelection)
	if !ok {
		return Outcome{}, fmt.Errorf("%w while %s", ErrWrongMode, s.Mode().Name())
	}
	p := s.ensurePlan()
	mode.Selection.Confirm(p)
	s.mode = nextMode(mode.Queue)
	s.log().Info("selection confirmed", "session", mode.Selection.Session, "kept", len(mode.Selection.Kept()))

	out := Outcome{}
	if t, err := p.Find(mode.Selection.Pending.ID); err == nil {
		out.Task = t
	}
	err := s.commit(ctx, &out)
	return out, err
}

// CancelIntake abandons queued names and any pending overflow without touching
// the plan.
func (s *Service) CancelIntake() {
	switch s.Mode().(type) {
	case Idle:
		return
	default:
		s.log().Debug("intake cancelled", "mode", s.Mode().Name())
		s.mode = Idle{}
	}
}
