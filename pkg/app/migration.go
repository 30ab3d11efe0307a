package app

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/bento/pkg/capacity"
	"tableflip.dev/bento/pkg/rollover"
	"tableflip.dev/bento/pkg/store"
	"tableflip.dev/bento/pkg/task"
)

// Load reads the persisted state and rolls it over to today. Malformed state
// is logged and replaced by an empty planner. A rolled over plan is saved
// right away. Load resets the interaction mode to Idle.
func (s *Service) Load(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	state, err := s.Persistence.Load(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrCorrupt) {
			return fmt.Errorf("app: load: %w", err)
		}
		s.log().Warn("discarding malformed state", "err", err)
		state = &store.State{}
	}

	today := s.Today()
	current, migrated := rollover.Migrate(state.CurrentPlan, today)
	s.plan = current
	s.lifetime = state.LifetimeCompletions
	s.mode = Idle{}
	s.notified = map[task.Location]bool{
		task.Morning: s.plan.Complete(task.Morning),
		task.Evening: s.plan.Complete(task.Evening),
	}

	if !migrated {
		return nil
	}
	s.log().Info("rolled plan over", "from", state.CurrentPlan.Date, "to", today, "carried", len(current.Tasks))
	if over := -capacity.Remaining(task.Morning, current.Tasks); over > 0 {
		s.log().Warn("carried tasks exceed morning capacity", "over_minutes", over)
	}
	return s.save(ctx)
}
