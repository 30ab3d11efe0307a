// Package rollover carries yesterday's deferred work into today.
package rollover

import (
	"tableflip.dev/bento/pkg/plan"
	"tableflip.dev/bento/pkg/task"
)

// Migrate returns the plan for today. A nil plan or a plan already dated today
// is returned unchanged with false. Otherwise only the tomorrow tasks survive;
// they move to the morning session as incomplete and the plan is stamped with
// today. The input plan is not modified.
func Migrate(p *plan.Plan, today string) (*plan.Plan, bool) {
	if p == nil || p.Date == today {
		return p, false
	}
	next := plan.New(today)
	for _, t := range p.Tasks {
		if t.Location != task.Tomorrow {
			continue
		}
		carried := t.Clone()
		carried.Location = task.Morning
		carried.Completed = false
		next.Add(carried)
	}
	return next, true
}
