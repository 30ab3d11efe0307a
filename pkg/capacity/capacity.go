// Package capacity computes session usage against the fixed daily limits.
package capacity

import "tableflip.dev/bento/pkg/task"

const (
	// MorningLimit is the morning session capacity in minutes.
	MorningLimit = 240
	// EveningLimit is the evening session capacity in minutes.
	EveningLimit = 180
)

// Limit returns the capacity of loc. Tomorrow is unbounded and reports false.
func Limit(loc task.Location) (int, bool) {
	switch loc {
	case task.Morning:
		return MorningLimit, true
	case task.Evening:
		return EveningLimit, true
	default:
		return 0, false
	}
}

// Used sums the durations of the tasks at loc.
func Used(loc task.Location, tasks []*task.Task) int {
	used := 0
	for _, t := range tasks {
		if t.Location == loc {
			used += t.Minutes
		}
	}
	return used
}

// UsedExcluding sums the durations at loc ignoring the task with id.
func UsedExcluding(loc task.Location, tasks []*task.Task, id string) int {
	used := 0
	for _, t := range tasks {
		if t.Location == loc && t.ID != id {
			used += t.Minutes
		}
	}
	return used
}

// Remaining is the limit of loc minus its usage. It can be negative when a
// rollover carried more work than fits.
func Remaining(loc task.Location, tasks []*task.Task) int {
	limit, ok := Limit(loc)
	if !ok {
		return 0
	}
	return limit - Used(loc, tasks)
}

// Fits reports whether minutes more work still fits at loc. Filling a session
// exactly to its limit fits.
func Fits(loc task.Location, used, minutes int) bool {
	limit, ok := Limit(loc)
	if !ok {
		return true
	}
	return used+minutes <= limit
}

// Session is the usage snapshot of one bounded location.
type Session struct {
	Location task.Location `json:"location"`
	Used     int           `json:"used"`
	Limit    int           `json:"limit"`
}

// Remaining minutes in the session.
func (s Session) Remaining() int {
	return s.Limit - s.Used
}

// Summary reports usage for every session.
func Summary(tasks []*task.Task) []Session {
	out := make([]Session, 0, 2)
	for _, loc := range task.Sessions() {
		limit, _ := Limit(loc)
		out = append(out, Session{Location: loc, Used: Used(loc, tasks), Limit: limit})
	}
	return out
}
