package app

import (
	"tableflip.dev/bento/pkg/capacity"
	"tableflip.dev/bento/pkg/task"
)

// SessionReport summarizes one bounded session.
type SessionReport struct {
	Location task.Location `json:"location"`
	Used     int           `json:"used"`
	Limit    int           `json:"limit"`
	Done     int           `json:"done"`
	Total    int           `json:"total"`
	Complete bool          `json:"complete"`
}

// Remaining minutes in the session.
func (r SessionReport) Remaining() int {
	return r.Limit - r.Used
}

// Report is a snapshot of the day for display.
type Report struct {
	Date            string          `json:"date,omitempty"`
	Sessions        []SessionReport `json:"sessions"`
	Tomorrow        int             `json:"tomorrow"`
	TomorrowMinutes int             `json:"tomorrowMinutes"`
	Lifetime        int             `json:"lifetimeCompletions"`
}

// Report returns usage and completion per session for the current plan.
func (s *Service) Report() Report {
	r := Report{Lifetime: s.lifetime}
	if s.plan != nil {
		r.Date = s.plan.Date
	}
	tasks := s.tasks()
	for _, sess := range capacity.Summary(tasks) {
		sr := SessionReport{
			Location: sess.Location,
			Used:     sess.Used,
			Limit:    sess.Limit,
			Complete: s.plan.Complete(sess.Location),
		}
		for _, t := range s.plan.In(sess.Location) {
			sr.Total++
			if t.Completed {
				sr.Done++
			}
		}
		r.Sessions = append(r.Sessions, sr)
	}
	for _, t := range s.plan.In(task.Tomorrow) {
		r.Tomorrow++
		r.TomorrowMinutes += t.Minutes
	}
	return r
}
