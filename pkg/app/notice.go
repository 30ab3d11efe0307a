package app

import "tableflip.dev/bento/pkg/task"

const (
	// NoticeMorning is shown when every morning task is done.
	NoticeMorning = "Morning box packed!"
	// NoticeFullDay is shown when the evening completes after the morning.
	NoticeFullDay = "Full day packed. Perfect harmony!"
	// NoticeEvening is shown when the evening completes on its own.
	NoticeEvening = "Evening box ready."
)

// evaluateNotices returns at most one notice per change. A session is
// announced once and re-armed when it becomes incomplete again.
func (s *Service) evaluateNotices() string {
	if s.notified == nil {
		s.notified = make(map[task.Location]bool)
	}
	morning := s.plan.Complete(task.Morning)
	evening := s.plan.Complete(task.Evening)

	msg := ""
	switch {
	case morning && !s.notified[task.Morning]:
		msg = NoticeMorning
		s.notified[task.Morning] = true
	case evening && !s.notified[task.Evening]:
		msg = NoticeEvening
		if morning {
			msg = NoticeFullDay
		}
		s.notified[task.Evening] = true
	}

	if !morning {
		s.notified[task.Morning] = false
	}
	if !evening {
		s.notified[task.Evening] = false
	}
	if msg != "" {
		s.log().Debug("session complete", "notice", msg)
	}
	return msg
}
