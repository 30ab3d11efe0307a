package app

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAmbiguous is returned when a reference matches more than one task.
var ErrAmbiguous = errors.New("app: reference matches more than one task")

// Resolve finds the id of the task ref refers to: an exact id, a unique id
// prefix, or a task name compared case-insensitively.
func (s *Service) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrNotFound)
	}
	tasks := s.tasks()
	for _, t := range tasks {
		if t.ID == ref {
			return t.ID, nil
		}
	}

	var matches []string
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}
	if len(matches) == 0 {
		for _, t := range tasks {
			if strings.EqualFold(strings.TrimSpace(t.Name), ref) {
				matches = append(matches, t.ID)
			}
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguous, ref)
	}
}
