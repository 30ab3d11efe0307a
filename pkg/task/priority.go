package task

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Priority is the size class of a task. It is derived from the duration and
// never set on its own.
type Priority string

const (
	// Big tasks take 90 minutes or more.
	Big Priority = "big"
	// Medium tasks take 45 to 89 minutes.
	Medium Priority = "medium"
	// Small tasks take less than 45 minutes.
	Small Priority = "small"
)

const (
	bigMinutes    = 90
	mediumMinutes = 45
)

// AllPriorities returns the priority classes from largest to smallest.
func AllPriorities() []Priority {
	return []Priority{Big, Medium, Small}
}

// PriorityFor classifies a duration in minutes.
func PriorityFor(minutes int) Priority {
	switch {
	case minutes >= bigMinutes:
		return Big
	case minutes >= mediumMinutes:
		return Medium
	default:
		return Small
	}
}

// ParsePriority converts a string to a Priority or returns an error for
// unknown values.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range AllPriorities() {
		if candidate == p {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("task: unknown priority %q", raw)
}

// Compartment is the name of the bento compartment that holds the class.
func (p Priority) Compartment() string {
	switch p {
	case Big:
		return "Rice"
	case Medium:
		return "Protein"
	case Small:
		return "Sides"
	default:
		return ""
	}
}

func (p Priority) String() string {
	return string(p)
}

// UnmarshalJSON rejects priorities outside the closed set.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParsePriority(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
