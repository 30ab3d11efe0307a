package task

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Location identifies where a task currently lives.
type Location string

const (
	// Morning is the first fixed-capacity session of the day.
	Morning Location = "morning"
	// Evening is the second fixed-capacity session of the day.
	Evening Location = "evening"
	// Tomorrow is the unbounded queue of deferred tasks.
	Tomorrow Location = "tomorrow"
)

// AllLocations returns the supported locations in display order.
func AllLocations() []Location {
	return []Location{Morning, Evening, Tomorrow}
}

// Sessions returns the capacity-limited locations in placement order.
func Sessions() []Location {
	return []Location{Morning, Evening}
}

// ParseLocation converts a string to a Location or returns an error for
// unknown values.
func ParseLocation(raw string) (Location, error) {
	l := Location(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range AllLocations() {
		if candidate == l {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("task: unknown location %q", raw)
}

// IsSession reports whether the location is a bounded session.
func (l Location) IsSession() bool {
	return l == Morning || l == Evening
}

// Title returns the capitalized display name, e.g. "Morning".
func (l Location) Title() string {
	if l == "" {
		return ""
	}
	s := string(l)
	return strings.ToUpper(s[:1]) + s[1:]
}

func (l Location) String() string {
	return string(l)
}

// UnmarshalJSON rejects locations outside the closed set.
func (l *Location) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseLocation(raw)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
