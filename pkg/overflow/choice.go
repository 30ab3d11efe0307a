package overflow

import (
	"fmt"
	"strings"

	"tableflip.dev/bento/pkg/task"
)

// Choice is how the user resolves a task that did not fit today.
type Choice string

const (
	// Defer stores the pending task for tomorrow.
	Defer Choice = "tomorrow"
	// ForceMorning swaps the pending task into the morning session.
	ForceMorning Choice = "force-morning"
	// ForceEvening swaps the pending task into the evening session.
	ForceEvening Choice = "force-evening"
)

// AllChoices returns the choices in the order they are offered.
func AllChoices() []Choice {
	return []Choice{Defer, ForceMorning, ForceEvening}
}

// ParseChoice converts a string to a Choice. The bare session names are
// accepted as aliases for the forced choices.
func ParseChoice(raw string) (Choice, error) {
	switch c := strings.ToLower(strings.TrimSpace(raw)); c {
	case string(Defer), "defer":
		return Defer, nil
	case string(ForceMorning), "morning":
		return ForceMorning, nil
	case string(ForceEvening), "evening":
		return ForceEvening, nil
	}
	return "", fmt.Errorf("overflow: unknown choice %q", raw)
}

// Session returns the session a forced choice swaps into.
func (c Choice) Session() (task.Location, bool) {
	switch c {
	case ForceMorning:
		return task.Morning, true
	case ForceEvening:
		return task.Evening, true
	default:
		return "", false
	}
}

// Label is the human readable description of the choice.
func (c Choice) Label(name string) string {
	switch c {
	case Defer:
		return fmt.Sprintf("Store '%s' for Tomorrow", name)
	case ForceMorning:
		return "Swap with Morning Activity"
	case ForceEvening:
		return "Swap with Evening Activity"
	default:
		return string(c)
	}
}

func (c Choice) String() string {
	return string(c)
}
