package options

import (
	"tableflip.dev/bento/pkg/task"
)

// LocationArgs lists the valid location arguments for completion.
func LocationArgs() []string {
	out := make([]string, 0, 3)
	for _, l := range task.AllLocations() {
		out = append(out, string(l))
	}
	return out
}
