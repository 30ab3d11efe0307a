// Package extract turns free text into an ordered list of task names.
package extract

import (
	"context"
	"strings"
)

// Extractor splits user input into atomic task names. Names keep the user's
// exact wording and come back deduplicated in order of appearance.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

// Dedupe drops blank names and exact repeats, keeping first occurrences.
func Dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Lines is an offline Extractor taking one task per non-blank line. Leading
// list markers such as "-", "*" or "1." are stripped.
type Lines struct{}

func (Lines) Extract(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(text, "\n") {
		names = append(names, stripMarker(strings.TrimSpace(line)))
	}
	return Dedupe(names), nil
}

func stripMarker(line string) string {
	for _, m := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, m) {
			return strings.TrimSpace(line[len(m):])
		}
	}
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i+1 < len(line) && (line[i] == '.' || line[i] == ')') && line[i+1] == ' ' {
		return strings.TrimSpace(line[i+2:])
	}
	return line
}

// Static returns fixed names. Useful for tests and scripted runs.
type Static struct {
	Names []string
	Err   error
}

func (s Static) Extract(ctx context.Context, _ string) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return Dedupe(s.Names), ctx.Err()
}
