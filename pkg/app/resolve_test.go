package app

import (
	"errors"
	"testing"

	"tableflip.dev/bento/pkg/task"
)

func TestResolve(t *testing.T) {
	svc, _ := newService(t, planWith(
		&task.Task{ID: "abc123", Name: "Write report", Minutes: 30, Location: task.Morning},
		&task.Task{ID: "abd456", Name: "Gym", Minutes: 30, Location: task.Morning},
		&task.Task{ID: "zzz999", Name: "gym", Minutes: 30, Location: task.Evening},
	), 0)

	cases := map[string]string{
		"abc123":       "abc123",
		"abc":          "abc123",
		"write report": "abc123",
	}
	for ref, want := range cases {
		got, err := svc.Resolve(ref)
		if err != nil || got != want {
			t.Fatalf("Resolve(%q) = %q, %v", ref, got, err)
		}
	}
	if _, err := svc.Resolve("ab"); !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous for shared prefix, got %v", err)
	}
	if _, err := svc.Resolve("GYM"); !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous for shared name, got %v", err)
	}
	if _, err := svc.Resolve("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
