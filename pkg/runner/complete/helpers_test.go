package complete

import (
	"context"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/bento/pkg/app"
	"tableflip.dev/bento/pkg/store"
)

type testConfig struct {
	path string
}

func (c testConfig) BasePath() string { return c.path }

type seed struct {
	name    string
	minutes int
}

// newService returns a service whose tasks were added in order.
func newService(t *testing.T, seeds ...seed) *app.Service {
	t.Helper()
	color.NoColor = true
	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	svc := &app.Service{
		Persistence: p,
		Now: func() time.Time {
			return time.Date(2026, time.October, 14, 9, 0, 0, 0, time.Local)
		},
	}
	ctx := context.Background()
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load service: %v", err)
	}
	for _, s := range seeds {
		out, err := svc.AddTask(ctx, s.name, s.minutes)
		if err != nil {
			t.Fatalf("add %s: %v", s.name, err)
		}
		if out.Overflow {
			if _, err := svc.ChooseOverflow(ctx, "tomorrow"); err != nil {
				t.Fatalf("defer %s: %v", s.name, err)
			}
		}
	}
	return svc
}
