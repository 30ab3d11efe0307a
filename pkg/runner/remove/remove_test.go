package remove

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRemove(t *testing.T) {
	svc := newService(t, seed{"A", 20}, seed{"B", 20})
	var buf bytes.Buffer
	r := Remove{Service: svc, Ref: "A", Out: &buf}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	tasks := svc.Plan().Tasks
	if len(tasks) != 1 || tasks[0].Name != "B" {
		t.Fatalf("unexpected tasks %+v", tasks)
	}
	if !strings.Contains(buf.String(), "Removed") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
