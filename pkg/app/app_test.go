package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tableflip.dev/bento/pkg/capacity"
	"tableflip.dev/bento/pkg/extract"
	"tableflip.dev/bento/pkg/overflow"
	"tableflip.dev/bento/pkg/placement"
	"tableflip.dev/bento/pkg/plan"
	"tableflip.dev/bento/pkg/store"
	"tableflip.dev/bento/pkg/task"
)

type memoryPersistence struct {
	mu      sync.Mutex
	state   *store.State
	loadErr error
	saves   int
}

func newMemoryPersistence(p *plan.Plan, lifetime int) *memoryPersistence {
	return &memoryPersistence{state: &store.State{CurrentPlan: p.Clone(), LifetimeCompletions: lifetime}}
}

func (m *memoryPersistence) Load(_ context.Context) (*store.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.state == nil {
		return &store.State{}, nil
	}
	return &store.State{CurrentPlan: m.state.CurrentPlan.Clone(), LifetimeCompletions: m.state.LifetimeCompletions}, nil
}

func (m *memoryPersistence) Save(_ context.Context, s *store.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.state = &store.State{CurrentPlan: s.CurrentPlan.Clone(), LifetimeCompletions: s.LifetimeCompletions}
	return nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

func (m *memoryPersistence) saved() *store.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

const today = "2026-10-14"

func fixedNow() time.Time {
	return time.Date(2026, time.October, 14, 9, 30, 0, 0, time.Local)
}

func newService(t *testing.T, p *plan.Plan, lifetime int) (*Service, *memoryPersistence) {
	t.Helper()
	mp := newMemoryPersistence(p, lifetime)
	svc := &Service{Persistence: mp, Now: fixedNow}
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return svc, mp
}

func planWith(tasks ...*task.Task) *plan.Plan {
	p := plan.New(today)
	for _, tk := range tasks {
		p.Add(tk)
	}
	return p
}

func mk(id string, minutes int, loc task.Location) *task.Task {
	return &task.Task{ID: id, Name: id, Minutes: minutes, Location: loc}
}

func TestAddTaskLandsInMorning(t *testing.T) {
	svc, mp := newService(t, nil, 0)
	ctx := context.Background()

	out, err := svc.AddTask(ctx, "Write report", 90)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if out.Overflow || out.Task.Location != task.Morning || out.Task.Priority() != task.Big {
		t.Fatalf("unexpected outcome %+v", out.Task)
	}
	p := svc.Plan()
	if p == nil || p.Date != today {
		t.Fatalf("expected plan for today, got %+v", p)
	}
	if used := capacity.Used(task.Morning, p.Tasks); used != 90 {
		t.Fatalf("morning used = %d", used)
	}
	if mp.saved().CurrentPlan == nil {
		t.Fatalf("expected state to be saved")
	}
}

func TestAddTaskFallsThroughToEvening(t *testing.T) {
	svc, _ := newService(t, planWith(mk("m", 230, task.Morning)), 0)
	out, err := svc.AddTask(context.Background(), "call", 30)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if out.Task.Location != task.Evening {
		t.Fatalf("expected evening, got %s", out.Task.Location)
	}
}

func TestOverflowDeferToTomorrow(t *testing.T) {
	svc, _ := newService(t, planWith(mk("m", 240, task.Morning), mk("e", 180, task.Evening)), 0)
	ctx := context.Background()

	out, err := svc.AddTask(ctx, "stretch", 20)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !out.Overflow {
		t.Fatalf("expected overflow")
	}
	if _, ok := svc.Mode().(OverflowChoice); !ok {
		t.Fatalf("expected overflow choice, got %s", svc.Mode().Name())
	}
	if len(svc.Plan().Tasks) != 2 {
		t.Fatalf("pending task must not be in the plan yet")
	}

	out, err = svc.ChooseOverflow(ctx, overflow.Defer)
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if out.Task.Location != task.Tomorrow || out.Task.Completed {
		t.Fatalf("unexpected deferred task %+v", out.Task)
	}
	if _, ok := svc.Mode().(Idle); !ok {
		t.Fatalf("expected idle, got %s", svc.Mode().Name())
	}
}

func TestOverflowForceMorningSwap(t *testing.T) {
	svc, mp := newService(t, planWith(
		mk("m1", 120, task.Morning),
		mk("m2", 90, task.Morning),
		mk("m3", 30, task.Morning),
		mk("e1", 180, task.Evening),
	), 0)
	ctx := context.Background()

	if err := svc.Queue("deep work", "walk"); err != nil {
		t.Fatalf("queue: %v", err)
	}
	out, err := svc.SubmitDuration(ctx, "60")
	if err != nil || !out.Overflow {
		t.Fatalf("expected overflow, got %+v, %v", out, err)
	}
	pendingID := out.Task.ID

	if _, err := svc.ChooseOverflow(ctx, overflow.ForceMorning); err != nil {
		t.Fatalf("choose: %v", err)
	}
	mode, ok := svc.Mode().(OverflowSelection)
	if !ok {
		t.Fatalf("expected overflow selection, got %s", svc.Mode().Name())
	}
	if len(mode.Selection.Candidates) != 4 || len(mode.Selection.Kept()) != 0 {
		t.Fatalf("unexpected selection %+v", mode.Selection)
	}
	for _, id := range []string{"m1", pendingID, "m3"} {
		if err := svc.ToggleCandidate(id); err != nil {
			t.Fatalf("toggle %s: %v", id, err)
		}
	}
	if err := svc.ToggleCandidate("m2"); !errors.Is(err, overflow.ErrSelectionOverCapacity) {
		t.Fatalf("expected over capacity, got %v", err)
	}

	saves := mp.saves
	out, err = svc.ConfirmSelection(ctx)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if mp.saves != saves+1 {
		t.Fatalf("confirm should save once")
	}
	if out.Task == nil || out.Task.Location != task.Morning {
		t.Fatalf("pending task should be kept in morning, got %+v", out.Task)
	}
	p := svc.Plan()
	if tk, _ := p.Find("m2"); tk.Location != task.Tomorrow {
		t.Fatalf("unkept m2 should be in tomorrow, got %s", tk.Location)
	}
	if used := capacity.Used(task.Morning, p.Tasks); used != 210 {
		t.Fatalf("morning used = %d", used)
	}

	// The queue advanced to the next name.
	next, ok := svc.Mode().(AwaitingDuration)
	if !ok || next.Current() != "walk" {
		t.Fatalf("expected to await duration for walk, got %#v", svc.Mode())
	}
}

func TestSubmitDurationInvalidIsInert(t *testing.T) {
	svc, mp := newService(t, nil, 0)
	if err := svc.Queue("read"); err != nil {
		t.Fatalf("queue: %v", err)
	}
	for _, raw := range []string{"", "abc", "0", "-10", "0.5", "m45", "+"} {
		if _, err := svc.SubmitDuration(context.Background(), raw); !errors.Is(err, ErrInvalidDuration) {
			t.Fatalf("SubmitDuration(%q) error = %v", raw, err)
		}
	}
	if m, ok := svc.Mode().(AwaitingDuration); !ok || m.Current() != "read" {
		t.Fatalf("mode should be unchanged, got %s", svc.Mode().Name())
	}
	if svc.Plan() != nil || mp.saves != 0 {
		t.Fatalf("invalid input must not create a task")
	}
}

func TestTodayUsesLocalDate(t *testing.T) {
	svc, _ := newService(t, nil, 0)
	// 23:30 five hours west of UTC is already the next day in UTC.
	svc.Now = func() time.Time {
		return time.Date(2026, time.October, 14, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*60*60))
	}
	if got := svc.Today(); got != "2026-10-14" {
		t.Fatalf("Today = %q, want 2026-10-14", got)
	}
}

func TestParseDuration(t *testing.T) {
	tests := map[string]int{
		"45":     45,
		" 90 ":   90,
		"45m":    45,
		"45.5":   45,
		"+30":    30,
		"120min": 120,
	}
	for raw, want := range tests {
		got, err := ParseDuration(raw)
		if err != nil {
			t.Fatalf("ParseDuration(%q) error = %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseDuration(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestExtractQueuesNames(t *testing.T) {
	svc, _ := newService(t, nil, 0)
	svc.Extractor = extract.Static{Names: []string{"a", "b", "a"}}

	if err := svc.Extract(context.Background(), "a and b"); err != nil {
		t.Fatalf("extract: %v", err)
	}
	m, ok := svc.Mode().(AwaitingDuration)
	if !ok || len(m.Queue) != 2 {
		t.Fatalf("expected two queued names, got %#v", svc.Mode())
	}
}

func TestExtractFailureReturnsToIdle(t *testing.T) {
	svc, _ := newService(t, nil, 0)
	boom := errors.New("boom")
	svc.Extractor = extract.Static{Err: boom}

	if err := svc.Extract(context.Background(), "anything"); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, ok := svc.Mode().(Idle); !ok {
		t.Fatalf("expected idle, got %s", svc.Mode().Name())
	}
	if svc.Plan() != nil {
		t.Fatalf("no task should be created")
	}
}

func TestExtractingBlocksActions(t *testing.T) {
	svc, _ := newService(t, planWith(mk("a", 30, task.Morning)), 0)
	if err := svc.StartExtraction(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Toggle(context.Background(), "a"); !errors.Is(err, ErrWrongMode) {
		t.Fatalf("expected ErrWrongMode, got %v", err)
	}
	if _, err := svc.Move(context.Background(), "a", task.Evening); !errors.Is(err, ErrWrongMode) {
		t.Fatalf("expected ErrWrongMode, got %v", err)
	}
	if err := svc.FinishExtraction(nil, nil); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if _, ok := svc.Mode().(Idle); !ok {
		t.Fatalf("empty extraction should return to idle")
	}
}

func TestToggleMovesLifetime(t *testing.T) {
	svc, mp := newService(t, planWith(mk("a", 30, task.Morning)), 5)
	ctx := context.Background()

	if _, err := svc.Toggle(ctx, "a"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if svc.Lifetime() != 6 {
		t.Fatalf("lifetime = %d", svc.Lifetime())
	}
	if _, err := svc.Toggle(ctx, "a"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if svc.Lifetime() != 5 {
		t.Fatalf("lifetime after double toggle = %d", svc.Lifetime())
	}
	tk, _ := svc.Plan().Find("a")
	if tk.Completed {
		t.Fatalf("double toggle should restore completion")
	}
	if mp.saved().LifetimeCompletions != 5 {
		t.Fatalf("saved lifetime = %d", mp.saved().LifetimeCompletions)
	}
}

func TestLifetimeIsNotClamped(t *testing.T) {
	done := mk("a", 30, task.Morning)
	done.Completed = true
	svc, _ := newService(t, planWith(done), 0)
	if _, err := svc.Toggle(context.Background(), "a"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if svc.Lifetime() != -1 {
		t.Fatalf("lifetime = %d", svc.Lifetime())
	}
}

func TestSessionNotices(t *testing.T) {
	svc, _ := newService(t, planWith(
		mk("m1", 30, task.Morning),
		mk("m2", 30, task.Morning),
		mk("e1", 30, task.Evening),
	), 0)
	ctx := context.Background()

	toggle := func(id string) string {
		t.Helper()
		out, err := svc.Toggle(ctx, id)
		if err != nil {
			t.Fatalf("toggle %s: %v", id, err)
		}
		return out.Notice
	}

	if n := toggle("m1"); n != "" {
		t.Fatalf("unexpected notice %q", n)
	}
	if n := toggle("m2"); n != NoticeMorning {
		t.Fatalf("expected morning notice, got %q", n)
	}
	if n := toggle("e1"); n != NoticeFullDay {
		t.Fatalf("expected full day notice, got %q", n)
	}
	// Re-arm the morning and complete it again.
	if n := toggle("m2"); n != "" {
		t.Fatalf("unexpected notice %q", n)
	}
	if n := toggle("m2"); n != NoticeMorning {
		t.Fatalf("expected morning notice again, got %q", n)
	}
}

func TestEveningNoticeAlone(t *testing.T) {
	svc, _ := newService(t, planWith(mk("m1", 30, task.Morning), mk("e1", 30, task.Evening)), 0)
	out, err := svc.Toggle(context.Background(), "e1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if out.Notice != NoticeEvening {
		t.Fatalf("expected evening notice, got %q", out.Notice)
	}
}

func TestMoveRejectedOverCapacity(t *testing.T) {
	svc, _ := newService(t, planWith(mk("x", 60, task.Morning), mk("e", 150, task.Evening)), 0)
	_, err := svc.Move(context.Background(), "x", task.Evening)
	var capErr *placement.CapacityError
	if !errors.As(err, &capErr) || capErr.Location != task.Evening {
		t.Fatalf("expected evening capacity error, got %v", err)
	}
	if tk, _ := svc.Plan().Find("x"); tk.Location != task.Morning {
		t.Fatalf("task should remain in morning, got %s", tk.Location)
	}
	if _, ok := svc.Mode().(Idle); !ok {
		t.Fatalf("move never enters overflow, got %s", svc.Mode().Name())
	}
}

func TestMoveAndPack(t *testing.T) {
	svc, _ := newService(t, planWith(mk("x", 60, task.Morning), mk("m", 200, task.Morning)), 0)
	ctx := context.Background()

	if _, err := svc.Move(ctx, "x", task.Tomorrow); err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, err := svc.Pack(ctx, "m"); !errors.Is(err, ErrNotDeferred) {
		t.Fatalf("expected ErrNotDeferred, got %v", err)
	}
	out, err := svc.Pack(ctx, "x")
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if out.Task.Location != task.Evening {
		t.Fatalf("expected pack into evening, got %s", out.Task.Location)
	}
	if _, err := svc.Move(ctx, "missing", task.Evening); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEdit(t *testing.T) {
	svc, _ := newService(t, planWith(mk("a", 100, task.Morning), mk("b", 100, task.Morning)), 0)
	ctx := context.Background()

	out, err := svc.Edit(ctx, "a", " Deep  work ", 30)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if out.Task.Name != " Deep  work " || out.Task.Minutes != 30 || out.Task.Priority() != task.Small {
		t.Fatalf("unexpected edited task %+v", out.Task)
	}
	if _, err := svc.Edit(ctx, "a", "", 200); err == nil {
		t.Fatalf("expected capacity error")
	}
	out, err = svc.Edit(ctx, "a", "", 0)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if out.Task.Name != " Deep  work " || out.Task.Minutes != 30 {
		t.Fatalf("empty edit should keep values, got %+v", out.Task)
	}
}

func TestDelete(t *testing.T) {
	svc, mp := newService(t, planWith(mk("a", 30, task.Morning)), 0)
	if _, err := svc.Delete(context.Background(), "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(svc.Plan().Tasks) != 0 || len(mp.saved().CurrentPlan.Tasks) != 0 {
		t.Fatalf("expected task removed")
	}
}

func TestLoadRollsOver(t *testing.T) {
	old := plan.New("2026-10-13")
	for _, tk := range []*task.Task{
		mk("t1", 30, task.Tomorrow),
		mk("t2", 30, task.Tomorrow),
		mk("m1", 30, task.Morning),
		mk("m2", 30, task.Morning),
		mk("m3", 30, task.Morning),
	} {
		tk.Completed = tk.Location == task.Morning
		old.Add(tk)
	}
	svc, mp := newService(t, old, 3)

	p := svc.Plan()
	if p.Date != today || len(p.Tasks) != 2 {
		t.Fatalf("unexpected rolled plan %+v", p)
	}
	for _, tk := range p.Tasks {
		if tk.Location != task.Morning || tk.Completed {
			t.Fatalf("unexpected carried task %+v", tk)
		}
	}
	if mp.saves != 1 || mp.saved().CurrentPlan.Date != today {
		t.Fatalf("rolled plan should be saved")
	}
	if svc.Lifetime() != 3 {
		t.Fatalf("lifetime should survive rollover, got %d", svc.Lifetime())
	}

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if mp.saves != 1 {
		t.Fatalf("second load should not save again")
	}
}

func TestLoadCorruptStartsEmpty(t *testing.T) {
	mp := &memoryPersistence{loadErr: store.ErrCorrupt}
	svc := &Service{Persistence: mp, Now: fixedNow}
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if svc.Plan() != nil || svc.Lifetime() != 0 {
		t.Fatalf("expected empty state")
	}
}

func TestLoadPropagatesOtherErrors(t *testing.T) {
	mp := &memoryPersistence{loadErr: errors.New("disk on fire")}
	svc := &Service{Persistence: mp, Now: fixedNow}
	if err := svc.Load(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCancelIntake(t *testing.T) {
	svc, _ := newService(t, planWith(mk("m", 240, task.Morning), mk("e", 180, task.Evening)), 0)
	if _, err := svc.AddTask(context.Background(), "x", 30); err != nil {
		t.Fatalf("add: %v", err)
	}
	svc.CancelIntake()
	if _, ok := svc.Mode().(Idle); !ok {
		t.Fatalf("expected idle")
	}
	if len(svc.Plan().Tasks) != 2 {
		t.Fatalf("cancel must not change the plan")
	}
}

func TestReport(t *testing.T) {
	done := mk("m1", 30, task.Morning)
	done.Completed = true
	svc, _ := newService(t, planWith(done, mk("m2", 60, task.Morning), mk("t", 45, task.Tomorrow)), 2)
	r := svc.Report()
	if r.Date != today || r.Lifetime != 2 || r.Tomorrow != 1 || r.TomorrowMinutes != 45 {
		t.Fatalf("unexpected report %+v", r)
	}
	m := r.Sessions[0]
	if m.Location != task.Morning || m.Used != 90 || m.Done != 1 || m.Total != 2 || m.Complete || m.Remaining() != 150 {
		t.Fatalf("unexpected morning report %+v", m)
	}
}
