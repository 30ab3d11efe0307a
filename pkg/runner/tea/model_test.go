package teaui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/bento/pkg/app"
	"tableflip.dev/bento/pkg/extract"
	"tableflip.dev/bento/pkg/store"
	"tableflip.dev/bento/pkg/task"
)

type memoryStore struct {
	mu    sync.Mutex
	state *store.State
}

func (m *memoryStore) Load(context.Context) (*store.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return &store.State{}, nil
	}
	return &store.State{CurrentPlan: m.state.CurrentPlan.Clone(), LifetimeCompletions: m.state.LifetimeCompletions}, nil
}

func (m *memoryStore) Save(_ context.Context, s *store.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = &store.State{CurrentPlan: s.CurrentPlan.Clone(), LifetimeCompletions: s.LifetimeCompletions}
	return nil
}

func (m *memoryStore) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

func newModel(t *testing.T, names ...string) (Model, *app.Service, *memoryStore) {
	t.Helper()
	ms := &memoryStore{}
	svc := &app.Service{
		Persistence: ms,
		Extractor:   extract.Static{Names: names},
		Now: func() time.Time {
			return time.Date(2026, time.October, 14, 9, 0, 0, 0, time.Local)
		},
	}
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return New(context.Background(), svc), svc, ms
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

// extract drives the text box and feeds the extractor result back in.
func extractText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = send(t, m, key("a"), key(text))
	m, cmd := send(t, m, key("enter"))
	if cmd == nil {
		t.Fatalf("expected extraction command")
	}
	if _, ok := m.svc.Mode().(app.Extracting); !ok {
		t.Fatalf("expected extracting, got %s", m.svc.Mode().Name())
	}
	if m.loading == "" || !strings.Contains(m.View(), m.loading) {
		t.Fatalf("expected loading message in view")
	}
	msg := cmd()
	m, _ = send(t, m, msg)
	return m
}

func submit(t *testing.T, m Model, minutes string) Model {
	t.Helper()
	m, _ = send(t, m, key(minutes), key("enter"))
	return m
}

func where(svc *app.Service, name string) task.Location {
	for _, tk := range svc.Plan().Tasks {
		if tk.Name == name {
			return tk.Location
		}
	}
	return ""
}

func TestIntakeThroughKeys(t *testing.T) {
	m, svc, _ := newModel(t, "Write report", "Gym")
	m = extractText(t, m, "report and gym")

	mode, ok := svc.Mode().(app.AwaitingDuration)
	if !ok || mode.Current() != "Write report" {
		t.Fatalf("expected duration prompt, got %s", svc.Mode().Name())
	}
	if !strings.Contains(m.View(), "How many minutes for 'Write report'?") {
		t.Fatalf("expected duration question:\n%s", m.View())
	}

	m = submit(t, m, "abc")
	if _, ok := svc.Mode().(app.AwaitingDuration); !ok || m.flash.text != "" {
		t.Fatalf("invalid duration should re-prompt quietly, mode %s flash %q", svc.Mode().Name(), m.flash.text)
	}

	m = submit(t, m, "90")
	m = submit(t, m, "30")
	if _, ok := svc.Mode().(app.Idle); !ok {
		t.Fatalf("expected idle, got %s", svc.Mode().Name())
	}
	if where(svc, "Write report") != task.Morning || where(svc, "Gym") != task.Morning {
		t.Fatalf("unexpected plan %+v", svc.Plan().Tasks)
	}
	view := m.View()
	for _, want := range []string{"Morning", "120/240m", "Rice", "Sides", "Write report"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestOverflowSwapThroughKeys(t *testing.T) {
	m, svc, _ := newModel(t, "A", "B", "C")
	m = extractText(t, m, "abc")
	m = submit(t, m, "200")
	m = submit(t, m, "170")
	m = submit(t, m, "100")
	if _, ok := svc.Mode().(app.OverflowChoice); !ok {
		t.Fatalf("expected overflow choice, got %s", svc.Mode().Name())
	}
	if !strings.Contains(m.View(), "won't fit in today's boxes") {
		t.Fatalf("expected overflow question:\n%s", m.View())
	}

	m, _ = send(t, m, key("2"))
	if _, ok := svc.Mode().(app.OverflowSelection); !ok {
		t.Fatalf("expected selection, got %s", svc.Mode().Name())
	}
	// Candidates are A then the pending C.
	m, _ = send(t, m, key("down"), key(" "), key("enter"))
	if _, ok := svc.Mode().(app.Idle); !ok {
		t.Fatalf("expected idle, got %s", svc.Mode().Name())
	}
	if where(svc, "A") != task.Tomorrow || where(svc, "C") != task.Morning || where(svc, "B") != task.Evening {
		t.Fatalf("unexpected plan %+v", svc.Plan().Tasks)
	}
}

func TestSelectionOverCapacityAdvisory(t *testing.T) {
	m, svc, _ := newModel(t, "A", "B", "C")
	m = extractText(t, m, "abc")
	m = submit(t, m, "200")
	m = submit(t, m, "180")
	m = submit(t, m, "60")
	m, _ = send(t, m, key("2"))
	m, _ = send(t, m, key(" "))
	m, cmd := send(t, m, key("down"), key(" "))
	if cmd == nil || !strings.Contains(m.flash.text, "box is full") {
		t.Fatalf("expected advisory, got %q", m.flash.text)
	}
	if _, ok := svc.Mode().(app.OverflowSelection); !ok {
		t.Fatalf("selection should stay open, got %s", svc.Mode().Name())
	}
	m, _ = send(t, m, key("esc"))
	if _, ok := svc.Mode().(app.Idle); !ok {
		t.Fatalf("esc should cancel, got %s", svc.Mode().Name())
	}
	if where(svc, "C") != "" {
		t.Fatalf("cancelled task should not be placed")
	}
}

func TestDeferThroughKeys(t *testing.T) {
	m, svc, _ := newModel(t, "A", "B")
	m = extractText(t, m, "ab")
	m = submit(t, m, "240")
	m = submit(t, m, "200")
	m, _ = send(t, m, key("enter"))
	if where(svc, "B") != task.Tomorrow {
		t.Fatalf("expected B deferred, got %s", where(svc, "B"))
	}
}

func TestBoardActions(t *testing.T) {
	m, svc, _ := newModel(t)
	ctx := context.Background()
	if _, err := svc.AddTask(ctx, "Write report", 200); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddTask(ctx, "Read", 100); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Read sits in the evening; moving it to a full morning is refused.
	m, _ = send(t, m, key("l"))
	m, cmd := send(t, m, key("m"))
	if cmd == nil || m.flash.text != "Morning box is full. Move something to Tomorrow instead?" {
		t.Fatalf("expected advisory, got %q", m.flash.text)
	}
	seq := m.flash.seq
	m, _ = send(t, m, clearFlashMsg{seq: seq - 1})
	if m.flash.text == "" {
		t.Fatalf("stale clear should be ignored")
	}
	m, _ = send(t, m, clearFlashMsg{seq: seq})
	if m.flash.text != "" {
		t.Fatalf("expected advisory cleared")
	}

	m, _ = send(t, m, key("t"))
	if where(svc, "Read") != task.Tomorrow {
		t.Fatalf("expected Read in tomorrow")
	}
	m, _ = send(t, m, key("l"), key("p"))
	if where(svc, "Read") != task.Evening {
		t.Fatalf("expected Read packed into evening, got %s", where(svc, "Read"))
	}

	m, _ = send(t, m, key("h"), key("h"), key(" "))
	if m.flash.text != app.NoticeMorning || m.flash.kind != flashNotice {
		t.Fatalf("expected morning notice, got %q", m.flash.text)
	}
	if svc.Lifetime() != 1 {
		t.Fatalf("lifetime = %d", svc.Lifetime())
	}

	m, _ = send(t, m, key("r"))
	m, _ = send(t, m, key(" draft"), key("enter"))
	if where(svc, "Write report draft") != task.Morning {
		t.Fatalf("expected renamed task, got %+v", svc.Plan().Tasks)
	}

	m, _ = send(t, m, key("-"))
	if got := svc.Plan().Tasks[0].Minutes; got != 185 {
		t.Fatalf("minutes = %d", got)
	}
	_, _ = send(t, m, key("d"))
	if len(svc.Plan().Tasks) != 1 {
		t.Fatalf("expected delete, got %+v", svc.Plan().Tasks)
	}
}

func TestRenameKeepsTypedName(t *testing.T) {
	m, svc, _ := newModel(t)
	if _, err := svc.AddTask(context.Background(), "Gym", 30); err != nil {
		t.Fatalf("add: %v", err)
	}

	m, _ = send(t, m, key("r"))
	m, _ = send(t, m, key(" stretch "), key("enter"))
	if got := svc.Plan().Tasks[0].Name; got != "Gym stretch " {
		t.Fatalf("name = %q, want %q", got, "Gym stretch ")
	}

	// A blank entry leaves the name alone.
	m, _ = send(t, m, key("r"))
	for range len("Gym stretch ") {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m, _ = send(t, m, key("   "), key("enter"))
	if got := svc.Plan().Tasks[0].Name; got != "Gym stretch " {
		t.Fatalf("blank rename changed name to %q", got)
	}
	_ = m
}

func TestReloadWhenIdle(t *testing.T) {
	m, svc, ms := newModel(t)
	if _, err := svc.AddTask(context.Background(), "Gym", 30); err != nil {
		t.Fatalf("add: %v", err)
	}
	ms.mu.Lock()
	ms.state.CurrentPlan.Tasks[0].Name = "Swim"
	ms.mu.Unlock()

	m, _ = send(t, m, stateChangedMsg{})
	if where(svc, "Swim") != task.Morning {
		t.Fatalf("expected reload, got %+v", svc.Plan().Tasks)
	}
	if !strings.Contains(m.View(), "Swim") {
		t.Fatalf("expected reloaded task in view")
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newModel(t)
	_, cmd := send(t, m, key("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}
