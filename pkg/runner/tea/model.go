// Package teaui is the interactive terminal interface of bento.
package teaui

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/bento/pkg/app"
	"tableflip.dev/bento/pkg/capacity"
	"tableflip.dev/bento/pkg/extract"
	"tableflip.dev/bento/pkg/placement"
	"tableflip.dev/bento/pkg/runner/tea/internal/theme"
	"tableflip.dev/bento/pkg/store"
	"tableflip.dev/bento/pkg/task"
)

// flashTimeout is how long advisories and notices stay on screen.
const flashTimeout = 3500 * time.Millisecond

var loadingMessages = []string{
	"Arranging your maki.",
	"Sharpening chopsticks.",
	"Balancing your bento.",
	"Setting today's portions.",
	"Checking kitchen capacity.",
}

var columns = []task.Location{task.Morning, task.Evening, task.Tomorrow}

type flashKind int

const (
	flashAdvisory flashKind = iota
	flashNotice
)

type flash struct {
	text string
	kind flashKind
	seq  int
}

// Model contains UI state. Planner state lives in the Service.
type Model struct {
	svc   *app.Service
	ctx   context.Context
	theme theme.Theme

	input textinput.Model
	// typing is set while the input line has focus in Idle.
	typing bool
	// editing is the id of the task being renamed.
	editing string

	column int
	cursor map[task.Location]int
	// choice is the cursor in both overflow prompts.
	choice int

	loading string
	flash   flash
	events  <-chan store.Event

	width  int
	height int
}

// messages
type extractedMsg struct {
	names []string
	err   error
}
type clearFlashMsg struct{ seq int }
type watchMsg struct{ events <-chan store.Event }
type stateChangedMsg struct{}
type errMsg struct{ err error }

// New creates a new UI model backed by the Service.
func New(ctx context.Context, svc *app.Service) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	ti := textinput.New()
	ti.Placeholder = "What's on your plate today?"
	ti.CharLimit = 1024
	ti.Prompt = "> "

	return Model{
		svc:    svc,
		ctx:    ctx,
		theme:  theme.Default(),
		input:  ti,
		cursor: make(map[task.Location]int),
	}
}

// Init starts watching the state file for writes by other processes.
func (m Model) Init() tea.Cmd {
	return m.watch()
}

func (m Model) watch() tea.Cmd {
	svc := m.svc
	ctx := m.ctx
	return func() tea.Msg {
		if svc == nil {
			return nil
		}
		ch, err := svc.Watch(ctx)
		if err != nil || ch == nil {
			return nil
		}
		return watchMsg{events: ch}
	}
}

func waitForEvent(ch <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case extractedMsg:
		m.loading = ""
		if err := m.svc.FinishExtraction(msg.names, msg.err); err != nil {
			cmd := m.setFlash(flashAdvisory, "Could not read tasks from that. Try again?")
			return m, cmd
		}
		if _, idle := m.svc.Mode().(app.Idle); idle {
			cmd := m.setFlash(flashAdvisory, "No tasks found.")
			return m, cmd
		}
		cmd := m.focusDuration()
		return m, cmd

	case clearFlashMsg:
		if msg.seq == m.flash.seq {
			m.flash.text = ""
		}
		return m, nil

	case watchMsg:
		m.events = msg.events
		return m, waitForEvent(m.events)

	case stateChangedMsg:
		var cmd tea.Cmd
		if _, idle := m.svc.Mode().(app.Idle); idle && !m.typing {
			if err := m.svc.Load(m.ctx); err != nil {
				cmd = m.setFlash(flashAdvisory, err.Error())
			}
			m.clampCursor()
		}
		return m, tea.Batch(cmd, waitForEvent(m.events))

	case errMsg:
		cmd := m.setFlash(flashAdvisory, msg.err.Error())
		return m, cmd
	}
	return m, nil
}

func (m *Model) setFlash(kind flashKind, text string) tea.Cmd {
	if text == "" {
		return nil
	}
	m.flash.seq++
	m.flash.text = text
	m.flash.kind = kind
	seq := m.flash.seq
	return tea.Tick(flashTimeout, func(time.Time) tea.Msg {
		return clearFlashMsg{seq: seq}
	})
}

// result turns the outcome of a planner action into flash messages.
func (m *Model) result(out app.Outcome, err error) tea.Cmd {
	m.clampCursor()
	if err == nil {
		return m.setFlash(flashNotice, out.Notice)
	}
	var ce *placement.CapacityError
	if errors.As(err, &ce) {
		return m.setFlash(flashAdvisory, ce.Message)
	}
	return m.setFlash(flashAdvisory, err.Error())
}

// startExtraction moves the service to Extracting and runs the extractor off
// the update loop.
func (m *Model) startExtraction(text string) tea.Cmd {
	if err := m.svc.StartExtraction(); err != nil {
		return m.setFlash(flashAdvisory, err.Error())
	}
	m.loading = loadingMessages[rand.Intn(len(loadingMessages))]
	ex := m.svc.Extractor
	if ex == nil {
		ex = extract.Lines{}
	}
	ctx := m.ctx
	return func() tea.Msg {
		names, err := ex.Extract(ctx, text)
		return extractedMsg{names: names, err: err}
	}
}

func (m *Model) focusDuration() tea.Cmd {
	m.typing = false
	m.input.Reset()
	m.input.Placeholder = "minutes"
	m.choice = 0
	return m.input.Focus()
}

func (m *Model) focusTyping(value, placeholder string) tea.Cmd {
	m.typing = true
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Placeholder = placeholder
	return m.input.Focus()
}

func (m *Model) blurTyping() {
	m.typing = false
	m.editing = ""
	m.input.Reset()
	m.input.Blur()
}

// columnTasks lists the tasks of loc in display order: by compartment for
// sessions, as queued for tomorrow.
func (m *Model) columnTasks(loc task.Location) []*task.Task {
	in := m.svc.Plan().In(loc)
	if !loc.IsSession() {
		return in
	}
	out := make([]*task.Task, 0, len(in))
	for _, prio := range task.AllPriorities() {
		for _, t := range in {
			if t.Priority() == prio {
				out = append(out, t)
			}
		}
	}
	return out
}

func (m *Model) focused() task.Location {
	return columns[m.column]
}

func (m *Model) selected() *task.Task {
	loc := m.focused()
	tasks := m.columnTasks(loc)
	i := m.cursor[loc]
	if i < 0 || i >= len(tasks) {
		return nil
	}
	return tasks[i]
}

func (m *Model) clampCursor() {
	for _, loc := range columns {
		n := len(m.columnTasks(loc))
		switch {
		case n == 0:
			m.cursor[loc] = 0
		case m.cursor[loc] >= n:
			m.cursor[loc] = n - 1
		case m.cursor[loc] < 0:
			m.cursor[loc] = 0
		}
	}
}

func capacityLimit(loc task.Location) int {
	limit, _ := capacity.Limit(loc)
	return limit
}
