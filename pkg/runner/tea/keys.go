package teaui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/bento/pkg/app"
	"tableflip.dev/bento/pkg/overflow"
	"tableflip.dev/bento/pkg/task"
)

// resizeStep is the minutes added or removed by + and -.
const resizeStep = 15

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch mode := m.svc.Mode().(type) {
	case app.Extracting:
		return m, nil
	case app.AwaitingDuration:
		return m.handleDuration(msg)
	case app.OverflowChoice:
		return m.handleChoice(msg)
	case app.OverflowSelection:
		return m.handleSelection(msg, mode.Selection)
	}

	if m.typing {
		return m.handleTyping(msg)
	}
	return m.handleBoard(msg)
}

func (m Model) handleTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.blurTyping()
		return m, nil
	case tea.KeyEnter:
		raw := m.input.Value()
		id := m.editing
		m.blurTyping()
		if strings.TrimSpace(raw) == "" {
			return m, nil
		}
		if id != "" {
			cmd := m.result(m.svc.Edit(m.ctx, id, raw, 0))
			return m, cmd
		}
		cmd := m.startExtraction(strings.TrimSpace(raw))
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleDuration(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.svc.CancelIntake()
		m.blurTyping()
		return m, nil
	case tea.KeyEnter:
		out, err := m.svc.SubmitDuration(m.ctx, m.input.Value())
		m.input.Reset()
		if errors.Is(err, app.ErrInvalidDuration) {
			return m, nil
		}
		cmd := m.result(out, err)
		if _, more := m.svc.Mode().(app.AwaitingDuration); !more {
			m.choice = 0
			m.input.Blur()
		}
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleChoice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	choices := overflow.AllChoices()
	switch msg.String() {
	case "esc":
		m.svc.CancelIntake()
		return m, nil
	case "up", "k":
		if m.choice > 0 {
			m.choice--
		}
		return m, nil
	case "down", "j":
		if m.choice < len(choices)-1 {
			m.choice++
		}
		return m, nil
	case "1", "2", "3":
		m.choice = int(msg.Runes[0] - '1')
	case "enter":
	default:
		return m, nil
	}

	out, err := m.svc.ChooseOverflow(m.ctx, choices[m.choice])
	m.choice = 0
	cmd := tea.Batch(m.result(out, err), m.afterIntakeStep())
	return m, cmd
}

func (m Model) handleSelection(msg tea.KeyMsg, sel *overflow.Selection) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.svc.CancelIntake()
		return m, nil
	case "up", "k":
		if m.choice > 0 {
			m.choice--
		}
	case "down", "j":
		if m.choice < len(sel.Candidates)-1 {
			m.choice++
		}
	case " ", "x":
		if m.choice >= len(sel.Candidates) {
			return m, nil
		}
		err := m.svc.ToggleCandidate(sel.Candidates[m.choice].ID)
		if errors.Is(err, overflow.ErrSelectionOverCapacity) {
			cmd := m.setFlash(flashAdvisory, sel.Session.Title()+" box is full. Release something first.")
			return m, cmd
		}
		if err != nil {
			cmd := m.setFlash(flashAdvisory, err.Error())
			return m, cmd
		}
	case "enter":
		out, err := m.svc.ConfirmSelection(m.ctx)
		m.choice = 0
		cmd := tea.Batch(m.result(out, err), m.afterIntakeStep())
		return m, cmd
	}
	return m, nil
}

// afterIntakeStep focuses the duration input when more names are queued.
func (m *Model) afterIntakeStep() tea.Cmd {
	if _, ok := m.svc.Mode().(app.AwaitingDuration); ok {
		return m.focusDuration()
	}
	return nil
}

func (m Model) handleBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	loc := m.focused()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "a", "i":
		cmd := m.focusTyping("", "What's on your plate today?")
		return m, cmd
	case "left", "h":
		if m.column > 0 {
			m.column--
		}
		return m, nil
	case "right", "l", "tab":
		m.column = (m.column + 1) % len(columns)
		return m, nil
	case "up", "k":
		if m.cursor[loc] > 0 {
			m.cursor[loc]--
		}
		return m, nil
	case "down", "j":
		if m.cursor[loc] < len(m.columnTasks(loc))-1 {
			m.cursor[loc]++
		}
		return m, nil
	}

	t := m.selected()
	if t == nil {
		return m, nil
	}
	var cmd tea.Cmd
	switch msg.String() {
	case " ", "x", "enter":
		cmd = m.result(m.svc.Toggle(m.ctx, t.ID))
	case "m":
		cmd = m.result(m.svc.Move(m.ctx, t.ID, task.Morning))
	case "e":
		cmd = m.result(m.svc.Move(m.ctx, t.ID, task.Evening))
	case "t":
		cmd = m.result(m.svc.Move(m.ctx, t.ID, task.Tomorrow))
	case "p":
		if loc == task.Tomorrow {
			cmd = m.result(m.svc.Pack(m.ctx, t.ID))
		}
	case "d", "delete":
		cmd = m.result(m.svc.Delete(m.ctx, t.ID))
	case "r":
		m.editing = t.ID
		cmd = m.focusTyping(t.Name, "task name")
	case "+", "=":
		cmd = m.result(m.svc.Edit(m.ctx, t.ID, "", t.Minutes+resizeStep))
	case "-":
		if t.Minutes > resizeStep {
			cmd = m.result(m.svc.Edit(m.ctx, t.ID, "", t.Minutes-resizeStep))
		}
	}
	return m, cmd
}
