package teaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/bento/pkg/app"
	"tableflip.dev/bento/pkg/overflow"
	"tableflip.dev/bento/pkg/task"
)

const (
	minBoxWidth     = 24
	defaultBoxWidth = 30
	defaultWidth    = 100
)

const (
	boardHelp  = "a add · space done · m/e/t move · p pack · r rename · +/- resize · d delete · q quit"
	typingHelp = "enter submit · esc cancel"
	choiceHelp = "↑/↓ choose · enter confirm · esc cancel"
	selectHelp = "↑/↓ move · space keep/release · enter confirm · esc cancel"
)

// View renders the boxes, the intake area and the footer.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")
	b.WriteString(m.board())
	b.WriteString("\n\n")
	if intake := m.intake(); intake != "" {
		b.WriteString(intake)
		b.WriteString("\n\n")
	}
	b.WriteString(m.footer())
	return b.String()
}

func (m Model) wrapWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m Model) header() string {
	r := m.svc.Report()
	date := r.Date
	if date == "" {
		date = m.svc.Today()
	}
	return m.theme.Header.Render(fmt.Sprintf("bento · %s · %d lifetime completions", date, r.Lifetime))
}

func (m Model) boxWidth() int {
	if m.width <= 0 {
		return defaultBoxWidth
	}
	w := (m.width - 3*4) / 3
	if w < minBoxWidth {
		return minBoxWidth
	}
	return w
}

func (m Model) board() string {
	r := m.svc.Report()
	boxes := make([]string, 0, len(columns))
	for i, loc := range columns {
		var usage string
		over := false
		for _, s := range r.Sessions {
			if s.Location == loc {
				usage = fmt.Sprintf("%d/%dm · %d/%d done", s.Used, s.Limit, s.Done, s.Total)
				over = s.Used > s.Limit
			}
		}
		if loc == task.Tomorrow {
			usage = fmt.Sprintf("%d queued · %dm", r.Tomorrow, r.TomorrowMinutes)
		}
		boxes = append(boxes, m.box(loc, usage, over, i == m.column && m.boardFocused()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m Model) boardFocused() bool {
	_, idle := m.svc.Mode().(app.Idle)
	return idle && !m.typing
}

func (m Model) box(loc task.Location, usage string, over, focused bool) string {
	bt := m.theme.Box
	style := bt.Blurred
	if focused {
		style = bt.Focused
	}
	usageStyle := bt.Usage
	if over {
		usageStyle = bt.Over
	}

	lines := []string{bt.Title.Render(loc.Title()), usageStyle.Render(usage), ""}
	tasks := m.columnTasks(loc)
	if len(tasks) == 0 {
		lines = append(lines, bt.Empty.Render("empty"))
	}
	var prio task.Priority
	for i, t := range tasks {
		if loc.IsSession() && t.Priority() != prio {
			prio = t.Priority()
			lines = append(lines, bt.Compartment.Render(prio.Compartment()))
		}
		lines = append(lines, m.taskLine(t, focused && i == m.cursor[loc]))
	}
	return style.Width(m.boxWidth()).Render(strings.Join(lines, "\n"))
}

func (m Model) taskLine(t *task.Task, cursor bool) string {
	bt := m.theme.Box
	box := "[ ]"
	name := bt.Task.Render(t.Name)
	if t.Completed {
		box = "[x]"
		name = bt.Done.Render(t.Name)
	}
	line := fmt.Sprintf("%s %s %s", box, name, bt.Usage.Render(fmt.Sprintf("%dm", t.Minutes)))
	if cursor {
		return bt.Cursor.Render(line)
	}
	return line
}

func (m Model) intake() string {
	pt := m.theme.Prompt
	width := m.wrapWidth()

	if m.loading != "" {
		return pt.Loading.Render(m.loading)
	}

	switch mode := m.svc.Mode().(type) {
	case app.AwaitingDuration:
		q := fmt.Sprintf("How many minutes for '%s'?", mode.Current())
		if rest := len(mode.Queue) - 1; rest > 0 {
			q += fmt.Sprintf(" (%d more after this)", rest)
		}
		return pt.Question.Render(wordwrap.String(q, width)) + "\n" + m.input.View()

	case app.OverflowChoice:
		q := fmt.Sprintf("'%s' (%dm) won't fit in today's boxes. Which one would you like to move to tomorrow?", mode.Pending.Name, mode.Pending.Minutes)
		lines := []string{pt.Question.Render(wordwrap.String(q, width))}
		for i, c := range overflow.AllChoices() {
			label := fmt.Sprintf("%d. %s", i+1, c.Label(mode.Pending.Name))
			if i == m.choice {
				lines = append(lines, pt.Selected.Render("➜ "+label))
			} else {
				lines = append(lines, pt.Item.Render("  "+label))
			}
		}
		return strings.Join(lines, "\n")

	case app.OverflowSelection:
		return m.selection(mode.Selection)
	}

	if m.typing {
		return m.input.View()
	}
	return ""
}

func (m Model) selection(sel *overflow.Selection) string {
	pt := m.theme.Prompt
	limit := capacityLimit(sel.Session)
	q := fmt.Sprintf("Pick what stays in the %s box (%d/%dm). Everything else moves to tomorrow.", sel.Session.Title(), sel.KeptMinutes(), limit)
	lines := []string{pt.Question.Render(wordwrap.String(q, m.wrapWidth()))}
	for i, c := range sel.Candidates {
		box := "[ ]"
		style := pt.Item
		switch {
		case sel.IsKept(c.ID):
			box = "[x]"
		case !sel.Selectable(c.ID):
			style = pt.Disabled
		}
		label := fmt.Sprintf("%s %s %dm", box, c.Name, c.Minutes)
		if c.ID == sel.Pending.ID {
			label += " (new)"
		}
		if i == m.choice {
			lines = append(lines, pt.Selected.Render("➜ "+label))
		} else {
			lines = append(lines, style.Render("  "+label))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) footer() string {
	ft := m.theme.Footer
	var help string
	switch m.svc.Mode().(type) {
	case app.AwaitingDuration:
		help = typingHelp
	case app.OverflowChoice:
		help = choiceHelp
	case app.OverflowSelection:
		help = selectHelp
	case app.Extracting:
		help = ""
	default:
		help = boardHelp
		if m.typing {
			help = typingHelp
		}
	}

	lines := make([]string, 0, 2)
	if m.flash.text != "" {
		style := ft.Advisory
		if m.flash.kind == flashNotice {
			style = ft.Notice
		}
		lines = append(lines, style.Render(m.flash.text))
	}
	if help != "" {
		lines = append(lines, ft.Help.Render(wordwrap.String(help, m.wrapWidth())))
	}
	return strings.Join(lines, "\n")
}
