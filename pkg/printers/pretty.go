package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/bento/pkg/app"
	"tableflip.dev/bento/pkg/plan"
	"tableflip.dev/bento/pkg/task"
)

// ShortID trims an id to the prefix shown to users.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// Plan prints both sessions grouped by compartment, then the tomorrow queue.
func (pp *PrettyPrint) Plan(p *plan.Plan, r app.Report) {
	if p == nil {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), "Nothing packed yet.\n\n")
		return
	}
	pp.Title(fmt.Sprintf("Bento for %s", p.Date))
	pp.NewLine()
	for _, s := range r.Sessions {
		pp.Session(p, s)
	}
	pp.Tomorrow(p.In(task.Tomorrow)...)

	c := color.New(color.Faint)
	_, _ = c.Fprintf(pp.out(), "Lifetime completions: %d\n", r.Lifetime)
}

// Session prints one session header and its tasks by compartment.
func (pp *PrettyPrint) Session(p *plan.Plan, s app.SessionReport) {
	h := color.New(color.Bold)
	c := color.New(color.Faint)
	if s.Used > s.Limit {
		c = color.New(color.FgRed)
	}
	_, _ = h.Fprint(pp.out(), s.Location.Title())
	_, _ = c.Fprintf(pp.out(), "  %d/%dm  %d/%d done\n", s.Used, s.Limit, s.Done, s.Total)

	tasks := p.In(s.Location)
	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), "  empty\n\n")
		return
	}

	for _, prio := range task.AllPriorities() {
		var group []*task.Task
		for _, t := range tasks {
			if t.Priority() == prio {
				group = append(group, t)
			}
		}
		if len(group) == 0 {
			continue
		}
		_, _ = c.Fprintf(pp.out(), "  %s\n", prio.Compartment())
		pp.Tasks("    ", group...)
	}
	pp.NewLine()
}

// Tomorrow prints the deferred queue.
func (pp *PrettyPrint) Tomorrow(tasks ...*task.Task) {
	h := color.New(color.Bold)
	_, _ = h.Fprintln(pp.out(), "Tomorrow")
	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), "  none\n\n")
		return
	}
	pp.Tasks("  ", tasks...)
	pp.NewLine()
}

// Tasks prints one row per task.
func (pp *PrettyPrint) Tasks(indent string, tasks ...*task.Task) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	done := color.New(color.Faint, color.CrossedOut)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, t := range tasks {
		box := "[ ]"
		name := t.Name
		if t.Completed {
			box = "[x]"
			name = done.Sprint(t.Name)
		}
		row := []interface{}{indent + box, name, fmt.Sprintf("%dm", t.Minutes), string(t.Priority())}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(ShortID(t.ID))}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Task prints a single task with its location.
func (pp *PrettyPrint) Task(t *task.Task) {
	if t == nil {
		return
	}
	b := color.New(color.Bold)
	_, _ = fmt.Fprintf(pp.out(), "%s  %dm  %s", b.Sprint(t.Name), t.Minutes, t.Location.Title())
	if pp.ShowID {
		y := color.New(color.FgHiYellow, color.Italic, color.Faint)
		_, _ = y.Fprintf(pp.out(), "  %s", ShortID(t.ID))
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Notice prints a celebration line.
func (pp *PrettyPrint) Notice(msg string) {
	if strings.TrimSpace(msg) == "" {
		return
	}
	g := color.New(color.FgGreen, color.Bold)
	_, _ = g.Fprintln(pp.out(), msg)
}

// Advisory prints a capacity warning.
func (pp *PrettyPrint) Advisory(msg string) {
	w := color.New(color.FgYellow)
	_, _ = w.Fprintln(pp.out(), msg)
}

// Outcome prints the task an action touched followed by any notice.
func (pp *PrettyPrint) Outcome(verb string, out app.Outcome) {
	if out.Task != nil {
		f := color.New(color.Faint)
		_, _ = f.Fprintf(pp.out(), "%s ", verb)
		pp.Task(out.Task)
	}
	pp.Notice(out.Notice)
}
