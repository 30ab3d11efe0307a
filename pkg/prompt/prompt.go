// Package prompt asks the questions of the intake flow on a terminal.
package prompt

import (
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"

	"tableflip.dev/bento/pkg/app"
	"tableflip.dev/bento/pkg/capacity"
	"tableflip.dev/bento/pkg/overflow"
	"tableflip.dev/bento/pkg/task"
)

// Prompter answers the questions asked while new tasks are being packed.
type Prompter interface {
	// Duration asks for the minutes of name. The answer is parsed by the caller.
	Duration(name string) (string, error)
	// Overflow asks how to resolve a task that fit nowhere.
	Overflow(pending *task.Task) (overflow.Choice, error)
	// Candidate asks which candidate to toggle next, or whether to confirm.
	Candidate(sel *overflow.Selection) (id string, confirm bool, err error)
}

// Interactive reports whether stdin and stdout are terminals.
func Interactive() bool {
	return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Terminal is a Prompter backed by promptui.
type Terminal struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

func (t Terminal) Duration(name string) (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} ",
		Valid:   "{{ . | green }} ",
		Invalid: "{{ . | red }} ",
		Success: "{{ . | bold }} ",
	}

	validate := func(input string) error {
		_, err := app.ParseDuration(input)
		return err
	}

	p := promptui.Prompt{
		Label:     fmt.Sprintf("How many minutes for '%s'?", name),
		Templates: templates,
		Validate:  validate,
		Stdin:     t.Stdin,
		Stdout:    t.Stdout,
	}
	return p.Run()
}

type choiceItem struct {
	Choice overflow.Choice
	Label  string
}

func (t Terminal) Overflow(pending *task.Task) (overflow.Choice, error) {
	items := make([]choiceItem, 0, 3)
	for _, c := range overflow.AllChoices() {
		items = append(items, choiceItem{Choice: c, Label: c.Label(pending.Name)})
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "➜  {{ .Label | bold }}",
		Inactive: "   {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	s := promptui.Select{
		HideHelp:  true,
		Label:     fmt.Sprintf("'%s' (%dm) won't fit in today's boxes. Which one would you like to move to tomorrow?", pending.Name, pending.Minutes),
		Items:     items,
		Templates: templates,
		Stdin:     t.Stdin,
		Stdout:    t.Stdout,
	}
	i, _, err := s.Run()
	if err != nil {
		return "", err
	}
	return items[i].Choice, nil
}

// CandidateItem is one row of the keep-list prompt.
type CandidateItem struct {
	ID      string
	Label   string
	Confirm bool
}

func (t Terminal) Candidate(sel *overflow.Selection) (string, bool, error) {
	items := CandidateItems(sel)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "➜  {{ .Label | bold }}",
		Inactive: "   {{ .Label }}",
		Selected: "{{ .Label | faint }}",
	}

	s := promptui.Select{
		HideHelp:  true,
		Label:     fmt.Sprintf("Keep in %s (%d/%dm). Unkept tasks go to tomorrow.", sel.Session.Title(), sel.KeptMinutes(), limitOf(sel.Session)),
		Items:     items,
		Templates: templates,
		Size:      len(items),
		Stdin:     t.Stdin,
		Stdout:    t.Stdout,
	}
	i, _, err := s.Run()
	if err != nil {
		return "", false, err
	}
	return items[i].ID, items[i].Confirm, nil
}

// CandidateItems lists the selection rows followed by the confirm row.
func CandidateItems(sel *overflow.Selection) []CandidateItem {
	items := make([]CandidateItem, 0, len(sel.Candidates)+1)
	for _, c := range sel.Candidates {
		box := "[ ]"
		switch {
		case sel.IsKept(c.ID):
			box = "[x]"
		case !sel.Selectable(c.ID):
			box = "[-]"
		}
		label := fmt.Sprintf("%s %s  %dm", box, c.Name, c.Minutes)
		if c.ID == sel.Pending.ID {
			label += "  (new)"
		}
		items = append(items, CandidateItem{ID: c.ID, Label: label})
	}
	items = append(items, CandidateItem{Label: "Confirm Selection", Confirm: true})
	return items
}

func limitOf(loc task.Location) int {
	limit, _ := capacity.Limit(loc)
	return limit
}

// NopCloser wraps w for promptui, which wants a WriteCloser.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
