// Package add provides the runner that turns free text into packed tasks.
package add

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"tableflip.dev/bento/pkg/app"
	"tableflip.dev/bento/pkg/extract"
	"tableflip.dev/bento/pkg/overflow"
	"tableflip.dev/bento/pkg/printers"
	"tableflip.dev/bento/pkg/prompt"
	"tableflip.dev/bento/pkg/task"
)

// Add extracts tasks from Text, asks for their durations and packs them.
type Add struct {
	Service *app.Service
	// Prompter answers questions interactively. Without one, Minutes is
	// required and only Defer can resolve an overflow.
	Prompter prompt.Prompter

	Text string
	// Raw skips the extractor and treats each line of Text as a task.
	Raw bool
	// Minutes, when positive, is used for every task instead of asking.
	Minutes int
	// OnOverflow, when set, resolves every overflow without asking.
	OnOverflow overflow.Choice

	ShowID bool
	JSON   bool
	Out    io.Writer
}

// Result is the JSON shape of an add run.
type Result struct {
	Tasks   []*task.Task `json:"tasks"`
	Notices []string     `json:"notices,omitempty"`
}

// Do executes the add flow until every queued name is placed.
func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	svc := n.Service

	var err error
	if n.Raw {
		var names []string
		names, err = extract.Lines{}.Extract(ctx, n.Text)
		if err == nil {
			err = svc.Queue(names...)
		}
	} else {
		err = svc.Extract(ctx, n.Text)
	}
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	if _, idle := svc.Mode().(app.Idle); idle {
		if n.JSON {
			return printers.JSON(n.Out, Result{Tasks: []*task.Task{}})
		}
		pp.Advisory("No tasks found.")
		return nil
	}

	res, err := n.run(ctx, pp)
	if err != nil {
		svc.CancelIntake()
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, res)
	}
	return nil
}

func (n *Add) run(ctx context.Context, pp printers.PrettyPrint) (Result, error) {
	svc := n.Service
	res := Result{Tasks: []*task.Task{}}
	record := func(out app.Outcome) {
		if out.Task != nil && !out.Overflow {
			res.Tasks = append(res.Tasks, out.Task)
		}
		if out.Notice != "" {
			res.Notices = append(res.Notices, out.Notice)
		}
		if !n.JSON && !out.Overflow {
			pp.Outcome("Packed", out)
		}
	}

	for {
		switch m := svc.Mode().(type) {
		case app.Idle:
			return res, nil

		case app.AwaitingDuration:
			raw, err := n.duration(m.Current())
			if err != nil {
				return res, err
			}
			out, err := svc.SubmitDuration(ctx, raw)
			if errors.Is(err, app.ErrInvalidDuration) && n.Minutes <= 0 {
				pp.Advisory("Please enter a whole number of minutes.")
				continue
			}
			if err != nil {
				return res, err
			}
			record(out)

		case app.OverflowChoice:
			choice, err := n.choice(m.Pending)
			if err != nil {
				return res, err
			}
			out, err := svc.ChooseOverflow(ctx, choice)
			if err != nil {
				return res, err
			}
			if choice == overflow.Defer {
				record(out)
			}

		case app.OverflowSelection:
			if n.Prompter == nil {
				return res, errors.New("choosing what to keep needs an interactive terminal")
			}
			id, confirm, err := n.Prompter.Candidate(m.Selection)
			if err != nil {
				return res, err
			}
			if confirm {
				out, err := svc.ConfirmSelection(ctx)
				if err != nil {
					return res, err
				}
				record(out)
				continue
			}
			if err := svc.ToggleCandidate(id); errors.Is(err, overflow.ErrSelectionOverCapacity) {
				pp.Advisory(fmt.Sprintf("That would overfill the %s box.", m.Selection.Session.Title()))
			} else if err != nil {
				return res, err
			}

		default:
			return res, fmt.Errorf("unexpected mode %s", m.Name())
		}
	}
}

func (n *Add) duration(name string) (string, error) {
	if n.Minutes > 0 {
		return strconv.Itoa(n.Minutes), nil
	}
	if n.Prompter == nil {
		return "", fmt.Errorf("no duration for %q, pass --minutes when not interactive", name)
	}
	return n.Prompter.Duration(name)
}

func (n *Add) choice(pending *task.Task) (overflow.Choice, error) {
	if n.OnOverflow != "" {
		if n.Prompter == nil && n.OnOverflow != overflow.Defer {
			return "", fmt.Errorf("--on-overflow=%s needs an interactive terminal", n.OnOverflow)
		}
		return n.OnOverflow, nil
	}
	if n.Prompter == nil {
		return "", fmt.Errorf("%q does not fit today, pass --on-overflow=tomorrow when not interactive", pending.Name)
	}
	return n.Prompter.Overflow(pending)
}
