// Package complete provides the runner logic for marking tasks complete.
package complete

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/bento/pkg/app"
	"tableflip.dev/bento/pkg/printers"
)

// Complete toggles completion of a task.
type Complete struct {
	Service *app.Service
	// Ref is an id, id prefix or task name.
	Ref string

	ShowID bool
	JSON   bool
	Out    io.Writer
}

// Do executes the toggle for the configured task.
func (n *Complete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not complete, no service")
	}
	id, err := n.Service.Resolve(n.Ref)
	if err != nil {
		return err
	}
	out, err := n.Service.Toggle(ctx, id)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, out)
	}

	verb := "Reopened"
	if out.Task.Completed {
		verb = "Completed"
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.Outcome(verb, out)
	return nil
}
