// Package move provides the runner that moves a task between boxes.
package move

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/bento/pkg/app"
	"tableflip.dev/bento/pkg/printers"
	"tableflip.dev/bento/pkg/task"
)

// Move relocates a task. A full target box is reported as an error and the
// task stays where it was.
type Move struct {
	Service *app.Service
	Ref     string
	To      task.Location

	ShowID bool
	JSON   bool
	Out    io.Writer
}

func (n *Move) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not move, no service")
	}
	id, err := n.Service.Resolve(n.Ref)
	if err != nil {
		return err
	}
	out, err := n.Service.Move(ctx, id, n.To)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, out)
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.Outcome("Moved", out)
	return nil
}
