// Package remove provides the runner that deletes a task.
package remove

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/bento/pkg/app"
	"tableflip.dev/bento/pkg/printers"
)

// Remove deletes a task from the plan.
type Remove struct {
	Service *app.Service
	Ref     string

	JSON bool
	Out  io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove, no service")
	}
	id, err := n.Service.Resolve(n.Ref)
	if err != nil {
		return err
	}
	out, err := n.Service.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, out)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Outcome("Removed", out)
	return nil
}
