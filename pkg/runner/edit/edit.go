// Package edit provides the runner that renames and resizes a task.
package edit

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/bento/pkg/app"
	"tableflip.dev/bento/pkg/printers"
)

// Edit changes the name and duration of a task. Zero values leave the field
// as it is.
type Edit struct {
	Service *app.Service
	Ref     string
	Name    string
	Minutes int

	ShowID bool
	JSON   bool
	Out    io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no service")
	}
	if n.Name == "" && n.Minutes <= 0 {
		return errors.New("nothing to change, set a name or minutes")
	}
	id, err := n.Service.Resolve(n.Ref)
	if err != nil {
		return err
	}
	out, err := n.Service.Edit(ctx, id, n.Name, n.Minutes)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, out)
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.Outcome("Updated", out)
	return nil
}
