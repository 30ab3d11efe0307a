// Package pack provides the runner that brings a tomorrow task into today.
package pack

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/bento/pkg/app"
	"tableflip.dev/bento/pkg/printers"
)

// Pack moves a deferred task into the first session with room.
type Pack struct {
	Service *app.Service
	Ref     string

	ShowID bool
	JSON   bool
	Out    io.Writer
}

func (n *Pack) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not pack, no service")
	}
	id, err := n.Service.Resolve(n.Ref)
	if err != nil {
		return err
	}
	out, err := n.Service.Pack(ctx, id)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, out)
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.Outcome("Packed", out)
	return nil
}
