// Package get provides the runner that shows the current plan.
package get

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/bento/pkg/app"
	"tableflip.dev/bento/pkg/plan"
	"tableflip.dev/bento/pkg/printers"
	"tableflip.dev/bento/pkg/task"
)

// Get prints the plan, optionally limited to one location.
type Get struct {
	Service *app.Service
	// Location limits the listing when set.
	Location task.Location

	ShowID bool
	JSON   bool
	Out    io.Writer
}

// Result is the JSON shape of a listing.
type Result struct {
	Plan   *plan.Plan `json:"currentPlan"`
	Report app.Report `json:"report"`
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	p := n.Service.Plan()
	r := n.Service.Report()

	if n.Location != "" && p != nil {
		p.Tasks = p.In(n.Location)
	}

	if n.JSON {
		return printers.JSON(n.Out, Result{Plan: p, Report: r})
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	switch {
	case n.Location == "":
		pp.Plan(p, r)
	case n.Location == task.Tomorrow:
		pp.Tomorrow(p.In(task.Tomorrow)...)
	default:
		for _, s := range r.Sessions {
			if s.Location == n.Location {
				pp.Session(p, s)
			}
		}
	}
	return nil
}
