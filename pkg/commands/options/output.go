package options

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/bento/pkg/app"
	"tableflip.dev/bento/pkg/placement"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// HandleError prints err as a JSON object in JSON mode and swallows it.
func (o *OutputOptions) HandleError(err error) error {
	if !o.JSON || err == nil {
		return err
	}
	out := struct {
		Error string `json:"error"`
		Kind  string `json:"kind,omitempty"`
	}{Error: err.Error(), Kind: errorKind(err)}
	b, jerr := json.Marshal(out)
	if jerr != nil {
		return jerr
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return nil
}

func errorKind(err error) string {
	var ce *placement.CapacityError
	switch {
	case errors.As(err, &ce):
		return "capacity"
	case errors.Is(err, app.ErrNotFound):
		return "not_found"
	case errors.Is(err, app.ErrAmbiguous):
		return "ambiguous"
	case errors.Is(err, app.ErrWrongMode):
		return "wrong_mode"
	case errors.Is(err, app.ErrInvalidDuration):
		return "invalid_duration"
	}
	return ""
}
