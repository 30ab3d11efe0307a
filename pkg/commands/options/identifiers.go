package options

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID bool
	// Ref is a task id, id prefix or name.
	Ref string
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each task.")
}

// RefArgs joins the positional args into the task reference.
func RefArgs(o *IDOptions) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("requires a task id or name")
		}
		o.Ref = strings.Join(args, " ")
		return nil
	}
}
