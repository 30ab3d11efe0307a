package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/bento/pkg/overflow"
)

// AddOptions
type AddOptions struct {
	Raw        bool
	Minutes    int
	OnOverflow string
	File       string
}

func AddAddArgs(cmd *cobra.Command, o *AddOptions) {
	cmd.Flags().BoolVar(&o.Raw, "raw", false,
		"Treat each line as a task instead of extracting tasks from the text.")
	cmd.Flags().IntVarP(&o.Minutes, "minutes", "m", 0,
		"Duration in minutes for every task, skips the duration prompt.")
	cmd.Flags().StringVar(&o.OnOverflow, "on-overflow", "",
		`What to do when a task fits in neither box: "tomorrow", "force-morning" or "force-evening".`)
	cmd.Flags().StringVarP(&o.File, "file", "f", "",
		`Read the text from a file, "-" for stdin.`)
}

// Choice parses --on-overflow. Empty means ask.
func (o *AddOptions) Choice() (overflow.Choice, error) {
	if o.OnOverflow == "" {
		return "", nil
	}
	return overflow.ParseChoice(o.OnOverflow)
}
