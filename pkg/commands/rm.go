package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/bento/pkg/commands/options"
	"tableflip.dev/bento/pkg/runner/remove"
)

func addRemove(topLevel *cobra.Command) {
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "rm <task>",
		Aliases: []string{"remove", "delete"},
		Short:   "delete a task",
		Example: `
bento rm "call mom"
`,
		Args: options.RefArgs(ido),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			r := remove.Remove{
				Service: s.Service,
				Ref:     ido.Ref,
				JSON:    output.JSON,
				Out:     color.Output,
			}
			err = r.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
