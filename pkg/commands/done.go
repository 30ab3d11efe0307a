package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/bento/pkg/commands/options"
	"tableflip.dev/bento/pkg/runner/complete"
)

func addDone(topLevel *cobra.Command) {
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "done <task>",
		Aliases: []string{"complete", "toggle"},
		Short:   "mark a task done, or not done again",
		Example: `
bento done "write report"
bento done 3f2a9c1b
`,
		Args: options.RefArgs(ido),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			c := complete.Complete{
				Service: s.Service,
				Ref:     ido.Ref,
				ShowID:  ido.ShowID,
				JSON:    output.JSON,
				Out:     color.Output,
			}
			err = c.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, ido)
	topLevel.AddCommand(cmd)
}
