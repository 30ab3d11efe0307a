package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/bento/pkg/commands/options"
	"tableflip.dev/bento/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	var (
		name    string
		minutes int
	)

	cmd := &cobra.Command{
		Use:   "edit <task>",
		Short: "rename or resize a task",
		Example: `
bento edit "write report" --name "write summary"
bento edit gym --minutes 45
`,
		Args: options.RefArgs(ido),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			e := edit.Edit{
				Service: s.Service,
				Ref:     ido.Ref,
				Name:    name,
				Minutes: minutes,
				ShowID:  ido.ShowID,
				JSON:    output.JSON,
				Out:     color.Output,
			}
			err = e.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New task name.")
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "New duration in minutes.")
	options.AddShowIDArgs(cmd, ido)
	topLevel.AddCommand(cmd)
}
