package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/bento/pkg/commands/options"
	"tableflip.dev/bento/pkg/runner/pack"
)

func addPack(topLevel *cobra.Command) {
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "pack <task>",
		Short: "bring a tomorrow task into today",
		Long:  options.Wrap80("Move a task from the tomorrow queue into the morning box, or the evening box when the morning is full."),
		Example: `
bento pack groceries
`,
		Args: options.RefArgs(ido),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			p := pack.Pack{
				Service: s.Service,
				Ref:     ido.Ref,
				ShowID:  ido.ShowID,
				JSON:    output.JSON,
				Out:     color.Output,
			}
			err = p.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, ido)
	topLevel.AddCommand(cmd)
}
