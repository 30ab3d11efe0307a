package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/bento/pkg/commands/options"
	"tableflip.dev/bento/pkg/runner/get"
	"tableflip.dev/bento/pkg/task"
)

func addList(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	var loc task.Location

	cmd := &cobra.Command{
		Use:     "list [morning|evening|tomorrow]",
		Aliases: []string{"ls", "get"},
		Short:   "show today's boxes and the tomorrow queue",
		Example: `
bento list
bento list tomorrow --show-id
bento list --json
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return nil
			}
			var err error
			loc, err = task.ParseLocation(args[0])
			return err
		},
		ValidArgs: options.LocationArgs(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			g := get.Get{
				Service:  s.Service,
				Location: loc,
				ShowID:   ido.ShowID,
				JSON:     output.JSON,
				Out:      color.Output,
			}
			err = g.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, ido)
	topLevel.AddCommand(cmd)
}
