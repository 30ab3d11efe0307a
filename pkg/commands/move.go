package commands

import (
	"errors"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/bento/pkg/commands/options"
	"tableflip.dev/bento/pkg/runner/move"
	"tableflip.dev/bento/pkg/task"
)

func addMove(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	var to task.Location

	cmd := &cobra.Command{
		Use:     "move <morning|evening|tomorrow> <task>",
		Aliases: []string{"mv"},
		Short:   "move a task to another box",
		Example: `
bento move tomorrow "write report"
bento move evening gym
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a location and a task id or name")
			}
			var err error
			to, err = task.ParseLocation(args[0])
			if err != nil {
				return err
			}
			ido.Ref = strings.Join(args[1:], " ")
			return nil
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return options.LocationArgs(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			m := move.Move{
				Service: s.Service,
				Ref:     ido.Ref,
				To:      to,
				ShowID:  ido.ShowID,
				JSON:    output.JSON,
				Out:     color.Output,
			}
			err = m.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, ido)
	topLevel.AddCommand(cmd)
}
