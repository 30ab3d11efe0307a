package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/bento/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "bento",
		Short: options.Wrap80("Pack the day into a morning box and an evening box, and keep the rest for tomorrow."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddOutputArg(cmd, output)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addList(topLevel)
	addDone(topLevel)
	addEdit(topLevel)
	addRemove(topLevel)
	addMove(topLevel)
	addPack(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
