package commands

import (
	"github.com/spf13/cobra"

	teaui "tableflip.dev/bento/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
bento ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			return teaui.Run(cmd.Context(), s.Service)
		},
	}

	topLevel.AddCommand(cmd)
}
