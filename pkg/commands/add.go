package commands

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/bento/pkg/commands/options"
	"tableflip.dev/bento/pkg/prompt"
	"tableflip.dev/bento/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	ao := &options.AddOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "pack new tasks from free text",
		Long: options.Wrap80(`Extract tasks from free text and pack them into today's boxes. ` +
			`Each task is sized in minutes and placed in the morning box first, then the evening box. ` +
			`When neither has room you choose to keep it for tomorrow or swap it in.`),
		Example: `
bento add "write the report, gym, call mom"
bento add --raw --minutes 30 "laundry"
cat notes.txt | bento add --minutes 20 --on-overflow tomorrow
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			text, err := readText(ao.File, args)
			if err != nil {
				return output.HandleError(err)
			}
			choice, err := ao.Choice()
			if err != nil {
				return output.HandleError(err)
			}

			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			a := add.Add{
				Service:    s.Service,
				Text:       text,
				Raw:        ao.Raw,
				Minutes:    ao.Minutes,
				OnOverflow: choice,
				ShowID:     ido.ShowID,
				JSON:       output.JSON,
				Out:        color.Output,
			}
			if !output.JSON && ao.File != "-" && prompt.Interactive() {
				a.Prompter = prompt.Terminal{Stdin: os.Stdin, Stdout: prompt.NopCloser(os.Stdout)}
			}
			err = a.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddAddArgs(cmd, ao)
	options.AddShowIDArgs(cmd, ido)
	_ = cmd.RegisterFlagCompletionFunc("on-overflow", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"tomorrow", "force-morning", "force-evening"}, cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}

// readText takes the text from --file, the args, or a piped stdin.
func readText(file string, args []string) (string, error) {
	switch {
	case file == "-":
		return readAll(os.Stdin)
	case file != "":
		b, err := os.ReadFile(file)
		return string(b), err
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()):
		return readAll(os.Stdin)
	}
	return "", errors.New("nothing to add, pass text or pipe it in")
}

func readAll(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	return string(b), err
}
