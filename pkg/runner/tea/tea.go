package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/bento/pkg/app"
)

// Run launches the Bubble Tea UI and blocks until it exits.
func Run(ctx context.Context, svc *app.Service) error {
	p := tea.NewProgram(New(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
