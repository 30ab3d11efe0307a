package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header lipgloss.Style
	Box    BoxTheme
	Prompt PromptTheme
	Footer FooterTheme
}

// BoxTheme groups styles used by the morning, evening and tomorrow columns.
type BoxTheme struct {
	Focused     lipgloss.Style
	Blurred     lipgloss.Style
	Title       lipgloss.Style
	Usage       lipgloss.Style
	Over        lipgloss.Style
	Compartment lipgloss.Style
	Task        lipgloss.Style
	Cursor      lipgloss.Style
	Done        lipgloss.Style
	Empty       lipgloss.Style
}

// PromptTheme groups styles used by the intake area.
type PromptTheme struct {
	Question lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Disabled lipgloss.Style
	Loading  lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help     lipgloss.Style
	Advisory lipgloss.Style
	Notice   lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	green := lipgloss.Color("#546E42")
	orange := lipgloss.Color("#D68A4F")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	selected := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)

	return Theme{
		Header: lipgloss.NewStyle().Foreground(green).Bold(true),
		Box: BoxTheme{
			Focused:     box.Copy().BorderForeground(green),
			Blurred:     box.Copy().BorderForeground(lipgloss.Color("240")),
			Title:       lipgloss.NewStyle().Bold(true),
			Usage:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Over:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
			Compartment: lipgloss.NewStyle().Foreground(orange).Italic(true),
			Task:        lipgloss.NewStyle(),
			Cursor:      lipgloss.NewStyle().Reverse(true),
			Done:        lipgloss.NewStyle().Faint(true).Strikethrough(true),
			Empty:       lipgloss.NewStyle().Faint(true).Italic(true),
		},
		Prompt: PromptTheme{
			Question: lipgloss.NewStyle().Bold(true),
			Item:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Selected: selected,
			Disabled: lipgloss.NewStyle().Faint(true),
			Loading:  lipgloss.NewStyle().Foreground(green).Bold(true),
		},
		Footer: FooterTheme{
			Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Advisory: lipgloss.NewStyle().Foreground(orange).Bold(true),
			Notice:   lipgloss.NewStyle().Foreground(green).Bold(true),
		},
	}
}
