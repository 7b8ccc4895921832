package shell

import "github.com/charmbracelet/lipgloss"

// TitleStyle returns the style for the session banner line.
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
}

// PromptStyle returns the style for the input prompt marker.
func PromptStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"})
}

// EchoStyle returns the dim style used when echoing submitted commands.
func EchoStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
}

// ErrorStyle returns the style for error replies.
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})
}
