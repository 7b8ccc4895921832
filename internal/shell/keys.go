package shell

import "github.com/charmbracelet/bubbles/key"

// sessionKeys holds key bindings for the interactive session.
type sessionKeys struct {
	Enter   key.Binding
	PrevCmd key.Binding
	NextCmd key.Binding
	Quit    key.Binding
}

// ShortHelp returns the session bindings for the help bar.
func (k sessionKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.PrevCmd, k.NextCmd, k.Quit}
}

// FullHelp returns the session bindings grouped for expanded help.
func (k sessionKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Enter},
		{k.PrevCmd, k.NextCmd, k.Quit},
	}
}

// SessionKeyMap returns the key bindings for the interactive session.
func SessionKeyMap() sessionKeys {
	return sessionKeys{
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run command"),
		),
		PrevCmd: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous command"),
		),
		NextCmd: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next command"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("ctrl+c", "save and quit"),
		),
	}
}
