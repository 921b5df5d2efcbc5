package tui

import "github.com/charmbracelet/bubbles/key"

// ViewerKeyMap defines the key bindings for the live viewer.
type ViewerKeyMap struct {
	Pause  key.Binding
	Step   key.Binding
	Faster key.Binding
	Slower key.Binding
	Legend key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ViewerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Step, k.Faster, k.Slower, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ViewerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Step},
		{k.Faster, k.Slower},
		{k.Legend, k.Help, k.Quit},
	}
}

// DefaultViewerKeyMap returns default key bindings.
func DefaultViewerKeyMap() ViewerKeyMap {
	return ViewerKeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space/p", "pause"),
		),
		Step: key.NewBinding(
			key.WithKeys("n", "right", "l"),
			key.WithHelp("n/right", "step"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "=", "up", "k"),
			key.WithHelp("+/up", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-", "down", "j"),
			key.WithHelp("-/down", "slower"),
		),
		Legend: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "legend"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
