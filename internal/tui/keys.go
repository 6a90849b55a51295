package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Nope    key.Binding
	Like    key.Binding
	Flip    key.Binding
	Reload  key.Binding
	Endless key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Nope:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "nope")),
		Like:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "like")),
		Flip:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "flip")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Endless: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "toggle endless")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Nope, k.Like, k.Flip, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Nope, k.Like, k.Flip},
		{k.Reload, k.Endless},
		{k.Help, k.Quit},
	}
}
