package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Focus    key.Binding
	Open     key.Binding
	Back     key.Binding
	Expand   key.Binding
	Play     key.Binding
	Mute     key.Binding
	ScrollUp key.Binding
	ScrollDn key.Binding
	Quit     key.Binding

	detail bool
}

func newKeyMap() keyMap {
	return keyMap{
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "search/results"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Expand: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "more/less"),
		),
		Play: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "play/pause trailer"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		ScrollDn: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	if k.detail {
		return []key.Binding{k.Back, k.Expand, k.Play, k.Mute, k.Quit}
	}
	return []key.Binding{k.Focus, k.Open, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Open, k.Back},
		{k.Expand, k.Play, k.Mute},
		{k.ScrollUp, k.ScrollDn, k.Quit},
	}
}
