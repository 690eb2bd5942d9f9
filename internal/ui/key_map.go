package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	tab      key.Binding
	search   key.Binding
	more     key.Binding
	rate     key.Binding
	favorite key.Binding
	addList  key.Binding
	comment  key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		more:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
		rate:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rate")),
		favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		addList:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to list")),
		comment:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comment")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.tab, k.search, k.more},
		{k.rate, k.favorite, k.addList, k.comment},
		{k.quit},
	}
}
