package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the key bindings of the search screen
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Edit       key.Binding
	Submit     key.Binding
	Cancel     key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	Sort       key.Binding
	Focus      key.Binding
	Toggle     key.Binding
	AddTerm    key.Binding
	Reset      key.Binding
	Charts     key.Binding
	Open       key.Binding
	Back       key.Binding
	Forward    key.Binding
	NextSearch key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Edit:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "edit query")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave input")),
		NextPage:   key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n/→", "next page")),
		PrevPage:   key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p/←", "previous page")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "facets/results")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle term")),
		AddTerm:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add term")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset filters")),
		Charts:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "charts")),
		Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open result")),
		Back:       key.NewBinding(key.WithKeys("["), key.WithHelp("[", "history back")),
		Forward:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "history forward")),
		NextSearch: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "next search")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Submit, k.NextPage, k.PrevPage, k.Focus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage, k.Back, k.Forward},
		{k.Edit, k.Submit, k.Cancel, k.Sort, k.Open, k.NextSearch},
		{k.Focus, k.Toggle, k.AddTerm, k.Reset, k.Charts},
		{k.Help, k.Quit},
	}
}
