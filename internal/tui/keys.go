package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Edit       key.Binding
	Discipline key.Binding
	Export     key.Binding
	Up         key.Binding
	Down       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit inputs")),
	Discipline: key.NewBinding(key.WithKeys("d", "tab"), key.WithHelp("d", "next discipline")),
	Export:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export CSV")),
	Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "scroll up")),
	Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "scroll down")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) all() []key.Binding {
	return []key.Binding{k.Edit, k.Discipline, k.Export, k.Up, k.Down, k.Help, k.Quit}
}

// shortHelp is the status bar hint line.
func (k keyMap) shortHelp() string {
	var s string
	for _, b := range []key.Binding{k.Edit, k.Discipline, k.Export, k.Help, k.Quit} {
		s += "[" + b.Help().Key + "]" + b.Help().Desc + "  "
	}
	return s
}
