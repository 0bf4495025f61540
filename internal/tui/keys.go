package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start   key.Binding
	Toggle  key.Binding
	Pause   key.Binding
	Reset   key.Binding
	Home    key.Binding
	Timer   key.Binding
	SignOut key.Binding
	Help    key.Binding
	Quit    key.Binding

	home bool
}

func newKeyMap(showHome bool) keyMap {
	k := keyMap{
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Home:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "home")),
		Timer:   key.NewBinding(key.WithKeys("t", "enter"), key.WithHelp("t", "timer")),
		SignOut: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sign out")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	if !showHome {
		k.Home.SetEnabled(false)
		k.Timer.SetEnabled(false)
		k.SignOut.SetEnabled(false)
	}
	return k
}

// forView returns a copy with only the bindings that apply to view.
func (k keyMap) forView(v appState) keyMap {
	k.home = v == viewHome
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	if k.home {
		return []key.Binding{k.Timer, k.SignOut, k.Quit}
	}
	return []key.Binding{k.Toggle, k.Reset, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	if k.home {
		return [][]key.Binding{{k.Timer, k.SignOut}, {k.Help, k.Quit}}
	}
	return [][]key.Binding{
		{k.Start, k.Pause, k.Toggle, k.Reset},
		{k.Home, k.Help, k.Quit},
	}
}
