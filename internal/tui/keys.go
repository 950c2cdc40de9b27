package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Add       key.Binding
	Reload    key.Binding
	Up        key.Binding
	Down      key.Binding
	Save      key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
	DayLeft   key.Binding
	DayRight  key.Binding
	ToggleDay key.Binding
	DayDigit  key.Binding
	Dismiss   key.Binding
	ForceQuit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
		Add:       key.NewBinding(key.WithKeys("+", "a"), key.WithHelp("+", "new habit")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Save:      key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("enter", "save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "name/days")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab")),
		DayLeft:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "pick day")),
		DayRight:  key.NewBinding(key.WithKeys("right", "l")),
		ToggleDay: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle day")),
		DayDigit:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7"), key.WithHelp("1-7", "toggle day")),
		Dismiss:   key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "ok")),
	}
}

// bindings adapts a flat list to help.KeyMap.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding  { return b }
func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

func (a *App) helpKeys() bindings {
	k := a.keys
	switch {
	case a.alert != nil:
		return bindings{k.Dismiss}
	case a.form == formVisible && a.focus == focusDays:
		return bindings{k.DayLeft, k.ToggleDay, k.DayDigit, k.NextField, k.Save, k.Cancel}
	case a.form == formVisible:
		return bindings{k.NextField, k.Save, k.Cancel}
	default:
		return bindings{k.Add, k.Up, k.Down, k.Reload, k.Quit}
	}
}
