package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// KeyMap binds terminal keys to game actions. It implements help.KeyMap.
type KeyMap struct {
	SoftDrop  key.Binding
	HardDrop  key.Binding
	Hold      key.Binding
	Left      key.Binding
	Right     key.Binding
	RotateCCW key.Binding
	RotateCW  key.Binding
	Restart   key.Binding
	Quit      key.Binding
}

// NewKeyMap builds bindings from the configured key names.
func NewKeyMap(keys config.KeyConfig) KeyMap {
	return KeyMap{
		SoftDrop:  binding(keys.SoftDrop, "soft drop"),
		HardDrop:  binding(keys.HardDrop, "hard drop"),
		Hold:      binding(keys.Hold, "hold"),
		Left:      binding(keys.Left, "left"),
		Right:     binding(keys.Right, "right"),
		RotateCCW: binding(keys.RotateCCW, "rotate ccw"),
		RotateCW:  binding(keys.RotateCW, "rotate cw"),
		Restart:   binding(keys.Restart, "restart"),
		Quit:      binding(keys.Quit, "quit"),
	}
}

// DefaultKeyMap returns the bindings of the default configuration.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.Default().Keys)
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpLabel(keys), desc),
	)
}

// helpLabel joins key names for display, spelling out the space bar.
func helpLabel(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		names[i] = k
	}
	return strings.Join(names, "/")
}

// ShortHelp returns the bindings shown under the board.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.RotateCCW, k.RotateCW, k.SoftDrop, k.HardDrop, k.Hold, k.Quit}
}

// FullHelp returns all bindings grouped by purpose.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.SoftDrop, k.HardDrop},
		{k.RotateCCW, k.RotateCW, k.Hold},
		{k.Restart, k.Quit},
	}
}

// MapKey translates a key message to a game action.
// Quit wins over any other binding of the same key.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.SoftDrop):
		return core.ActionSoftDrop
	case key.Matches(msg, k.HardDrop):
		return core.ActionHardDrop
	case key.Matches(msg, k.Hold):
		return core.ActionHold
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.RotateCCW):
		return core.ActionRotateCCW
	case key.Matches(msg, k.RotateCW):
		return core.ActionRotateCW
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}
