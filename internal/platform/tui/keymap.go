package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/vedapath/internal/core"
)

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Answer  key.Binding
	Pause   key.Binding
	Restart key.Binding
	Reload  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Answer: key.NewBinding(
			key.WithKeys("a", "b", "c", "d", "1", "2", "3", "4"),
			key.WithHelp("a-d/1-4", "answer"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Reload: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "reload questions"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// answerKeys maps keys to answer actions while a question is shown.
var answerKeys = map[string]core.Action{
	"a": core.ActionAnswerA, "1": core.ActionAnswerA,
	"b": core.ActionAnswerB, "2": core.ActionAnswerB,
	"c": core.ActionAnswerC, "3": core.ActionAnswerC,
	"d": core.ActionAnswerD, "4": core.ActionAnswerD,
}

// MapKey translates a key message to a game action. While a question is
// shown the letter and digit keys answer it instead of moving.
func (k KeyMap) MapKey(msg tea.KeyMsg, quiz bool) core.Action {
	if key.Matches(msg, k.Quit) {
		return core.ActionQuit
	}
	if quiz {
		if a, ok := answerKeys[msg.String()]; ok {
			return a
		}
	}

	switch {
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Reload):
		return core.ActionReload
	}
	return core.ActionNone
}

// IsBack reports whether the key asks to leave the game for the menu.
func (k KeyMap) IsBack(msg tea.KeyMsg) bool {
	return key.Matches(msg, k.Back)
}

// helpKeys adapts KeyMap to help.KeyMap for the current game state.
type helpKeys struct {
	keys KeyMap
	quiz bool
	menu bool // Session can return to a menu
}

// ShortHelp returns key bindings for the short help view.
func (h helpKeys) ShortHelp() []key.Binding {
	if h.quiz {
		return []key.Binding{h.keys.Answer, h.keys.Quit}
	}
	b := []key.Binding{h.keys.Up, h.keys.Down, h.keys.Left, h.keys.Right, h.keys.Pause, h.keys.Restart, h.keys.Reload}
	if h.menu {
		b = append(b, h.keys.Back)
	}
	return append(b, h.keys.Quit)
}

// FullHelp returns key bindings for the full help view.
func (h helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.keys.Up, h.keys.Down, h.keys.Left, h.keys.Right},
		{h.keys.Answer, h.keys.Pause, h.keys.Restart, h.keys.Reload},
		{h.keys.Back, h.keys.Quit},
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionHistory
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionHistory
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
