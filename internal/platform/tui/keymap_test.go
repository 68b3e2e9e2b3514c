package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/vedapath/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		quiz bool
		want core.Action
	}{
		{"w moves up", runeKey('w'), false, core.ActionUp},
		{"arrow moves down", tea.KeyMsg{Type: tea.KeyDown}, false, core.ActionDown},
		{"a moves left", runeKey('a'), false, core.ActionLeft},
		{"d moves right", runeKey('d'), false, core.ActionRight},
		{"a answers during quiz", runeKey('a'), true, core.ActionAnswerA},
		{"d answers during quiz", runeKey('d'), true, core.ActionAnswerD},
		{"digit answers during quiz", runeKey('3'), true, core.ActionAnswerC},
		{"digit does nothing outside quiz", runeKey('3'), false, core.ActionNone},
		{"arrows still map during quiz", tea.KeyMsg{Type: tea.KeyLeft}, true, core.ActionLeft},
		{"p pauses", runeKey('p'), false, core.ActionPause},
		{"r restarts", runeKey('r'), false, core.ActionRestart},
		{"l reloads", runeKey('l'), false, core.ActionReload},
		{"q quits", runeKey('q'), true, core.ActionQuit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, false, core.ActionQuit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapKey(tt.msg, tt.quiz); got != tt.want {
				t.Errorf("MapKey(%q, quiz=%v) = %v, expected %v", tt.msg.String(), tt.quiz, got, tt.want)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyRight}, MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionHistory},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}
