package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/vedapath/internal/core"
	"github.com/vovakirdan/vedapath/internal/game"
	"github.com/vovakirdan/vedapath/internal/quiz"
	"github.com/vovakirdan/vedapath/internal/storage"
)

// fakeGame records the frames it is stepped with.
type fakeGame struct {
	frames   []core.InputFrame
	state    core.GameState
	resets   int
	wantLoad bool
	loaded   bool
	summary  core.RunSummary
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) Summary() core.RunSummary { return g.summary }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	f := core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			f.Set(a)
		}
	}
	g.frames = append(g.frames, f)
	return core.StepResult{State: g.state}
}

func (g *fakeGame) ContentRequest() (func(context.Context) func(), bool) {
	if !g.wantLoad {
		return nil, false
	}
	g.wantLoad = false
	return func(context.Context) func() {
		return func() { g.loaded = true }
	}, true
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func TestModelLatchHoldsMovement(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, testConfig(), ModelOptions{HoldTicks: 3})
	m.Init()

	next, _ := m.Update(runeKey('d'))
	m = next.(Model)
	for i := 0; i < 5; i++ {
		next, _ = m.Update(TickMsg{})
		m = next.(Model)
	}

	for i, f := range g.frames {
		want := i < 3
		if f.Has(core.ActionRight) != want {
			t.Errorf("tick %d: right held = %v, expected %v", i, f.Has(core.ActionRight), want)
		}
	}
}

func TestModelOneShotActions(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, testConfig(), ModelOptions{})
	m.Init()

	next, _ := m.Update(runeKey('p'))
	m = next.(Model)
	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	next, _ = m.Update(TickMsg{})
	_ = next.(Model)

	if !g.frames[0].Has(core.ActionPause) || g.frames[1].Has(core.ActionPause) {
		t.Error("pause should be delivered on exactly one tick")
	}
}

func TestModelContentLoad(t *testing.T) {
	g := &fakeGame{wantLoad: true}
	m := NewModel(g, testConfig(), ModelOptions{})

	cmd := m.contentCmd()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	msg := cmd()
	if g.loaded {
		t.Fatal("continuation must not run before it reaches Update")
	}
	m.Update(msg)
	if !g.loaded {
		t.Error("continuation was not applied")
	}
	if m.contentCmd() != nil {
		t.Error("no second load expected")
	}
}

func TestModelSavesRunOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	defer store.Close()

	g := &fakeGame{summary: core.RunSummary{Mode: "fake", LevelsCleared: 3, Correct: 9, Completed: true}}
	m := NewModel(g, testConfig(), ModelOptions{Store: store, Player: "tester"})
	m.Init()

	g.state.GameOver = true
	for i := 0; i < 3; i++ {
		next, _ := m.Update(TickMsg{})
		m = next.(Model)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected exactly one saved run, got %d", len(runs))
	}
	if runs[0].Player != "tester" || !runs[0].Completed || runs[0].Correct != 9 {
		t.Errorf("unexpected run: %+v", runs[0])
	}
}

func TestModelSkipsEmptyRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	defer store.Close()

	g := &fakeGame{summary: core.RunSummary{Mode: "fake"}}
	m := NewModel(g, testConfig(), ModelOptions{Store: store})
	m.Init()
	m.Update(runeKey('q'))

	if runs, _ := store.RecentRuns(10); len(runs) != 0 {
		t.Errorf("empty run should not be saved, got %d", len(runs))
	}
}

func TestModelBackToMenu(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, testConfig(), ModelOptions{AllowBack: true})
	m.Init()

	next, _ := m.Update(runeKey('b'))
	if next.(Model).BackToMenu() {
		t.Fatal("back must only work when paused or finished")
	}

	g.state.Paused = true
	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	next, _ = m.Update(runeKey('b'))
	if !next.(Model).BackToMenu() {
		t.Error("expected back to menu while paused")
	}
}

// hasAny reports whether any frame from index from on carries one of the actions.
func hasAny(frames []core.InputFrame, from int, actions ...core.Action) bool {
	for _, f := range frames[from:] {
		for _, a := range actions {
			if f.Has(a) {
				return true
			}
		}
	}
	return false
}

func TestModelMovementRepeatDoesNotAnswer(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, testConfig(), ModelOptions{HoldTicks: 3})
	m.Init()

	step := func(msgs ...tea.Msg) {
		for _, msg := range msgs {
			next, _ := m.Update(msg)
			m = next.(Model)
		}
	}

	// Walking left with a, then a question pops up under the player.
	for i := 0; i < 5; i++ {
		step(runeKey('a'), TickMsg{})
	}
	g.state.Quiz = true
	step(TickMsg{})
	quizFrom := len(g.frames)

	// Auto-repeat keeps arriving for much longer than the guard window.
	for i := 0; i < 3*int(m.guardTicks); i++ {
		step(runeKey('a'), TickMsg{})
	}
	if hasAny(g.frames, quizFrom, core.AnswerActions...) {
		t.Fatal("held movement key answered the question")
	}
	if hasAny(g.frames, quizFrom, core.ActionLeft) {
		t.Error("movement must be ignored while a question is shown")
	}

	// Once the key has been released long enough, a press answers.
	for i := uint64(0); i <= m.guardTicks; i++ {
		step(TickMsg{})
	}
	from := len(g.frames)
	step(runeKey('a'), TickMsg{})
	if !g.frames[from].Has(core.ActionAnswerA) {
		t.Error("deliberate press of a should answer A")
	}
}

func TestModelAnswerKeysDuringRepeat(t *testing.T) {
	tests := []struct {
		name  string
		keys  []rune
		want  core.Action
		avoid core.Action
	}{
		{"digit answers at once", []rune{'1'}, core.ActionAnswerA, core.ActionNone},
		{"non-movement letter answers at once", []rune{'b'}, core.ActionAnswerB, core.ActionNone},
		{"distinct key rearms the letter", []rune{'x', 'd'}, core.ActionAnswerD, core.ActionNone},
		{"repeat of the walking key is swallowed", []rune{'d'}, core.ActionNone, core.ActionAnswerD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &fakeGame{}
			m := NewModel(g, testConfig(), ModelOptions{})
			m.Init()

			next, _ := m.Update(runeKey('d'))
			m = next.(Model)
			g.state.Quiz = true
			next, _ = m.Update(TickMsg{})
			m = next.(Model)

			for _, r := range tt.keys {
				next, _ = m.Update(runeKey(r))
				m = next.(Model)
			}
			from := len(g.frames)
			next, _ = m.Update(TickMsg{})
			_ = next.(Model)

			f := g.frames[from]
			if tt.want != core.ActionNone && !f.Has(tt.want) {
				t.Errorf("expected %v in frame", tt.want)
			}
			if tt.avoid != core.ActionNone && f.Has(tt.avoid) {
				t.Errorf("unexpected %v in frame", tt.avoid)
			}
		})
	}
}

func TestModelWalkIntoVedaKeepsQuestionOpen(t *testing.T) {
	g := game.New()
	m := NewModel(g, testConfig(), ModelOptions{})
	m.Init()

	if _, ok := g.ContentRequest(); !ok {
		t.Fatal("expected a content request after reset")
	}
	g.SetQuestions(quiz.NewBank(map[int][]quiz.Question{
		1: {{
			Number:  1,
			Text:    "Which comes first?",
			Options: []quiz.Option{{Letter: "A", Text: "Liberation"}, {Letter: "B", Text: "Ignorance"}},
			Answer:  "B",
		}},
	}), nil)

	w := g.World()
	w.Player.Pos = w.Items[0].Pos.Add(core.V(30, 0))

	for i := 0; i < 20; i++ {
		next, _ := m.Update(runeKey('a'))
		m = next.(Model)
		next, _ = m.Update(TickMsg{})
		m = next.(Model)
	}

	st := g.Machine().State()
	if !g.Bridge().Visible() {
		t.Fatalf("question should still be open, penalty=%d correct=%d", st.PenaltyCount, st.ItemsAnsweredCorrectly)
	}
	if st.PenaltyCount != 0 || st.ItemsAnsweredCorrectly != 0 {
		t.Errorf("no answer expected yet, penalty=%d correct=%d", st.PenaltyCount, st.ItemsAnsweredCorrectly)
	}

	next, _ := m.Update(runeKey('2'))
	m = next.(Model)
	next, _ = m.Update(TickMsg{})
	_ = next.(Model)

	if g.Bridge().Visible() || g.Machine().State().ItemsAnsweredCorrectly != 1 {
		t.Error("answering with 2 should close the question as correct")
	}
}
