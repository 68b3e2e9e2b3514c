package game

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/vedapath/internal/core"
	"github.com/vovakirdan/vedapath/internal/progression"
	"github.com/vovakirdan/vedapath/internal/quiz"
	"github.com/vovakirdan/vedapath/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345}
}

func testBank() *quiz.Bank {
	opts := []quiz.Option{
		{Letter: "A", Text: "Knowledge"},
		{Letter: "B", Text: "Wealth"},
		{Letter: "C", Text: "Fame"},
	}
	byLevel := make(map[int][]quiz.Question)
	for level := 1; level <= 3; level++ {
		for n := 1; n <= 4; n++ {
			byLevel[level] = append(byLevel[level], quiz.Question{
				Number: n, Text: "What removes ignorance?", Options: opts, Answer: "A",
			})
		}
	}
	return quiz.NewBank(byLevel)
}

func newLoadedGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.Reset(testRuntime())
	g.SetQuestions(testBank(), nil)
	return g
}

func press(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// touch puts the player on the first visible veda and steps once.
func touch(t *testing.T, g *Game) core.ItemID {
	t.Helper()
	for _, it := range g.World().Items {
		if it.Collected {
			continue
		}
		g.World().Player.Pos = it.Pos
		g.Step(press())
		return it.ID
	}
	t.Fatal("no visible veda left")
	return core.NoItem
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{ModeCampaign, ModeEndless} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestResetRequestsContent(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	if !g.State().Loading {
		t.Error("state should report loading before questions arrive")
	}
	fetch, ok := g.ContentRequest()
	if !ok || fetch == nil {
		t.Fatal("expected a content request after Reset")
	}
	if _, again := g.ContentRequest(); again {
		t.Error("content must be requested only once")
	}

	// Empty source loads the built-in bank.
	fetch(context.Background())()
	if g.State().Loading {
		t.Error("still loading after the continuation ran")
	}
	if g.bank.Empty() {
		t.Error("built-in bank should not be empty")
	}
}

func TestTouchBeforeLoadIsRejected(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	id := touch(t, g)
	if g.Bridge().Visible() {
		t.Fatal("no question may be shown before content loads")
	}
	if g.Machine().Mark(id) != progression.MarkNone {
		t.Error("rejected veda must stay untouched")
	}
	if g.World().Paused() {
		t.Error("world must keep running")
	}
	if !strings.Contains(g.Status(), "wait for content") {
		t.Errorf("status = %q", g.Status())
	}
}

func TestFailedLoadAndReload(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	g.ContentRequest()
	g.SetQuestions(quiz.EmptyBank(), errors.New("boom"))

	touch(t, g)
	if g.Bridge().Visible() {
		t.Fatal("empty bank must not pose questions")
	}
	if !strings.Contains(g.Status(), "No questions available") {
		t.Errorf("status = %q", g.Status())
	}

	g.Step(press(core.ActionReload))
	if _, ok := g.ContentRequest(); !ok {
		t.Fatal("reload key should request content again")
	}
}

func TestReloadIgnoredWhenLoaded(t *testing.T) {
	g := newLoadedGame(t)
	g.Step(press(core.ActionReload))
	if _, ok := g.ContentRequest(); ok {
		t.Error("no reload expected with a loaded bank")
	}
}

func TestQuestionPausesWorld(t *testing.T) {
	g := newLoadedGame(t)
	id := touch(t, g)

	if !g.Bridge().Visible() || !g.State().Quiz {
		t.Fatal("question should be visible")
	}
	if !g.World().Paused() {
		t.Error("world must pause while a question is pending")
	}
	if !g.World().Items[id].Collected {
		t.Error("touched veda should be hidden")
	}

	before := g.World().Player.Pos
	g.Step(press(core.ActionRight))
	if g.World().Player.Pos != before {
		t.Error("player moved during a question")
	}
}

func TestAnswerFlow(t *testing.T) {
	tests := []struct {
		name      string
		answer    core.Action
		wantItems int
		wantNeed  int
	}{
		{"correct", core.ActionAnswerA, 3, 3},
		{"wrong spawns a replacement", core.ActionAnswerB, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newLoadedGame(t)
			touch(t, g)
			g.Step(press(tt.answer))

			if g.Bridge().Visible() || g.World().Paused() {
				t.Fatal("answer should resume the loop")
			}
			if len(g.World().Items) != tt.wantItems {
				t.Errorf("items = %d, expected %d", len(g.World().Items), tt.wantItems)
			}
			if g.Machine().Threshold() != tt.wantNeed {
				t.Errorf("Threshold() = %d, expected %d", g.Machine().Threshold(), tt.wantNeed)
			}
		})
	}
}

func TestUnknownLetterKeepsQuestion(t *testing.T) {
	g := newLoadedGame(t)
	touch(t, g)

	// The test bank has no option D.
	if g.Bridge().Submit("D") {
		t.Error("Submit(D) should be ignored")
	}
	g.Step(press(core.ActionPause, core.ActionRestart))
	if !g.Bridge().Visible() {
		t.Error("question must stay until answered")
	}
	if !g.Bridge().Submit("a") {
		t.Error("Submit(a) should resolve the question")
	}
}

func clearLevel(t *testing.T, g *Game) {
	t.Helper()
	for !g.Machine().IsPassable() {
		touch(t, g)
		g.Step(press(core.ActionAnswerA))
	}
	g.World().Player.Pos = g.World().Gate.Box.Center
	g.Step(press())
}

func TestGateAdvancesLevel(t *testing.T) {
	g := newLoadedGame(t)

	g.World().Player.Pos = g.World().Gate.Box.Center
	g.Step(press())
	if g.State().Level != 1 || !strings.Contains(g.Status(), "gate needs 3") {
		t.Fatalf("locked gate: level %d status %q", g.State().Level, g.Status())
	}

	clearLevel(t, g)
	if g.State().Level != 2 {
		t.Fatalf("Level = %d, expected 2", g.State().Level)
	}
	if g.World().Player.Pos != core.V(100, 500) {
		t.Error("player should be back at the start")
	}
	if len(g.World().Items) != g.Machine().Level().RequiredItems {
		t.Errorf("level 2 spawned %d vedas", len(g.World().Items))
	}
}

func TestLiberation(t *testing.T) {
	g := newLoadedGame(t)
	for i := 0; i < g.Machine().Catalog().Len(); i++ {
		clearLevel(t, g)
	}

	st := g.State()
	if !st.GameOver {
		t.Fatal("campaign should end after the last level")
	}
	sum := g.Summary()
	if !sum.Completed || sum.LevelsCleared != 3 || sum.Mode != ModeCampaign {
		t.Errorf("Summary() = %+v", sum)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "LIBERATION") {
		t.Error("liberation screen not rendered")
	}
}

func TestEndlessLoops(t *testing.T) {
	g := NewEndless()
	g.Reset(testRuntime())
	g.SetQuestions(testBank(), nil)

	for i := 0; i < g.Machine().Catalog().Len(); i++ {
		clearLevel(t, g)
	}
	if g.State().GameOver || g.State().Level != 1 {
		t.Errorf("endless mode should loop to level 1, got %+v", g.State())
	}
	if g.Summary().Loops != 1 {
		t.Errorf("Loops = %d", g.Summary().Loops)
	}
}

func TestPauseToggle(t *testing.T) {
	g := newLoadedGame(t)
	g.Step(press(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	before := g.World().Player.Pos
	g.Step(press(core.ActionUp))
	if g.World().Player.Pos != before {
		t.Error("player moved while paused")
	}
	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Error("expected resumed")
	}
}

func TestRenderQuestion(t *testing.T) {
	g := newLoadedGame(t)
	touch(t, g)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"What removes ignorance?", "A) Knowledge", "Level 1/3"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen lacks %q", want)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newLoadedGame(t)
	screen := core.NewScreen(20, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("expected size warning")
	}
}

func TestStartLevel(t *testing.T) {
	tests := []struct {
		start int
		want  int
	}{
		{0, 1},
		{2, 2},
		{3, 3},
		{42, 1},
	}

	for _, tt := range tests {
		g := New()
		g.SetStartLevel(tt.start)
		g.Reset(testRuntime())
		if got := g.State().Level; got != tt.want {
			t.Errorf("SetStartLevel(%d): level %d, expected %d", tt.start, got, tt.want)
		}
	}
}

func TestLevels(t *testing.T) {
	levels := Levels()
	if len(levels) != 3 || levels[0].Name != "Ignorance" {
		t.Errorf("Levels() = %+v", levels)
	}
}
