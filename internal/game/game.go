// Package game glues the world, the progression machine and the quiz bridge
// into the registry.Game the platform drives once per tick.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vedapath/internal/catalog"
	"github.com/vovakirdan/vedapath/internal/config"
	"github.com/vovakirdan/vedapath/internal/core"
	"github.com/vovakirdan/vedapath/internal/progression"
	"github.com/vovakirdan/vedapath/internal/quiz"
	"github.com/vovakirdan/vedapath/internal/registry"
	"github.com/vovakirdan/vedapath/internal/world"
)

// Mode IDs.
const (
	ModeCampaign = "veda"
	ModeEndless  = "veda_endless"
)

// Options are set once by the CLI before any game is created.
type Options struct {
	ConfigPath string      // Custom vedapath.yaml
	LevelsPath string      // Custom level catalog
	Questions  string      // Overrides questions.source
	Logger     *log.Logger // Defaults to discarding
}

var options Options

// SetOptions configures every game created afterwards.
func SetOptions(o Options) {
	options = o
}

// Game is one play session of Veda Path.
type Game struct {
	endless    bool
	startLevel int

	runtime core.RuntimeConfig
	cfg     config.Config
	logger  *log.Logger
	rng     *rand.Rand

	world   *world.World
	machine *progression.Machine
	bridge  *Bridge

	bank     *quiz.Bank // nil until the first load finished
	loadErr  error
	loading  bool
	wantLoad bool

	paused bool
	status string
	flash  core.Color
}

// New creates a campaign game that ends on the liberation screen.
func New() *Game {
	return &Game{}
}

// NewEndless creates a game that starts over after the last level.
func NewEndless() *Game {
	return &Game{endless: true}
}

// SetStartLevel makes the next Reset start at the given 1-based level.
// Unknown levels fall back to level 1.
func (g *Game) SetStartLevel(level int) {
	g.startLevel = level
}

// Levels returns the level catalog new games are created with.
func Levels() []catalog.Level {
	return loadCatalog(log.New(io.Discard)).Levels()
}

func loadCatalog(logger *log.Logger) *catalog.Catalog {
	if options.LevelsPath == "" {
		return catalog.Default()
	}
	c, err := catalog.Load(options.LevelsPath)
	if err != nil {
		logger.Warn("level catalog load failed, using built-in levels", "error", err)
		return catalog.Default()
	}
	return c
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	if g.endless {
		return ModeEndless
	}
	return ModeCampaign
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.endless {
		return "Veda Path (Endless)"
	}
	return "Veda Path"
}

// Reset starts a new session at level 1. An already loaded question bank is kept.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.logger = options.Logger
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}

	cfg, err := config.Load(options.ConfigPath)
	if err != nil {
		g.logger.Warn("config load failed, using defaults", "error", err)
		cfg = config.DefaultConfig()
	}
	if options.Questions != "" {
		cfg.Questions.Source = options.Questions
	}
	if g.endless {
		cfg.Completion.Mode = config.CompletionLoop
	}
	g.cfg = cfg

	cat := loadCatalog(g.logger)

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.world = world.New(cfg, g.rng)
	g.machine = progression.New(cat,
		progression.WithLogger(g.logger),
		progression.WithRand(g.rng),
		progression.WithCompletion(cfg.Completion.Mode),
		progression.WithBank(g.bank),
	)
	g.bridge = &Bridge{game: g}
	if g.startLevel > 1 {
		if err := g.machine.StartAt(g.startLevel); err != nil {
			g.logger.Warn("start level ignored", "level", g.startLevel, "error", err)
		}
	}
	g.world.StartLevel(g.machine.Level())
	g.paused = false
	g.announceLevel()

	if g.bank == nil && !g.loading {
		g.wantLoad = true
		g.setStatus("Please wait for content to load", core.ColorYellow)
	}
	g.logger.Info("session started", "mode", g.ID(), "levels", cat.Len(), "seed", runtime.Seed)
}

// Bridge returns the quiz bridge of the current session.
func (g *Game) Bridge() *Bridge {
	return g.bridge
}

// Machine exposes the progression machine for inspection.
func (g *Game) Machine() *progression.Machine {
	return g.machine
}

// World exposes the simulation for inspection.
func (g *Game) World() *world.World {
	return g.world
}

// Status returns the current status line.
func (g *Game) Status() string {
	return g.status
}

// Step advances the session by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionReload) {
		g.requestReload()
	}

	// A pending question takes every answer key and nothing else.
	if g.bridge.Visible() {
		for _, a := range core.AnswerActions {
			if !in.Has(a) {
				continue
			}
			letter, _ := a.AnswerLetter()
			if g.bridge.Submit(letter) {
				break
			}
		}
		return core.StepResult{State: g.State()}
	}

	if g.machine.Phase() == progression.PhaseTerminal {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) && g.machine.RestartLevel() {
		g.world.StartLevel(g.machine.Level())
		g.paused = false
		g.setStatus(fmt.Sprintf("Level %d restarted", g.machine.Level().ID), core.ColorYellow)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	events := g.world.Step(in, g.runtime.DeltaTime())
	for _, ev := range events {
		r := g.machine.Handle(ev)
		g.apply(r)
		if r.Transitioned() || g.machine.QuestionActive() {
			break
		}
	}
	return core.StepResult{State: g.State(), Events: events}
}

// apply mirrors a progression result into the world and the status line.
func (g *Game) apply(r progression.Result) {
	m := g.machine
	switch r.Outcome {
	case progression.OutcomeQuestionPosed:
		g.world.MarkCollected(r.Item)
		g.world.SetPaused(true)
		g.setStatus("A veda speaks. Choose A-D", core.ColorCyan)

	case progression.OutcomeCorrect:
		g.world.SetPaused(false)
		if m.IsPassable() {
			g.setStatus("Correct! The gate is open", core.ColorBrightGreen)
		} else {
			g.setStatus(fmt.Sprintf("Correct! %d more to open the gate", m.Remaining()), core.ColorGreen)
		}

	case progression.OutcomeIncorrect:
		g.world.SetPaused(false)
		g.world.SpawnReplacement()
		g.setStatus(fmt.Sprintf("Wrong. The gate now needs %d correct answers; a new veda appeared", m.Threshold()), core.ColorRed)

	case progression.OutcomeLevelComplete, progression.OutcomeLoopedBack:
		g.world.StartLevel(m.Level())
		g.announceLevel()

	case progression.OutcomeCompleted:
		g.world.SetPaused(true)
		g.setStatus("Liberation attained", core.ColorBrightYellow)

	case progression.OutcomeRejected:
		if !progression.IsSoftRejection(r.Reason) {
			g.logger.Warn("touch rejected", "item", r.Item, "error", r.Reason)
			return
		}
		switch {
		case errors.Is(r.Reason, progression.ErrBankNotLoaded):
			g.setStatus("Please wait for content to load", core.ColorYellow)
		case errors.Is(r.Reason, quiz.ErrNoQuestions):
			g.setStatus("No questions available - press L to retry", core.ColorRed)
		}

	case progression.OutcomeIgnored:
		if errors.Is(r.Reason, progression.ErrGateLocked) {
			g.setStatus(fmt.Sprintf("The gate needs %d more correct answers", m.Remaining()), core.ColorOrange)
		}
	}
}

func (g *Game) announceLevel() {
	l := g.machine.Level()
	msg := fmt.Sprintf("Level %d: %s - answer %d vedas to open the gate", l.ID, l.Name, l.RequiredItems)
	if l.Category != "" {
		msg = fmt.Sprintf("Level %d: %s (%s) - answer %d vedas to open the gate", l.ID, l.Name, l.Category, l.RequiredItems)
	}
	g.setStatus(msg, core.ColorWhite)
}

func (g *Game) setStatus(msg string, c core.Color) {
	g.status = msg
	g.flash = c
}

// requestReload schedules another question load after a failed or empty one.
func (g *Game) requestReload() {
	if g.loading {
		return
	}
	if g.bank != nil && g.loadErr == nil && !g.bank.Empty() {
		return
	}
	g.wantLoad = true
	g.setStatus("Loading questions...", core.ColorYellow)
}

// ContentRequest hands the platform a question fetch when one is due.
func (g *Game) ContentRequest() (func(ctx context.Context) func(), bool) {
	if !g.wantLoad {
		return nil, false
	}
	g.wantLoad = false
	g.loading = true

	source := g.cfg.Questions.Source
	g.logger.Debug("loading questions", "source", source)
	return func(ctx context.Context) func() {
		bank, err := quiz.Load(ctx, source)
		return func() { g.SetQuestions(bank, err) }
	}, true
}

// SetQuestions installs the result of a question load. A failed load installs
// an empty bank: touches are then rejected until a reload succeeds.
func (g *Game) SetQuestions(bank *quiz.Bank, err error) {
	g.loading = false
	g.loadErr = err
	if bank == nil {
		bank = quiz.EmptyBank()
	}
	g.bank = bank
	g.machine.SetBank(bank)

	switch {
	case err != nil:
		g.logger.Error("question load failed", "error", err)
		g.setStatus("Could not load questions - press L to retry", core.ColorRed)
	case bank.Empty():
		g.logger.Warn("question bank is empty")
		g.setStatus("No questions available - press L to retry", core.ColorRed)
	default:
		g.logger.Info("questions loaded", "levels", len(bank.Levels()))
		g.announceLevel()
	}
}

// State returns the state reported to the platform.
func (g *Game) State() core.GameState {
	if g.machine == nil {
		return core.GameState{Loading: true}
	}
	return core.GameState{
		Score:    g.machine.Stats().Correct,
		Level:    g.machine.Level().ID,
		GameOver: g.machine.Phase() == progression.PhaseTerminal,
		Paused:   g.paused,
		Quiz:     g.bridge.Visible(),
		Loading:  g.loading || !g.machine.BankLoaded(),
	}
}

// Summary describes the session for the run history.
func (g *Game) Summary() core.RunSummary {
	s := g.machine.Stats()
	return core.RunSummary{
		Mode:          g.ID(),
		LevelsCleared: s.LevelsCleared,
		Correct:       s.Correct,
		Wrong:         s.Wrong,
		Loops:         s.Loops,
		Completed:     g.machine.Phase() == progression.PhaseTerminal,
	}
}

func init() {
	registry.Register(ModeCampaign, func() registry.Game {
		return New()
	})
	registry.Register(ModeEndless, func() registry.Game {
		return NewEndless()
	})
}
