package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vedapath/internal/core"
	"github.com/vovakirdan/vedapath/internal/registry"
	"github.com/vovakirdan/vedapath/internal/storage"
)

// DefaultHoldTicks is how long a key press keeps the avatar moving.
const DefaultHoldTicks = 8

// repeatGuard is how long a movement key must stay quiet before the same key
// counts as an answer. It covers the terminal's initial auto-repeat delay.
const repeatGuard = 600 * time.Millisecond

// ModelOptions configure a game model.
type ModelOptions struct {
	Context   context.Context // Cancels content loads; defaults to Background
	Store     *storage.Store  // Run history; nil disables saving
	Player    string          // Name recorded with runs
	HoldTicks int             // Input latch window
	AllowBack bool            // B returns to a menu instead of doing nothing
	Logger    *log.Logger
}

// Model is the Bubble Tea model that drives one game.
type Model struct {
	ctx        context.Context
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	player     string
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	latch      *core.InputLatch
	inputFrame core.InputFrame // One-shot actions since the last tick
	gameState  core.GameState
	startedAt  time.Time
	ticks      uint64
	moveKey    string // Last movement key, while its auto-repeat may still arrive
	moveTick   uint64 // Tick the last press of moveKey arrived on
	guardTicks uint64
	allowBack  bool
	runSaved   bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.HoldTicks <= 0 {
		opts.HoldTicks = DefaultHoldTicks
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return Model{
		ctx:        opts.Context,
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:      opts.Store,
		player:     opts.Player,
		logger:     opts.Logger,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		latch:      core.NewInputLatch(opts.HoldTicks),
		inputFrame: core.NewInputFrame(),
		startedAt:  time.Now(),
		guardTicks: repeatGuardTicks(cfg.TickRate, opts.HoldTicks),
		allowBack:  opts.AllowBack,
	}
}

// Init starts the game, the tick loop and any pending content load.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(tickCmd(m.config.TickRate), m.contentCmd())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()

	case contentLoadedMsg:
		if msg.apply != nil {
			msg.apply()
		}
		m.gameState = m.game.State()
		return m, m.contentCmd()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "?" {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	pressed := msg.String()
	if pressed != m.moveKey {
		m.moveKey = ""
	}
	// Auto-repeat of a key held for walking must not answer a question
	// that popped up under the player.
	if m.gameState.Quiz && m.moveKey != "" && m.ticks-m.moveTick <= m.guardTicks {
		m.moveTick = m.ticks
		return m, nil
	}

	action := m.keys.MapKey(msg, m.gameState.Quiz)
	if action == core.ActionQuit {
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}

	if m.allowBack && !m.gameState.Quiz && (m.gameState.Paused || m.gameState.GameOver) && m.keys.IsBack(msg) {
		m.saveRun()
		m.backToMenu = true
		return m, nil
	}

	switch action {
	case core.ActionNone:
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		m.moveKey, m.moveTick = pressed, m.ticks
		if !m.gameState.Quiz {
			m.latch.Press(action)
		}
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	// New session after the liberation screen
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.startedAt = time.Now()
		m.runSaved = false
		m.inputFrame.Clear()
		m.latch.Release()
		return m, tea.Batch(tickCmd(m.config.TickRate), m.contentCmd())
	}

	m.ticks++
	m.latch.Apply(&m.inputFrame)
	wasQuiz := m.gameState.Quiz
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Keys held before a question must not keep moving the avatar after it.
	if m.gameState.Quiz && !wasQuiz {
		m.latch.Release()
	}

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
	}

	m.inputFrame.Clear()
	return m, tea.Batch(tickCmd(m.config.TickRate), m.contentCmd())
}

// repeatGuardTicks converts repeatGuard to ticks, never shorter than the latch window.
func repeatGuardTicks(tickRate, holdTicks int) uint64 {
	if tickRate <= 0 {
		tickRate = 60
	}
	n := int(repeatGuard.Seconds() * float64(tickRate))
	return uint64(max(n, holdTicks))
}

// contentCmd starts a content load when the game asks for one.
func (m Model) contentCmd() tea.Cmd {
	loader, ok := m.game.(registry.ContentLoader)
	if !ok {
		return nil
	}
	fetch, ok := loader.ContentRequest()
	if !ok {
		return nil
	}
	return loadCmd(m.ctx, fetch)
}

// saveRun records the session in the run history once.
// Sessions without a single answer are not recorded.
func (m *Model) saveRun() {
	if m.runSaved || m.store == nil {
		return
	}
	reporter, ok := m.game.(registry.RunReporter)
	if !ok {
		return
	}
	sum := reporter.Summary()
	if sum.Correct+sum.Wrong == 0 && !sum.Completed {
		return
	}
	m.runSaved = true

	run := storage.RunResult{
		Player:        m.player,
		Mode:          sum.Mode,
		LevelsCleared: sum.LevelsCleared,
		Correct:       sum.Correct,
		Wrong:         sum.Wrong,
		Loops:         sum.Loops,
		Completed:     sum.Completed,
		DurationSecs:  int(time.Since(m.startedAt).Seconds()),
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.logger.Info("run saved", "player", run.Player, "mode", run.Mode, "levels", run.LevelsCleared, "completed", run.Completed)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	keys := helpKeys{keys: m.keys, quiz: m.gameState.Quiz, menu: m.allowBack}
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(keys))
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
