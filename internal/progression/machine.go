package progression

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vedapath/internal/catalog"
	"github.com/vovakirdan/vedapath/internal/config"
	"github.com/vovakirdan/vedapath/internal/core"
	"github.com/vovakirdan/vedapath/internal/quiz"
)

// Machine owns the ProgressionState of one play session. It is driven by the
// single frame loop and is not safe for concurrent use.
type Machine struct {
	catalog    *catalog.Catalog
	bank       *quiz.Bank // nil until questions have been loaded
	rng        *rand.Rand
	logger     *log.Logger
	completion config.CompletionMode

	level catalog.Level
	state State
	phase Phase
	stats Stats
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger for transitions and soft rejections.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithRand sets the random source used to pick questions.
func WithRand(rng *rand.Rand) Option {
	return func(m *Machine) {
		if rng != nil {
			m.rng = rng
		}
	}
}

// WithCompletion selects what happens after the last level.
func WithCompletion(mode config.CompletionMode) Option {
	return func(m *Machine) {
		m.completion = mode
	}
}

// WithBank installs an already loaded question bank.
func WithBank(b *quiz.Bank) Option {
	return func(m *Machine) {
		m.bank = b
	}
}

// New creates a machine positioned at level 1.
func New(cat *catalog.Catalog, opts ...Option) *Machine {
	m := &Machine{
		catalog:    cat,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:     log.New(io.Discard),
		completion: config.CompletionTerminal,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.Reset()
	return m
}

// Reset starts a new session at level 1.
func (m *Machine) Reset() {
	m.stats = Stats{}
	m.phase = PhaseIdle
	m.enterLevel(1)
}

// StartAt starts a new session at the given level. An unknown level leaves the
// session at level 1 and returns an error wrapping catalog.ErrLevelNotFound.
func (m *Machine) StartAt(levelID int) error {
	m.Reset()
	if _, err := m.catalog.Get(levelID); err != nil {
		return fmt.Errorf("progression: start level: %w", err)
	}
	m.enterLevel(levelID)
	return nil
}

// enterLevel resets the per-level state. Unknown ids fall back to level 1.
func (m *Machine) enterLevel(levelID int) {
	level, err := m.catalog.Get(levelID)
	if err != nil {
		m.logger.Warn("level data missing, looping back", "level", levelID, "error", err)
		level, err = m.catalog.Get(1)
		if err != nil {
			// A catalog always has a first level; see catalog.New.
			panic(err)
		}
	}
	m.level = level
	m.state = newState(level.ID)
}

// SetBank installs the question bank once it has been loaded. An empty bank
// (load failure) keeps rejecting touches until a later call replaces it.
func (m *Machine) SetBank(b *quiz.Bank) {
	m.bank = b
}

// BankLoaded reports whether a bank has been installed.
func (m *Machine) BankLoaded() bool {
	return m.bank != nil
}

// Handle dispatches an interaction loop event.
func (m *Machine) Handle(ev core.Event) Result {
	switch ev.Kind {
	case core.EventItemTouched:
		return m.OnItemTouched(ev.Item)
	case core.EventGateReached:
		return m.OnGateTouched()
	default:
		return Result{Outcome: OutcomeIgnored, Item: ev.Item}
	}
}

// OnItemTouched poses a question for a newly touched item. Touches of items
// that were already touched, touches while a question is pending and touches
// after the session ended are no-ops. When no question can be picked the touch
// is rejected softly and the item stays untouched.
func (m *Machine) OnItemTouched(id core.ItemID) Result {
	switch {
	case m.phase == PhaseTerminal:
		return ignored(id, ErrSessionComplete)
	case m.state.ActiveQuestion != nil:
		return ignored(id, ErrQuestionActive)
	case m.state.Marks[id] != MarkNone:
		return ignored(id, ErrAlreadyTouched)
	}

	if m.bank == nil {
		return Result{Outcome: OutcomeRejected, Reason: ErrBankNotLoaded, Item: id}
	}
	q, idx, err := m.bank.Pick(m.state.LevelID, m.state.UsedQuestions, m.rng)
	if err != nil {
		return Result{Outcome: OutcomeRejected, Reason: err, Item: id}
	}

	m.state.Marks[id] = MarkPending
	m.state.ItemsCollected++
	m.state.UsedQuestions[idx] = struct{}{}
	m.state.ActiveQuestion = &q
	m.state.ActiveItem = id
	m.phase = PhaseAwaitingAnswer

	m.logger.Debug("question posed", "level", m.state.LevelID, "item", int(id), "question", q.Number)
	posed := q.Clone()
	return Result{Outcome: OutcomeQuestionPosed, Item: id, Question: &posed}
}

// OnAnswerSubmitted resolves the pending question. A correct letter counts the
// item as answered; anything else adds one penalty. Either way the question is
// cleared and the loop may resume.
func (m *Machine) OnAnswerSubmitted(letter string) Result {
	q := m.state.ActiveQuestion
	if q == nil {
		return ignored(core.NoItem, ErrNoActiveQuestion)
	}
	id := m.state.ActiveItem
	if m.state.Marks[id] != MarkPending {
		// Unreachable while the mutual exclusion holds; drop the question without counting it.
		m.logger.Error("inconsistent pending item", "item", int(id), "mark", m.state.Marks[id])
		m.clearActive()
		return ignored(id, ErrDuplicateAdjudication)
	}

	correct := q.IsCorrect(letter)
	m.clearActive()

	if correct {
		m.state.Marks[id] = MarkAnswered
		m.state.ItemsAnsweredCorrectly++
		m.stats.Correct++
		m.logger.Info("answer correct", "level", m.state.LevelID,
			"answered", m.state.ItemsAnsweredCorrectly, "required", m.Threshold())
		return Result{Outcome: OutcomeCorrect, Item: id}
	}

	m.state.Marks[id] = MarkMissed
	m.state.PenaltyCount++
	m.stats.Wrong++
	m.logger.Info("answer incorrect", "level", m.state.LevelID,
		"penalty", m.state.PenaltyCount, "required", m.Threshold())
	return Result{Outcome: OutcomeIncorrect, Item: id}
}

func (m *Machine) clearActive() {
	m.state.ActiveQuestion = nil
	m.state.ActiveItem = core.NoItem
	m.phase = PhaseIdle
}

// OnGateTouched advances to the next level when the gate is passable and no
// question is pending. After the last level the session either becomes
// terminal or loops back to level 1, depending on the completion mode.
func (m *Machine) OnGateTouched() Result {
	switch {
	case m.phase == PhaseTerminal:
		return ignored(core.NoItem, ErrSessionComplete)
	case m.state.ActiveQuestion != nil:
		return ignored(core.NoItem, ErrQuestionActive)
	case !m.IsPassable():
		return ignored(core.NoItem, ErrGateLocked)
	}

	from := m.state.LevelID
	m.stats.LevelsCleared++

	if next, ok := m.catalog.Next(from); ok {
		m.enterLevel(next.ID)
		m.logger.Info("level complete", "from", from, "to", next.ID, "name", next.Name)
		return Result{Outcome: OutcomeLevelComplete, Item: core.NoItem, FromLevel: from, ToLevel: next.ID}
	}

	if m.completion == config.CompletionLoop {
		m.stats.Loops++
		m.enterLevel(1)
		m.logger.Info("catalog complete, looping back", "from", from, "loops", m.stats.Loops)
		return Result{Outcome: OutcomeLoopedBack, Item: core.NoItem, FromLevel: from, ToLevel: 1}
	}

	m.phase = PhaseTerminal
	m.logger.Info("catalog complete", "levels", m.stats.LevelsCleared, "correct", m.stats.Correct, "wrong", m.stats.Wrong)
	return Result{Outcome: OutcomeCompleted, Item: core.NoItem, FromLevel: from}
}

// RestartLevel re-enters the current level with fresh counters. It refuses
// while a question is pending or after the session ended.
func (m *Machine) RestartLevel() bool {
	if m.phase != PhaseIdle {
		return false
	}
	m.enterLevel(m.state.LevelID)
	m.logger.Info("level restarted", "level", m.state.LevelID)
	return true
}

// Threshold is the number of correct answers the gate currently requires.
func (m *Machine) Threshold() int {
	return m.level.RequiredItems + m.state.PenaltyCount
}

// IsPassable reports whether the gate is open.
func (m *Machine) IsPassable() bool {
	return m.state.ItemsAnsweredCorrectly >= m.Threshold()
}

// Remaining is the number of correct answers still needed to open the gate.
func (m *Machine) Remaining() int {
	return max(m.Threshold()-m.state.ItemsAnsweredCorrectly, 0)
}

// QuestionActive reports whether a question is pending; the loop must stay paused while it is.
func (m *Machine) QuestionActive() bool {
	return m.state.ActiveQuestion != nil
}

// ActiveQuestion returns a copy of the pending question.
func (m *Machine) ActiveQuestion() (quiz.Question, bool) {
	if m.state.ActiveQuestion == nil {
		return quiz.Question{}, false
	}
	return m.state.ActiveQuestion.Clone(), true
}

// Mark returns what happened to an item in the current level.
func (m *Machine) Mark(id core.ItemID) Mark {
	return m.state.Marks[id]
}

// State returns a deep copy of the progression state.
func (m *Machine) State() State {
	return m.state.clone()
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Level returns the current level definition.
func (m *Machine) Level() catalog.Level {
	return m.level
}

// Catalog returns the level catalog the machine walks.
func (m *Machine) Catalog() *catalog.Catalog {
	return m.catalog
}

// Stats returns the session totals.
func (m *Machine) Stats() Stats {
	return m.stats
}

// IsSoftRejection reports whether err is a content availability problem the
// player should be told about, rather than a silent no-op.
func IsSoftRejection(err error) bool {
	return errors.Is(err, ErrBankNotLoaded) || errors.Is(err, quiz.ErrNoQuestions)
}

func ignored(id core.ItemID, reason error) Result {
	return Result{Outcome: OutcomeIgnored, Reason: reason, Item: id}
}
