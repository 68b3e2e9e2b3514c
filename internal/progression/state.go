// Package progression implements the level progression state machine: it
// adjudicates veda touches through quiz questions, tracks penalties and
// decides when the exit gate opens.
package progression

import (
	"errors"

	"github.com/vovakirdan/vedapath/internal/core"
	"github.com/vovakirdan/vedapath/internal/quiz"
)

// Reasons attached to ignored or rejected results.
var (
	ErrBankNotLoaded         = errors.New("progression: questions are still loading")
	ErrQuestionActive        = errors.New("progression: a question is already pending")
	ErrAlreadyTouched        = errors.New("progression: item already touched")
	ErrNoActiveQuestion      = errors.New("progression: no question is pending")
	ErrGateLocked            = errors.New("progression: gate is locked")
	ErrSessionComplete       = errors.New("progression: all levels complete")
	ErrDuplicateAdjudication = errors.New("progression: item adjudicated twice")
)

// Phase is the machine's top-level state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingAnswer
	PhaseTerminal
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingAnswer:
		return "awaiting_answer"
	case PhaseTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Mark records what happened to a touched item in the current level.
type Mark int

const (
	MarkNone     Mark = iota // Never touched
	MarkPending              // Touched, question on screen
	MarkAnswered             // Answered correctly; the veda is collected
	MarkMissed               // Answered incorrectly; the veda is spent
)

// State is the progression state of one play session.
// Per-level fields are reset on every level transition.
type State struct {
	LevelID                int
	ItemsCollected         int
	ItemsAnsweredCorrectly int
	PenaltyCount           int
	UsedQuestions          map[int]struct{}
	ActiveQuestion         *quiz.Question
	ActiveItem             core.ItemID
	Marks                  map[core.ItemID]Mark
}

func newState(levelID int) State {
	return State{
		LevelID:       levelID,
		UsedQuestions: make(map[int]struct{}),
		ActiveItem:    core.NoItem,
		Marks:         make(map[core.ItemID]Mark),
	}
}

// clone returns a deep copy so callers can never mutate the machine's state.
func (s State) clone() State {
	out := s
	out.UsedQuestions = make(map[int]struct{}, len(s.UsedQuestions))
	for k := range s.UsedQuestions {
		out.UsedQuestions[k] = struct{}{}
	}
	out.Marks = make(map[core.ItemID]Mark, len(s.Marks))
	for k, v := range s.Marks {
		out.Marks[k] = v
	}
	if s.ActiveQuestion != nil {
		q := s.ActiveQuestion.Clone()
		out.ActiveQuestion = &q
	}
	return out
}

// Outcome classifies the effect of an operation.
type Outcome int

const (
	OutcomeIgnored       Outcome = iota // No state change
	OutcomeRejected                     // Soft rejection, see Result.Reason
	OutcomeQuestionPosed                // Item accepted, question is pending
	OutcomeCorrect                      // Pending question answered correctly
	OutcomeIncorrect                    // Pending question answered wrongly, penalty applied
	OutcomeLevelComplete                // Advanced to the next level
	OutcomeCompleted                    // Last level passed, session is terminal
	OutcomeLoopedBack                   // Last level passed, restarted at level 1
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeRejected:
		return "rejected"
	case OutcomeQuestionPosed:
		return "question_posed"
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	case OutcomeLevelComplete:
		return "level_complete"
	case OutcomeCompleted:
		return "completed"
	case OutcomeLoopedBack:
		return "looped_back"
	default:
		return "unknown"
	}
}

// Result describes what an operation did.
type Result struct {
	Outcome   Outcome
	Reason    error // Set for ignored and rejected results
	Item      core.ItemID
	Question  *quiz.Question // Set when a question was posed
	FromLevel int            // Set on level transitions
	ToLevel   int
}

// Transitioned reports whether the result moved the session to another level or ended it.
func (r Result) Transitioned() bool {
	switch r.Outcome {
	case OutcomeLevelComplete, OutcomeCompleted, OutcomeLoopedBack:
		return true
	}
	return false
}

// Stats are session-wide totals that survive level transitions.
type Stats struct {
	LevelsCleared int
	Correct       int
	Wrong         int
	Loops         int
}
