package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionAnswerA        // A / 1 while a question is shown
	ActionAnswerB        // B / 2
	ActionAnswerC        // C / 3
	ActionAnswerD        // D / 4
	ActionPause          // P
	ActionRestart        // R - restart level, or a new run after completion
	ActionReload         // L - retry loading questions
	ActionQuit           // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionAnswerA:
		return "AnswerA"
	case ActionAnswerB:
		return "AnswerB"
	case ActionAnswerC:
		return "AnswerC"
	case ActionAnswerD:
		return "AnswerD"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionReload:
		return "Reload"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// AnswerLetter returns the option letter for an answer action.
func (a Action) AnswerLetter() (string, bool) {
	switch a {
	case ActionAnswerA:
		return "A", true
	case ActionAnswerB:
		return "B", true
	case ActionAnswerC:
		return "C", true
	case ActionAnswerD:
		return "D", true
	}
	return "", false
}

// AnswerActions lists the answer actions in option order.
var AnswerActions = []Action{ActionAnswerA, ActionAnswerB, ActionAnswerC, ActionAnswerD}

// InputFrame represents the input state during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// InputLatch keeps movement actions alive for a number of ticks after a key press.
// Terminals report key presses (and auto-repeat) but never key releases, so a
// press is treated as "held" until the hold window runs out or the opposite
// direction on the same axis is pressed.
type InputLatch struct {
	hold      int
	remaining map[Action]int
}

// NewInputLatch creates a latch holding each press for hold ticks.
func NewInputLatch(hold int) *InputLatch {
	if hold < 1 {
		hold = 1
	}
	return &InputLatch{hold: hold, remaining: make(map[Action]int)}
}

// Press registers a key press for a movement action. Other actions are ignored.
func (l *InputLatch) Press(a Action) {
	switch a {
	case ActionUp, ActionDown:
		delete(l.remaining, ActionUp)
		delete(l.remaining, ActionDown)
	case ActionLeft, ActionRight:
		delete(l.remaining, ActionLeft)
		delete(l.remaining, ActionRight)
	default:
		return
	}
	l.remaining[a] = l.hold
}

// Apply sets every held action on the frame and ages the latch by one tick.
func (l *InputLatch) Apply(f *InputFrame) {
	for a, n := range l.remaining {
		f.Set(a)
		if n <= 1 {
			delete(l.remaining, a)
		} else {
			l.remaining[a] = n - 1
		}
	}
}

// Release drops all held actions.
func (l *InputLatch) Release() {
	for a := range l.remaining {
		delete(l.remaining, a)
	}
}
