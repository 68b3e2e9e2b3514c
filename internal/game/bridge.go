package game

import (
	"github.com/vovakirdan/vedapath/internal/progression"
	"github.com/vovakirdan/vedapath/internal/quiz"
)

// Bridge presents the pending question and funnels the chosen letter back
// into the progression machine. There is no way to dismiss a question
// without answering it.
type Bridge struct {
	game *Game
}

// Visible reports whether a question is pending.
func (b *Bridge) Visible() bool {
	return b != nil && b.game.machine.QuestionActive()
}

// Question returns the pending question.
func (b *Bridge) Question() (quiz.Question, bool) {
	if !b.Visible() {
		return quiz.Question{}, false
	}
	return b.game.machine.ActiveQuestion()
}

// Submit answers the pending question. Letters that name no option are
// ignored and the question stays on screen.
func (b *Bridge) Submit(letter string) bool {
	q, ok := b.Question()
	if !ok || !q.HasOption(letter) {
		return false
	}
	r := b.game.machine.OnAnswerSubmitted(letter)
	b.game.apply(r)
	return r.Outcome == progression.OutcomeCorrect || r.Outcome == progression.OutcomeIncorrect
}
