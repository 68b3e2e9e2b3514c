// Package quiz provides the per-level question bank and the tooling that
// produces question files.
package quiz

import "strings"

// MaxOptions is the number of options a question can present.
const MaxOptions = 4

// Option is one multiple-choice answer.
type Option struct {
	Letter string `json:"letter" yaml:"letter"`
	Text   string `json:"text" yaml:"text"`
}

// Question is a multiple-choice question tied to a level.
type Question struct {
	Number  int      `json:"number" yaml:"number"`
	Text    string   `json:"question" yaml:"question"`
	Options []Option `json:"options" yaml:"options"`
	Answer  string   `json:"answer" yaml:"answer"` // Letter of the correct option
}

// NormalizeLetter upper-cases and trims an option letter.
func NormalizeLetter(letter string) string {
	return strings.ToUpper(strings.TrimSpace(letter))
}

// IsCorrect reports whether letter names the correct option.
func (q Question) IsCorrect(letter string) bool {
	return NormalizeLetter(letter) == NormalizeLetter(q.Answer)
}

// HasOption reports whether letter names one of the options.
func (q Question) HasOption(letter string) bool {
	letter = NormalizeLetter(letter)
	for _, o := range q.Options {
		if NormalizeLetter(o.Letter) == letter {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	q.Options = append([]Option(nil), q.Options...)
	return q
}

// sanitize normalizes letters, trims to MaxOptions and reports whether the
// question is usable: at least two options and an answer among them.
func (q Question) sanitize() (Question, bool) {
	q = q.Clone()
	q.Text = strings.TrimSpace(q.Text)
	q.Answer = NormalizeLetter(q.Answer)
	if len(q.Options) > MaxOptions {
		q.Options = q.Options[:MaxOptions]
	}
	for i := range q.Options {
		q.Options[i].Letter = NormalizeLetter(q.Options[i].Letter)
		q.Options[i].Text = strings.TrimSpace(q.Options[i].Text)
	}
	if q.Text == "" || len(q.Options) < 2 || !q.HasOption(q.Answer) {
		return q, false
	}
	return q, true
}
