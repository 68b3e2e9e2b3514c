package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
)

var (
	// ErrLoadFailure wraps every fetch or parse failure of question data.
	ErrLoadFailure = errors.New("quiz: question load failed")

	// ErrNoQuestions is returned when a level has no questions.
	ErrNoQuestions = errors.New("quiz: no questions for level")
)

// Bank maps level ids to their questions. It is read-only after construction.
type Bank struct {
	byLevel map[int][]Question
}

// NewBank builds a bank from level-keyed questions. Unusable questions are dropped
// and levels left without questions are omitted.
func NewBank(byLevel map[int][]Question) *Bank {
	b := &Bank{byLevel: make(map[int][]Question, len(byLevel))}
	for level, qs := range byLevel {
		kept := make([]Question, 0, len(qs))
		for _, q := range qs {
			if clean, ok := q.sanitize(); ok {
				kept = append(kept, clean)
			}
		}
		if len(kept) > 0 {
			b.byLevel[level] = kept
		}
	}
	return b
}

// EmptyBank returns a bank with no questions.
func EmptyBank() *Bank {
	return &Bank{byLevel: map[int][]Question{}}
}

// fromDocument converts a document keyed by level number strings.
// Keys that are not positive integers are skipped.
func fromDocument(doc map[string][]Question) *Bank {
	byLevel := make(map[int][]Question, len(doc))
	for key, qs := range doc {
		level, err := strconv.Atoi(key)
		if err != nil || level < 1 {
			continue
		}
		byLevel[level] = qs
	}
	return NewBank(byLevel)
}

// Empty reports whether the bank holds no questions at all.
func (b *Bank) Empty() bool {
	return b == nil || len(b.byLevel) == 0
}

// Count returns the number of questions for a level.
func (b *Bank) Count(levelID int) int {
	if b == nil {
		return 0
	}
	return len(b.byLevel[levelID])
}

// Levels returns the level ids that have questions, ascending.
func (b *Bank) Levels() []int {
	if b == nil {
		return nil
	}
	ids := make([]int, 0, len(b.byLevel))
	for id := range b.byLevel {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Questions returns a copy of the questions for a level.
func (b *Bank) Questions(levelID int) []Question {
	if b == nil {
		return nil
	}
	qs := b.byLevel[levelID]
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}

// Pick selects a question for the level uniformly at random among the indices
// not in used. Once every question has been used it picks uniformly from the
// full set; used is never modified here.
func (b *Bank) Pick(levelID int, used map[int]struct{}, rng *rand.Rand) (Question, int, error) {
	if b == nil {
		return Question{}, -1, fmt.Errorf("%w %d", ErrNoQuestions, levelID)
	}
	qs := b.byLevel[levelID]
	if len(qs) == 0 {
		return Question{}, -1, fmt.Errorf("%w %d", ErrNoQuestions, levelID)
	}

	unused := make([]int, 0, len(qs))
	for i := range qs {
		if _, ok := used[i]; !ok {
			unused = append(unused, i)
		}
	}

	var idx int
	if len(unused) > 0 {
		idx = unused[rng.Intn(len(unused))]
	} else {
		idx = rng.Intn(len(qs))
	}
	return qs[idx].Clone(), idx, nil
}
