// Package quiz derives multiple-choice review questions from lesson history.
package quiz

import (
	"math/rand/v2"
	"regexp"

	"github.com/abhisek/lingo/internal/lessons"
)

const (
	// MinPool is the fewest historical sentences a quiz can be built from.
	MinPool = 4
	// MaxQuestions caps the questions in one quiz.
	MaxQuestions = 10
	// Distractors is the number of wrong options sought per question.
	Distractors = 3
)

// InsufficientHistoryMessage is shown instead of a quiz when the history
// holds fewer than MinPool sentences.
const InsufficientHistoryMessage = "Not enough history for a quiz yet. Complete a few more lessons first."

// Question asks which sentence uses TargetWord. Options holds between one
// and four distinct sentences, one of which is CorrectAnswer.
type Question struct {
	ID            int      `json:"id"`
	TargetWord    string   `json:"targetWord"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Translation   string   `json:"translation"`
}

// Shuffler permutes n elements through swap, like rand.Shuffle.
type Shuffler func(n int, swap func(i, j int))

// RandomShuffle is the production Shuffler.
func RandomShuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

type pooled struct {
	sentence lessons.Sentence
	words    []string
}

// Build returns up to MaxQuestions questions drawn from history. It returns
// nil when history holds fewer than MinPool sentences, which callers must
// treat as "not enough data" rather than as an empty result.
//
// Every call reshuffles, so a quiz must be built once per session.
func Build(history lessons.History, shuffle Shuffler) []Question {
	if shuffle == nil {
		shuffle = RandomShuffle
	}

	var pool []pooled
	for _, l := range history {
		for _, s := range l.Sentences {
			pool = append(pool, pooled{sentence: s, words: l.Words})
		}
	}
	if len(pool) < MinPool {
		return nil
	}

	seeds := append([]pooled(nil), pool...)
	shuffle(len(seeds), func(i, j int) { seeds[i], seeds[j] = seeds[j], seeds[i] })
	if len(seeds) > MaxQuestions {
		seeds = seeds[:MaxQuestions]
	}

	questions := make([]Question, len(seeds))
	for i, seed := range seeds {
		correct := seed.sentence.Source
		options := append([]string{correct}, distractors(pool, correct, shuffle)...)
		shuffle(len(options), func(a, b int) { options[a], options[b] = options[b], options[a] })

		questions[i] = Question{
			ID:            i,
			TargetWord:    TargetWord(correct, seed.words),
			Options:       options,
			CorrectAnswer: correct,
			Translation:   seed.sentence.Translation,
		}
	}
	return questions
}

// distractors picks up to Distractors distinct sentences other than correct.
func distractors(pool []pooled, correct string, shuffle Shuffler) []string {
	var candidates []string
	for _, p := range pool {
		if p.sentence.Source != correct {
			candidates = append(candidates, p.sentence.Source)
		}
	}
	shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

	seen := make(map[string]bool, Distractors)
	out := make([]string, 0, Distractors)
	for _, c := range candidates {
		if len(out) == Distractors {
			break
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// TargetWord returns the first of words that appears in sentence as a whole
// word, ignoring case. When none does it falls back to the first word, and
// to "" for an empty list.
func TargetWord(sentence string, words []string) string {
	for _, w := range words {
		if w == "" {
			continue
		}
		if WordPattern(w).MatchString(sentence) {
			return w
		}
	}
	if len(words) > 0 {
		return words[0]
	}
	return ""
}

// WordPattern matches w as a whole word, case-insensitively.
func WordPattern(w string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
}
