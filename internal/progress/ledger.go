package progress

import (
	"encoding/json"
	"slices"

	"github.com/abhisek/lingo/internal/lessons"
)

// PointsPerLesson is the flat award for every completed lesson.
const PointsPerLesson = 10

// Ledger holds the cumulative gamification counters. The zero value is the
// ledger of a new learner.
type Ledger struct {
	Streak        int      `json:"streak"`
	Points        int      `json:"points"`
	WordsMastered int      `json:"wordsMastered"`
	Badges        []string `json:"badges"`
}

// MarshalJSON writes an empty badge list as [] rather than null.
func (l Ledger) MarshalJSON() ([]byte, error) {
	type plain Ledger
	if l.Badges == nil {
		l.Badges = []string{}
	}
	return json.Marshal(plain(l))
}

// HasBadge reports whether the ledger already holds the named badge.
func (l Ledger) HasBadge(name string) bool {
	return slices.Contains(l.Badges, name)
}

// Completion is the result of completing one lesson.
type Completion struct {
	Ledger  Ledger
	History lessons.History
	// Awarded lists badges unlocked by this completion, in catalog order.
	Awarded []Badge
}

// Complete applies one lesson completion. It adds PointsPerLesson points,
// counts every word of the lesson as mastered, extends the streak by one
// day, unlocks any catalog badge whose threshold the updated counters meet,
// and puts the lesson at the head of the history, replacing an older entry
// for the same date.
//
// Neither cur nor history is modified. Completing the same lesson twice
// counts it twice; the streak never resets on skipped days.
func Complete(cur Ledger, lesson lessons.Lesson, history lessons.History) Completion {
	next := Ledger{
		Streak:        cur.Streak + 1,
		Points:        cur.Points + PointsPerLesson,
		WordsMastered: cur.WordsMastered + len(lesson.Words),
		Badges:        slices.Clone(cur.Badges),
	}
	if next.Badges == nil {
		next.Badges = []string{}
	}

	var awarded []Badge
	for _, b := range Catalog {
		if next.HasBadge(b.Name) {
			continue
		}
		if b.earned(next.Streak, next.WordsMastered) {
			next.Badges = append(next.Badges, b.Name)
			awarded = append(awarded, b)
		}
	}

	return Completion{
		Ledger:  next,
		History: history.Prepend(lesson),
		Awarded: awarded,
	}
}

// Goal describes progress toward the next locked badge of one kind.
type Goal struct {
	Badge   Badge
	Current int
}

// Remaining is how much more of the counter the badge needs.
func (g Goal) Remaining() int {
	return max(g.Badge.Threshold-g.Current, 0)
}

// NextGoals returns, for each badge kind, the lowest-threshold badge not yet
// held. Kinds whose badges are all held are omitted.
func (l Ledger) NextGoals() []Goal {
	var goals []Goal
	for _, kind := range []BadgeKind{BadgeWords, BadgeStreak} {
		current := l.WordsMastered
		if kind == BadgeStreak {
			current = l.Streak
		}
		var best *Badge
		for i := range Catalog {
			b := Catalog[i]
			if b.Kind != kind || l.HasBadge(b.Name) {
				continue
			}
			if best == nil || b.Threshold < best.Threshold {
				best = &b
			}
		}
		if best != nil {
			goals = append(goals, Goal{Badge: *best, Current: current})
		}
	}
	return goals
}
