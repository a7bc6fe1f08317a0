package progress

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingo/internal/lessons"
)

func lessonOn(date string, nWords int) lessons.Lesson {
	l := lessons.Lesson{Date: date}
	for i := range nWords {
		l.Words = append(l.Words, fmt.Sprintf("w%d", i))
	}
	return l
}

func badgeNames(bs []Badge) []string {
	var out []string
	for _, b := range bs {
		out = append(out, b.Name)
	}
	return out
}

func TestComplete_FirstLesson(t *testing.T) {
	got := Complete(Ledger{}, lessonOn("2026-01-01", 6), nil)

	assert.Equal(t, 1, got.Ledger.Streak)
	assert.Equal(t, 10, got.Ledger.Points)
	assert.Equal(t, 6, got.Ledger.WordsMastered)
	assert.Empty(t, got.Ledger.Badges)
	assert.NotNil(t, got.Ledger.Badges)
	assert.Empty(t, got.Awarded)
	require.Len(t, got.History, 1)
	assert.Equal(t, "2026-01-01", got.History[0].Date)
}

func TestComplete_PointsLinearity(t *testing.T) {
	ledger := Ledger{}
	var history lessons.History
	for i := range 20 {
		c := Complete(ledger, lessonOn(fmt.Sprintf("2026-02-%02d", i+1), 5+i%3), history)
		ledger, history = c.Ledger, c.History
		assert.Equal(t, PointsPerLesson*(i+1), ledger.Points)
	}
}

func TestComplete_WordsAccumulateWithoutDedup(t *testing.T) {
	l := lessonOn("2026-01-01", 5)
	first := Complete(Ledger{}, l, nil)
	second := Complete(first.Ledger, l, first.History)

	assert.Equal(t, 10, second.Ledger.WordsMastered, "same words count again")
	assert.Equal(t, 2, second.Ledger.Streak, "double submission double counts")
	assert.Len(t, second.History, 1, "history still has one entry per date")
}

func TestComplete_StreakBadges(t *testing.T) {
	ledger := Ledger{}
	var history lessons.History
	awardedAt := map[int][]string{}

	for day := 1; day <= 14; day++ {
		c := Complete(ledger, lessonOn(fmt.Sprintf("2026-03-%02d", day), 0), history)
		ledger, history = c.Ledger, c.History
		if len(c.Awarded) > 0 {
			awardedAt[day] = badgeNames(c.Awarded)
		}
	}

	assert.Equal(t, map[int][]string{
		3:  {"3-Day Streak"},
		7:  {"7-Day Streak", "Perfect Week"},
		14: {"Consistent Learner"},
	}, awardedAt)
	assert.Equal(t, []string{"3-Day Streak", "7-Day Streak", "Perfect Week", "Consistent Learner"}, ledger.Badges)
}

func TestComplete_WordSmithAwardedOnCrossing(t *testing.T) {
	cur := Ledger{Streak: 1, Points: 10, WordsMastered: 45, Badges: []string{"Word Novice"}}
	c := Complete(cur, lessonOn("2026-04-01", 7), nil)

	assert.Equal(t, 52, c.Ledger.WordsMastered)
	assert.Equal(t, []string{"Word Smith"}, badgeNames(c.Awarded))
	assert.Equal(t, []string{"Word Novice", "Word Smith"}, c.Ledger.Badges)
	assert.Equal(t, []string{"Word Novice"}, cur.Badges, "input ledger untouched")
}

func TestComplete_MultipleBadgesInCatalogOrder(t *testing.T) {
	cur := Ledger{Streak: 2, WordsMastered: 98}
	c := Complete(cur, lessonOn("2026-04-01", 5), nil)

	assert.Equal(t, []string{"Word Novice", "Word Smith", "Lexicographer", "3-Day Streak"}, c.Ledger.Badges)
}

func TestComplete_BadgesNeverShrinkOrDuplicate(t *testing.T) {
	// A ledger may carry badges its counters no longer justify; they stay.
	cur := Ledger{Badges: []string{"Lexicographer", "Custom Legacy Badge"}}
	c := Complete(cur, lessonOn("2026-04-01", 10), nil)

	assert.Equal(t, []string{"Lexicographer", "Custom Legacy Badge", "Word Novice"}, c.Ledger.Badges)

	seen := map[string]bool{}
	for _, b := range c.Ledger.Badges {
		assert.False(t, seen[b], "duplicate badge %q", b)
		seen[b] = true
	}
}

func TestComplete_HistoryDedup(t *testing.T) {
	history := lessons.History{
		lessonOn("2026-01-03", 5),
		lessonOn("2026-01-02", 5),
		lessonOn("2026-01-01", 5),
	}
	redo := lessonOn("2026-01-02", 7)

	c := Complete(Ledger{}, redo, history)

	require.Len(t, c.History, 3)
	assert.Equal(t, "2026-01-02", c.History[0].Date)
	assert.Len(t, c.History[0].Words, 7)
	count := 0
	for _, l := range c.History {
		if l.Date == redo.Date {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, "2026-01-03", history[0].Date, "input history untouched")
}

func TestLedgerJSON(t *testing.T) {
	b, err := json.Marshal(Ledger{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"streak":0,"points":0,"wordsMastered":0,"badges":[]}`, string(b))

	var l Ledger
	require.NoError(t, json.Unmarshal([]byte(`{"streak":3,"points":30,"wordsMastered":18,"badges":["3-Day Streak"]}`), &l))
	assert.True(t, l.HasBadge("3-Day Streak"))
	assert.Equal(t, 18, l.WordsMastered)
}

func TestNextGoals(t *testing.T) {
	goals := Ledger{Streak: 5, WordsMastered: 12, Badges: []string{"Word Novice", "3-Day Streak"}}.NextGoals()
	require.Len(t, goals, 2)

	assert.Equal(t, "Word Smith", goals[0].Badge.Name)
	assert.Equal(t, 38, goals[0].Remaining())
	assert.Equal(t, "7-Day Streak", goals[1].Badge.Name)
	assert.Equal(t, 2, goals[1].Remaining())

	var all []string
	for _, b := range Catalog {
		all = append(all, b.Name)
	}
	assert.Empty(t, Ledger{Badges: all}.NextGoals())
}

func TestLookupBadge(t *testing.T) {
	b, ok := LookupBadge("Perfect Week")
	require.True(t, ok)
	assert.Equal(t, BadgeStreak, b.Kind)
	assert.Equal(t, 7, b.Threshold)

	_, ok = LookupBadge("Nope")
	assert.False(t, ok)
}
