package progress

// BadgeKind identifies the counter a badge threshold is measured against.
type BadgeKind string

const (
	BadgeWords  BadgeKind = "words"
	BadgeStreak BadgeKind = "streak"
)

// DisplayName returns a human-readable label for the badge kind.
func (k BadgeKind) DisplayName() string {
	switch k {
	case BadgeWords:
		return "Words"
	case BadgeStreak:
		return "Streak"
	default:
		return string(k)
	}
}

// Icon returns the display icon for the badge kind.
func (k BadgeKind) Icon() string {
	switch k {
	case BadgeWords:
		return "📚"
	case BadgeStreak:
		return "🔥"
	default:
		return "✦"
	}
}

// Badge is a one-time achievement unlocked by crossing a threshold.
type Badge struct {
	Name      string
	Kind      BadgeKind
	Threshold int
}

// Catalog is the static badge list. Badges are evaluated in this order.
var Catalog = []Badge{
	{Name: "Word Novice", Kind: BadgeWords, Threshold: 10},
	{Name: "Word Smith", Kind: BadgeWords, Threshold: 50},
	{Name: "Lexicographer", Kind: BadgeWords, Threshold: 100},
	{Name: "3-Day Streak", Kind: BadgeStreak, Threshold: 3},
	{Name: "7-Day Streak", Kind: BadgeStreak, Threshold: 7},
	{Name: "Perfect Week", Kind: BadgeStreak, Threshold: 7},
	{Name: "Consistent Learner", Kind: BadgeStreak, Threshold: 14},
}

// LookupBadge returns the catalog entry for name.
func LookupBadge(name string) (Badge, bool) {
	for _, b := range Catalog {
		if b.Name == name {
			return b, true
		}
	}
	return Badge{}, false
}

// earned reports whether the counters satisfy b.
func (b Badge) earned(streak, words int) bool {
	switch b.Kind {
	case BadgeStreak:
		return streak >= b.Threshold
	case BadgeWords:
		return words >= b.Threshold
	}
	return false
}
