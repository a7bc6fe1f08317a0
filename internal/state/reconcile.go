package state

import "github.com/abhisek/lingo/internal/lessons"

// Action is what startup should do with the loaded state.
type Action int

const (
	// ActionSelectLevel asks the learner to choose a level; nothing is fetched.
	ActionSelectLevel Action = iota
	// ActionUseCached shows the saved lesson as is.
	ActionUseCached
	// ActionFetch generates a new lesson for the saved level.
	ActionFetch
)

func (a Action) String() string {
	switch a {
	case ActionSelectLevel:
		return "select-level"
	case ActionUseCached:
		return "use-cached"
	case ActionFetch:
		return "fetch"
	default:
		return "unknown"
	}
}

// Decision is the outcome of Reconcile.
type Decision struct {
	Action Action
	Level  lessons.Level // set for ActionFetch
}

// Reconcile decides whether the saved lesson is still today's. today is a
// calendar date in lessons.DateLayout, computed once by the caller.
func Reconcile(st AppState, today string) Decision {
	if st.Level == nil {
		return Decision{Action: ActionSelectLevel}
	}
	if st.CurrentLesson != nil && st.CurrentLesson.Date == today {
		return Decision{Action: ActionUseCached}
	}
	return Decision{Action: ActionFetch, Level: *st.Level}
}
