package reporting

import (
	"time"

	"meatstore-backend/internal/timeutil"
)

// Range kinds accepted by ResolveWindow.
const (
	RangeToday     = "today"
	RangeThisWeek  = "this-week"
	RangeThisMonth = "this-month"
	RangeCustom    = "custom"
)

// Window is the resolved [start, end] pair used to filter orders by
// date, inclusive on both sides. A nil bound leaves that side
// unconstrained; both nil means no date filtering at all.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// CustomRange carries operator-supplied bounds for a custom window.
// Either side may be nil.
type CustomRange struct {
	Start *time.Time
	End   *time.Time
}

// ResolveWindow maps a symbolic range to concrete instants. Weeks start
// on Monday; week and month windows run up to the end of the current
// day, since the feed cannot contain future orders. For custom ranges a
// missing start means "no lower bound" and a missing end means "no
// upper bound".
func ResolveWindow(kind string, custom CustomRange, now time.Time) Window {
	switch kind {
	case RangeToday:
		start := timeutil.StartOfDay(now)
		end := timeutil.EndOfDay(now)
		return Window{Start: &start, End: &end}
	case RangeThisWeek:
		start := timeutil.StartOfWeek(now)
		end := timeutil.EndOfDay(now)
		return Window{Start: &start, End: &end}
	case RangeThisMonth:
		start := timeutil.StartOfMonth(now)
		end := timeutil.EndOfDay(now)
		return Window{Start: &start, End: &end}
	case RangeCustom:
		w := Window{}
		if custom.Start != nil {
			start := timeutil.StartOfDay(*custom.Start)
			w.Start = &start
		}
		if custom.End != nil {
			end := timeutil.EndOfDay(*custom.End)
			w.End = &end
		}
		return w
	default:
		// Unknown kinds filter nothing rather than everything.
		return Window{}
	}
}

// Contains reports whether t falls inside the window, bounds inclusive.
func (w Window) Contains(t time.Time) bool {
	if w.Start != nil && t.Before(*w.Start) {
		return false
	}
	if w.End != nil && t.After(*w.End) {
		return false
	}
	return true
}
