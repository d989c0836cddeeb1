// Package render derives the visual classification of calendar day cells.
// Classification is a pure function of the day, the selection and the hover
// preview; the UI layers (customer booking, vendor peak days, vendor
// pricing) map the flags to their own visuals.
package render

import (
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/calendar"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/selection"
)

// DayView is the classification of one cell.
type DayView struct {
	// Invisible marks blank padding cells; nothing else applies to them.
	Invisible bool
	// Blocked covers disabled and locked days, and open days past the
	// valid end boundary while an end date is pending.
	Blocked bool
	// Hatched is the diagonal marker used for disabled (no-inventory)
	// days only, never for locked ones.
	Hatched bool
	// Today and Holiday are decorations. Holiday is suppressed on
	// blocked days.
	Today   bool
	Holiday bool
	// Endpoint marks the start or end of the chosen range.
	Endpoint bool
	// InRange marks days strictly between the chosen endpoints.
	InRange bool
	// Preview marks days strictly between the start and the hovered day
	// while the end is still open, whichever order they fall in.
	Preview bool
	// Selectable reports whether a click on the day could change the
	// selection in the current state.
	Selectable bool
}

// Classify computes the view of one day cell. Pure; no I/O.
func Classify(date calendar.PlainDate, day calendar.Day, sel selection.Snapshot) DayView {
	if day.Blank {
		return DayView{Invisible: true}
	}

	v := DayView{
		Blocked: day.Blocking(),
		Hatched: day.Disabled,
		Today:   day.Today,
		Holiday: day.Holiday && !day.Blocking(),
	}

	pendingEnd := sel.State == selection.StatePendingEnd
	if pendingEnd && !sel.ValidEnd.IsZero() && date.After(sel.ValidEnd) {
		v.Blocked = true
	}

	if date.Equal(sel.Start) || (!sel.End.IsZero() && date.Equal(sel.End)) {
		v.Endpoint = true
	}
	if !sel.Start.IsZero() && !sel.End.IsZero() && between(date, sel.Start, sel.End) {
		v.InRange = true
	}
	if pendingEnd && !sel.Hover.IsZero() && between(date, sel.Start, sel.Hover) {
		v.Preview = true
	}

	v.Selectable = day.Selectable() && !v.Blocked
	return v
}

// between reports strict containment, normalizing the bounds so a hover
// before the start previews the same day set as one after it.
func between(date, a, b calendar.PlainDate) bool {
	lo, hi := a, b
	if hi.Before(lo) {
		lo, hi = hi, lo
	}
	return date.After(lo) && date.Before(hi)
}
