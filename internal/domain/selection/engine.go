// Package selection implements the date-range state machine shared by the
// customer reservation calendar and the vendor peak-day and pricing
// calendars.
package selection

import (
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/calendar"
)

// State names the phase of the range selection.
type State string

const (
	// StateEmpty means no start date has been chosen.
	StateEmpty State = "empty"
	// StatePendingEnd means a start is chosen and the end is still open.
	StatePendingEnd State = "pending_end"
	// StateComplete means both endpoints are chosen.
	StateComplete State = "complete"
)

// Snapshot is a read-only copy of the selection.
type Snapshot struct {
	Start    calendar.PlainDate
	End      calendar.PlainDate
	ValidEnd calendar.PlainDate
	Hover    calendar.PlainDate
	State    State
}

// Outcome reports what a Select call did.
type Outcome struct {
	// Changed is false for rejected clicks: blocked or blank days, days
	// outside the window, and end dates outside [start, validEnd]. A
	// rejection is routine, not an error.
	Changed bool
	// Completed is true when the click closed the range; callers may
	// dismiss an enclosing picker on it.
	Completed bool
}

// Engine owns one selection over one month window. It is not safe for
// concurrent use; the owning session serializes access.
type Engine struct {
	window   calendar.Window
	start    calendar.PlainDate
	end      calendar.PlainDate
	validEnd calendar.PlainDate
	hover    calendar.PlainDate
}

// NewEngine builds an empty selection over the given window.
func NewEngine(w calendar.Window) *Engine {
	return &Engine{window: w}
}

// Reset swaps in a fresh window and clears the selection. Used when the
// active track changes or the window is refetched.
func (e *Engine) Reset(w calendar.Window) {
	e.window = w
	e.Clear()
}

// Window returns the month window the engine currently operates on.
func (e *Engine) Window() calendar.Window {
	return e.window
}

// Select applies a click on the given date.
func (e *Engine) Select(date calendar.PlainDate) Outcome {
	day, ok := e.window.Lookup(date)
	if !ok || !day.Selectable() {
		return Outcome{}
	}

	startingFresh := e.start.IsZero() || !e.end.IsZero()
	if startingFresh {
		e.start = date
		e.end = calendar.PlainDate{}
		e.hover = calendar.PlainDate{}
		e.validEnd = e.scanValidEnd(date)
		return Outcome{Changed: true}
	}

	if date.Before(e.start) {
		return Outcome{}
	}
	if !e.validEnd.IsZero() && date.After(e.validEnd) {
		return Outcome{}
	}
	e.end = date
	e.hover = calendar.PlainDate{}
	return Outcome{Changed: true, Completed: true}
}

// Hover records a preview end while the end date is still open. A no-op
// unless a start is pending and the hovered day is itself selectable.
func (e *Engine) Hover(date calendar.PlainDate) bool {
	if e.start.IsZero() || !e.end.IsZero() {
		return false
	}
	day, ok := e.window.Lookup(date)
	if !ok || !day.Selectable() {
		return false
	}
	e.hover = date
	return true
}

// ClearHover drops the preview date, e.g. when the pointer leaves the grid.
func (e *Engine) ClearHover() {
	e.hover = calendar.PlainDate{}
}

// Clear resets the selection unconditionally.
func (e *Engine) Clear() {
	e.start = calendar.PlainDate{}
	e.end = calendar.PlainDate{}
	e.validEnd = calendar.PlainDate{}
	e.hover = calendar.PlainDate{}
}

// Snapshot returns the current selection.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Start:    e.start,
		End:      e.end,
		ValidEnd: e.validEnd,
		Hover:    e.hover,
		State:    e.State(),
	}
}

// State derives the state-machine phase from the endpoints.
func (e *Engine) State() State {
	switch {
	case e.start.IsZero():
		return StateEmpty
	case e.end.IsZero():
		return StatePendingEnd
	default:
		return StateComplete
	}
}

// AtWindowEdge reports whether the valid end boundary is only bounded by the
// loaded window rather than by a blocking day. Callers wanting a firmer
// boundary should extend the window.
func (e *Engine) AtWindowEdge() bool {
	if e.validEnd.IsZero() {
		return false
	}
	last, ok := e.window.LastDate()
	return ok && e.validEnd.Equal(last)
}

// scanValidEnd walks the window forward from start and returns the furthest
// day reachable without crossing a disabled or locked day. With an immediate
// blocker the start itself is returned, allowing only a same-day range.
func (e *Engine) scanValidEnd(start calendar.PlainDate) calendar.PlainDate {
	candidate := start
	reached := false
	for _, dd := range e.window.Days() {
		if !reached {
			if dd.Date.Equal(start) {
				reached = true
			}
			continue
		}
		if dd.Day.Blocking() {
			break
		}
		candidate = dd.Date
	}
	return candidate
}
