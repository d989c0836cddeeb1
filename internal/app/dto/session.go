package dto

import (
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/window"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/calendar"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/selection"
)

// Selection mirrors the engine state for the UI.
type Selection struct {
	State                string  `json:"state"`
	RangeStart           *string `json:"range_start"`
	RangeEnd             *string `json:"range_end"`
	ValidRangeEnd        *string `json:"valid_range_end"`
	Hover                *string `json:"hover"`
	BoundaryAtWindowEdge bool    `json:"boundary_at_window_edge"`
}

// RoomOption is a switchable room track of a rent-by-room house.
type RoomOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SessionView is the whole state a calendar surface needs: the selection,
// the rendered window, and the load status of the active track.
type SessionView struct {
	SessionID string         `json:"session_id"`
	HouseID   string         `json:"house_id"`
	RoomID    string         `json:"room_id,omitempty"`
	RoomName  string         `json:"room_name,omitempty"`
	Loading   bool           `json:"loading"`
	Error     string         `json:"error,omitempty"`
	Retryable bool           `json:"retryable,omitempty"`
	Selection Selection      `json:"selection"`
	Window    CalendarWindow `json:"window"`
	Rooms     []RoomOption   `json:"rooms,omitempty"`
}

// SelectResult reports the outcome of a day click.
type SelectResult struct {
	Changed   bool      `json:"changed"`
	Completed bool      `json:"completed"`
	Selection Selection `json:"selection"`
}

// MapSelection converts an engine snapshot.
func MapSelection(snap selection.Snapshot, atEdge bool) Selection {
	return Selection{
		State:                string(snap.State),
		RangeStart:           dateOrNil(snap.Start),
		RangeEnd:             dateOrNil(snap.End),
		ValidRangeEnd:        dateOrNil(snap.ValidEnd),
		Hover:                dateOrNil(snap.Hover),
		BoundaryAtWindowEdge: atEdge,
	}
}

// MapRooms converts room references.
func MapRooms(rooms []window.RoomRef) []RoomOption {
	if len(rooms) == 0 {
		return nil
	}
	out := make([]RoomOption, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomOption{ID: r.ID, Name: r.Name})
	}
	return out
}

func dateOrNil(d calendar.PlainDate) *string {
	if d.IsZero() {
		return nil
	}
	s := d.String()
	return &s
}
