// Package window assembles multi-month calendar windows from the platform
// backend: an initial month plus a configured number of prefetched
// successors, exposed all-or-nothing per track.
package window

import (
	"context"

	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/calendar"
)

// Track identifies one calendar stream: a whole house, or one room of a
// rent-by-room property.
type Track struct {
	HouseID string
	RoomID  string
}

// Key returns a stable identity for cache and staleness checks.
func (t Track) Key() string {
	if t.RoomID == "" {
		return t.HouseID
	}
	return t.HouseID + "/" + t.RoomID
}

// MonthSource fetches month pages for a track. Implemented by the upstream
// API client; faked in tests.
type MonthSource interface {
	// InitialMonth returns the backend's current month for the track,
	// which anchors the rest of the window.
	InitialMonth(ctx context.Context, track Track) (calendar.Month, error)
	// MonthAt returns a specific month page for the track.
	MonthAt(ctx context.Context, track Track, year, month int) (calendar.Month, error)
}

// RoomRef identifies a room track together with its display name.
type RoomRef struct {
	ID   string
	Name string
}

// RoomWindow is one room's assembled window.
type RoomWindow struct {
	Room   RoomRef
	Window calendar.Window
}
