package window

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/calendar"
)

// Loader assembles gap-free month windows. The initial month anchors the
// window; the remaining pages are fetched concurrently and slotted by their
// derived position, so completion order never affects the result.
type Loader struct {
	Source   MonthSource
	Prefetch int
	Logger   *slog.Logger
}

// Load fetches the window for one track: the initial month plus Prefetch
// successors. On any failure it returns a nil window and a *FetchError
// wrapping the first error encountered.
func (l *Loader) Load(ctx context.Context, track Track) (calendar.Window, error) {
	if l == nil || l.Source == nil {
		return nil, ErrNoSource
	}

	initial, err := l.Source.InitialMonth(ctx, track)
	if err != nil {
		return nil, &FetchError{Track: track, Err: err}
	}

	months := make([]calendar.Month, 1+l.prefetch())
	months[0] = initial

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	year, month := initial.Year, initial.Month
	for i := 1; i <= l.prefetch(); i++ {
		year, month = calendar.NextMonth(year, month)
		wg.Add(1)
		go func(slot, y, m int) {
			defer wg.Done()
			page, err := l.Source.MonthAt(ctx, track, y, m)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = &FetchError{Track: track, Year: y, Month: m, Err: err}
				}
				return
			}
			months[slot] = page
		}(i, year, month)
	}
	wg.Wait()

	if firstErr != nil {
		if l.Logger != nil {
			l.Logger.Warn("month window fetch failed", "track", track.Key(), "error", firstErr)
		}
		return nil, firstErr
	}
	if l.Logger != nil {
		l.Logger.Debug("month window assembled", "track", track.Key(), "months", len(months))
	}
	return calendar.Window(months), nil
}

// LoadRooms assembles one window per room of a rent-by-room house. All rooms
// must complete before anything is returned; the first failure discards the
// lot.
func (l *Loader) LoadRooms(ctx context.Context, houseID string, rooms []RoomRef) (map[string]RoomWindow, error) {
	if l == nil || l.Source == nil {
		return nil, ErrNoSource
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	out := make(map[string]RoomWindow, len(rooms))
	for _, room := range rooms {
		wg.Add(1)
		go func(room RoomRef) {
			defer wg.Done()
			w, err := l.Load(ctx, Track{HouseID: houseID, RoomID: room.ID})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			out[room.ID] = RoomWindow{Room: room, Window: w}
		}(room)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func (l *Loader) prefetch() int {
	if l.Prefetch < 0 {
		return 0
	}
	return l.Prefetch
}
