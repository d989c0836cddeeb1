// Package calendarwin serves sessionless month-window reads for vendor
// dashboards that only display the calendar.
package calendarwin

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/dto"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/queries"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/window"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/selection"
)

const getWindowKey = "calendar.window.get"

type GetWindowQuery struct {
	HouseID string
	RoomID  string
	// Months overrides the configured window size when positive.
	Months int
}

func (q GetWindowQuery) Key() string { return getWindowKey }

type GetWindowHandler struct {
	Source   window.MonthSource
	Prefetch int
	Logger   *slog.Logger
}

func (h *GetWindowHandler) Handle(ctx context.Context, q GetWindowQuery) (dto.CalendarWindow, error) {
	houseID := strings.TrimSpace(q.HouseID)
	if houseID == "" {
		return dto.CalendarWindow{}, errors.New("house id is required")
	}
	prefetch := h.Prefetch
	if q.Months > 0 {
		prefetch = q.Months - 1
	}
	loader := &window.Loader{Source: h.Source, Prefetch: prefetch, Logger: h.Logger}
	w, err := loader.Load(ctx, window.Track{HouseID: houseID, RoomID: q.RoomID})
	if err != nil {
		return dto.CalendarWindow{}, err
	}
	if h.Logger != nil {
		h.Logger.Debug("calendar window served", "house_id", houseID, "room_id", q.RoomID, "months", len(w))
	}
	return dto.MapWindow(houseID, q.RoomID, w, selection.Snapshot{State: selection.StateEmpty}), nil
}

var _ queries.Handler[GetWindowQuery, dto.CalendarWindow] = (*GetWindowHandler)(nil)
