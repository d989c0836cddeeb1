// Package peaks implements the vendor peak-day mutations: a completed
// selection range is serialized and pushed to the platform backend.
package peaks

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/commands"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/events"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/middleware"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/calendar"
)

const (
	markPeakKey   = "calendar.peaks.mark"
	unmarkPeakKey = "calendar.peaks.unmark"
)

// SessionDirectory resolves a session's completed range. Implemented by the
// sessions service.
type SessionDirectory interface {
	CompletedRange(ctx context.Context, sessionID string) (houseID string, from, to calendar.PlainDate, err error)
}

// PeakMutator is the upstream peak-day API: date ranges travel as the
// Y-MM-DD pair {from_date, to_date}.
type PeakMutator interface {
	MarkPeakDays(ctx context.Context, houseID, fromDate, toDate string) error
	UnmarkPeakDays(ctx context.Context, houseID, fromDate, toDate string) error
}

// PeakRangeResult acknowledges a peak mutation.
type PeakRangeResult struct {
	HouseID  string `json:"house_id"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	Marked   bool   `json:"marked"`
}

// MarkPeakRangeCommand marks the session's completed range as peak days.
type MarkPeakRangeCommand struct {
	CommandID       string
	SessionID       string
	IdempotencyKeyV string
}

func (MarkPeakRangeCommand) Key() string { return markPeakKey }

func (c MarkPeakRangeCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (MarkPeakRangeCommand) ResultPrototype() any { return &PeakRangeResult{} }

type MarkPeakRangeHandler struct {
	Sessions SessionDirectory
	Peaks    PeakMutator
	Events   *events.Emitter
	Logger   *slog.Logger
}

func (h *MarkPeakRangeHandler) Handle(ctx context.Context, cmd MarkPeakRangeCommand) (*PeakRangeResult, error) {
	return applyPeakMutation(ctx, h.Sessions, h.Peaks, h.Events, h.Logger, cmd.SessionID, true)
}

// UnmarkPeakRangeCommand removes the peak marking from the session's
// completed range.
type UnmarkPeakRangeCommand struct {
	CommandID       string
	SessionID       string
	IdempotencyKeyV string
}

func (UnmarkPeakRangeCommand) Key() string { return unmarkPeakKey }

func (c UnmarkPeakRangeCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (UnmarkPeakRangeCommand) ResultPrototype() any { return &PeakRangeResult{} }

type UnmarkPeakRangeHandler struct {
	Sessions SessionDirectory
	Peaks    PeakMutator
	Events   *events.Emitter
	Logger   *slog.Logger
}

func (h *UnmarkPeakRangeHandler) Handle(ctx context.Context, cmd UnmarkPeakRangeCommand) (*PeakRangeResult, error) {
	return applyPeakMutation(ctx, h.Sessions, h.Peaks, h.Events, h.Logger, cmd.SessionID, false)
}

func applyPeakMutation(
	ctx context.Context,
	sessions SessionDirectory,
	peaks PeakMutator,
	emitter *events.Emitter,
	logger *slog.Logger,
	sessionID string,
	mark bool,
) (*PeakRangeResult, error) {
	if sessions == nil || peaks == nil {
		return nil, errors.New("peaks: handler not configured")
	}
	houseID, from, to, err := sessions.CompletedRange(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	fromDate, toDate := from.String(), to.String()
	if mark {
		err = peaks.MarkPeakDays(ctx, houseID, fromDate, toDate)
	} else {
		err = peaks.UnmarkPeakDays(ctx, houseID, fromDate, toDate)
	}
	if err != nil {
		if logger != nil {
			logger.Error("peak mutation failed", "house_id", houseID, "from", fromDate, "to", toDate, "error", err)
		}
		return nil, err
	}

	eventName := events.PeakRangeMarked
	if !mark {
		eventName = events.PeakRangeUnmarked
	}
	if emitErr := emitter.Emit(ctx, eventName, houseID, PeakRangeResult{
		HouseID:  houseID,
		FromDate: fromDate,
		ToDate:   toDate,
		Marked:   mark,
	}); emitErr != nil && logger != nil {
		logger.Warn("peak event not published", "house_id", houseID, "error", emitErr)
	}

	if logger != nil {
		logger.Info("peak range updated", "house_id", houseID, "from", fromDate, "to", toDate, "marked", mark)
	}
	return &PeakRangeResult{HouseID: houseID, FromDate: fromDate, ToDate: toDate, Marked: mark}, nil
}

var (
	_ commands.Handler[MarkPeakRangeCommand, *PeakRangeResult]   = (*MarkPeakRangeHandler)(nil)
	_ commands.Handler[UnmarkPeakRangeCommand, *PeakRangeResult] = (*UnmarkPeakRangeHandler)(nil)
	_ middleware.IdempotentCommand                               = MarkPeakRangeCommand{}
	_ middleware.IdempotentCommand                               = UnmarkPeakRangeCommand{}
)
