// Package sessions owns selection sessions: one server-side engine instance
// per open calendar surface, so the customer and vendor calendars share a
// single range-selection implementation instead of divergent client copies.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/dto"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/events"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/window"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/calendar"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/selection"
)

var (
	ErrNotFound            = errors.New("sessions: session not found")
	ErrUnknownRoom         = errors.New("sessions: unknown room")
	ErrSelectionIncomplete = errors.New("sessions: selection is not complete")
)

// RoomLister resolves the room tracks of a rent-by-room house. Optional;
// whole-house properties have a single implicit track.
type RoomLister interface {
	Rooms(ctx context.Context, houseID string) ([]window.RoomRef, error)
}

// Store keeps live sessions. Implemented by the in-memory store; sessions
// are ephemeral by design and never persisted.
type Store interface {
	Save(ctx context.Context, sess *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	Expire(ctx context.Context, lastActiveBefore time.Time) (int, error)
}

// Session is one open calendar surface: its active track window and its
// selection engine. All access goes through Service, which serializes on mu.
type Session struct {
	ID         string
	HouseID    string
	Room       window.RoomRef
	Rooms      []window.RoomRef
	CreatedAt  time.Time
	LastActive time.Time

	mu      sync.Mutex
	tracker *window.Tracker
	engine  *selection.Engine
	winGen  uint64
}

// LastActiveAt reads the idle timestamp under the session lock.
func (sess *Session) LastActiveAt() time.Time {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.LastActive
}

// Service drives session lifecycle and selection operations.
type Service struct {
	Source   window.MonthSource
	Rooms    RoomLister
	Store    Store
	Events   *events.Emitter
	Prefetch int
	TTL      time.Duration
	Logger   *slog.Logger
}

// Open assembles the window for a house (or one of its rooms) and creates an
// empty selection over it. The call waits for the whole window; on fetch
// failure the session is still created so the client can retry.
func (s *Service) Open(ctx context.Context, houseID, roomID string, months int) (dto.SessionView, error) {
	rooms, room, err := s.resolveRooms(ctx, houseID, roomID)
	if err != nil {
		return dto.SessionView{}, err
	}

	now := time.Now().UTC()
	sess := &Session{
		ID:         uuid.NewString(),
		HouseID:    houseID,
		Room:       room,
		Rooms:      rooms,
		CreatedAt:  now,
		LastActive: now,
		tracker:    &window.Tracker{Loader: s.loader(months)},
		engine:     selection.NewEngine(nil),
	}
	sess.tracker.Switch(context.WithoutCancel(ctx), track(houseID, room))
	if _, err := sess.tracker.Wait(ctx); err != nil {
		return dto.SessionView{}, err
	}
	if err := s.Store.Save(ctx, sess); err != nil {
		return dto.SessionView{}, err
	}
	if s.Logger != nil {
		s.Logger.Info("selection session opened", "session_id", sess.ID, "house_id", houseID, "room_id", room.ID)
	}
	return s.lockedView(sess), nil
}

// Get returns the current session view.
func (s *Service) Get(ctx context.Context, id string) (dto.SessionView, error) {
	sess, err := s.touch(ctx, id)
	if err != nil {
		return dto.SessionView{}, err
	}
	return s.lockedView(sess), nil
}

// Select applies a day click. Rejected clicks come back with Changed=false
// and the unchanged selection; they are not errors.
func (s *Service) Select(ctx context.Context, id string, date calendar.PlainDate) (dto.SelectResult, error) {
	sess, err := s.touch(ctx, id)
	if err != nil {
		return dto.SelectResult{}, err
	}
	sess.mu.Lock()
	sess.syncEngine()
	out := sess.engine.Select(date)
	snap := sess.engine.Snapshot()
	atEdge := sess.engine.AtWindowEdge()
	room := sess.Room
	sess.mu.Unlock()

	if out.Completed {
		s.emitCompleted(ctx, sess, room, snap)
	}
	return dto.SelectResult{
		Changed:   out.Changed,
		Completed: out.Completed,
		Selection: dto.MapSelection(snap, atEdge),
	}, nil
}

// Hover sets the preview end date while the range end is pending.
func (s *Service) Hover(ctx context.Context, id string, date calendar.PlainDate) (dto.Selection, error) {
	sess, err := s.touch(ctx, id)
	if err != nil {
		return dto.Selection{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.syncEngine()
	sess.engine.Hover(date)
	return dto.MapSelection(sess.engine.Snapshot(), sess.engine.AtWindowEdge()), nil
}

// ClearHover drops the preview date.
func (s *Service) ClearHover(ctx context.Context, id string) (dto.Selection, error) {
	sess, err := s.touch(ctx, id)
	if err != nil {
		return dto.Selection{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.engine.ClearHover()
	return dto.MapSelection(sess.engine.Snapshot(), sess.engine.AtWindowEdge()), nil
}

// Clear resets the selection.
func (s *Service) Clear(ctx context.Context, id string) (dto.Selection, error) {
	sess, err := s.touch(ctx, id)
	if err != nil {
		return dto.Selection{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.engine.Clear()
	return dto.MapSelection(sess.engine.Snapshot(), sess.engine.AtWindowEdge()), nil
}

// SwitchRoom changes the active track. The new window loads in the
// background; the returned view reports loading until it settles, and a late
// result for the abandoned room is discarded by the tracker.
func (s *Service) SwitchRoom(ctx context.Context, id, roomID string) (dto.SessionView, error) {
	sess, err := s.touch(ctx, id)
	if err != nil {
		return dto.SessionView{}, err
	}
	room, ok := findRoom(sess.Rooms, roomID)
	if !ok {
		return dto.SessionView{}, fmt.Errorf("%w: %q", ErrUnknownRoom, roomID)
	}

	sess.mu.Lock()
	sess.Room = room
	sess.engine.Reset(nil)
	sess.mu.Unlock()
	sess.tracker.Switch(context.WithoutCancel(ctx), track(sess.HouseID, room))

	if s.Logger != nil {
		s.Logger.Debug("session track switched", "session_id", sess.ID, "room_id", room.ID)
	}
	return s.lockedView(sess), nil
}

// Retry refetches the active track after a failed window load.
func (s *Service) Retry(ctx context.Context, id string) (dto.SessionView, error) {
	sess, err := s.touch(ctx, id)
	if err != nil {
		return dto.SessionView{}, err
	}
	sess.tracker.Reload(context.WithoutCancel(ctx))
	if _, err := sess.tracker.Wait(ctx); err != nil {
		return dto.SessionView{}, err
	}
	return s.lockedView(sess), nil
}

// Close destroys the session and its selection state.
func (s *Service) Close(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("selection session closed", "session_id", id)
	}
	return nil
}

// CompletedRange returns the chosen range of a Complete session, for the
// peak-day mutation commands.
func (s *Service) CompletedRange(ctx context.Context, id string) (string, calendar.PlainDate, calendar.PlainDate, error) {
	sess, err := s.touch(ctx, id)
	if err != nil {
		return "", calendar.PlainDate{}, calendar.PlainDate{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	snap := sess.engine.Snapshot()
	if snap.State != selection.StateComplete {
		return "", calendar.PlainDate{}, calendar.PlainDate{}, ErrSelectionIncomplete
	}
	return sess.HouseID, snap.Start, snap.End, nil
}

// PurgeExpired drops sessions idle longer than TTL. Run periodically.
func (s *Service) PurgeExpired(ctx context.Context) {
	if s.TTL <= 0 {
		return
	}
	n, err := s.Store.Expire(ctx, time.Now().UTC().Add(-s.TTL))
	if err != nil {
		if s.Logger != nil {
			s.Logger.Error("session purge failed", "error", err)
		}
		return
	}
	if n > 0 && s.Logger != nil {
		s.Logger.Info("expired sessions purged", "count", n)
	}
}

func (s *Service) loader(months int) *window.Loader {
	prefetch := s.Prefetch
	if months > 0 {
		prefetch = months - 1
	}
	return &window.Loader{Source: s.Source, Prefetch: prefetch, Logger: s.Logger}
}

func (s *Service) resolveRooms(ctx context.Context, houseID, roomID string) ([]window.RoomRef, window.RoomRef, error) {
	if s.Rooms == nil {
		return nil, window.RoomRef{ID: roomID}, nil
	}
	rooms, err := s.Rooms.Rooms(ctx, houseID)
	if err != nil {
		return nil, window.RoomRef{}, err
	}
	if len(rooms) == 0 {
		return nil, window.RoomRef{ID: roomID}, nil
	}
	if roomID == "" {
		return rooms, rooms[0], nil
	}
	room, ok := findRoom(rooms, roomID)
	if !ok {
		return nil, window.RoomRef{}, fmt.Errorf("%w: %q", ErrUnknownRoom, roomID)
	}
	return rooms, room, nil
}

func (s *Service) touch(ctx context.Context, id string) (*Session, error) {
	sess, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	sess.LastActive = time.Now().UTC()
	sess.mu.Unlock()
	return sess, nil
}

func (s *Service) lockedView(sess *Session) dto.SessionView {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.syncEngine()

	snap := sess.tracker.Snapshot()
	view := dto.SessionView{
		SessionID: sess.ID,
		HouseID:   sess.HouseID,
		RoomID:    sess.Room.ID,
		RoomName:  sess.Room.Name,
		Loading:   snap.Loading,
		Selection: dto.MapSelection(sess.engine.Snapshot(), sess.engine.AtWindowEdge()),
		Window:    dto.MapWindow(sess.HouseID, sess.Room.ID, sess.engine.Window(), sess.engine.Snapshot()),
		Rooms:     dto.MapRooms(sess.Rooms),
	}
	if snap.Err != nil {
		view.Error = snap.Err.Error()
		var fetchErr *window.FetchError
		view.Retryable = errors.As(snap.Err, &fetchErr)
	}
	return view
}

// syncEngine points the engine at the tracker's current window after a
// switch or reload. The selection is reset alongside, matching the wholesale
// window replacement rule. Callers hold sess.mu.
func (sess *Session) syncEngine() {
	snap := sess.tracker.Snapshot()
	if snap.Gen != sess.winGen {
		sess.engine.Reset(snap.Window)
		sess.winGen = snap.Gen
		return
	}
	if sess.engine.Window().Empty() && !snap.Window.Empty() {
		sess.engine.Reset(snap.Window)
	}
}

// emitCompleted publishes the completion event. The room is passed in from
// the caller's locked section; sess.Room itself may move under SwitchRoom.
func (s *Service) emitCompleted(ctx context.Context, sess *Session, room window.RoomRef, snap selection.Snapshot) {
	err := s.Events.Emit(ctx, events.SelectionCompleted, sess.HouseID, rangePayload{
		HouseID:  sess.HouseID,
		RoomID:   room.ID,
		FromDate: snap.Start.String(),
		ToDate:   snap.End.String(),
	})
	if err != nil && s.Logger != nil {
		s.Logger.Warn("selection-completed event not published", "session_id", sess.ID, "error", err)
	}
}

type rangePayload struct {
	HouseID  string `json:"house_id"`
	RoomID   string `json:"room_id,omitempty"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

func findRoom(rooms []window.RoomRef, id string) (window.RoomRef, bool) {
	for _, r := range rooms {
		if r.ID == id {
			return r, true
		}
	}
	return window.RoomRef{}, false
}

func track(houseID string, room window.RoomRef) window.Track {
	return window.Track{HouseID: houseID, RoomID: room.ID}
}
