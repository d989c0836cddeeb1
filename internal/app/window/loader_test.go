package window_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mo13ammad/ja-ta-jar-sub000/internal/app/window"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/calendar"
)

// fakeSource serves synthetic months keyed by track and year/month. It
// records the pages requested and can fail or stall selected pages.
type fakeSource struct {
	mu       sync.Mutex
	initial  map[string]calendar.Month
	failures map[string]error
	delays   map[string]time.Duration
	requests []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		initial:  make(map[string]calendar.Month),
		failures: make(map[string]error),
		delays:   make(map[string]time.Duration),
	}
}

func pageKey(track window.Track, year, month int) string {
	return fmt.Sprintf("%s@%d-%d", track.Key(), year, month)
}

func monthOf(year, month, days int) calendar.Month {
	m := calendar.Month{Year: year, Month: month}
	for d := 1; d <= days; d++ {
		m.Days = append(m.Days, calendar.Day{Number: d})
	}
	return m
}

func (f *fakeSource) InitialMonth(ctx context.Context, track window.Track) (calendar.Month, error) {
	f.mu.Lock()
	m, ok := f.initial[track.Key()]
	err := f.failures["initial@"+track.Key()]
	f.mu.Unlock()
	if err != nil {
		return calendar.Month{}, err
	}
	if !ok {
		return calendar.Month{}, errors.New("no initial month configured")
	}
	return f.serve(ctx, pageKey(track, m.Year, m.Month), m)
}

func (f *fakeSource) MonthAt(ctx context.Context, track window.Track, year, month int) (calendar.Month, error) {
	key := pageKey(track, year, month)
	f.mu.Lock()
	err := f.failures[key]
	f.mu.Unlock()
	if err != nil {
		f.record(key)
		return calendar.Month{}, err
	}
	return f.serve(ctx, key, monthOf(year, month, 30))
}

func (f *fakeSource) serve(ctx context.Context, key string, m calendar.Month) (calendar.Month, error) {
	f.mu.Lock()
	delay := f.delays[key]
	f.mu.Unlock()
	if delay > 0 {
		select {
		case <-ctx.Done():
			return calendar.Month{}, ctx.Err()
		case <-time.After(delay):
		}
	}
	f.record(key)
	return m, nil
}

func (f *fakeSource) record(key string) {
	f.mu.Lock()
	f.requests = append(f.requests, key)
	f.mu.Unlock()
}

func TestLoadDerivesSuccessorsAcrossYearRollover(t *testing.T) {
	src := newFakeSource()
	track := window.Track{HouseID: "h1"}
	src.initial[track.Key()] = monthOf(1403, 11, 30)

	loader := &window.Loader{Source: src, Prefetch: 3}
	w, err := loader.Load(context.Background(), track)
	require.NoError(t, err)
	require.Len(t, w, 4)

	want := []struct{ y, m int }{{1403, 11}, {1403, 12}, {1404, 1}, {1404, 2}}
	for i, ym := range want {
		assert.Equal(t, ym.y, w[i].Year, "slot %d year", i)
		assert.Equal(t, ym.m, w[i].Month, "slot %d month", i)
	}
}

func TestLoadSlotsByDerivationNotCompletionOrder(t *testing.T) {
	src := newFakeSource()
	track := window.Track{HouseID: "h1"}
	src.initial[track.Key()] = monthOf(1403, 1, 31)
	// First successor settles last.
	src.delays[pageKey(track, 1403, 2)] = 30 * time.Millisecond

	loader := &window.Loader{Source: src, Prefetch: 2}
	w, err := loader.Load(context.Background(), track)
	require.NoError(t, err)
	require.Len(t, w, 3)
	assert.Equal(t, 2, w[1].Month)
	assert.Equal(t, 3, w[2].Month)
}

func TestLoadIsAllOrNothing(t *testing.T) {
	src := newFakeSource()
	track := window.Track{HouseID: "h1"}
	src.initial[track.Key()] = monthOf(1403, 5, 31)
	boom := errors.New("upstream 503")
	src.failures[pageKey(track, 1403, 7)] = boom

	loader := &window.Loader{Source: src, Prefetch: 3}
	w, err := loader.Load(context.Background(), track)
	assert.Nil(t, w, "a single failed page discards the whole window")

	var fe *window.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, track, fe.Track)
	assert.Equal(t, 1403, fe.Year)
	assert.Equal(t, 7, fe.Month)
	assert.ErrorIs(t, err, boom)
}

func TestLoadInitialFailureSkipsSuccessors(t *testing.T) {
	src := newFakeSource()
	track := window.Track{HouseID: "h1"}
	src.failures["initial@"+track.Key()] = errors.New("404")

	loader := &window.Loader{Source: src, Prefetch: 2}
	w, err := loader.Load(context.Background(), track)
	assert.Nil(t, w)

	var fe *window.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Zero(t, fe.Year, "initial fetch errors carry no derived month")
	assert.Empty(t, src.requests, "successors must not be fetched without an anchor")
}

func TestLoadWithoutSource(t *testing.T) {
	loader := &window.Loader{}
	_, err := loader.Load(context.Background(), window.Track{HouseID: "h1"})
	assert.ErrorIs(t, err, window.ErrNoSource)
}

func TestLoadNegativePrefetchClamps(t *testing.T) {
	src := newFakeSource()
	track := window.Track{HouseID: "h1"}
	src.initial[track.Key()] = monthOf(1403, 1, 31)

	loader := &window.Loader{Source: src, Prefetch: -5}
	w, err := loader.Load(context.Background(), track)
	require.NoError(t, err)
	assert.Len(t, w, 1)
}

func TestLoadRoomsAllOrNothing(t *testing.T) {
	src := newFakeSource()
	roomA := window.Track{HouseID: "h1", RoomID: "a"}
	roomB := window.Track{HouseID: "h1", RoomID: "b"}
	src.initial[roomA.Key()] = monthOf(1403, 1, 31)
	src.failures["initial@"+roomB.Key()] = errors.New("timeout")

	loader := &window.Loader{Source: src, Prefetch: 1}
	rooms := []window.RoomRef{{ID: "a", Name: "Garden"}, {ID: "b", Name: "Sea"}}

	out, err := loader.LoadRooms(context.Background(), "h1", rooms)
	assert.Nil(t, out, "one failed room discards every room window")
	var fe *window.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, roomB, fe.Track)
}

func TestLoadRoomsKeysByRoom(t *testing.T) {
	src := newFakeSource()
	roomA := window.Track{HouseID: "h1", RoomID: "a"}
	roomB := window.Track{HouseID: "h1", RoomID: "b"}
	src.initial[roomA.Key()] = monthOf(1403, 1, 31)
	src.initial[roomB.Key()] = monthOf(1403, 1, 31)

	loader := &window.Loader{Source: src, Prefetch: 0}
	rooms := []window.RoomRef{{ID: "a", Name: "Garden"}, {ID: "b", Name: "Sea"}}

	out, err := loader.LoadRooms(context.Background(), "h1", rooms)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Garden", out["a"].Room.Name)
	assert.Equal(t, "Sea", out["b"].Room.Name)
	assert.False(t, out["a"].Window.Empty())
}
