package window

import (
	"context"
	"sync"

	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/calendar"
)

// Snapshot is the tracker's externally visible state: empty window with
// Loading set while a fetch is in flight, empty window with Err after a
// failure, or the complete assembled window. Partial windows never appear.
type Snapshot struct {
	Track   Track
	Window  calendar.Window
	Loading bool
	Err     error
	// Gen changes on every Switch or Reload; consumers compare it to
	// notice that the window was replaced wholesale.
	Gen uint64
}

// Tracker holds the window for whichever track is currently active. Each
// Switch bumps a generation counter; a load that settles under an older
// generation is discarded instead of merged, so a late response for an
// abandoned room can never overwrite the active room's window.
type Tracker struct {
	Loader *Loader

	mu      sync.Mutex
	gen     uint64
	track   Track
	window  calendar.Window
	loading bool
	err     error
	done    chan struct{}
}

// Switch makes the given track active and starts assembling its window in
// the background, superseding any load still in flight.
func (t *Tracker) Switch(ctx context.Context, track Track) {
	t.mu.Lock()
	if t.loading && t.done != nil {
		// Wake waiters of the superseded load; its result will be
		// dropped by the generation check below.
		close(t.done)
	}
	t.gen++
	gen := t.gen
	t.track = track
	t.window = nil
	t.err = nil
	t.loading = true
	done := make(chan struct{})
	t.done = done
	t.mu.Unlock()

	go func() {
		w, err := t.Loader.Load(ctx, track)
		t.mu.Lock()
		defer t.mu.Unlock()
		if gen != t.gen {
			return
		}
		t.window = w
		t.err = err
		t.loading = false
		close(done)
	}()
}

// Reload refetches the active track's window wholesale.
func (t *Tracker) Reload(ctx context.Context) {
	t.mu.Lock()
	track := t.track
	t.mu.Unlock()
	t.Switch(ctx, track)
}

// Snapshot returns the current state without blocking.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{Track: t.track, Window: t.window, Loading: t.loading, Err: t.err, Gen: t.gen}
}

// Generation identifies the current window; it changes on every Switch or
// Reload, letting consumers notice wholesale replacement.
func (t *Tracker) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen
}

// Wait blocks until the active load settles (or ctx is done) and returns
// the snapshot at that point.
func (t *Tracker) Wait(ctx context.Context) (Snapshot, error) {
	for {
		t.mu.Lock()
		if !t.loading {
			snap := Snapshot{Track: t.track, Window: t.window, Loading: false, Err: t.err, Gen: t.gen}
			t.mu.Unlock()
			return snap, nil
		}
		done := t.done
		t.mu.Unlock()

		select {
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		case <-done:
		}
	}
}
