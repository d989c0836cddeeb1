package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/calendar"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/render"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/selection"
)

func date(d int) calendar.PlainDate {
	return calendar.PlainDate{Year: 1403, Month: 1, Day: d}
}

func TestClassifyBlankIsInvisibleOnly(t *testing.T) {
	v := render.Classify(calendar.PlainDate{}, calendar.Day{Blank: true, Holiday: true, Today: true}, selection.Snapshot{State: selection.StateEmpty})
	assert.Equal(t, render.DayView{Invisible: true}, v, "blanks carry no other flag")
}

func TestClassifyBlockingFlags(t *testing.T) {
	empty := selection.Snapshot{State: selection.StateEmpty}

	disabled := render.Classify(date(3), calendar.Day{Number: 3, Disabled: true}, empty)
	assert.True(t, disabled.Blocked)
	assert.True(t, disabled.Hatched, "disabled days get the hatch marker")
	assert.False(t, disabled.Selectable)

	locked := render.Classify(date(4), calendar.Day{Number: 4, Locked: true}, empty)
	assert.True(t, locked.Blocked)
	assert.False(t, locked.Hatched, "locked days are blocked without the hatch")
	assert.False(t, locked.Selectable)
}

func TestClassifyHolidaySuppressedWhenBlocked(t *testing.T) {
	empty := selection.Snapshot{State: selection.StateEmpty}

	open := render.Classify(date(1), calendar.Day{Number: 1, Holiday: true}, empty)
	assert.True(t, open.Holiday)

	blocked := render.Classify(date(2), calendar.Day{Number: 2, Holiday: true, Disabled: true}, empty)
	assert.False(t, blocked.Holiday, "the block styling wins over the holiday tint")
	assert.True(t, blocked.Blocked)
}

func TestClassifyBeyondValidEndBlocksOpenDays(t *testing.T) {
	pending := selection.Snapshot{
		State:    selection.StatePendingEnd,
		Start:    date(2),
		ValidEnd: date(5),
	}

	within := render.Classify(date(4), calendar.Day{Number: 4}, pending)
	assert.False(t, within.Blocked)
	assert.True(t, within.Selectable)

	beyond := render.Classify(date(7), calendar.Day{Number: 7}, pending)
	assert.True(t, beyond.Blocked, "open days past validEnd render blocked while the end is pending")
	assert.False(t, beyond.Hatched)
	assert.False(t, beyond.Selectable)

	// Once the range is closed the same day is open again.
	complete := selection.Snapshot{State: selection.StateComplete, Start: date(2), End: date(4), ValidEnd: date(5)}
	after := render.Classify(date(7), calendar.Day{Number: 7}, complete)
	assert.False(t, after.Blocked)
	assert.True(t, after.Selectable)
}

func TestClassifyEndpointsAndRange(t *testing.T) {
	complete := selection.Snapshot{State: selection.StateComplete, Start: date(2), End: date(5)}

	testCases := []struct {
		day      int
		endpoint bool
		inRange  bool
	}{
		{1, false, false},
		{2, true, false},
		{3, false, true},
		{4, false, true},
		{5, true, false},
		{6, false, false},
	}
	for _, tc := range testCases {
		v := render.Classify(date(tc.day), calendar.Day{Number: tc.day}, complete)
		assert.Equal(t, tc.endpoint, v.Endpoint, "day %d endpoint", tc.day)
		assert.Equal(t, tc.inRange, v.InRange, "day %d in range", tc.day)
	}
}

func TestClassifySameDayRange(t *testing.T) {
	complete := selection.Snapshot{State: selection.StateComplete, Start: date(3), End: date(3)}
	v := render.Classify(date(3), calendar.Day{Number: 3}, complete)
	assert.True(t, v.Endpoint)
	assert.False(t, v.InRange)
}

func TestClassifyHoverPreviewIsSymmetric(t *testing.T) {
	forward := selection.Snapshot{State: selection.StatePendingEnd, Start: date(2), ValidEnd: date(9), Hover: date(6)}
	backward := selection.Snapshot{State: selection.StatePendingEnd, Start: date(6), ValidEnd: date(9), Hover: date(2)}

	for d := 1; d <= 7; d++ {
		f := render.Classify(date(d), calendar.Day{Number: d}, forward)
		b := render.Classify(date(d), calendar.Day{Number: d}, backward)
		assert.Equal(t, f.Preview, b.Preview, "day %d preview must not depend on hover direction", d)
		assert.Equal(t, d > 2 && d < 6, f.Preview, "day %d", d)
	}
}

func TestClassifyNoPreviewOutsidePendingEnd(t *testing.T) {
	stale := selection.Snapshot{State: selection.StateComplete, Start: date(2), End: date(6), Hover: date(5)}
	v := render.Classify(date(4), calendar.Day{Number: 4}, stale)
	assert.False(t, v.Preview)
	assert.True(t, v.InRange)
}

func TestClassifyDecorationsPassThrough(t *testing.T) {
	v := render.Classify(date(8), calendar.Day{Number: 8, Today: true}, selection.Snapshot{State: selection.StateEmpty})
	assert.True(t, v.Today)
	assert.True(t, v.Selectable)
	assert.False(t, v.Blocked)
}
