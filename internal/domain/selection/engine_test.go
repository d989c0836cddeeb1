package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/calendar"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/selection"
)

func date(y, m, d int) calendar.PlainDate {
	return calendar.PlainDate{Year: y, Month: m, Day: d}
}

// scenarioWindow is one month, Farvardin 1403: days 1-5 open, day 6
// disabled, days 7-10 open.
func scenarioWindow() calendar.Window {
	m := calendar.Month{Year: 1403, Month: 1, Name: "Farvardin"}
	for d := 1; d <= 10; d++ {
		m.Days = append(m.Days, calendar.Day{Number: d, Disabled: d == 6})
	}
	return calendar.Window{m}
}

func twoMonthWindow(blocked map[calendar.PlainDate]calendar.Day) calendar.Window {
	var w calendar.Window
	for _, ym := range []struct{ y, m int }{{1403, 12}, {1404, 1}} {
		month := calendar.Month{Year: ym.y, Month: ym.m}
		for d := 1; d <= 29; d++ {
			day := calendar.Day{Number: d}
			if override, ok := blocked[date(ym.y, ym.m, d)]; ok {
				override.Number = d
				day = override
			}
			month.Days = append(month.Days, day)
		}
		w = append(w, month)
	}
	return w
}

func TestSelectStartComputesValidEnd(t *testing.T) {
	engine := selection.NewEngine(scenarioWindow())

	out := engine.Select(date(1403, 1, 1))
	require.True(t, out.Changed)
	require.False(t, out.Completed)

	snap := engine.Snapshot()
	assert.Equal(t, selection.StatePendingEnd, snap.State)
	assert.Equal(t, date(1403, 1, 1), snap.Start)
	assert.True(t, snap.End.IsZero())
	assert.Equal(t, date(1403, 1, 5), snap.ValidEnd, "scan must stop before the disabled day")
}

func TestValidEndWithoutBlockerReachesWindowEdge(t *testing.T) {
	engine := selection.NewEngine(twoMonthWindow(nil))

	engine.Select(date(1403, 12, 10))
	snap := engine.Snapshot()
	assert.Equal(t, date(1404, 1, 29), snap.ValidEnd, "no blocker: valid end is the last loaded day")
	assert.True(t, engine.AtWindowEdge())
}

func TestValidEndStopsAtLockedDay(t *testing.T) {
	w := twoMonthWindow(map[calendar.PlainDate]calendar.Day{
		date(1404, 1, 3): {Locked: true},
	})
	engine := selection.NewEngine(w)

	engine.Select(date(1403, 12, 28))
	snap := engine.Snapshot()
	assert.Equal(t, date(1404, 1, 2), snap.ValidEnd, "locked days block the scan across month boundaries")
	assert.False(t, engine.AtWindowEdge())
}

func TestImmediateBlockerAllowsSameDayRangeOnly(t *testing.T) {
	engine := selection.NewEngine(scenarioWindow())

	engine.Select(date(1403, 1, 5))
	assert.Equal(t, date(1403, 1, 5), engine.Snapshot().ValidEnd)

	out := engine.Select(date(1403, 1, 5))
	assert.True(t, out.Changed)
	assert.True(t, out.Completed)
	assert.Equal(t, selection.StateComplete, engine.Snapshot().State)
}

func TestRejectedSelectsLeaveStateUntouched(t *testing.T) {
	engine := selection.NewEngine(scenarioWindow())
	engine.Select(date(1403, 1, 1))
	before := engine.Snapshot()

	testCases := []struct {
		name string
		date calendar.PlainDate
	}{
		{"disabled day", date(1403, 1, 6)},
		{"beyond valid end", date(1403, 1, 7)},
		{"outside window", date(1403, 2, 1)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := engine.Select(tc.date)
			assert.False(t, out.Changed)
			assert.False(t, out.Completed)
			assert.Equal(t, before, engine.Snapshot())
		})
	}
}

func TestCompleteRangeThenRestart(t *testing.T) {
	engine := selection.NewEngine(scenarioWindow())

	// selectDay(1) -> pending, validRangeEnd=5
	out := engine.Select(date(1403, 1, 1))
	require.True(t, out.Changed)
	require.Equal(t, date(1403, 1, 5), engine.Snapshot().ValidEnd)

	// selectDay(3) -> complete 1..3
	out = engine.Select(date(1403, 1, 3))
	require.True(t, out.Completed)
	snap := engine.Snapshot()
	require.Equal(t, date(1403, 1, 1), snap.Start)
	require.Equal(t, date(1403, 1, 3), snap.End)

	// selectDay(7) from Complete -> fresh pending range, old one discarded
	out = engine.Select(date(1403, 1, 7))
	require.True(t, out.Changed)
	require.False(t, out.Completed)
	snap = engine.Snapshot()
	assert.Equal(t, date(1403, 1, 7), snap.Start)
	assert.True(t, snap.End.IsZero())
	assert.Equal(t, date(1403, 1, 10), snap.ValidEnd, "no blocker after day 7")

	// selectDay(6) while 7 pending -> before start, rejected
	out = engine.Select(date(1403, 1, 6))
	assert.False(t, out.Changed)
	assert.Equal(t, snap, engine.Snapshot())
}

func TestEndBeforeStartRejected(t *testing.T) {
	engine := selection.NewEngine(scenarioWindow())
	engine.Select(date(1403, 1, 4))

	out := engine.Select(date(1403, 1, 2))
	assert.False(t, out.Changed)
	assert.Equal(t, selection.StatePendingEnd, engine.Snapshot().State)
}

func TestHoverOnlyWhilePendingEnd(t *testing.T) {
	engine := selection.NewEngine(scenarioWindow())

	assert.False(t, engine.Hover(date(1403, 1, 2)), "no hover before a start exists")

	engine.Select(date(1403, 1, 3))
	assert.True(t, engine.Hover(date(1403, 1, 5)))
	assert.Equal(t, date(1403, 1, 5), engine.Snapshot().Hover)

	assert.True(t, engine.Hover(date(1403, 1, 1)), "hover before the start still previews")
	assert.False(t, engine.Hover(date(1403, 1, 6)), "blocked day is not hoverable")

	engine.ClearHover()
	assert.True(t, engine.Snapshot().Hover.IsZero())

	engine.Hover(date(1403, 1, 4))
	engine.Select(date(1403, 1, 4))
	assert.True(t, engine.Snapshot().Hover.IsZero(), "completing the range drops the hover")
	assert.False(t, engine.Hover(date(1403, 1, 5)), "no hover once complete")
}

func TestClearResetsEverything(t *testing.T) {
	engine := selection.NewEngine(scenarioWindow())
	engine.Select(date(1403, 1, 1))
	engine.Hover(date(1403, 1, 4))

	engine.Clear()
	snap := engine.Snapshot()
	assert.Equal(t, selection.StateEmpty, snap.State)
	assert.True(t, snap.Start.IsZero())
	assert.True(t, snap.End.IsZero())
	assert.True(t, snap.ValidEnd.IsZero())
	assert.True(t, snap.Hover.IsZero())
}

func TestResetSwapsWindowAndClears(t *testing.T) {
	engine := selection.NewEngine(scenarioWindow())
	engine.Select(date(1403, 1, 1))

	fresh := twoMonthWindow(nil)
	engine.Reset(fresh)
	assert.Equal(t, selection.StateEmpty, engine.Snapshot().State)
	assert.Equal(t, fresh, engine.Window())

	out := engine.Select(date(1403, 12, 1))
	assert.True(t, out.Changed)
}

func TestNewStartClearsHoverAndEnd(t *testing.T) {
	engine := selection.NewEngine(scenarioWindow())
	engine.Select(date(1403, 1, 1))
	engine.Select(date(1403, 1, 3))

	engine.Select(date(1403, 1, 2))
	snap := engine.Snapshot()
	assert.Equal(t, date(1403, 1, 2), snap.Start)
	assert.True(t, snap.End.IsZero())
	assert.True(t, snap.Hover.IsZero())
	assert.Equal(t, date(1403, 1, 5), snap.ValidEnd)
}
