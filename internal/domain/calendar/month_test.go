package calendar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/calendar"
)

func gridMonth(year, month, days int, leading, trailing int) calendar.Month {
	m := calendar.Month{Year: year, Month: month}
	for i := 0; i < leading; i++ {
		m.Days = append(m.Days, calendar.Day{Blank: true})
	}
	for d := 1; d <= days; d++ {
		m.Days = append(m.Days, calendar.Day{Number: d})
	}
	for i := 0; i < trailing; i++ {
		m.Days = append(m.Days, calendar.Day{Blank: true})
	}
	return m
}

func TestMonthValidate(t *testing.T) {
	require.NoError(t, gridMonth(1403, 1, 31, 3, 1).Validate())
	require.NoError(t, gridMonth(1403, 1, 31, 0, 0).Validate())

	broken := gridMonth(1403, 1, 5, 0, 0)
	broken.Days[2] = calendar.Day{Blank: true}
	assert.ErrorIs(t, broken.Validate(), calendar.ErrMisplacedBlank)

	reordered := gridMonth(1403, 1, 5, 0, 0)
	reordered.Days[3], reordered.Days[4] = reordered.Days[4], reordered.Days[3]
	assert.ErrorIs(t, reordered.Validate(), calendar.ErrDayOrder)
}

func TestWindowDaysSkipsBlanks(t *testing.T) {
	w := calendar.Window{gridMonth(1403, 1, 3, 2, 2), gridMonth(1403, 2, 2, 1, 0)}
	days := w.Days()
	require.Len(t, days, 5)
	assert.Equal(t, calendar.PlainDate{Year: 1403, Month: 1, Day: 1}, days[0].Date)
	assert.Equal(t, calendar.PlainDate{Year: 1403, Month: 1, Day: 3}, days[2].Date)
	assert.Equal(t, calendar.PlainDate{Year: 1403, Month: 2, Day: 1}, days[3].Date)
	assert.Equal(t, calendar.PlainDate{Year: 1403, Month: 2, Day: 2}, days[4].Date)
}

func TestWindowLookup(t *testing.T) {
	w := calendar.Window{gridMonth(1403, 1, 3, 1, 0)}
	day, ok := w.Lookup(calendar.PlainDate{Year: 1403, Month: 1, Day: 2})
	require.True(t, ok)
	assert.Equal(t, 2, day.Number)

	_, ok = w.Lookup(calendar.PlainDate{Year: 1403, Month: 1, Day: 9})
	assert.False(t, ok)
	_, ok = w.Lookup(calendar.PlainDate{Year: 1403, Month: 3, Day: 1})
	assert.False(t, ok)
}

func TestWindowLastDate(t *testing.T) {
	w := calendar.Window{gridMonth(1403, 1, 31, 0, 0), gridMonth(1403, 2, 31, 2, 3)}
	last, ok := w.LastDate()
	require.True(t, ok)
	assert.Equal(t, calendar.PlainDate{Year: 1403, Month: 2, Day: 31}, last)

	_, ok = calendar.Window{}.LastDate()
	assert.False(t, ok)
	assert.True(t, calendar.Window{}.Empty())
}

func TestDaySelectable(t *testing.T) {
	assert.True(t, calendar.Day{Number: 1}.Selectable())
	assert.False(t, calendar.Day{Blank: true}.Selectable())
	assert.False(t, calendar.Day{Number: 1, Disabled: true}.Selectable())
	assert.False(t, calendar.Day{Number: 1, Locked: true}.Selectable())
	assert.True(t, calendar.Day{Number: 1, Disabled: true}.Blocking())
	assert.True(t, calendar.Day{Number: 1, Locked: true}.Blocking())
	assert.False(t, calendar.Day{Number: 1, Holiday: true, Today: true}.Blocking())
}
