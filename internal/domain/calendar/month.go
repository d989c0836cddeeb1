package calendar

import (
	"errors"
	"fmt"
)

var (
	ErrMisplacedBlank = errors.New("calendar: blank cell inside the day sequence")
	ErrDayOrder       = errors.New("calendar: days out of order")
)

// Month is one fetched month page: the cells of a seven-column grid,
// including the leading and trailing blanks that pad it to whole weeks.
type Month struct {
	Year  int
	Month int
	Name  string
	Days  []Day
}

// DateOf returns the full date of a non-blank cell of this month.
func (m Month) DateOf(d Day) PlainDate {
	return PlainDate{Year: m.Year, Month: m.Month, Day: d.Number}
}

// Validate checks the grid invariants: blanks only pad the edges and the
// real days appear in strictly increasing order.
func (m Month) Validate() error {
	seenDay := false
	prev := 0
	for i, d := range m.Days {
		if d.Blank {
			if !seenDay {
				continue
			}
			if trailingBlanksOnly(m.Days[i:]) {
				return nil
			}
			return fmt.Errorf("%w: %d/%d cell %d", ErrMisplacedBlank, m.Year, m.Month, i)
		}
		seenDay = true
		if d.Number <= prev {
			return fmt.Errorf("%w: %d/%d day %d after %d", ErrDayOrder, m.Year, m.Month, d.Number, prev)
		}
		prev = d.Number
	}
	return nil
}

func trailingBlanksOnly(days []Day) bool {
	for _, d := range days {
		if !d.Blank {
			return false
		}
	}
	return true
}

// DatedDay pairs a grid cell with its resolved date.
type DatedDay struct {
	Date PlainDate
	Day  Day
}

// Window is the ordered month sequence for one track. It is either empty or
// holds the full requested month count; it is replaced wholesale on refetch
// and never patched in place.
type Window []Month

func (w Window) Empty() bool { return len(w) == 0 }

// Days flattens the window into date order, dropping blank padding cells.
func (w Window) Days() []DatedDay {
	var out []DatedDay
	for _, m := range w {
		for _, d := range m.Days {
			if d.Blank {
				continue
			}
			out = append(out, DatedDay{Date: m.DateOf(d), Day: d})
		}
	}
	return out
}

// Lookup finds the cell for a date, if the date falls inside the window.
func (w Window) Lookup(date PlainDate) (Day, bool) {
	for _, m := range w {
		if m.Year != date.Year || m.Month != date.Month {
			continue
		}
		for _, d := range m.Days {
			if !d.Blank && d.Number == date.Day {
				return d, true
			}
		}
	}
	return Day{}, false
}

// LastDate returns the last real day of the window.
func (w Window) LastDate() (PlainDate, bool) {
	for i := len(w) - 1; i >= 0; i-- {
		m := w[i]
		for j := len(m.Days) - 1; j >= 0; j-- {
			if !m.Days[j].Blank {
				return m.DateOf(m.Days[j]), true
			}
		}
	}
	return PlainDate{}, false
}
