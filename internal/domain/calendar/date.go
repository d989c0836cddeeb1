package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PlainDate is a date in the property's local calendar. Jatajar properties
// use the Iranian solar calendar (years such as 1403), so the triple is
// ordered by plain integer comparison and must never be converted to a
// time.Time for comparison or day arithmetic.
type PlainDate struct {
	Year  int
	Month int
	Day   int
}

var ErrInvalidDate = errors.New("calendar: invalid date")

// IsZero reports whether the date is unset.
func (d PlainDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Compare orders dates lexicographically on (year, month, day).
func (d PlainDate) Compare(o PlainDate) int {
	if d.Year != o.Year {
		return sign(d.Year - o.Year)
	}
	if d.Month != o.Month {
		return sign(d.Month - o.Month)
	}
	return sign(d.Day - o.Day)
}

func (d PlainDate) Before(o PlainDate) bool { return d.Compare(o) < 0 }
func (d PlainDate) After(o PlainDate) bool  { return d.Compare(o) > 0 }
func (d PlainDate) Equal(o PlainDate) bool  { return d.Compare(o) == 0 }

// String renders the date as Y-MM-DD, the only serialization the platform
// backend accepts for date ranges.
func (d PlainDate) String() string {
	return fmt.Sprintf("%d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ParseDate parses a Y-MM-DD (or Y-M-D) string into a PlainDate.
func ParseDate(s string) (PlainDate, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return PlainDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return PlainDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		nums[i] = n
	}
	d := PlainDate{Year: nums[0], Month: nums[1], Day: nums[2]}
	if d.Year <= 0 || d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return PlainDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// NextMonth rolls (year, month) forward by one month. Twelve-month rollover
// holds for the Iranian calendar just as for the Gregorian one.
func NextMonth(year, month int) (int, int) {
	if month >= 12 {
		return year + 1, 1
	}
	return year, month + 1
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
