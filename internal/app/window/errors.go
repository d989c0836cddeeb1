package window

import (
	"errors"
	"fmt"
)

// ErrNoSource is returned when a loader is used without a MonthSource.
var ErrNoSource = errors.New("window: month source not configured")

// FetchError reports a failed month fetch. One failed page fails the whole
// window; nothing partial is ever exposed. The fetch is not retried here —
// the caller decides when to re-trigger.
type FetchError struct {
	Track Track
	Year  int
	Month int
	Err   error
}

func (e *FetchError) Error() string {
	if e.Year == 0 {
		return fmt.Sprintf("window: initial month fetch failed for %s: %v", e.Track.Key(), e.Err)
	}
	return fmt.Sprintf("window: month %d/%d fetch failed for %s: %v", e.Year, e.Month, e.Track.Key(), e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
