package dto

import (
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/calendar"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/render"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/domain/selection"
)

// CalendarDay is one rendered cell: the backend day fields plus the style
// classification derived from the current selection.
type CalendarDay struct {
	Date           string `json:"date,omitempty"`
	Day            int    `json:"day,omitempty"`
	IsBlank        bool   `json:"is_blank"`
	IsDisable      bool   `json:"is_disable"`
	IsLock         bool   `json:"is_lock"`
	IsHoliday      bool   `json:"is_holiday"`
	IsToday        bool   `json:"is_today"`
	IsPeakDay      bool   `json:"is_peak_day"`
	HasDiscount    bool   `json:"has_discount"`
	EffectivePrice int64  `json:"effective_price"`
	OriginalPrice  int64  `json:"original_price"`

	Style DayStyle `json:"style"`
}

// DayStyle carries the renderer's classification flags.
type DayStyle struct {
	Invisible  bool `json:"invisible"`
	Blocked    bool `json:"blocked"`
	Hatched    bool `json:"hatched"`
	Today      bool `json:"today"`
	Holiday    bool `json:"holiday"`
	Endpoint   bool `json:"endpoint"`
	InRange    bool `json:"in_range"`
	Preview    bool `json:"preview"`
	Selectable bool `json:"selectable"`
}

// CalendarMonth is one rendered month page.
type CalendarMonth struct {
	Year      int           `json:"year"`
	Month     int           `json:"month"`
	MonthName string        `json:"month_name"`
	Days      []CalendarDay `json:"days"`
}

// CalendarWindow is the full rendered month sequence for one track.
type CalendarWindow struct {
	HouseID string          `json:"house_id"`
	RoomID  string          `json:"room_id,omitempty"`
	Months  []CalendarMonth `json:"months"`
}

// MapMonth renders one month page against a selection.
func MapMonth(m calendar.Month, sel selection.Snapshot) CalendarMonth {
	days := make([]CalendarDay, 0, len(m.Days))
	for _, d := range m.Days {
		days = append(days, mapDay(m, d, sel))
	}
	return CalendarMonth{Year: m.Year, Month: m.Month, MonthName: m.Name, Days: days}
}

// MapWindow renders a whole window against a selection.
func MapWindow(houseID, roomID string, w calendar.Window, sel selection.Snapshot) CalendarWindow {
	months := make([]CalendarMonth, 0, len(w))
	for _, m := range w {
		months = append(months, MapMonth(m, sel))
	}
	return CalendarWindow{HouseID: houseID, RoomID: roomID, Months: months}
}

func mapDay(m calendar.Month, d calendar.Day, sel selection.Snapshot) CalendarDay {
	out := CalendarDay{
		IsBlank:        d.Blank,
		IsDisable:      d.Disabled,
		IsLock:         d.Locked,
		IsHoliday:      d.Holiday,
		IsToday:        d.Today,
		IsPeakDay:      d.PeakDay,
		HasDiscount:    d.HasDiscount,
		EffectivePrice: d.EffectivePrice,
		OriginalPrice:  d.OriginalPrice,
	}
	var date calendar.PlainDate
	if !d.Blank {
		date = m.DateOf(d)
		out.Date = date.String()
		out.Day = d.Number
	}
	view := render.Classify(date, d, sel)
	out.Style = DayStyle{
		Invisible:  view.Invisible,
		Blocked:    view.Blocked,
		Hatched:    view.Hatched,
		Today:      view.Today,
		Holiday:    view.Holiday,
		Endpoint:   view.Endpoint,
		InRange:    view.InRange,
		Preview:    view.Preview,
		Selectable: view.Selectable,
	}
	return out
}
