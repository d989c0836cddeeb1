package calendar

// Day is one cell of a month grid as delivered by the platform backend.
// Field names are normalized here; the wire format spells some of them
// differently across endpoints (isToDay, isPeakDay, is_disable).
type Day struct {
	Number         int
	Blank          bool
	Disabled       bool
	Locked         bool
	Holiday        bool
	Today          bool
	PeakDay        bool
	HasDiscount    bool
	EffectivePrice int64
	OriginalPrice  int64
}

// Blocking reports whether a stay may not cross this day.
func (d Day) Blocking() bool {
	return d.Disabled || d.Locked
}

// Selectable reports whether the day can start or end a range.
func (d Day) Selectable() bool {
	return !d.Blank && !d.Disabled && !d.Locked
}
