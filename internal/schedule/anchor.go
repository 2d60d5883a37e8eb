package schedule

import "time"

// Recurrence is the anchored weekly recurrence for one weekday spec: the
// first qualifying occurrence date plus the interval that, together with an
// occurrence count, reproduces the parity-filtered pattern as a single
// FREQ=WEEKLY rule.
type Recurrence struct {
	// First is the first occurrence date (midnight, date component only).
	// It is the qualifying day within the reference date's own calendar
	// week, which may fall before the reference date itself.
	First time.Time

	// Interval is 1 for every-week specs, 2 for odd/even specs.
	Interval int
}

// OccurrenceCount returns how many occurrences the recurrence needs to cover
// totalWeeks calendar weeks. A biweekly pattern started in week 1 covers
// ceil(totalWeeks/2) of them.
func (r Recurrence) OccurrenceCount(totalWeeks int) int {
	if r.Interval == 2 {
		return (totalWeeks + 1) / 2
	}
	return totalWeeks
}

// mondayOf returns the Monday of the calendar week containing d, at midnight
// in d's location.
func mondayOf(d time.Time) time.Time {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	// time.Weekday is Sunday-indexed; shift so Monday == 0.
	idx := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -idx)
}

// weekdayIndex returns d's Monday-indexed weekday (Monday=0 .. Sunday=6).
func weekdayIndex(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

// AnchorRecurrence finds the first occurrence of spec relative to reference
// and derives the recurrence interval.
//
// The candidate is the requested weekday within reference's own calendar
// week (anchored at that week's Monday). For odd/even specs the candidate is
// then pushed one week forward if its ISO week number has the wrong parity,
// so the first occurrence always belongs to the requested parity class.
// Parity is determined by the ISO week number, not by ordinal distance from
// the reference date.
func AnchorRecurrence(reference time.Time, spec WeekdaySpec) Recurrence {
	weekStart := mondayOf(reference)

	offset := ((spec.Day - 1) - weekdayIndex(weekStart) + 7) % 7
	first := weekStart.AddDate(0, 0, offset)

	_, isoWeek := first.ISOWeek()
	switch {
	case spec.Parity == ParityEven && isoWeek%2 != 0:
		first = first.AddDate(0, 0, 7)
	case spec.Parity == ParityOdd && isoWeek%2 == 0:
		first = first.AddDate(0, 0, 7)
	}

	interval := 1
	if spec.Parity != ParityAll {
		interval = 2
	}

	return Recurrence{First: first, Interval: interval}
}
