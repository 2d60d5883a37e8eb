package ics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"coursecal/internal/model"
)

// Floating local date-time per RFC 5545. The tool does no timezone handling,
// so all emitted instants stay naive local values (no Z suffix, no TZID).
const timestampLayout = "20060102T150405"

// NewCalendar returns an empty VCALENDAR with the given PRODID and
// VERSION:2.0.
func NewCalendar(prodID string) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetProductId(prodID)
	cal.SetVersion("2.0")
	return cal
}

// AddRecurring appends one recurring VEVENT: first occurrence start/end plus
// an RRULE of FREQ=WEEKLY;INTERVAL={1|2};COUNT=n. stamp becomes DTSTAMP
// (informational only).
func AddRecurring(cal *ical.Calendar, ev model.RecurringEvent, stamp time.Time) {
	e := cal.AddEvent(newUID())
	e.SetSummary(ev.Title)
	e.SetLocation(ev.Location)
	e.SetProperty(ical.ComponentPropertyDtStart, ev.Start.Format(timestampLayout))
	e.SetProperty(ical.ComponentPropertyDtEnd, ev.End.Format(timestampLayout))
	e.SetDtStampTime(stamp)
	e.AddRrule(fmt.Sprintf("FREQ=WEEKLY;INTERVAL=%d;COUNT=%d", ev.Interval, ev.Count))
}

// AddWeekMark appends one all-day, non-recurring VEVENT spanning a whole
// week. The end date is exclusive per RFC 5545 DTEND semantics.
func AddWeekMark(cal *ical.Calendar, ev model.WeekEvent, stamp time.Time) {
	e := cal.AddEvent(newUID())
	e.SetSummary(ev.Title)
	e.SetAllDayStartAt(ev.Start)
	e.SetAllDayEndAt(ev.End)
	e.SetDtStampTime(stamp)
}

func newUID() string {
	return uuid.NewString() + "@coursecal"
}

// WriteFile serializes cal to path atomically: the payload is written to a
// temp file in the same directory, synced, then renamed over the target.
func WriteFile(path string, cal *ical.Calendar) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".coursecal-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(cal.Serialize()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
