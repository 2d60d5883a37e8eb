package ics

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
)

// previewLimit caps how many occurrences the inspector enumerates per
// recurring event.
const previewLimit = 10

// InspectFile parses an .ics file and prints a human-readable summary of
// every VEVENT it contains to w, including an occurrence preview for
// recurring events.
func InspectFile(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return Inspect(w, data)
}

// Inspect parses an ICS payload and prints each event series: summary,
// location, first start/end, the recurrence rule if any, and the first
// occurrences the rule expands to.
func Inspect(w io.Writer, data []byte) error {
	if len(data) == 0 {
		return errors.New("empty ICS payload")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse ics: %w", err)
	}

	events := cal.Events()
	fmt.Fprintf(w, "calendar contains %d event series\n", len(events))

	for i, ve := range events {
		fmt.Fprintf(w, "--- event %d ---\n", i+1)
		printEvent(w, ve)
	}
	return nil
}

func printEvent(w io.Writer, ve *ical.VEvent) {
	fmt.Fprintf(w, "  summary:  %s\n", propValue(ve, ical.ComponentPropertySummary))
	if loc := propValue(ve, ical.ComponentPropertyLocation); loc != "" {
		fmt.Fprintf(w, "  location: %s\n", loc)
	}

	allDay := isAllDay(ve)
	start, startErr := eventTime(ve, ical.ComponentPropertyDtStart)
	end, endErr := eventTime(ve, ical.ComponentPropertyDtEnd)
	fmt.Fprintf(w, "  start:    %s\n", formatInstant(start, startErr, allDay))
	fmt.Fprintf(w, "  end:      %s\n", formatInstant(end, endErr, allDay))

	raw := propValue(ve, ical.ComponentPropertyRrule)
	if raw == "" {
		fmt.Fprintln(w, "  rrule:    none (single event)")
		return
	}
	fmt.Fprintf(w, "  rrule:    %s\n", raw)

	if startErr != nil {
		return
	}
	printOccurrencePreview(w, raw, start, allDay)
}

// printOccurrencePreview expands the rule from the event's DTSTART and lists
// the first occurrences, so alternating-week rules can be eyeballed against
// the intended calendar dates.
func printOccurrencePreview(w io.Writer, raw string, start time.Time, allDay bool) {
	r, err := rrule.StrToRRule(raw)
	if err != nil {
		fmt.Fprintf(w, "  occurrences: cannot expand rule: %v\n", err)
		return
	}
	r.DTStart(start)

	layout := "2006-01-02 15:04"
	if allDay {
		layout = "2006-01-02"
	}

	var dates []string
	truncated := false
	it := r.Iterator()
	for {
		occ, ok := it()
		if !ok {
			break
		}
		if len(dates) == previewLimit {
			truncated = true
			break
		}
		dates = append(dates, occ.Format(layout))
	}

	suffix := ""
	if truncated {
		suffix = ", ..."
	}
	fmt.Fprintf(w, "  occurrences: %s%s\n", strings.Join(dates, ", "), suffix)
}

func propValue(ve *ical.VEvent, prop ical.ComponentProperty) string {
	if p := ve.GetProperty(prop); p != nil {
		return p.Value
	}
	return ""
}

// isAllDay reports whether DTSTART carries VALUE=DATE or a date-only value.
func isAllDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if params := p.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(p.Value, "T")
}

// eventTime parses a DTSTART/DTEND value in its basic UTC, floating
// date-time, or date-only form.
func eventTime(ve *ical.VEvent, prop ical.ComponentProperty) (time.Time, error) {
	p := ve.GetProperty(prop)
	if p == nil {
		return time.Time{}, fmt.Errorf("missing %s", string(prop))
	}
	return parseICSTime(p.Value)
}

func parseICSTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.Parse(timestampLayout, v)
	default:
		return time.Parse("20060102", v)
	}
}

func formatInstant(t time.Time, err error, allDay bool) string {
	if err != nil {
		return "(unparsed)"
	}
	if allDay {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04")
}
