package schedule

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"coursecal/internal/model"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// TraceFunc receives one informational line per generated event (parity
// class, weekday, first occurrence, occurrence count). It is a side channel
// only and never affects returned values; nil disables tracing.
type TraceFunc func(msg string, kv ...any)

func (f TraceFunc) emit(msg string, kv ...any) {
	if f != nil {
		f(msg, kv...)
	}
}

// CourseDocument is the decoded form of a course-schedule JSON document.
// Pointer and raw fields keep absent keys distinguishable from zero values,
// so validation can name exactly which required field is missing.
type CourseDocument struct {
	CourseName *string         `json:"course_name"`
	Location   *string         `json:"location"`
	StartDate  *string         `json:"start_date"`
	Weekday    json.RawMessage `json:"weekday"`
	StartTime  *string         `json:"start_time"`
	EndTime    *string         `json:"end_time"`
	TotalWeeks *int            `json:"total_weeks"`
}

// validate checks that all required fields are present and that weekday is a
// sequence of tokens, returning the decoded token list.
func (d CourseDocument) validate() ([]string, error) {
	var missing []string
	if d.CourseName == nil {
		missing = append(missing, "course_name")
	}
	if d.Location == nil {
		missing = append(missing, "location")
	}
	if d.StartDate == nil {
		missing = append(missing, "start_date")
	}
	if d.Weekday == nil {
		missing = append(missing, "weekday")
	}
	if d.StartTime == nil {
		missing = append(missing, "start_time")
	}
	if d.EndTime == nil {
		missing = append(missing, "end_time")
	}
	if d.TotalWeeks == nil {
		missing = append(missing, "total_weeks")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields: %s",
			ErrInvalidScheduleFormat, strings.Join(missing, ", "))
	}

	var tokens []string
	if err := json.Unmarshal(d.Weekday, &tokens); err != nil || tokens == nil {
		// A JSON null unmarshals into a nil slice without error.
		return nil, fmt.Errorf("%w: 'weekday' must be a sequence of tokens", ErrInvalidScheduleFormat)
	}
	return tokens, nil
}

// BuildCourseEvents turns a course document into one RecurringEvent per
// weekday token, in input order. Each event's first occurrence is anchored
// per AnchorRecurrence using the document's start_date as reference, then
// combined with start_time/end_time. Any malformed field aborts the whole
// document; no partial list is returned.
func BuildCourseEvents(doc CourseDocument, trace TraceFunc) ([]model.RecurringEvent, error) {
	tokens, err := doc.validate()
	if err != nil {
		return nil, err
	}

	reference, err := time.Parse(dateLayout, *doc.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date %q (want YYYY-MM-DD)", ErrInvalidDateFormat, *doc.StartDate)
	}
	startClock, err := time.Parse(timeLayout, *doc.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start_time %q (want HH:MM)", ErrInvalidTimeFormat, *doc.StartTime)
	}
	endClock, err := time.Parse(timeLayout, *doc.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: end_time %q (want HH:MM)", ErrInvalidTimeFormat, *doc.EndTime)
	}

	totalWeeks := *doc.TotalWeeks
	events := make([]model.RecurringEvent, 0, len(tokens))

	for _, token := range tokens {
		spec, err := ParseWeekdayToken(token)
		if err != nil {
			return nil, err
		}

		rec := AnchorRecurrence(reference, spec)
		count := rec.OccurrenceCount(totalWeeks)

		ev := model.RecurringEvent{
			Title:    *doc.CourseName,
			Location: *doc.Location,
			Start:    combine(rec.First, startClock),
			End:      combine(rec.First, endClock),
			Interval: rec.Interval,
			Count:    count,
		}
		events = append(events, ev)

		trace.emit("creating course event",
			"course", ev.Title,
			"parity", spec.Parity.String(),
			"weekday", spec.ICalDay(),
			"first_occurrence", rec.First.Format(dateLayout),
			"count", count,
		)
	}

	return events, nil
}

// combine merges a calendar date with a clock time into one instant, keeping
// the date's location.
func combine(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, date.Location())
}
