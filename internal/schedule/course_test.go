package schedule

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func courseDoc() CourseDocument {
	return CourseDocument{
		CourseName: strPtr("Algorithms"),
		Location:   strPtr("Room 204"),
		StartDate:  strPtr("2024-09-02"),
		Weekday:    json.RawMessage(`["1", "1*", "3**"]`),
		StartTime:  strPtr("08:00"),
		EndTime:    strPtr("09:40"),
		TotalWeeks: intPtr(16),
	}
}

func TestBuildCourseEvents(t *testing.T) {
	events, err := BuildCourseEvents(courseDoc(), nil)
	if err != nil {
		t.Fatalf("BuildCourseEvents() error = %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	// Token order must be preserved: "1", "1*", "3**".
	wantStarts := []time.Time{
		time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 9, 9, 8, 0, 0, 0, time.UTC), // odd: shifted out of even ISO week 36
		time.Date(2024, 9, 4, 8, 0, 0, 0, time.UTC), // even: anchors in week 36
	}
	wantIntervals := []int{1, 2, 2}
	wantCounts := []int{16, 8, 8}

	for i, ev := range events {
		if ev.Title != "Algorithms" || ev.Location != "Room 204" {
			t.Errorf("event %d: title/location = %q/%q", i, ev.Title, ev.Location)
		}
		if !ev.Start.Equal(wantStarts[i]) {
			t.Errorf("event %d: Start = %s, want %s", i, ev.Start, wantStarts[i])
		}
		wantEnd := time.Date(ev.Start.Year(), ev.Start.Month(), ev.Start.Day(), 9, 40, 0, 0, time.UTC)
		if !ev.End.Equal(wantEnd) {
			t.Errorf("event %d: End = %s, want %s", i, ev.End, wantEnd)
		}
		if ev.Interval != wantIntervals[i] {
			t.Errorf("event %d: Interval = %d, want %d", i, ev.Interval, wantIntervals[i])
		}
		if ev.Count != wantCounts[i] {
			t.Errorf("event %d: Count = %d, want %d", i, ev.Count, wantCounts[i])
		}
	}
}

func TestBuildCourseEvents_Idempotent(t *testing.T) {
	first, err := BuildCourseEvents(courseDoc(), nil)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	second, err := BuildCourseEvents(courseDoc(), nil)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two builds of the same document differ:\n%+v\n%+v", first, second)
	}
}

func TestBuildCourseEvents_TraceDoesNotAffectResult(t *testing.T) {
	var lines int
	trace := func(msg string, kv ...any) { lines++ }

	traced, err := BuildCourseEvents(courseDoc(), trace)
	if err != nil {
		t.Fatalf("traced build: %v", err)
	}
	silent, err := BuildCourseEvents(courseDoc(), nil)
	if err != nil {
		t.Fatalf("silent build: %v", err)
	}

	if lines != len(traced) {
		t.Errorf("trace emitted %d lines, want one per event (%d)", lines, len(traced))
	}
	if !reflect.DeepEqual(traced, silent) {
		t.Errorf("trace changed the returned events")
	}
}

func TestBuildCourseEvents_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CourseDocument)
		wantErr error
	}{
		{
			name:    "missing course_name",
			mutate:  func(d *CourseDocument) { d.CourseName = nil },
			wantErr: ErrInvalidScheduleFormat,
		},
		{
			name:    "missing total_weeks",
			mutate:  func(d *CourseDocument) { d.TotalWeeks = nil },
			wantErr: ErrInvalidScheduleFormat,
		},
		{
			name:    "weekday not a sequence",
			mutate:  func(d *CourseDocument) { d.Weekday = json.RawMessage(`"1"`) },
			wantErr: ErrInvalidScheduleFormat,
		},
		{
			name:    "weekday null",
			mutate:  func(d *CourseDocument) { d.Weekday = json.RawMessage(`null`) },
			wantErr: ErrInvalidScheduleFormat,
		},
		{
			name:    "malformed weekday token",
			mutate:  func(d *CourseDocument) { d.Weekday = json.RawMessage(`["1", "9"]`) },
			wantErr: ErrInvalidWeekdayFormat,
		},
		{
			name:    "bad start_date",
			mutate:  func(d *CourseDocument) { d.StartDate = strPtr("09/02/2024") },
			wantErr: ErrInvalidDateFormat,
		},
		{
			name:    "bad start_time",
			mutate:  func(d *CourseDocument) { d.StartTime = strPtr("8am") },
			wantErr: ErrInvalidTimeFormat,
		},
		{
			name:    "bad end_time",
			mutate:  func(d *CourseDocument) { d.EndTime = strPtr("25:00") },
			wantErr: ErrInvalidTimeFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := courseDoc()
			tt.mutate(&doc)

			events, err := BuildCourseEvents(doc, nil)
			if err == nil {
				t.Fatalf("BuildCourseEvents() succeeded, want %v", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			// Malformed documents never yield partial event lists.
			if events != nil {
				t.Errorf("got partial events %+v, want nil", events)
			}
		})
	}
}
