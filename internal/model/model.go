package model

import "time"

// RecurringEvent describes one recurring course meeting: a first occurrence
// plus the weekly recurrence parameters that reproduce all later occurrences
// without enumerating them. One RecurringEvent is produced per weekday entry
// of a course schedule; it is a value object consumed by the ICS writer.
type RecurringEvent struct {
	Title    string
	Location string

	// Start / End are the first occurrence's instants. Times are floating
	// local values; no timezone handling is applied anywhere in the tool.
	Start time.Time
	End   time.Time

	// Interval is the weekly recurrence step: 1 for every-week courses,
	// 2 for odd/even-week alternating courses.
	Interval int

	// Count is the total number of occurrences the recurrence produces.
	Count int
}

// WeekEvent describes one whole-week, all-day, non-recurring calendar entry
// ("Week 3", "Exam Week"). End is exclusive and always Start plus seven days.
type WeekEvent struct {
	Title string
	Start time.Time
	End   time.Time
}
