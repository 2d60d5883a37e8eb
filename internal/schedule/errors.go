package schedule

import "errors"

// Sentinel errors for malformed input documents. The builders wrap these with
// the offending field name and raw value, so callers can both match the
// category with errors.Is and report the detail verbatim. A builder never
// returns a partial event list: any of these aborts the whole document.
var (
	// ErrInvalidWeekdayFormat reports a weekday token whose numeric part,
	// after stripping the parity suffix, is not an integer in 1..7.
	ErrInvalidWeekdayFormat = errors.New("invalid weekday format")

	// ErrInvalidScheduleFormat reports a course document with missing
	// required fields or a weekday field that is not a sequence of tokens.
	ErrInvalidScheduleFormat = errors.New("invalid schedule format")

	// ErrMissingStartDate reports a week-marker document without start_date.
	ErrMissingStartDate = errors.New("missing start_date")

	// ErrInvalidDateFormat reports a date field not in YYYY-MM-DD form.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrInvalidTimeFormat reports a time field not in 24-hour HH:MM form.
	ErrInvalidTimeFormat = errors.New("invalid time format")
)
