package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Parity selects which calendar weeks of a weekly pattern an event occurs in,
// keyed off the ISO 8601 week number.
type Parity int

const (
	// ParityAll occurs every week.
	ParityAll Parity = iota
	// ParityOdd occurs only in odd-numbered ISO weeks.
	ParityOdd
	// ParityEven occurs only in even-numbered ISO weeks.
	ParityEven
)

func (p Parity) String() string {
	switch p {
	case ParityOdd:
		return "odd"
	case ParityEven:
		return "even"
	default:
		return "all"
	}
}

// WeekdaySpec is the decoded form of a compact weekday token such as "2",
// "2*" or "2**": a day number (1=Monday .. 7=Sunday, ISO numbering) plus the
// week-parity filter implied by the suffix.
type WeekdaySpec struct {
	Day    int
	Parity Parity
}

// rfc5545Days maps ISO day numbers to the two-letter weekday abbreviations
// used by RFC 5545 recurrence rules.
var rfc5545Days = [...]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

// ICalDay returns the RFC 5545 abbreviation (MO..SU) for the spec's weekday.
func (s WeekdaySpec) ICalDay() string {
	return rfc5545Days[s.Day-1]
}

// ParseWeekdayToken decodes a weekday token. A trailing "**" selects even
// weeks, a single trailing "*" selects odd weeks, no suffix selects every
// week; the remainder must be an integer in 1..7. Surrounding whitespace is
// ignored. Malformed tokens fail with ErrInvalidWeekdayFormat.
func ParseWeekdayToken(token string) (WeekdaySpec, error) {
	s := strings.TrimSpace(token)

	spec := WeekdaySpec{Parity: ParityAll}
	dayStr := s
	if strings.HasSuffix(s, "**") {
		spec.Parity = ParityEven
		dayStr = strings.TrimSuffix(s, "**")
	} else if strings.HasSuffix(s, "*") {
		spec.Parity = ParityOdd
		dayStr = strings.TrimSuffix(s, "*")
	}

	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > 7 {
		return WeekdaySpec{}, fmt.Errorf("%w: %q (want a 1-7 day number with optional '*' or '**' suffix)",
			ErrInvalidWeekdayFormat, token)
	}

	spec.Day = day
	return spec, nil
}
