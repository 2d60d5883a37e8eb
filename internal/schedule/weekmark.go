package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"coursecal/internal/model"
)

// Week-marker defaults applied when the optional fields are absent.
const (
	defaultWeekNameTemplate = "Week {}"
	defaultStartNumber      = 0
	defaultTotalWeeks       = 1
)

// WeekMarkDocument is the decoded form of a week-marker JSON document. Only
// start_date is required; the rest default per the constants above.
type WeekMarkDocument struct {
	StartDate   *string `json:"start_date"`
	Name        *string `json:"name"`
	StartNumber *int    `json:"start_number"`
	TotalWeeks  *int    `json:"total_weeks"`
}

// BuildWeekMarks turns a week-marker document into one all-day WeekEvent per
// week index. Week 0 starts on the Monday of start_date's calendar week;
// week i spans [weekStart+7i, weekStart+7(i+1)) with an exclusive end. The
// title substitutes start_number+i into the template's "{}" placeholder.
func BuildWeekMarks(doc WeekMarkDocument, trace TraceFunc) ([]model.WeekEvent, error) {
	if doc.StartDate == nil {
		return nil, fmt.Errorf("%w: week-marker document requires 'start_date'", ErrMissingStartDate)
	}

	startDate, err := time.Parse(dateLayout, *doc.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date %q (want YYYY-MM-DD)", ErrInvalidDateFormat, *doc.StartDate)
	}

	nameTpl := defaultWeekNameTemplate
	if doc.Name != nil {
		nameTpl = *doc.Name
	}
	startNumber := defaultStartNumber
	if doc.StartNumber != nil {
		startNumber = *doc.StartNumber
	}
	totalWeeks := defaultTotalWeeks
	if doc.TotalWeeks != nil {
		totalWeeks = *doc.TotalWeeks
	}

	weekStart := mondayOf(startDate)

	events := make([]model.WeekEvent, 0, totalWeeks)
	for i := 0; i < totalWeeks; i++ {
		start := weekStart.AddDate(0, 0, 7*i)
		ev := model.WeekEvent{
			Title: strings.Replace(nameTpl, "{}", strconv.Itoa(startNumber+i), 1),
			Start: start,
			End:   start.AddDate(0, 0, 7),
		}
		events = append(events, ev)

		trace.emit("creating week marker",
			"title", ev.Title,
			"start", ev.Start.Format(dateLayout),
			"end", ev.End.Format(dateLayout),
		)
	}

	return events, nil
}
