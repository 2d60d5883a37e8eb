// Package input loads schedule documents from JSON or comment-tolerant JSON
// (.jsonc) files and classifies them by shape: a document carrying a
// course_name field is a course schedule, otherwise one carrying start_date
// is a week-marker schedule.
package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tailscale/hujson"

	"coursecal/internal/schedule"
)

// ErrUnknownDocument reports a document that is neither a course schedule
// nor a week-marker schedule.
var ErrUnknownDocument = errors.New("unrecognized schedule document: need 'course_name' or 'start_date'")

// Kind identifies a document's shape.
type Kind int

const (
	KindCourse Kind = iota
	KindWeekMarks
)

func (k Kind) String() string {
	if k == KindWeekMarks {
		return "weekmarks"
	}
	return "course"
}

// Document is one classified and decoded schedule document. Exactly one of
// Course / WeekMarks is meaningful, selected by Kind.
type Document struct {
	Kind      Kind
	Course    schedule.CourseDocument
	WeekMarks schedule.WeekMarkDocument
}

// LoadFile reads and decodes one schedule document. Files ending in .jsonc
// (case-insensitive) are standardized to plain JSON first, which strips //
// and /* */ comments and trailing commas.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	return Decode(data, strings.HasSuffix(strings.ToLower(path), ".jsonc"))
}

// Decode classifies and decodes one document payload. jsonc selects the
// comment-tolerant dialect.
func Decode(data []byte, jsonc bool) (Document, error) {
	if jsonc {
		std, err := hujson.Standardize(data)
		if err != nil {
			return Document{}, fmt.Errorf("parse jsonc: %w", err)
		}
		data = std
	}

	// Probe the two discriminating fields before committing to a shape.
	var probe struct {
		CourseName *string `json:"course_name"`
		StartDate  *string `json:"start_date"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Document{}, fmt.Errorf("parse json: %w", err)
	}

	switch {
	case probe.CourseName != nil:
		var doc Document
		doc.Kind = KindCourse
		if err := json.Unmarshal(data, &doc.Course); err != nil {
			return Document{}, fmt.Errorf("%w: %v", schedule.ErrInvalidScheduleFormat, err)
		}
		return doc, nil
	case probe.StartDate != nil:
		var doc Document
		doc.Kind = KindWeekMarks
		if err := json.Unmarshal(data, &doc.WeekMarks); err != nil {
			return Document{}, fmt.Errorf("parse weekmarks document: %w", err)
		}
		return doc, nil
	default:
		return Document{}, ErrUnknownDocument
	}
}
