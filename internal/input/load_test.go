package input

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"coursecal/internal/schedule"
)

const courseJSON = `{
	"course_name": "Algorithms",
	"location": "Room 204",
	"start_date": "2024-09-02",
	"weekday": ["1", "3**"],
	"start_time": "08:00",
	"end_time": "09:40",
	"total_weeks": 16
}`

func TestDecode_Course(t *testing.T) {
	doc, err := Decode([]byte(courseJSON), false)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if doc.Kind != KindCourse {
		t.Fatalf("Kind = %v, want KindCourse", doc.Kind)
	}
	if doc.Course.CourseName == nil || *doc.Course.CourseName != "Algorithms" {
		t.Errorf("CourseName not decoded: %+v", doc.Course)
	}
	if doc.Course.TotalWeeks == nil || *doc.Course.TotalWeeks != 16 {
		t.Errorf("TotalWeeks not decoded: %+v", doc.Course)
	}
}

func TestDecode_WeekMarks(t *testing.T) {
	payload := `{"start_date": "2024-09-04", "name": "Week {}", "start_number": 1, "total_weeks": 3}`

	doc, err := Decode([]byte(payload), false)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if doc.Kind != KindWeekMarks {
		t.Fatalf("Kind = %v, want KindWeekMarks", doc.Kind)
	}
	if doc.WeekMarks.StartNumber == nil || *doc.WeekMarks.StartNumber != 1 {
		t.Errorf("StartNumber not decoded: %+v", doc.WeekMarks)
	}
}

// course_name wins over start_date when both are present.
func TestDecode_CourseNameTakesPrecedence(t *testing.T) {
	payload := `{"course_name": "Algebra", "start_date": "2024-09-02"}`

	doc, err := Decode([]byte(payload), false)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if doc.Kind != KindCourse {
		t.Errorf("Kind = %v, want KindCourse", doc.Kind)
	}
}

func TestDecode_JSONC(t *testing.T) {
	payload := `{
	// semester start
	"start_date": "2024-09-04",
	/* block
	   comment */
	"total_weeks": 2,
}`

	doc, err := Decode([]byte(payload), true)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if doc.Kind != KindWeekMarks {
		t.Fatalf("Kind = %v, want KindWeekMarks", doc.Kind)
	}
	if doc.WeekMarks.TotalWeeks == nil || *doc.WeekMarks.TotalWeeks != 2 {
		t.Errorf("TotalWeeks not decoded: %+v", doc.WeekMarks)
	}
}

func TestDecode_Unrecognized(t *testing.T) {
	_, err := Decode([]byte(`{"name": "Week {}"}`), false)
	if !errors.Is(err, ErrUnknownDocument) {
		t.Errorf("error = %v, want ErrUnknownDocument", err)
	}
}

func TestDecode_BadJSON(t *testing.T) {
	if _, err := Decode([]byte(`{"course_name": `), false); err == nil {
		t.Error("Decode() succeeded on truncated JSON, want error")
	}
	// Comments are only tolerated in the jsonc dialect.
	if _, err := Decode([]byte("{\n// comment\n\"start_date\": \"2024-09-02\"}"), false); err == nil {
		t.Error("Decode() succeeded on commented plain JSON, want error")
	}
}

func TestDecode_MalformedCourseField(t *testing.T) {
	payload := `{"course_name": "Algebra", "total_weeks": "sixteen"}`

	_, err := Decode([]byte(payload), false)
	if !errors.Is(err, schedule.ErrInvalidScheduleFormat) {
		t.Errorf("error = %v, want ErrInvalidScheduleFormat", err)
	}
}

func TestLoadFile_JSONCByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marks.JSONC")
	payload := "{\n// week markers\n\"start_date\": \"2024-09-04\"\n}"
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if doc.Kind != KindWeekMarks {
		t.Errorf("Kind = %v, want KindWeekMarks", doc.Kind)
	}
}
