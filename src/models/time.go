package models

import (
	"fmt"
	"strings"
	"time"
)

// Time decodes the service's LocalDateTime timestamps, which are emitted
// without a zone offset ("2025-01-15T10:30:00"), and also accepts plain
// RFC3339 so fixtures and future server versions keep working.
type Time struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format("2006-01-02T15:04:05") + `"`), nil
}

// YearMonth decodes the report month ("2025-01").
type YearMonth struct {
	Year  int
	Month time.Month
}

func (ym *YearMonth) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*ym = YearMonth{}
		return nil
	}
	parsed, err := time.Parse("2006-01", s)
	if err != nil {
		return fmt.Errorf("unrecognized year-month %q", s)
	}
	ym.Year = parsed.Year()
	ym.Month = parsed.Month()
	return nil
}

func (ym YearMonth) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", ym.String())), nil
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}
