package application

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestTimestampLayouts(t *testing.T) {
	cases := map[string]time.Time{
		`"2024-06-01"`:                time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		`"2024-06-01T10:00:00"`:       time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		`"2024-06-01 10:00:00"`:       time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		`"2024-06-01T10:00:00.5"`:     time.Date(2024, 6, 1, 10, 0, 0, 500000000, time.UTC),
		`"2024-06-01T12:00:00+02:00"`: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	for raw, want := range cases {
		var ts Timestamp
		if err := json.Unmarshal([]byte(raw), &ts); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if !ts.Equal(want) {
			t.Fatalf("unmarshal %s: expected %v, got %v", raw, want, ts.Time)
		}
	}
}

func TestTimestampRejectsOtherFormats(t *testing.T) {
	var ts Timestamp
	err := json.Unmarshal([]byte(`"01/06/2024"`), &ts)
	var parseErr *time.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected time.ParseError, got %v", err)
	}

	var in TaskPatchInput
	if err := json.Unmarshal([]byte(`{"due_date": null}`), &in); err != nil {
		t.Fatalf("unmarshal null date: %v", err)
	}
	if in.DueDate.timePtr() != nil {
		t.Fatalf("expected null date to stay unset")
	}
}
