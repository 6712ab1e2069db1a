package ledger

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("accepts_calendar_date", func(t *testing.T) {
		d, err := ParseDate("2024-02-29")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Year() != 2024 || d.Month() != time.February || d.Day() != 29 {
			t.Errorf("unexpected date %s", d)
		}
	})

	for _, input := range []string{"2024-02-30", "2024-2-1", "2024-02-01T10:00:00Z", "2024-02-01+02:00", "", "yesterday"} {
		t.Run("rejects_"+input, func(t *testing.T) {
			if _, err := ParseDate(input); err == nil {
				t.Errorf("expected %q to be rejected", input)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	d, err := NormalizeDate("2022-01-02T23:30:00-05:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2022-01-03" {
		t.Errorf("expected UTC date 2022-01-03, got %s", d)
	}
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		Date Date `json:"date"`
	}

	t.Run("round_trip", func(t *testing.T) {
		data, err := json.Marshal(payload{Date: MustParseDate("2022-01-17")})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(data) != `{"date":"2022-01-17"}` {
			t.Errorf("unexpected JSON %s", data)
		}
	})

	t.Run("null_is_empty", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"date":null}`), &p); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !p.Date.IsZero() {
			t.Errorf("expected empty date, got %s", p.Date)
		}
	})

	t.Run("rejects_timestamps", func(t *testing.T) {
		var p payload
		if err := json.Unmarshal([]byte(`{"date":"2022-01-17T08:00:00Z"}`), &p); err == nil {
			t.Error("expected error for timestamp input")
		}
	})
}

func TestDateScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want string
	}{
		{"time_value", time.Date(2022, 3, 4, 0, 0, 0, 0, time.UTC), "2022-03-04"},
		{"text", "2022-03-04", "2022-03-04"},
		{"bytes_with_time", []byte("2022-03-04 00:00:00+00:00"), "2022-03-04"},
		{"null", nil, ""},
		{"garbage_recovers_as_empty", "not-a-date", ""},
		{"unknown_type_recovers_as_empty", 42, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := d.Scan(tt.src); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, d.String())
			}
		})
	}
}

func TestDateValue(t *testing.T) {
	v, err := MustParseDate("2022-01-03").Value()
	if err != nil || v != "2022-01-03" {
		t.Errorf("expected 2022-01-03, got %v (%v)", v, err)
	}
	v, err = Date{}.Value()
	if err != nil || v != nil {
		t.Errorf("expected nil for empty date, got %v (%v)", v, err)
	}
}

func TestDateComparable(t *testing.T) {
	a := MustParseDate("2022-01-03")
	b := NewDate(2022, time.January, 2).AddDays(1)
	if a != b {
		t.Errorf("expected %s == %s", a, b)
	}
	if a.DaysUntil(MustParseDate("2022-01-17")) != 14 {
		t.Errorf("expected 14 days")
	}
}
