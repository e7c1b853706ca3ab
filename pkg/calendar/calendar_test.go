package calendar

import (
	"testing"
	"time"
)

func TestParse_RoundTrip(t *testing.T) {
	d, err := Parse("2025-12-03")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := d.ISO(); got != "2025-12-03" {
		t.Errorf("ISO() = %q, want %q", got, "2025-12-03")
	}
	if got := d.Weekday(); got != time.Wednesday {
		t.Errorf("Weekday() = %v, want %v", got, time.Wednesday)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, iso := range []string{"", "2025-13-01", "03/12/2025", "2025-12-3"} {
		if _, err := Parse(iso); err == nil {
			t.Errorf("Parse(%q) error = nil, want error", iso)
		}
	}
}

func TestDayIndex(t *testing.T) {
	start := MustParse("2025-12-01")
	tests := []struct {
		date string
		want int
	}{
		{"2025-12-01", 0},
		{"2025-12-02", 1},
		{"2025-12-31", 30},
		{"2026-01-01", 31},
		{"2025-11-30", -1},
	}
	for _, tt := range tests {
		if got := DayIndex(start, MustParse(tt.date)); got != tt.want {
			t.Errorf("DayIndex(%s, %s) = %d, want %d", start, tt.date, got, tt.want)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2025-12-05", false}, // Friday
		{"2025-12-06", true},  // Saturday
		{"2025-12-07", true},  // Sunday
		{"2025-12-08", false}, // Monday
	}
	for _, tt := range tests {
		if got := IsWeekend(MustParse(tt.date)); got != tt.want {
			t.Errorf("IsWeekend(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestBusinessDays(t *testing.T) {
	tests := []struct {
		name       string
		start, due string
		want       int
	}{
		{"single weekday", "2025-12-03", "2025-12-03", 1},
		{"full week", "2025-12-01", "2025-12-05", 5},
		{"across weekend", "2025-12-04", "2025-12-15", 8},
		{"weekend only floors to 1", "2025-12-06", "2025-12-07", 1},
		{"due before start", "2025-12-05", "2025-12-01", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BusinessDays(MustParse(tt.start), MustParse(tt.due))
			if got != tt.want {
				t.Errorf("BusinessDays(%s, %s) = %d, want %d", tt.start, tt.due, got, tt.want)
			}
		})
	}
}

func TestNextBusinessDay(t *testing.T) {
	tests := []struct {
		date, want string
	}{
		{"2025-12-03", "2025-12-03"}, // Wednesday stays
		{"2025-12-06", "2025-12-08"}, // Saturday -> Monday
		{"2025-12-07", "2025-12-08"}, // Sunday -> Monday
	}
	for _, tt := range tests {
		if got := NextBusinessDay(MustParse(tt.date)); got.ISO() != tt.want {
			t.Errorf("NextBusinessDay(%s) = %s, want %s", tt.date, got, tt.want)
		}
	}
}

func TestAddBusinessDays(t *testing.T) {
	tests := []struct {
		start string
		n     int
		want  string
	}{
		{"2025-12-03", 0, "2025-12-03"},
		{"2025-12-03", 1, "2025-12-04"},
		{"2025-12-05", 1, "2025-12-08"}, // Friday + 1 skips weekend
		{"2025-12-04", 7, "2025-12-15"},
		{"2025-12-03", -2, "2025-12-03"}, // negative is a no-op
	}
	for _, tt := range tests {
		got := AddBusinessDays(MustParse(tt.start), tt.n)
		if got.ISO() != tt.want {
			t.Errorf("AddBusinessDays(%s, %d) = %s, want %s", tt.start, tt.n, got, tt.want)
		}
	}
}

func TestAddBusinessDays_InverseOfDuration(t *testing.T) {
	// For a weekday start, a duration computed by BusinessDays can be
	// reconstructed with AddBusinessDays(start, dur-1).
	start := MustParse("2025-12-04")
	due := MustParse("2025-12-15")
	dur := BusinessDays(start, due)
	if got := AddBusinessDays(start, dur-1); !got.Equal(due) {
		t.Errorf("AddBusinessDays(%s, %d) = %s, want %s", start, dur-1, got, due)
	}
}

func TestMinMax(t *testing.T) {
	a := MustParse("2025-12-01")
	b := MustParse("2025-12-10")
	if got := Min(a, b); !got.Equal(a) {
		t.Errorf("Min() = %s, want %s", got, a)
	}
	if got := Max(a, b); !got.Equal(b) {
		t.Errorf("Max() = %s, want %s", got, b)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := MustParse("2025-12-03")
	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(data) != `"2025-12-03"` {
		t.Errorf("MarshalJSON() = %s, want %q", data, `"2025-12-03"`)
	}
	var back Date
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %s, want %s", back, d)
	}
}
