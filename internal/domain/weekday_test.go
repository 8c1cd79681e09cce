package domain

import (
	"testing"
	"time"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		code    string
		want    time.Weekday
		wantErr bool
	}{
		{code: "monday", want: time.Monday},
		{code: "Mon", want: time.Monday},
		{code: "LUNES", want: time.Monday},
		{code: "miercoles", want: time.Wednesday},
		{code: "miércoles", want: time.Wednesday},
		{code: "sábado", want: time.Saturday},
		{code: " sunday ", want: time.Sunday},
		{code: "domingo", want: time.Sunday},
		{code: "funday", wantErr: true},
		{code: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := ParseWeekday(tt.code)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseWeekday(%q) expected error, got %v", tt.code, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWeekday(%q) error = %v", tt.code, err)
			}
			if got != tt.want {
				t.Errorf("ParseWeekday(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestWeekdayOffset(t *testing.T) {
	// Monday anchors the week at offset 0; Go's Sunday-first numbering must
	// land Sunday at the far end.
	offsets := map[time.Weekday]int{
		time.Monday:    0,
		time.Tuesday:   1,
		time.Wednesday: 2,
		time.Thursday:  3,
		time.Friday:    4,
		time.Saturday:  5,
		time.Sunday:    6,
	}
	for day, want := range offsets {
		if got := WeekdayOffset(day); got != want {
			t.Errorf("WeekdayOffset(%v) = %d, want %d", day, got, want)
		}
	}
}

func TestMondayOfWeek(t *testing.T) {
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   time.Time
	}{
		{name: "monday maps to itself", in: time.Date(2025, 3, 3, 15, 30, 0, 0, time.UTC)},
		{name: "midweek", in: time.Date(2025, 3, 6, 8, 0, 0, 0, time.UTC)},
		{name: "sunday belongs to the preceding monday", in: time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MondayOfWeek(tt.in); !got.Equal(monday) {
				t.Errorf("MondayOfWeek(%v) = %v, want %v", tt.in, got, monday)
			}
		})
	}
}

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		raw  string
		want Location
	}{
		{raw: "En casa", want: LocationHome},
		{raw: "Gimnasio completo", want: LocationGym},
		{raw: "gym", want: LocationGym},
		{raw: "Exterior", want: LocationOutdoor},
		{raw: "Parque cercano", want: LocationOutdoor},
		{raw: "", want: LocationHome},
		{raw: "donde sea", want: LocationHome},
	}
	for _, tt := range tests {
		if got := NormalizeLocation(tt.raw); got != tt.want {
			t.Errorf("NormalizeLocation(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
