package domain

import (
	"fmt"
	"strings"
	"time"
)

// weekdayNames maps day codes to time.Weekday. The onboarding UI stores
// English codes; Spanish names are accepted because the seeded catalog and
// older profiles use them.
var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"mon":       time.Monday,
	"lunes":     time.Monday,
	"tuesday":   time.Tuesday,
	"tue":       time.Tuesday,
	"martes":    time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"miercoles": time.Wednesday,
	"thursday":  time.Thursday,
	"thu":       time.Thursday,
	"jueves":    time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"viernes":   time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
	"sabado":    time.Saturday,
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
	"domingo":   time.Sunday,
}

// ParseWeekday resolves a day code ("monday", "mon", "lunes", ...) to a
// time.Weekday. Matching is case-insensitive and ignores accents dropped by
// the client (miércoles vs miercoles).
func ParseWeekday(code string) (time.Weekday, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	normalized = strings.Map(func(r rune) rune {
		switch r {
		case 'á':
			return 'a'
		case 'é':
			return 'e'
		case 'í':
			return 'i'
		case 'ó':
			return 'o'
		case 'ú':
			return 'u'
		}
		return r
	}, normalized)
	day, ok := weekdayNames[normalized]
	if !ok {
		return time.Sunday, fmt.Errorf("unknown weekday code %q", code)
	}
	return day, nil
}

// WeekdayOffset returns the day's offset from Monday, so Monday is 0 and
// Sunday is 6. Calendar math in the schedule engine always anchors on the
// ISO week start regardless of locale.
func WeekdayOffset(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// MondayOfWeek returns the Monday of the week containing t, truncated to
// midnight in t's location.
func MondayOfWeek(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -WeekdayOffset(t.Weekday()))
}
