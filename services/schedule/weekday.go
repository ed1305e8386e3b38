// File: services/schedule/weekday.go
package schedule

import (
	"fmt"
	"time"
)

// weekdayNames are the canonical weekday keys, Monday-first to match the
// recurrence week layout (week index arithmetic is Monday-based).
var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// parseWeekday maps a canonical weekday name to its Monday-based index.
func parseWeekday(name string) (int, error) {
	for i, n := range weekdayNames {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// mondayIndex converts Go's Sunday-based time.Weekday to a Monday-based index.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// weekdayName renders a time.Weekday as its canonical name.
func weekdayName(d time.Weekday) string {
	return weekdayNames[mondayIndex(d)]
}

// parseClock parses a 24-hour "HH:MM" local wall-clock string.
func parseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}
