package schedule

import (
	"testing"
	"time"
)

func TestParseWeekday(t *testing.T) {
	for i, name := range weekdayNames {
		got, err := parseWeekday(name)
		if err != nil || got != i {
			t.Errorf("parseWeekday(%q) = %d, %v; want %d", name, got, err, i)
		}
	}
	for _, bad := range []string{"monday", "Tues", "Someday", ""} {
		if _, err := parseWeekday(bad); err == nil {
			t.Errorf("parseWeekday(%q): expected error", bad)
		}
	}
}

func TestMondayIndexRoundTrip(t *testing.T) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if weekdayName(d) != d.String() {
			t.Errorf("weekdayName(%v) = %q", d, weekdayName(d))
		}
	}
	if mondayIndex(time.Monday) != 0 || mondayIndex(time.Sunday) != 6 {
		t.Errorf("mondayIndex anchors = %d, %d; want 0, 6",
			mondayIndex(time.Monday), mondayIndex(time.Sunday))
	}
}

func TestParseClock(t *testing.T) {
	hh, mm, err := parseClock("22:16")
	if err != nil || hh != 22 || mm != 16 {
		t.Fatalf("parseClock(22:16) = %d, %d, %v", hh, mm, err)
	}
	for _, bad := range []string{"25:00", "10:61", "10am", "T10:00", "10:00:00", ""} {
		if _, _, err := parseClock(bad); err == nil {
			t.Errorf("parseClock(%q): expected error", bad)
		}
	}
}
