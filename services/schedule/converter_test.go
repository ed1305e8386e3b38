package schedule

import (
	"testing"
	"time"
)

func mustConverter(t *testing.T, zone string) *ZoneConverter {
	t.Helper()
	conv, err := NewZoneConverter(zone)
	if err != nil {
		t.Fatalf("NewZoneConverter(%q): %v", zone, err)
	}
	return conv
}

func civilDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestToUTCRegularTime(t *testing.T) {
	conv := mustConverter(t, "America/New_York")

	// 2025-01-15 is deep in standard time (UTC-5).
	got := conv.ToUTC(civilDate(2025, time.January, 15), 9, 0)
	want := time.Date(2025, time.January, 15, 14, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ToUTC = %v, want %v", got, want)
	}

	// Summer wall clock uses the daylight offset (UTC-4).
	got = conv.ToUTC(civilDate(2025, time.July, 15), 9, 0)
	want = time.Date(2025, time.July, 15, 13, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ToUTC summer = %v, want %v", got, want)
	}
}

func TestToUTCSpringForwardGap(t *testing.T) {
	conv := mustConverter(t, "America/New_York")

	// 2025-03-09 02:30 does not exist; the clock jumps 02:00 -> 03:00. The
	// wall time is read at the post-transition offset (UTC-4), giving 06:30Z,
	// never the pre-transition 07:30Z.
	got := conv.ToUTC(civilDate(2025, time.March, 9), 2, 30)
	want := time.Date(2025, time.March, 9, 6, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ToUTC in DST gap = %v, want %v", got, want)
	}

	// Same policy in a zone east of UTC: Berlin skips 02:00 -> 03:00 on
	// 2025-03-30, so 02:30 reads at UTC+2, giving 00:30Z.
	berlin := mustConverter(t, "Europe/Berlin")
	got = berlin.ToUTC(civilDate(2025, time.March, 30), 2, 30)
	want = time.Date(2025, time.March, 30, 0, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ToUTC in Berlin DST gap = %v, want %v", got, want)
	}
}

func TestToUTCFallBackAmbiguity(t *testing.T) {
	conv := mustConverter(t, "America/New_York")

	// 2025-11-02 01:30 occurs twice; the second occurrence is standard time
	// (UTC-5), giving 06:30Z rather than 05:30Z.
	got := conv.ToUTC(civilDate(2025, time.November, 2), 1, 30)
	want := time.Date(2025, time.November, 2, 6, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ToUTC in ambiguous hour = %v, want %v", got, want)
	}
}

func TestToUTCToLocalRoundTrip(t *testing.T) {
	conv := mustConverter(t, "America/New_York")

	dates := []time.Time{
		civilDate(2025, time.February, 3),
		civilDate(2025, time.June, 17),
		civilDate(2025, time.October, 31),
	}
	for _, d := range dates {
		utc := conv.ToUTC(d, 18, 45)
		local := conv.ToLocal(utc)
		if local.Hour() != 18 || local.Minute() != 45 {
			t.Errorf("round trip on %v: got wall clock %02d:%02d, want 18:45",
				d, local.Hour(), local.Minute())
		}
		if local.Year() != d.Year() || local.Month() != d.Month() || local.Day() != d.Day() {
			t.Errorf("round trip on %v changed civil date to %v", d, local)
		}
	}
}

func TestNewZoneConverterDefaultsAndRejects(t *testing.T) {
	if _, err := NewZoneConverter(""); err != nil {
		t.Fatalf("empty zone should fall back to %s: %v", DefaultZone, err)
	}
	if _, err := NewZoneConverter("Not/AZone"); err == nil {
		t.Fatal("expected error for unknown zone")
	}
}
