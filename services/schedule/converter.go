// File: services/schedule/converter.go
package schedule

import (
	"fmt"
	"time"
)

// DefaultZone is the civil time zone all wall-clock fields are interpreted in.
const DefaultZone = "America/New_York"

// TimeZoneConverter converts between local civil time and UTC instants. Both
// directions must go through the same converter so that ToLocal(ToUTC(x)) == x
// holds outside of DST-transition days.
type TimeZoneConverter interface {
	// ToUTC interprets the wall clock (hour, minute) on the civil date carried
	// by date's year/month/day as local time and returns the UTC instant.
	//
	// A wall time that is invalid or ambiguous because of a DST transition is
	// resolved with the post-transition offset: the nonexistent 02:30 on a
	// spring-forward day is read at the new offset, and the repeated 01:30 on
	// a fall-back day means the second (standard-time) occurrence.
	ToUTC(date time.Time, hour, minute int) time.Time
	// ToLocal returns the instant rendered in the converter's zone; weekday,
	// date and clock are derived from the result.
	ToLocal(utc time.Time) time.Time
}

// ZoneConverter is the production TimeZoneConverter, pinned to one named zone.
type ZoneConverter struct {
	loc *time.Location
}

// NewZoneConverter loads the named zone. An empty name falls back to DefaultZone.
func NewZoneConverter(name string) (*ZoneConverter, error) {
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", name, err)
	}
	return &ZoneConverter{loc: loc}, nil
}

func (z *ZoneConverter) ToUTC(date time.Time, hour, minute int) time.Time {
	y, m, d := date.Date()
	t := time.Date(y, m, d, hour, minute, 0, 0, z.loc)

	// time.Date normalizes wall times that fall in a spring-forward gap; the
	// normalized instant may sit on either side of the transition, so check one
	// hour ahead and reinterpret the requested wall clock at the larger
	// (post-transition) offset.
	if t.Hour() != hour || t.Minute() != minute || t.Day() != d {
		_, off := t.Zone()
		if _, after := t.Add(time.Hour).Zone(); after > off {
			off = after
		}
		wall := time.Date(y, m, d, hour, minute, 0, 0, time.UTC)
		return wall.Add(-time.Duration(off) * time.Second)
	}

	// A fall-back transition repeats one wall hour; time.Date picks the first
	// occurrence. If the instant one hour later shows the same wall clock, the
	// hour is ambiguous and the later occurrence carries the post-transition
	// offset.
	if alt := t.Add(time.Hour); alt.Hour() == hour && alt.Minute() == minute && alt.Day() == d {
		t = alt
	}

	return t.UTC()
}

func (z *ZoneConverter) ToLocal(utc time.Time) time.Time {
	return utc.In(z.loc)
}
