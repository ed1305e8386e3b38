// File: services/schedule/generator.go
package schedule

import (
	"fmt"
	"time"

	"voluntree/models"
)

// Generator expands a RecurrenceDefinition into its concrete opportunities.
// Expansion is all-or-nothing: any malformed weekday name or time string
// anywhere in the definition aborts with a ValidationError and no output.
type Generator struct {
	Converter TimeZoneConverter
}

// Generate produces one opportunity per (qualifying week, weekday entry, time
// entry), in that order. The definition must already carry its id; template
// fields are copied onto every opportunity.
func (g *Generator) Generate(def *models.RecurrenceDefinition) ([]models.Opportunity, error) {
	if def.WeekFrequency < 1 {
		return nil, NewValidationError("weekFrequency", "must be at least 1")
	}
	if def.WeekRecurrences < 1 {
		return nil, NewValidationError("weekRecurrences", "must be at least 1")
	}
	anchor, err := time.Parse("2006-01-02", def.StartDate)
	if err != nil {
		return nil, NewValidationError("startDate", fmt.Sprintf("%q is not a valid date (want YYYY-MM-DD)", def.StartDate))
	}

	var all []models.Opportunity
	for weekIndex := 0; weekIndex < def.WeekRecurrences; weekIndex++ {
		// Every Nth week only; skipped weeks generate nothing at all.
		if def.WeekFrequency > 1 && weekIndex%def.WeekFrequency != 0 {
			continue
		}
		weekStart := anchor.AddDate(0, 0, 7*weekIndex)

		for _, day := range def.Slots {
			di, err := parseWeekday(day.Weekday)
			if err != nil {
				return nil, NewValidationError("slots", err.Error())
			}
			// Forward-only shift within the target week, never backward.
			delta := (di - mondayIndex(weekStart.Weekday()) + 7) % 7
			dayDate := weekStart.AddDate(0, 0, delta)

			for _, slot := range day.Times {
				hh, mm, err := parseClock(slot.Start)
				if err != nil {
					return nil, NewValidationError("slots", err.Error())
				}
				all = append(all, models.Opportunity{
					RecurrenceID: def.ID,
					ScheduledUTC: g.Converter.ToUTC(dayDate, hh, mm),
					Duration:     slot.Duration,

					Name:           def.Name,
					Description:    def.Description,
					Address:        def.Address,
					Causes:         def.Causes,
					Tags:           def.Tags,
					Nonprofit:      def.Nonprofit,
					Image:          def.Image,
					Approved:       def.Approved,
					Qualifications: def.Qualifications,
					Visibility:     def.Visibility,
					HostOrgID:      def.HostOrgID,
					HostUserID:     def.HostUserID,
					RedirectURL:    def.RedirectURL,
					TotalSlots:     def.TotalSlots,
					AllowCarpool:   def.AllowCarpool,
				})
			}
		}
	}
	return all, nil
}
