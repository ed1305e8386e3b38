// File: services/schedule/remap.go
package schedule

import (
	"fmt"

	"github.com/google/uuid"

	"voluntree/models"
)

// applyRemap walks a batch of remap directives over the in-memory state of a
// recurrence. It is best-effort per directive and per matched opportunity:
// validation problems and conflicts are recorded in the result, never returned
// as errors, and never block sibling directives.
//
// The slot lookup is built once from the pre-batch state, so directives match
// against the slots as they stood when the batch started. The occupied-instant
// index evolves as moves are applied, which is what makes ordering decide the
// winner when two directives compute the same target instant.
//
// opps is mutated in place; the returned slice holds the opportunities that
// actually changed, for the caller to commit.
func applyRemap(
	def *models.RecurrenceDefinition,
	opps []models.Opportunity,
	mappings []models.SlotMapping,
	conv TimeZoneConverter,
) (*models.RemapResult, []models.Opportunity) {
	res := &models.RemapResult{
		Details: models.RemapDetails{
			UpdatedIDs: []string{},
			Conflicts:  []models.RemapConflict{},
			Skipped:    []models.RemapSkip{},
		},
	}

	lookup := make(map[string][]*models.Opportunity)
	occupied := make(map[int64]string)
	for i := range opps {
		opp := &opps[i]
		local := conv.ToLocal(opp.ScheduledUTC)
		k := slotKey(mondayIndex(local.Weekday()), local.Hour(), local.Minute(), opp.Duration)
		lookup[k] = append(lookup[k], opp)
		occupied[opp.ScheduledUTC.Unix()] = opp.ID
	}

	modified := make(map[string]*models.Opportunity)

	for _, m := range mappings {
		if m.From.ParseErr != "" {
			res.Details.Skipped = append(res.Details.Skipped, models.RemapSkip{Mapping: m, Reason: "from: " + m.From.ParseErr})
			continue
		}
		if m.To.ParseErr != "" {
			res.Details.Skipped = append(res.Details.Skipped, models.RemapSkip{Mapping: m, Reason: "to: " + m.To.ParseErr})
			continue
		}

		fromIdx, errFrom := parseWeekday(m.From.Weekday)
		toIdx, errTo := parseWeekday(m.To.Weekday)
		if errFrom != nil || errTo != nil {
			res.Details.Skipped = append(res.Details.Skipped, models.RemapSkip{Mapping: m, Reason: "invalid weekday"})
			continue
		}

		fromHH, fromMM, err := parseClock(m.From.Start)
		if err != nil {
			res.Details.Skipped = append(res.Details.Skipped, models.RemapSkip{Mapping: m, Reason: "invalid slot format: " + err.Error()})
			continue
		}
		toHH, toMM, err := parseClock(m.To.Start)
		if err != nil {
			res.Details.Skipped = append(res.Details.Skipped, models.RemapSkip{Mapping: m, Reason: "invalid slot format: " + err.Error()})
			continue
		}

		matches := lookup[slotKey(fromIdx, fromHH, fromMM, m.From.Duration)]
		if len(matches) == 0 {
			res.Details.Skipped = append(res.Details.Skipped, models.RemapSkip{Mapping: m, Reason: "no matching opportunities"})
			continue
		}

		for _, opp := range matches {
			oldLocal := conv.ToLocal(opp.ScheduledUTC)
			// Forward-only shift to the target weekday within the same week;
			// same weekday means the date stays put and only time/duration move.
			daysAhead := ((toIdx-mondayIndex(oldLocal.Weekday()))%7 + 7) % 7
			newLocalDate := oldLocal.AddDate(0, 0, daysAhead)
			newUTC := conv.ToUTC(newLocalDate, toHH, toMM)

			if holder, taken := occupied[newUTC.Unix()]; taken && holder != opp.ID {
				res.Details.Conflicts = append(res.Details.Conflicts, models.RemapConflict{
					Mapping:       m,
					OpportunityID: opp.ID,
					ConflictWith:  holder,
					NewDate:       newUTC,
				})
				continue
			}

			delete(occupied, opp.ScheduledUTC.Unix())
			opp.ScheduledUTC = newUTC
			opp.Duration = m.To.Duration
			occupied[newUTC.Unix()] = opp.ID

			res.Details.UpdatedIDs = append(res.Details.UpdatedIDs, opp.ID)
			modified[opp.ID] = opp
		}

		rewriteSlotList(def, m.From, m.To)
	}

	res.UpdatedCount = len(res.Details.UpdatedIDs)
	res.ConflictCount = len(res.Details.Conflicts)
	res.SkippedCount = len(res.Details.Skipped)
	res.Details.NewSlots = def.Slots

	changed := make([]models.Opportunity, 0, len(modified))
	for _, id := range res.Details.UpdatedIDs {
		changed = append(changed, *modified[id])
	}
	return res, changed
}

// rewriteSlotList removes the first declared slot matching from (by value) and
// appends the to slot under its weekday, creating that weekday's entry when
// absent. With duplicate declared slots only the first occurrence moves; the
// appended slot gets a fresh id.
func rewriteSlotList(def *models.RecurrenceDefinition, from, to models.SlotRef) {
	fromClock := normalizeClock(from.Start)

removal:
	for i := range def.Slots {
		day := &def.Slots[i]
		if day.Weekday != from.Weekday {
			continue
		}
		for j, st := range day.Times {
			if normalizeClock(st.Start) == fromClock && st.Duration == from.Duration {
				day.Times = append(day.Times[:j], day.Times[j+1:]...)
				break removal
			}
		}
	}

	slot := models.SlotTime{
		ID:       uuid.New().String(),
		Start:    normalizeClock(to.Start),
		Duration: to.Duration,
	}
	for i := range def.Slots {
		if def.Slots[i].Weekday == to.Weekday {
			def.Slots[i].Times = append(def.Slots[i].Times, slot)
			return
		}
	}
	def.Slots = append(def.Slots, models.DaySlots{
		Weekday: to.Weekday,
		Times:   []models.SlotTime{slot},
	})
}

func slotKey(weekdayIdx, hour, minute, duration int) string {
	return fmt.Sprintf("%d|%02d:%02d|%d", weekdayIdx, hour, minute, duration)
}

// normalizeClock canonicalizes an already-validated HH:MM string.
func normalizeClock(s string) string {
	hh, mm, err := parseClock(s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%02d:%02d", hh, mm)
}
