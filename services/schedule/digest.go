// File: services/schedule/digest.go
package schedule

import (
	"fmt"

	"voluntree/models"
)

// BuildDigest derives the deduplicated, ordered slot view of a recurrence's
// opportunities. Opportunities must arrive in a stable order (the repository
// sorts by scheduled instant, then id); given the same input, the output is
// identical, which makes the digest idempotent between mutations.
func BuildDigest(def *models.RecurrenceDefinition, opps []models.Opportunity, conv TimeZoneConverter) *models.SlotDigest {
	digest := &models.SlotDigest{
		RecurrenceID:   def.ID,
		Name:           def.Name,
		TotalInstances: len(opps),
		Mappings:       []models.SlotMapping{},
		Groups:         []models.SlotGroup{},
	}

	index := make(map[string]int) // triple key -> position in Groups
	for _, opp := range opps {
		local := conv.ToLocal(opp.ScheduledUTC)
		day := weekdayName(local.Weekday())
		clock := local.Format("15:04")
		key := fmt.Sprintf("%s|%s|%d", day, clock, opp.Duration)

		if i, ok := index[key]; ok {
			digest.Groups[i].Count++
			digest.Groups[i].OpportunityIDs = append(digest.Groups[i].OpportunityIDs, opp.ID)
			continue
		}
		index[key] = len(digest.Groups)
		digest.Groups = append(digest.Groups, models.SlotGroup{
			Weekday:        day,
			Start:          clock,
			Duration:       opp.Duration,
			Count:          1,
			OpportunityIDs: []string{opp.ID},
		})
		digest.Mappings = append(digest.Mappings, models.SlotMapping{
			From: models.SlotRef{Weekday: day, Start: clock, Duration: opp.Duration},
			To:   models.SlotRef{},
		})
	}
	return digest
}
