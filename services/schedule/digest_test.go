package schedule

import (
	"reflect"
	"testing"

	"voluntree/models"
)

// generateWithIDs expands the definition and assigns deterministic ids, the
// way the repository does on insert.
func generateWithIDs(t *testing.T, def *models.RecurrenceDefinition, conv TimeZoneConverter) []models.Opportunity {
	t.Helper()
	gen := &Generator{Converter: conv}
	opps, err := gen.Generate(def)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := range opps {
		opps[i].ID = "opp-" + string(rune('a'+i))
	}
	return opps
}

func TestBuildDigestGroupsRepeatedSlots(t *testing.T) {
	conv := mustConverter(t, "America/New_York")
	def := testDefinition()
	opps := generateWithIDs(t, def, conv)

	digest := BuildDigest(def, opps, conv)

	if digest.RecurrenceID != def.ID || digest.Name != def.Name {
		t.Fatalf("digest header = %q/%q", digest.RecurrenceID, digest.Name)
	}
	if digest.TotalInstances != 9 {
		t.Fatalf("TotalInstances = %d, want 9", digest.TotalInstances)
	}
	// Three distinct (weekday, time, duration) triples across three weeks.
	if len(digest.Groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(digest.Groups))
	}
	for _, g := range digest.Groups {
		if g.Count != 3 {
			t.Errorf("group %s %s: count = %d, want 3", g.Weekday, g.Start, g.Count)
		}
		if len(g.OpportunityIDs) != g.Count {
			t.Errorf("group %s %s: %d ids for count %d", g.Weekday, g.Start, len(g.OpportunityIDs), g.Count)
		}
	}

	// Order follows first occurrence in the instance stream.
	if digest.Groups[0].Weekday != "Tuesday" || digest.Groups[0].Start != "10:00" {
		t.Errorf("first group = %s %s, want Tuesday 10:00", digest.Groups[0].Weekday, digest.Groups[0].Start)
	}
	if digest.Groups[1].Start != "14:00" || digest.Groups[2].Start != "18:30" {
		t.Errorf("group order = %s, %s; want 14:00, 18:30", digest.Groups[1].Start, digest.Groups[2].Start)
	}
}

func TestBuildDigestMappingsArePrefilled(t *testing.T) {
	conv := mustConverter(t, "America/New_York")
	def := testDefinition()
	opps := generateWithIDs(t, def, conv)

	digest := BuildDigest(def, opps, conv)

	if len(digest.Mappings) != len(digest.Groups) {
		t.Fatalf("%d mappings for %d groups", len(digest.Mappings), len(digest.Groups))
	}
	for i, m := range digest.Mappings {
		g := digest.Groups[i]
		if m.From.Weekday != g.Weekday || m.From.Start != g.Start || m.From.Duration != g.Duration {
			t.Errorf("mapping %d from = %+v, group = %+v", i, m.From, g)
		}
		if !m.To.IsZero() {
			t.Errorf("mapping %d to = %+v, want zero placeholder", i, m.To)
		}
	}
}

func TestBuildDigestIsIdempotent(t *testing.T) {
	conv := mustConverter(t, "America/New_York")
	def := testDefinition()
	opps := generateWithIDs(t, def, conv)

	a := BuildDigest(def, opps, conv)
	b := BuildDigest(def, opps, conv)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same input produced different digests")
	}
}

func TestBuildDigestEmptyRecurrence(t *testing.T) {
	conv := mustConverter(t, "America/New_York")
	def := testDefinition()

	digest := BuildDigest(def, nil, conv)
	if digest.TotalInstances != 0 {
		t.Fatalf("TotalInstances = %d, want 0", digest.TotalInstances)
	}
	if len(digest.Groups) != 0 || len(digest.Mappings) != 0 {
		t.Fatalf("empty recurrence produced %d groups, %d mappings", len(digest.Groups), len(digest.Mappings))
	}
}
