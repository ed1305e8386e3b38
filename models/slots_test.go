package models

import (
	"encoding/json"
	"testing"
)

func TestSlotPairRoundTrip(t *testing.T) {
	p := SlotPair{Start: "22:16", Duration: 60}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["22:16",60]` {
		t.Fatalf("wire form = %s", data)
	}

	var back SlotPair
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != p {
		t.Fatalf("round trip = %+v, want %+v", back, p)
	}
}

func TestSlotPairAcceptsFloatDuration(t *testing.T) {
	var p SlotPair
	if err := json.Unmarshal([]byte(`["09:00", 60.0]`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Duration != 60 {
		t.Fatalf("duration = %d, want 60", p.Duration)
	}
}

func TestSlotPairRejectsShortArray(t *testing.T) {
	var p SlotPair
	if err := json.Unmarshal([]byte(`["09:00"]`), &p); err == nil {
		t.Fatal("expected error for one-element slot")
	}
}

func TestSlotRefUnmarshal(t *testing.T) {
	var s SlotRef
	if err := json.Unmarshal([]byte(`{"Tuesday": ["22:16", 60]}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Weekday != "Tuesday" || s.Start != "22:16" || s.Duration != 60 || s.ParseErr != "" {
		t.Fatalf("got %+v", s)
	}
}

func TestSlotRefEmptyObjectIsZero(t *testing.T) {
	var s SlotRef
	if err := json.Unmarshal([]byte(`{}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !s.IsZero() {
		t.Fatalf("got %+v, want zero", s)
	}
}

func TestSlotRefInnerShapeProblemsAreDeferred(t *testing.T) {
	// Directive-level problems surface as ParseErr, not as request errors, so
	// one bad directive cannot sink its siblings.
	cases := []string{
		`{"Tuesday": ["22:16", 60], "Wednesday": ["10:00", 30]}`,
		`{"Tuesday": "22:16"}`,
		`{"Tuesday": [60, "22:16"]}`,
	}
	for _, in := range cases {
		var s SlotRef
		if err := json.Unmarshal([]byte(in), &s); err != nil {
			t.Errorf("%s: unexpected error %v", in, err)
			continue
		}
		if s.ParseErr == "" {
			t.Errorf("%s: expected ParseErr to be set", in)
		}
	}
}

func TestSlotRefNonObjectFails(t *testing.T) {
	var s SlotRef
	if err := json.Unmarshal([]byte(`["Tuesday", "22:16", 60]`), &s); err == nil {
		t.Fatal("expected error for non-object slot reference")
	}
}

func TestSlotRefMarshal(t *testing.T) {
	data, err := json.Marshal(SlotRef{Weekday: "Friday", Start: "09:30", Duration: 45})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"Friday":["09:30",45]}` {
		t.Fatalf("wire form = %s", data)
	}

	data, err = json.Marshal(SlotRef{})
	if err != nil {
		t.Fatalf("marshal zero: %v", err)
	}
	if string(data) != "{}" {
		t.Fatalf("zero wire form = %s", data)
	}
}
