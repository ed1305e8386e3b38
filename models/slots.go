package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// SlotPair is the compact wire form of one declared time: ["HH:MM", duration].
type SlotPair struct {
	Start    string
	Duration int
}

func (p SlotPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Start, p.Duration})
}

func (p *SlotPair) UnmarshalJSON(b []byte) error {
	var arr []json.RawMessage
	if err := json.Unmarshal(b, &arr); err != nil {
		return err
	}
	if len(arr) < 2 {
		return fmt.Errorf("slot must be [\"HH:MM\", durationMinutes]")
	}
	if err := json.Unmarshal(arr[0], &p.Start); err != nil {
		return fmt.Errorf("slot time must be a string: %w", err)
	}
	var d float64
	if err := json.Unmarshal(arr[1], &d); err != nil {
		return fmt.Errorf("slot duration must be a number: %w", err)
	}
	p.Duration = int(d)
	return nil
}

// SlotRef identifies one (weekday, time, duration) slot. On the wire it is an
// object with a single weekday key: { "Tuesday": ["22:16", 60] }. The empty
// object {} is a valid zero SlotRef (used as the digest's placeholder "to").
//
// Inner shape problems are captured in ParseErr instead of failing the whole
// request body; the remapper reports them as skipped directives.
type SlotRef struct {
	Weekday  string `json:"-" bson:"weekday"`
	Start    string `json:"-" bson:"start"`
	Duration int    `json:"-" bson:"duration"`
	ParseErr string `json:"-" bson:"-"`
}

func (s SlotRef) IsZero() bool {
	return s.Weekday == "" && s.Start == "" && s.Duration == 0 && s.ParseErr == ""
}

func (s SlotRef) MarshalJSON() ([]byte, error) {
	if s.Weekday == "" {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]SlotPair{
		s.Weekday: {Start: s.Start, Duration: s.Duration},
	})
}

func (s *SlotRef) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("slot reference must be an object: %w", err)
	}
	*s = SlotRef{}
	if len(raw) == 0 {
		return nil
	}
	if len(raw) > 1 {
		s.ParseErr = "slot reference must contain exactly one weekday key"
		return nil
	}
	for day, v := range raw {
		s.Weekday = day
		var pair SlotPair
		if err := json.Unmarshal(v, &pair); err != nil {
			s.ParseErr = "invalid slot format: " + err.Error()
			return nil
		}
		s.Start = pair.Start
		s.Duration = pair.Duration
	}
	return nil
}

// SlotMapping is one remap directive: move every opportunity matching From to To.
type SlotMapping struct {
	From SlotRef `json:"from"`
	To   SlotRef `json:"to"`
}

// RemapRequest is the payload of the remap endpoint.
type RemapRequest struct {
	Mappings []SlotMapping `json:"mappings" binding:"required"`
}

// RemapConflict reports a directive whose target UTC instant was already
// occupied by another opportunity of the same recurrence.
type RemapConflict struct {
	Mapping       SlotMapping `json:"mapping"`
	OpportunityID string      `json:"opportunityId"`
	ConflictWith  string      `json:"conflictWith"`
	NewDate       time.Time   `json:"newDate"`
}

// RemapSkip reports a directive that could not be applied at all.
type RemapSkip struct {
	Mapping SlotMapping `json:"mapping"`
	Reason  string      `json:"reason"`
}

// RemapResult is the outcome of one remap batch. Per-directive failures are
// reported here, never surfaced as errors.
type RemapResult struct {
	UpdatedCount  int          `json:"updatedCount"`
	ConflictCount int          `json:"conflictCount"`
	SkippedCount  int          `json:"skippedCount"`
	Details       RemapDetails `json:"details"`
}

// RemapDetails carries the full id lists behind the counts and the slot table
// as rewritten by the batch.
type RemapDetails struct {
	UpdatedIDs []string        `json:"updatedIds"`
	Conflicts  []RemapConflict `json:"conflicts"`
	Skipped    []RemapSkip     `json:"skipped"`
	NewSlots   []DaySlots      `json:"newSlots"`
}

// SlotGroup is the digest's per-slot grouping metadata: how many opportunities
// currently share one local (weekday, time, duration) triple, and which.
type SlotGroup struct {
	Weekday        string   `json:"weekday"`
	Start          string   `json:"start"`
	Duration       int      `json:"duration"`
	Count          int      `json:"count"`
	OpportunityIDs []string `json:"opportunityIds"`
}

// SlotDigest is the deduplicated, ordered view of the slots a recurrence's
// opportunities currently occupy. Mappings carry empty To placeholders so the
// caller can fill them in and submit the result as a RemapRequest.
type SlotDigest struct {
	RecurrenceID   string        `json:"recurrenceId"`
	Name           string        `json:"name"`
	TotalInstances int           `json:"totalInstances"`
	Mappings       []SlotMapping `json:"mappings"`
	Groups         []SlotGroup   `json:"groups"`
}
