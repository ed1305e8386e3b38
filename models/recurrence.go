package models

// SlotTime is one declared recurring start time within a weekday.
// The ID is assigned once at recurrence creation so that callers can refer to a
// declared slot unambiguously even when a weekday carries duplicate time entries.
type SlotTime struct {
	ID       string `bson:"id" json:"id"`
	Start    string `bson:"start" json:"start"`       // local wall clock, "HH:MM"
	Duration int    `bson:"duration" json:"duration"` // minutes
}

// DaySlots groups the declared times of a single weekday. Entry order is
// meaningful: it drives generation order and digest stability.
type DaySlots struct {
	Weekday string     `bson:"weekday" json:"weekday"` // "Monday" .. "Sunday"
	Times   []SlotTime `bson:"times" json:"times"`
}

// RecurrenceDefinition is the declarative template for a recurring opportunity.
//
// Template fields (Name through TotalSlots) are copied onto every generated
// opportunity at creation time and are independently owned by each opportunity
// afterwards. Recurrence fields (StartDate through WeekRecurrences) drive
// generation and remapping only.
type RecurrenceDefinition struct {
	ID string `bson:"id" json:"id"`

	// Template fields, copied once onto each generated opportunity.
	Name           string   `bson:"name" json:"name"`
	Description    string   `bson:"description,omitempty" json:"description,omitempty"`
	Address        string   `bson:"address" json:"address"`
	Causes         []string `bson:"causes,omitempty" json:"causes,omitempty"`
	Tags           []string `bson:"tags,omitempty" json:"tags,omitempty"`
	Nonprofit      string   `bson:"nonprofit,omitempty" json:"nonprofit,omitempty"`
	Image          string   `bson:"image,omitempty" json:"image,omitempty"` // opaque asset URL
	Approved       bool     `bson:"approved" json:"approved"`
	Qualifications []string `bson:"qualifications,omitempty" json:"qualifications,omitempty"`
	Visibility     []string `bson:"visibility,omitempty" json:"visibility,omitempty"`
	HostOrgID      string   `bson:"hostOrgId,omitempty" json:"hostOrgId,omitempty"`
	HostUserID     string   `bson:"hostUserId,omitempty" json:"hostUserId,omitempty"`
	RedirectURL    string   `bson:"redirectUrl,omitempty" json:"redirectUrl,omitempty"`
	TotalSlots     int      `bson:"totalSlots,omitempty" json:"totalSlots,omitempty"`
	AllowCarpool   bool     `bson:"allowCarpool" json:"allowCarpool"`

	// Recurrence fields.
	StartDate       string     `bson:"startDate" json:"startDate"` // local civil date, "2006-01-02"
	Slots           []DaySlots `bson:"slots" json:"slots"`
	WeekFrequency   int        `bson:"weekFrequency" json:"weekFrequency"`     // generate every Nth week, >= 1
	WeekRecurrences int        `bson:"weekRecurrences" json:"weekRecurrences"` // total span in weeks, >= 1
}

// CreateRecurrenceRequest is the payload for creating a recurrence and its full
// batch of opportunities in one call.
type CreateRecurrenceRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	Address        string   `json:"address" binding:"required"`
	Causes         []string `json:"causes"`
	Tags           []string `json:"tags"`
	Nonprofit      string   `json:"nonprofit"`
	Image          string   `json:"image"`
	Approved       bool     `json:"approved"`
	Qualifications []string `json:"qualifications"`
	Visibility     []string `json:"visibility"`
	HostOrgID      string   `json:"hostOrgId"`
	HostUserID     string   `json:"hostUserId"`
	RedirectURL    string   `json:"redirectUrl"`
	TotalSlots     int      `json:"totalSlots"`
	AllowCarpool   bool     `json:"allowCarpool"`

	StartDate       string        `json:"startDate" binding:"required"`
	Slots           []DaySlotsReq `json:"slots" binding:"required"`
	WeekFrequency   int           `json:"weekFrequency"`
	WeekRecurrences int           `json:"weekRecurrences"`
}

// DaySlotsReq is the wire form of a weekday's declared times: each entry is
// a compact ["HH:MM", durationMinutes] pair (see SlotPair).
type DaySlotsReq struct {
	Weekday string     `json:"weekday" binding:"required"`
	Times   []SlotPair `json:"times" binding:"required"`
}

// UpdateRecurrenceRequest carries the template fields that may be updated after
// creation. Updates propagate to every owned opportunity.
type UpdateRecurrenceRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Address      *string `json:"address"`
	Nonprofit    *string `json:"nonprofit"`
	RedirectURL  *string `json:"redirectUrl"`
	AllowCarpool *bool   `json:"allowCarpool"`
}
