package models

import "time"

// Opportunity is a single scheduled occurrence. Opportunities generated from a
// recurrence carry its id in RecurrenceID; a standalone, non-recurring
// opportunity leaves it empty but shares the same collection.
//
// ScheduledUTC is always an absolute UTC instant; wall-clock rendering goes
// through the schedule.TimeZoneConverter. No two opportunities of the same
// recurrence may share an identical ScheduledUTC.
type Opportunity struct {
	ID           string `bson:"id" json:"id"`
	RecurrenceID string `bson:"recurrenceId,omitempty" json:"recurrenceId,omitempty"`

	ScheduledUTC time.Time `bson:"scheduledUtc" json:"scheduledUtc"`
	Duration     int       `bson:"duration" json:"duration"` // minutes

	// Template fields copied from the owning recurrence at generation time,
	// independently owned afterwards.
	Name           string   `bson:"name" json:"name"`
	Description    string   `bson:"description,omitempty" json:"description,omitempty"`
	Address        string   `bson:"address" json:"address"`
	Causes         []string `bson:"causes,omitempty" json:"causes,omitempty"`
	Tags           []string `bson:"tags,omitempty" json:"tags,omitempty"`
	Nonprofit      string   `bson:"nonprofit,omitempty" json:"nonprofit,omitempty"`
	Image          string   `bson:"image,omitempty" json:"image,omitempty"`
	Approved       bool     `bson:"approved" json:"approved"`
	Qualifications []string `bson:"qualifications,omitempty" json:"qualifications,omitempty"`
	Visibility     []string `bson:"visibility,omitempty" json:"visibility,omitempty"`
	HostOrgID      string   `bson:"hostOrgId,omitempty" json:"hostOrgId,omitempty"`
	HostUserID     string   `bson:"hostUserId,omitempty" json:"hostUserId,omitempty"`
	RedirectURL    string   `bson:"redirectUrl,omitempty" json:"redirectUrl,omitempty"`
	TotalSlots     int      `bson:"totalSlots,omitempty" json:"totalSlots,omitempty"`
	AllowCarpool   bool     `bson:"allowCarpool" json:"allowCarpool"`
}

// CreateOpportunityRequest is the payload for a standalone (non-recurring)
// opportunity.
type CreateOpportunityRequest struct {
	Name           string    `json:"name" binding:"required"`
	Description    string    `json:"description"`
	ScheduledUTC   time.Time `json:"scheduledUtc" binding:"required"`
	Duration       int       `json:"duration" binding:"required"`
	Address        string    `json:"address" binding:"required"`
	Causes         []string  `json:"causes"`
	Tags           []string  `json:"tags"`
	Nonprofit      string    `json:"nonprofit"`
	Image          string    `json:"image"`
	Approved       bool      `json:"approved"`
	Qualifications []string  `json:"qualifications"`
	Visibility     []string  `json:"visibility"`
	HostOrgID      string    `json:"hostOrgId"`
	HostUserID     string    `json:"hostUserId"`
	RedirectURL    string    `json:"redirectUrl"`
	TotalSlots     int       `json:"totalSlots"`
	AllowCarpool   bool      `json:"allowCarpool"`
}

// UpdateOpportunityRequest carries the mutable fields of a standalone
// opportunity. Nil means leave unchanged.
type UpdateOpportunityRequest struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	ScheduledUTC *time.Time `json:"scheduledUtc"`
	Duration     *int       `json:"duration"`
	Address      *string    `json:"address"`
	Nonprofit    *string    `json:"nonprofit"`
	RedirectURL  *string    `json:"redirectUrl"`
	TotalSlots   *int       `json:"totalSlots"`
	AllowCarpool *bool      `json:"allowCarpool"`
}
