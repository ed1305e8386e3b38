// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Recurrence endpoints
	CreateRecurrenceHandler gin.HandlerFunc
	GetRecurrenceHandler    gin.HandlerFunc
	ListRecurrencesHandler  gin.HandlerFunc
	UpdateRecurrenceHandler gin.HandlerFunc
	UpdateVisibilityHandler gin.HandlerFunc
	DeleteRecurrenceHandler gin.HandlerFunc
	SlotDigestHandler       gin.HandlerFunc
	RemapSlotsHandler       gin.HandlerFunc

	// Opportunity endpoints
	CreateOpportunityHandler gin.HandlerFunc
	GetOpportunityHandler    gin.HandlerFunc
	ListOpportunitiesHandler gin.HandlerFunc
	UpdateOpportunityHandler gin.HandlerFunc
	DeleteOpportunityHandler gin.HandlerFunc
}

// NewHandlerBundle wires the concrete handlers into a bundle.
func NewHandlerBundle(rh *RecurrenceHandler, oh *OpportunityHandler) *HandlerBundle {
	return &HandlerBundle{
		CreateRecurrenceHandler: rh.CreateRecurrenceHandler,
		GetRecurrenceHandler:    rh.GetRecurrenceHandler,
		ListRecurrencesHandler:  rh.ListRecurrencesHandler,
		UpdateRecurrenceHandler: rh.UpdateRecurrenceHandler,
		UpdateVisibilityHandler: rh.UpdateVisibilityHandler,
		DeleteRecurrenceHandler: rh.DeleteRecurrenceHandler,
		SlotDigestHandler:       rh.SlotDigestHandler,
		RemapSlotsHandler:       rh.RemapSlotsHandler,

		CreateOpportunityHandler: oh.CreateOpportunityHandler,
		GetOpportunityHandler:    oh.GetOpportunityHandler,
		ListOpportunitiesHandler: oh.ListOpportunitiesHandler,
		UpdateOpportunityHandler: oh.UpdateOpportunityHandler,
		DeleteOpportunityHandler: oh.DeleteOpportunityHandler,
	}
}
