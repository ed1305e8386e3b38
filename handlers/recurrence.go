// File: handlers/recurrence.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voluntree/models"
	"voluntree/services/schedule"
	"voluntree/utils"
)

// RecurrenceHandler exposes the recurring-opportunity engine over HTTP.
type RecurrenceHandler struct {
	Service schedule.Service
}

// respondScheduleError maps service errors to HTTP status codes.
func respondScheduleError(c *gin.Context, err error, fallback string) {
	var ve *schedule.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
		return
	}
	var nfe *schedule.NotFoundError
	if errors.As(err, &nfe) {
		c.JSON(http.StatusNotFound, gin.H{"error": nfe.Error()})
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, fallback, err.Error())
}

// CreateRecurrenceHandler creates a recurrence and generates all of its
// opportunity instances in one shot.
func (h *RecurrenceHandler) CreateRecurrenceHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.CreateRecurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid recurrence creation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	def, opps, err := h.Service.CreateRecurrence(c.Request.Context(), req)
	if err != nil {
		respondScheduleError(c, err, "Failed to create recurrence")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"recurrence":    def,
		"opportunities": opps,
		"instanceCount": len(opps),
	})
}

// GetRecurrenceHandler returns a single recurrence definition.
func (h *RecurrenceHandler) GetRecurrenceHandler(c *gin.Context) {
	id := c.Param("id")
	def, err := h.Service.GetRecurrence(c.Request.Context(), id)
	if err != nil {
		respondScheduleError(c, err, "Failed to fetch recurrence")
		return
	}
	c.JSON(http.StatusOK, def)
}

// ListRecurrencesHandler returns all recurrence definitions.
func (h *RecurrenceHandler) ListRecurrencesHandler(c *gin.Context) {
	defs, err := h.Service.ListRecurrences(c.Request.Context())
	if err != nil {
		respondScheduleError(c, err, "Failed to list recurrences")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recurrences": defs, "count": len(defs)})
}

// UpdateRecurrenceHandler updates template fields on the recurrence and
// propagates them to every generated opportunity.
func (h *RecurrenceHandler) UpdateRecurrenceHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var req models.UpdateRecurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid recurrence update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	def, opps, err := h.Service.UpdateTemplate(c.Request.Context(), id, req)
	if err != nil {
		respondScheduleError(c, err, "Failed to update recurrence")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recurrence":   def,
		"updatedCount": len(opps),
	})
}

// UpdateVisibilityHandler replaces the visibility list of a recurrence.
func (h *RecurrenceHandler) UpdateVisibilityHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var req struct {
		Visibility []string `json:"visibility" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid visibility update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	def, err := h.Service.UpdateVisibility(c.Request.Context(), id, req.Visibility)
	if err != nil {
		respondScheduleError(c, err, "Failed to update visibility")
		return
	}
	c.JSON(http.StatusOK, def)
}

// DeleteRecurrenceHandler deletes a recurrence and all of its opportunities.
func (h *RecurrenceHandler) DeleteRecurrenceHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Service.DeleteRecurrence(c.Request.Context(), id); err != nil {
		respondScheduleError(c, err, "Failed to delete recurrence")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recurrence deleted"})
}

// SlotDigestHandler returns the deduplicated slot overview for a recurrence,
// pre-filled as mapping stubs for a remap request.
func (h *RecurrenceHandler) SlotDigestHandler(c *gin.Context) {
	id := c.Param("id")
	digest, err := h.Service.SlotDigest(c.Request.Context(), id)
	if err != nil {
		respondScheduleError(c, err, "Failed to build slot digest")
		return
	}
	c.JSON(http.StatusOK, digest)
}

// RemapSlotsHandler moves future opportunities between weekly slots and
// rewrites the recurrence slot table accordingly.
func (h *RecurrenceHandler) RemapSlotsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var req models.RemapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid remap request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	result, err := h.Service.RemapSlots(c.Request.Context(), id, req.Mappings)
	if err != nil {
		respondScheduleError(c, err, "Failed to remap slots")
		return
	}

	c.JSON(http.StatusOK, result)
}
