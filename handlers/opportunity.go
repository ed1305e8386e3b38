// File: handlers/opportunity.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voluntree/models"
	"voluntree/services/opportunity"
	"voluntree/utils"
)

// OpportunityHandler exposes standalone opportunity CRUD over HTTP.
type OpportunityHandler struct {
	Service opportunity.Service
}

func respondOpportunityError(c *gin.Context, err error, fallback string) {
	var ve *opportunity.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
		return
	}
	var nfe *opportunity.NotFoundError
	if errors.As(err, &nfe) {
		c.JSON(http.StatusNotFound, gin.H{"error": nfe.Error()})
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, fallback, err.Error())
}

// CreateOpportunityHandler creates a one-off opportunity.
func (h *OpportunityHandler) CreateOpportunityHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid opportunity creation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	opp, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		respondOpportunityError(c, err, "Failed to create opportunity")
		return
	}
	c.JSON(http.StatusCreated, opp)
}

// GetOpportunityHandler returns a single opportunity by id.
func (h *OpportunityHandler) GetOpportunityHandler(c *gin.Context) {
	id := c.Param("id")
	opp, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondOpportunityError(c, err, "Failed to fetch opportunity")
		return
	}
	c.JSON(http.StatusOK, opp)
}

// ListOpportunitiesHandler returns all opportunities, recurring and standalone.
func (h *OpportunityHandler) ListOpportunitiesHandler(c *gin.Context) {
	opps, err := h.Service.GetAll(c.Request.Context())
	if err != nil {
		respondOpportunityError(c, err, "Failed to list opportunities")
		return
	}
	c.JSON(http.StatusOK, gin.H{"opportunities": opps, "count": len(opps)})
}

// UpdateOpportunityHandler partially updates an opportunity.
func (h *OpportunityHandler) UpdateOpportunityHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var req models.UpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid opportunity update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	opp, err := h.Service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondOpportunityError(c, err, "Failed to update opportunity")
		return
	}
	c.JSON(http.StatusOK, opp)
}

// DeleteOpportunityHandler deletes an opportunity.
func (h *OpportunityHandler) DeleteOpportunityHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		respondOpportunityError(c, err, "Failed to delete opportunity")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Opportunity deleted"})
}
