package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"voluntree/handlers"
	"voluntree/utils"
)

// RegisterRecurrenceRoutes registers the recurring-opportunity endpoints.
func RegisterRecurrenceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/recurrences")
	{
		api.POST("", hb.CreateRecurrenceHandler)
		api.GET("", hb.ListRecurrencesHandler)
		api.GET("/:id", hb.GetRecurrenceHandler)
		api.PATCH("/:id", hb.UpdateRecurrenceHandler)
		api.PUT("/:id/visibility", hb.UpdateVisibilityHandler)
		api.DELETE("/:id", hb.DeleteRecurrenceHandler)

		// Slot management for an existing recurrence.
		api.GET("/:id/mappings", hb.SlotDigestHandler)
		api.PUT("/:id/remap-slots", hb.RemapSlotsHandler)
	}
}

// RegisterOpportunityRoutes registers standalone opportunity endpoints.
func RegisterOpportunityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/opportunities")
	{
		api.POST("", hb.CreateOpportunityHandler)
		api.GET("", hb.ListOpportunitiesHandler)
		api.GET("/:id", hb.GetOpportunityHandler)
		api.PATCH("/:id", hb.UpdateOpportunityHandler)
		api.DELETE("/:id", hb.DeleteOpportunityHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterRecurrenceRoutes(r, hb)
	RegisterOpportunityRoutes(r, hb)
	RegisterHealthRoute(r)
}
