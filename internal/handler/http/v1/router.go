package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	auth := APIKeyAuthMiddleware(h.cfg, h.logger)

	// Маршруты для приема и сопровождения инцидентов
	incidents := api.Group("/incidents", auth)
	{
		incidents.POST("", h.createIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.PATCH("/:id", h.updateIncident)
		incidents.GET("/:id/analysis", h.analyzeIncident)
	}

	// Маршруты для управления единицами реагирования
	responders := api.Group("/responders", auth)
	{
		responders.GET("/nearby", h.nearbyResponders)
		responders.POST("/dispatch", h.dispatchResponder)
		responders.POST("/recommend", h.recommendResponder)
		responders.POST("/seed", h.seedResponders)
		responders.POST("/:id/recall", h.recallResponder)
		responders.PATCH("/:id/location", h.updateResponderLocation)
	}

	// Маршруты аналитики по накопленным инцидентам
	analytics := api.Group("/analytics", auth)
	{
		analytics.GET("/clusters", h.getClusters)
		analytics.GET("/predictions", h.getPredictions)
		analytics.GET("/summary", h.getSummary)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
