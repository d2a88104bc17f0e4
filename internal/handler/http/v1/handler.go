package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/emergency_dispatch_system/internal/config"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	dispatchService  service.DispatchService
	analyticsService service.AnalyticsService
	logger           *logrus.Logger
	validate         *validator.Validate
	cfg              *config.Config
}

func NewHandler(dispatchService service.DispatchService, analyticsService service.AnalyticsService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		dispatchService:  dispatchService,
		analyticsService: analyticsService,
		logger:           logger,
		validate:         validator.New(),
		cfg:              cfg,
	}
}

// respondServiceError маппит ошибку сервисного слоя в HTTP-статус
func (h *Handler) respondServiceError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		log.WithError(err).Warn("Resource not found")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		log.WithError(err).Warn("State conflict")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation):
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Service call failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parseIDParam извлекает числовой идентификатор из пути запроса
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// @Summary Report a new incident
// @Description Accept a new emergency report, triage it and create an incident. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param incident body CreateIncidentRequest true "Incident intake request"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intake := service.IntakeInput{
		Description: input.Description,
		ReporterID:  input.ReporterID,
		MediaURL:    input.MediaURL,
	}
	if input.Location != nil {
		intake.Location = &models.Coordinate{Lat: input.Location.Lat, Lng: input.Location.Lng}
	}

	incident, err := h.dispatchService.IntakeIncident(c.Request.Context(), intake)
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, toIncidentResponse(incident))
}

// @Summary Get a list of incidents
// @Description Get a paginated list of incidents, optionally filtered by category and status. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param category query string false "Incident category filter"
// @Param status query string false "Incident status filter" Enums(pending, dispatched, resolved)
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	var filter models.IncidentFilter
	if raw := c.Query("category"); raw != "" {
		if category, ok := models.ParseIncidentCategory(raw); ok {
			filter.Category = &category
		}
	}
	if raw := c.Query("status"); raw != "" {
		if status, ok := models.ParseIncidentStatus(raw); ok {
			filter.Status = &status
		}
	}

	incidents, err := h.dispatchService.ListIncidents(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, toIncidentResponses(incidents))
}

// @Summary Get an incident by ID
// @Description Get a single incident with its originating call. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	log := h.logger.WithFields(logrus.Fields{"method": "getIncident", "id": id})

	incident, err := h.dispatchService.GetIncident(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, toIncidentResponse(incident))
}

// @Summary Update an incident
// @Description Partially update an incident's status and/or priority. Omitted fields are left untouched. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Incident ID"
// @Param incident body UpdateIncidentRequest true "Incident update request"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [patch]
func (h *Handler) updateIncident(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	log := h.logger.WithFields(logrus.Fields{"method": "updateIncident", "id": id})

	var input UpdateIncidentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var upd service.IncidentUpdate
	if input.Status != nil {
		status, ok := models.ParseIncidentStatus(*input.Status)
		if !ok {
			log.Warnf("Unknown incident status: %s", *input.Status)
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown incident status"})
			return
		}
		upd.Status = &status
	}
	upd.PriorityScore = input.PriorityScore

	incident, err := h.dispatchService.UpdateIncident(c.Request.Context(), id, upd)
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, toIncidentResponse(incident))
}

// @Summary Get an operational analysis for an incident
// @Description Build a detailed operational plan for the incident. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Incident ID"
// @Success 200 {object} classifier.OperationalPlan
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/analysis [get]
func (h *Handler) analyzeIncident(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	log := h.logger.WithFields(logrus.Fields{"method": "analyzeIncident", "id": id})

	plan, err := h.dispatchService.AnalyzeIncident(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// @Summary Find nearby idle responders
// @Description List idle responders within a radius of the given point, nearest first. Requires API key.
// @Tags Responders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lat query number true "Latitude of the search origin"
// @Param lng query number true "Longitude of the search origin"
// @Param radius_km query number false "Search radius in kilometers" default(10)
// @Param type query string false "Responder type filter" Enums(police, fire, medical)
// @Success 200 {array} NearbyResponderResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /responders/nearby [get]
func (h *Handler) nearbyResponders(c *gin.Context) {
	log := h.logger.WithField("method", "nearbyResponders")

	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		log.Warn("Invalid search origin coordinates")
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query parameters are required"})
		return
	}

	radiusKm, err := strconv.ParseFloat(c.DefaultQuery("radius_km", "10"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius_km"})
		return
	}

	var rtype *models.ResponderType
	if raw := c.Query("type"); raw != "" {
		parsed, ok := models.ParseResponderType(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown responder type"})
			return
		}
		rtype = &parsed
	}

	nearby, err := h.dispatchService.FindNearbyIdleResponders(c.Request.Context(), models.Coordinate{Lat: lat, Lng: lng}, radiusKm, rtype)
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, toNearbyResponses(nearby))
}

// @Summary Dispatch a responder to an incident
// @Description Atomically assign an idle responder to a pending incident. Requires API key.
// @Tags Responders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param dispatch body DispatchRequest true "Dispatch request"
// @Success 200 {object} ResponderResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Responder or incident not found"
// @Failure 409 {object} map[string]string "Responder or incident is not in a dispatchable state"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /responders/dispatch [post]
func (h *Handler) dispatchResponder(c *gin.Context) {
	var input DispatchRequest
	log := h.logger.WithField("method", "dispatchResponder")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	responder, err := h.dispatchService.Dispatch(c.Request.Context(), input.ResponderID, input.IncidentID)
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, toResponderResponse(responder))
}

// @Summary Recommend a responder type for an incident
// @Description Recommend which responder type should handle the incident. Requires API key.
// @Tags Responders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param recommend body RecommendRequest true "Recommendation request"
// @Success 200 {object} RecommendationResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /responders/recommend [post]
func (h *Handler) recommendResponder(c *gin.Context) {
	var input RecommendRequest
	log := h.logger.WithField("method", "recommendResponder")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recommendation, err := h.dispatchService.RecommendResponderType(c.Request.Context(), input.IncidentID)
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, RecommendationResponse{
		RecommendedType: recommendation.RecommendedType,
		Reasoning:       recommendation.Reasoning,
	})
}

// @Summary Recall a responder from its current dispatch
// @Description Finish the responder's current assignment and move it to the requested state. Requires API key.
// @Tags Responders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Responder ID"
// @Param recall body RecallRequest true "Recall request"
// @Success 200 {object} ResponderResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Responder not found"
// @Failure 409 {object} map[string]string "Responder is already idle"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /responders/{id}/recall [post]
func (h *Handler) recallResponder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	log := h.logger.WithFields(logrus.Fields{"method": "recallResponder", "id": id})

	var input RecallRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	responder, err := h.dispatchService.CompleteAndRecall(c.Request.Context(), id, service.RecallOutcome(input.Outcome))
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, toResponderResponse(responder))
}

// @Summary Update a responder's location
// @Description Update the responder's last known coordinates. Requires API key.
// @Tags Responders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Responder ID"
// @Param location body LocationUpdateRequest true "Location update request"
// @Success 200 {object} ResponderResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Responder not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /responders/{id}/location [patch]
func (h *Handler) updateResponderLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	log := h.logger.WithFields(logrus.Fields{"method": "updateResponderLocation", "id": id})

	var input LocationUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	responder, err := h.dispatchService.UpdateResponderLocation(c.Request.Context(), id, input.Latitude, input.Longitude)
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, toResponderResponse(responder))
}

// @Summary Seed demo responders
// @Description Create a demo fleet of responders around the given center if none exist yet. Requires API key.
// @Tags Responders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lat query number false "Center latitude" default(40.7128)
// @Param lng query number false "Center longitude" default(-74.0060)
// @Success 200 {object} SeedResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /responders/seed [post]
func (h *Handler) seedResponders(c *gin.Context) {
	log := h.logger.WithField("method", "seedResponders")

	lat, errLat := strconv.ParseFloat(c.DefaultQuery("lat", "40.7128"), 64)
	lng, errLng := strconv.ParseFloat(c.DefaultQuery("lng", "-74.0060"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid center coordinates"})
		return
	}

	created, err := h.dispatchService.SeedResponders(c.Request.Context(), lat, lng)
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}

	message := "responders seeded"
	if created == 0 {
		message = "responders already exist, nothing seeded"
	}
	c.JSON(http.StatusOK, SeedResponse{Message: message, Created: created})
}

// @Summary Cluster recent incidents
// @Description Group recent located incidents into geographic hotspots. Requires API key.
// @Tags Analytics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param days_back query int false "How many days of history to analyze" default(7)
// @Param category query string false "Incident category filter"
// @Success 200 {object} models.ClusterReport
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /analytics/clusters [get]
func (h *Handler) getClusters(c *gin.Context) {
	log := h.logger.WithField("method", "getClusters")
	daysBack, _ := strconv.Atoi(c.DefaultQuery("days_back", "7"))

	var category *models.IncidentCategory
	if raw := c.Query("category"); raw != "" {
		if parsed, ok := models.ParseIncidentCategory(raw); ok {
			category = &parsed
		}
	}

	report, err := h.analyticsService.ClusterRecentIncidents(c.Request.Context(), daysBack, category)
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Predict emergency risk zones
// @Description Predict where incidents are likely to occur within the given horizon. Requires API key.
// @Tags Analytics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param hours_ahead query int false "Prediction horizon in hours" default(24)
// @Success 200 {object} models.PredictionReport
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /analytics/predictions [get]
func (h *Handler) getPredictions(c *gin.Context) {
	log := h.logger.WithField("method", "getPredictions")
	hoursAhead, _ := strconv.Atoi(c.DefaultQuery("hours_ahead", "24"))

	report, err := h.analyticsService.PredictRiskZones(c.Request.Context(), hoursAhead)
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Get an operational summary
// @Description Get aggregate incident statistics for the last day and week. Requires API key.
// @Tags Analytics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.AnalyticsSummary
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /analytics/summary [get]
func (h *Handler) getSummary(c *gin.Context) {
	log := h.logger.WithField("method", "getSummary")

	summary, err := h.analyticsService.Summary(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Health check
// @Description Check that the service is alive.
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
