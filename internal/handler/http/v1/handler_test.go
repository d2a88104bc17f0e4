package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/emergency_dispatch_system/internal/classifier"
	"github.com/shenikar/emergency_dispatch_system/internal/config"
	"github.com/shenikar/emergency_dispatch_system/internal/handler/http/v1/mocks"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestHandler создает новый экземпляр Handler с мокированными сервисами
func newTestHandler(t *testing.T) (*Handler, *mocks.MockDispatchService, *mocks.MockAnalyticsService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	dispatchMock := mocks.NewMockDispatchService(ctrl)
	analyticsMock := mocks.NewMockAnalyticsService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys: []string{"test-api-key"},
	}

	handler := NewHandler(dispatchMock, analyticsMock, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, dispatchMock, analyticsMock, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var authHeader = map[string]string{"X-API-Key": "test-api-key"}

func TestCreateIncident_Success(t *testing.T) {
	_, dispatchMock, _, router := newTestHandler(t)
	category := models.CategoryFire
	reqBody := CreateIncidentRequest{
		Description: "Building on fire at 5th and Main",
		Location:    &LocationDTO{Lat: 40.71, Lng: -74.0},
	}
	expectedIncident := &models.Incident{
		ID:            42,
		CallID:        7,
		Status:        models.IncidentPending,
		PriorityScore: 9,
		Category:      &category,
		Summary:       "Structure fire",
		CreatedAt:     time.Now().UTC(),
	}

	dispatchMock.EXPECT().
		IntakeIncident(gomock.Any(), gomock.Any()).
		Return(expectedIncident, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBuffer(bodyBytes), authHeader)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 9, resp.PriorityScore)
	assert.Equal(t, "fire", resp.Category)
}

func TestCreateIncident_MissingDescription(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBufferString(`{}`), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateIncident_Unauthorized(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBufferString(`{"description": "fire"}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListIncidents_FiltersParsed(t *testing.T) {
	_, dispatchMock, _, router := newTestHandler(t)

	dispatchMock.EXPECT().
		ListIncidents(gomock.Any(), gomock.Any(), 2, 5).
		DoAndReturn(func(_ context.Context, filter models.IncidentFilter, _ int, _ int) ([]*models.Incident, error) {
			require.NotNil(t, filter.Category)
			assert.Equal(t, models.CategoryFire, *filter.Category)
			require.NotNil(t, filter.Status)
			assert.Equal(t, models.IncidentPending, *filter.Status)
			return []*models.Incident{}, nil
		}).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/incidents?category=fire&status=pending&page=2&pageSize=5", nil, authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListIncidents_UnknownFilterIgnored(t *testing.T) {
	_, dispatchMock, _, router := newTestHandler(t)

	// Неразбираемые значения фильтров молча игнорируются
	dispatchMock.EXPECT().
		ListIncidents(gomock.Any(), models.IncidentFilter{}, 1, 20).
		Return([]*models.Incident{}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/incidents?category=weird&status=bogus", nil, authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetIncident_NotFound(t *testing.T) {
	_, dispatchMock, _, router := newTestHandler(t)

	dispatchMock.EXPECT().
		GetIncident(gomock.Any(), int64(99)).
		Return(nil, fmt.Errorf("service: could not get incident: %w", service.ErrNotFound)).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/incidents/99", nil, authHeader)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetIncident_InvalidID(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/incidents/abc", nil, authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateIncident_Success(t *testing.T) {
	_, dispatchMock, _, router := newTestHandler(t)
	updated := &models.Incident{ID: 3, Status: models.IncidentResolved, PriorityScore: 7}

	dispatchMock.EXPECT().
		UpdateIncident(gomock.Any(), int64(3), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, upd service.IncidentUpdate) (*models.Incident, error) {
			require.NotNil(t, upd.Status)
			assert.Equal(t, models.IncidentResolved, *upd.Status)
			assert.Nil(t, upd.PriorityScore)
			return updated, nil
		}).
		Times(1)

	w := makeRequest(router, "PATCH", "/api/v1/incidents/3", bytes.NewBufferString(`{"status": "resolved"}`), authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateIncident_UnknownStatus(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "PATCH", "/api/v1/incidents/3", bytes.NewBufferString(`{"status": "vanished"}`), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateIncident_PriorityOutOfRange(t *testing.T) {
	_, dispatchMock, _, router := newTestHandler(t)

	dispatchMock.EXPECT().
		UpdateIncident(gomock.Any(), int64(3), gomock.Any()).
		Return(nil, fmt.Errorf("priority_score 11 is out of range [1,10]: %w", service.ErrValidation)).
		Times(1)

	w := makeRequest(router, "PATCH", "/api/v1/incidents/3", bytes.NewBufferString(`{"priority_score": 11}`), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNearbyResponders_Success(t *testing.T) {
	_, dispatchMock, _, router := newTestHandler(t)
	lat, lng := 40.7138, -74.0060
	nearby := []models.NearbyResponder{
		{
			Responder: &models.Responder{
				ID: 1, Name: "Unit-101", Type: models.ResponderPolice,
				Status: models.ResponderIdle, Latitude: &lat, Longitude: &lng,
			},
			DistanceKm: 0.11,
		},
	}

	dispatchMock.EXPECT().
		FindNearbyIdleResponders(gomock.Any(), models.Coordinate{Lat: 40.7128, Lng: -74.0060}, 5.0, nil).
		Return(nearby, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/responders/nearby?lat=40.7128&lng=-74.0060&radius_km=5", nil, authHeader)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []NearbyResponderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Unit-101", resp[0].Responder.Name)
	assert.Equal(t, 0.11, resp[0].DistanceKm)
}

func TestNearbyResponders_MissingCoordinates(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/responders/nearby?radius_km=5", nil, authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNearbyResponders_UnknownType(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/responders/nearby?lat=1&lng=1&type=swat", nil, authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDispatchResponder_Success(t *testing.T) {
	_, dispatchMock, _, router := newTestHandler(t)
	incidentID := int64(12)
	responder := &models.Responder{
		ID: 5, Name: "Engine-21", Type: models.ResponderFire,
		Status: models.ResponderDispatched, CurrentIncidentID: &incidentID,
	}

	dispatchMock.EXPECT().
		Dispatch(gomock.Any(), int64(5), int64(12)).
		Return(responder, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/responders/dispatch",
		bytes.NewBufferString(`{"responder_id": 5, "incident_id": 12}`), authHeader)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp ResponderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "dispatched", resp.Status)
	require.NotNil(t, resp.CurrentIncidentID)
	assert.Equal(t, int64(12), *resp.CurrentIncidentID)
}

func TestDispatchResponder_Conflict(t *testing.T) {
	_, dispatchMock, _, router := newTestHandler(t)

	dispatchMock.EXPECT().
		Dispatch(gomock.Any(), int64(5), int64(12)).
		Return(nil, fmt.Errorf("responder 5 unavailable (status busy): %w", service.ErrConflict)).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/responders/dispatch",
		bytes.NewBufferString(`{"responder_id": 5, "incident_id": 12}`), authHeader)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDispatchResponder_MissingFields(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/responders/dispatch",
		bytes.NewBufferString(`{"responder_id": 5}`), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecallResponder_Success(t *testing.T) {
	_, dispatchMock, _, router := newTestHandler(t)
	responder := &models.Responder{ID: 5, Status: models.ResponderIdle}

	dispatchMock.EXPECT().
		CompleteAndRecall(gomock.Any(), int64(5), service.OutcomeReturnToIdle).
		Return(responder, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/responders/5/recall",
		bytes.NewBufferString(`{"outcome": "return_to_idle"}`), authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecallResponder_AlreadyIdle(t *testing.T) {
	_, dispatchMock, _, router := newTestHandler(t)

	dispatchMock.EXPECT().
		CompleteAndRecall(gomock.Any(), int64(5), service.OutcomeReturnToIdle).
		Return(nil, fmt.Errorf("responder 5 is already idle: %w", service.ErrConflict)).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/responders/5/recall",
		bytes.NewBufferString(`{"outcome": "return_to_idle"}`), authHeader)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRecallResponder_InvalidOutcome(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/responders/5/recall",
		bytes.NewBufferString(`{"outcome": "vanish"}`), authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateResponderLocation_Success(t *testing.T) {
	_, dispatchMock, _, router := newTestHandler(t)
	lat, lng := 40.72, -74.01
	responder := &models.Responder{ID: 5, Status: models.ResponderIdle, Latitude: &lat, Longitude: &lng}

	dispatchMock.EXPECT().
		UpdateResponderLocation(gomock.Any(), int64(5), 40.72, -74.01).
		Return(responder, nil).
		Times(1)

	w := makeRequest(router, "PATCH", "/api/v1/responders/5/location",
		bytes.NewBufferString(`{"latitude": 40.72, "longitude": -74.01}`), authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecommendResponder_Success(t *testing.T) {
	_, dispatchMock, _, router := newTestHandler(t)

	dispatchMock.EXPECT().
		RecommendResponderType(gomock.Any(), int64(9)).
		Return(&classifier.UnitRecommendation{RecommendedType: "medical", Reasoning: "Cardiac arrest"}, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/responders/recommend",
		bytes.NewBufferString(`{"incident_id": 9}`), authHeader)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp RecommendationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "medical", resp.RecommendedType)
}

func TestSeedResponders_Success(t *testing.T) {
	_, dispatchMock, _, router := newTestHandler(t)

	dispatchMock.EXPECT().
		SeedResponders(gomock.Any(), 40.7128, -74.0060).
		Return(10, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/responders/seed", nil, authHeader)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp SeedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.Created)
}

func TestGetClusters_Success(t *testing.T) {
	_, _, analyticsMock, router := newTestHandler(t)
	report := &models.ClusterReport{
		Clusters:               []models.Cluster{{ID: "cluster_1", IncidentCount: 2}},
		TotalIncidentsAnalyzed: 4,
		AnalysisPeriodDays:     7,
		Timestamp:              time.Now().UTC(),
	}

	analyticsMock.EXPECT().
		ClusterRecentIncidents(gomock.Any(), 7, nil).
		Return(report, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/analytics/clusters", nil, authHeader)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ClusterReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.AnalysisPeriodDays)
	require.Len(t, resp.Clusters, 1)
}

func TestGetClusters_CategoryFilter(t *testing.T) {
	_, _, analyticsMock, router := newTestHandler(t)

	analyticsMock.EXPECT().
		ClusterRecentIncidents(gomock.Any(), 3, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int, category *models.IncidentCategory) (*models.ClusterReport, error) {
			require.NotNil(t, category)
			assert.Equal(t, models.CategoryFire, *category)
			return &models.ClusterReport{}, nil
		}).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/analytics/clusters?days_back=3&category=fire", nil, authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetPredictions_Success(t *testing.T) {
	_, _, analyticsMock, router := newTestHandler(t)
	report := &models.PredictionReport{PredictionHorizonHours: 12}

	analyticsMock.EXPECT().
		PredictRiskZones(gomock.Any(), 12).
		Return(report, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/analytics/predictions?hours_ahead=12", nil, authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetSummary_Success(t *testing.T) {
	_, _, analyticsMock, router := newTestHandler(t)
	summary := &models.AnalyticsSummary{Incidents24h: 3, Incidents7d: 10}

	analyticsMock.EXPECT().
		Summary(gomock.Any()).
		Return(summary, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/analytics/summary", nil, authHeader)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.AnalyticsSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Incidents24h)
}

func TestHealthCheck_NoAuthRequired(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_BearerTokenAccepted(t *testing.T) {
	_, _, analyticsMock, router := newTestHandler(t)

	analyticsMock.EXPECT().
		Summary(gomock.Any()).
		Return(&models.AnalyticsSummary{}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/analytics/summary", nil,
		map[string]string{"Authorization": "Bearer test-api-key"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_InvalidKeyRejected(t *testing.T) {
	_, _, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/analytics/summary", nil,
		map[string]string{"X-API-Key": "wrong-key"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
