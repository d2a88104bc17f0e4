package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/shenikar/emergency_dispatch_system/internal/classifier"
	classifier_mocks "github.com/shenikar/emergency_dispatch_system/internal/classifier/mocks"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service/mocks"
	"github.com/shenikar/emergency_dispatch_system/internal/webhook"
	webhook_mocks "github.com/shenikar/emergency_dispatch_system/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestDispatchService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestDispatchService(t *testing.T) (*dispatchService, *mocks.MockIncidentRepository, *mocks.MockResponderRepository, *classifier_mocks.MockGateway, *webhook_mocks.MockDispatchPublisher) {
	ctrl := gomock.NewController(t)
	incidentsMock := mocks.NewMockIncidentRepository(ctrl)
	respondersMock := mocks.NewMockResponderRepository(ctrl)
	gatewayMock := classifier_mocks.NewMockGateway(ctrl)
	publisherMock := webhook_mocks.NewMockDispatchPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	service := NewDispatchService(incidentsMock, respondersMock, gatewayMock, publisherMock, logger)
	return service.(*dispatchService), incidentsMock, respondersMock, gatewayMock, publisherMock
}

func floatPtr(v float64) *float64 { return &v }

func TestIntakeIncident_Success_Classified(t *testing.T) {
	// Подготовка
	service, incidentsMock, _, gatewayMock, _ := newTestDispatchService(t)
	ctx := context.Background()
	input := IntakeInput{
		Description: "Building on fire at 5th and Main, people trapped inside",
		Location:    &models.Coordinate{Lat: 40.71, Lng: -74.0},
		ReporterID:  "+15550100",
	}

	// Ожидания
	gatewayMock.EXPECT().
		ClassifyIncident(ctx, input.Description).
		Return(&classifier.Classification{
			PriorityScore: 9,
			Category:      "fire",
			Summary:       "Structure fire with trapped occupants",
		}, nil).
		Times(1)

	incidentsMock.EXPECT().
		CreateIncident(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, call *models.EmergencyCall, incident *models.Incident) error {
			require.Equal(t, input.Description, call.RawTranscript)
			require.NotNil(t, call.LocationLat)
			assert.Equal(t, 40.71, *call.LocationLat)
			call.CallID = 7
			incident.ID = 42
			incident.CallID = 7
			return nil
		}).
		Times(1)

	// Действие
	incident, err := service.IntakeIncident(ctx, input)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, int64(42), incident.ID)
	assert.Equal(t, models.IncidentPending, incident.Status)
	assert.Equal(t, 9, incident.PriorityScore)
	require.NotNil(t, incident.Category)
	assert.Equal(t, models.CategoryFire, *incident.Category)
	assert.Equal(t, "Structure fire with trapped occupants", incident.Summary)
}

func TestIntakeIncident_ClassifierUnavailable_Fallback(t *testing.T) {
	// Подготовка
	service, incidentsMock, _, gatewayMock, _ := newTestDispatchService(t)
	ctx := context.Background()
	description := "Strange noise coming from the basement"

	// Ожидания
	gatewayMock.EXPECT().
		ClassifyIncident(ctx, description).
		Return(nil, fmt.Errorf("timeout: %w", classifier.ErrUnavailable)).
		Times(1)

	incidentsMock.EXPECT().
		CreateIncident(ctx, gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)

	// Действие
	incident, err := service.IntakeIncident(ctx, IntakeInput{Description: description})

	// Проверки: инцидент создан с минимальным приоритетом, без категории,
	// сводка - исходное описание
	require.NoError(t, err)
	assert.Equal(t, 1, incident.PriorityScore)
	assert.Nil(t, incident.Category)
	assert.Equal(t, description, incident.Summary)
	assert.Equal(t, models.IncidentPending, incident.Status)
}

func TestIntakeIncident_EmptyDescription(t *testing.T) {
	// Подготовка
	service, _, _, _, _ := newTestDispatchService(t)
	ctx := context.Background()

	// Действие
	incident, err := service.IntakeIncident(ctx, IntakeInput{Description: "   "})

	// Проверки
	require.Error(t, err)
	assert.Nil(t, incident)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIntakeIncident_RepositoryError(t *testing.T) {
	// Подготовка
	service, incidentsMock, _, gatewayMock, _ := newTestDispatchService(t)
	ctx := context.Background()
	description := "Car crash on the highway"

	// Ожидания
	gatewayMock.EXPECT().
		ClassifyIncident(ctx, description).
		Return(&classifier.Classification{PriorityScore: 6, Category: "traffic_accident", Summary: "Highway collision"}, nil).
		Times(1)

	incidentsMock.EXPECT().
		CreateIncident(ctx, gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("connection refused")).
		Times(1)

	// Действие
	incident, err := service.IntakeIncident(ctx, IntakeInput{Description: description})

	// Проверки: сбой хранилища, в отличие от сбоя классификатора, блокирует прием
	require.Error(t, err)
	assert.Nil(t, incident)
	assert.ErrorContains(t, err, "could not create incident")
}

func TestUpdateIncident_PriorityOutOfRange(t *testing.T) {
	// Подготовка
	service, _, _, _, _ := newTestDispatchService(t)
	ctx := context.Background()
	priority := 11

	// Действие
	incident, err := service.UpdateIncident(ctx, 1, IncidentUpdate{PriorityScore: &priority})

	// Проверки: валидация срабатывает до обращения к хранилищу
	require.Error(t, err)
	assert.Nil(t, incident)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateIncident_PartialStatusOnly(t *testing.T) {
	// Подготовка
	service, incidentsMock, _, _, _ := newTestDispatchService(t)
	ctx := context.Background()
	category := models.CategoryFire
	existing := &models.Incident{
		ID:            3,
		Status:        models.IncidentDispatched,
		PriorityScore: 7,
		Category:      &category,
		Summary:       "Structure fire",
	}
	newStatus := models.IncidentResolved

	// Ожидания
	incidentsMock.EXPECT().
		GetIncidentByID(ctx, int64(3)).
		Return(existing, nil).
		Times(1)

	incidentsMock.EXPECT().
		UpdateIncident(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, incident *models.Incident) error {
			assert.Equal(t, models.IncidentResolved, incident.Status)
			assert.Equal(t, 7, incident.PriorityScore) // приоритет не тронут
			return nil
		}).
		Times(1)

	// Действие
	updated, err := service.UpdateIncident(ctx, 3, IncidentUpdate{Status: &newStatus})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.IncidentResolved, updated.Status)
	assert.Equal(t, 7, updated.PriorityScore)
}

func TestUpdateIncident_NotFound(t *testing.T) {
	// Подготовка
	service, incidentsMock, _, _, _ := newTestDispatchService(t)
	ctx := context.Background()
	priority := 5

	// Ожидания
	incidentsMock.EXPECT().
		GetIncidentByID(ctx, int64(99)).
		Return(nil, fmt.Errorf("incident 99: %w", ErrNotFound)).
		Times(1)

	// Действие
	incident, err := service.UpdateIncident(ctx, 99, IncidentUpdate{PriorityScore: &priority})

	// Проверки
	require.Error(t, err)
	assert.Nil(t, incident)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindNearbyIdleResponders_FiltersAndSorts(t *testing.T) {
	// Подготовка
	service, _, respondersMock, _, _ := newTestDispatchService(t)
	ctx := context.Background()
	origin := models.Coordinate{Lat: 40.7128, Lng: -74.0060}

	// Фикстура: "far" дальше "near", "outside" вне радиуса,
	// "nowhere" без координат и потому исключается
	near := &models.Responder{ID: 1, Name: "Unit-101", Type: models.ResponderPolice, Status: models.ResponderIdle,
		Latitude: floatPtr(40.7138), Longitude: floatPtr(-74.0060)}
	far := &models.Responder{ID: 2, Name: "Unit-102", Type: models.ResponderPolice, Status: models.ResponderIdle,
		Latitude: floatPtr(40.7528), Longitude: floatPtr(-74.0060)}
	outside := &models.Responder{ID: 3, Name: "Unit-103", Type: models.ResponderPolice, Status: models.ResponderIdle,
		Latitude: floatPtr(41.7128), Longitude: floatPtr(-74.0060)}
	nowhere := &models.Responder{ID: 4, Name: "Unit-104", Type: models.ResponderPolice, Status: models.ResponderIdle}

	// Ожидания
	respondersMock.EXPECT().
		ListIdleResponders(ctx, nil).
		Return([]*models.Responder{far, near, outside, nowhere}, nil).
		Times(1)

	// Действие
	nearby, err := service.FindNearbyIdleResponders(ctx, origin, 10, nil)

	// Проверки: только две единицы в радиусе, ближайшая первой
	require.NoError(t, err)
	require.Len(t, nearby, 2)
	assert.Equal(t, int64(1), nearby[0].Responder.ID)
	assert.Equal(t, int64(2), nearby[1].Responder.ID)
	assert.Less(t, nearby[0].DistanceKm, nearby[1].DistanceKm)
}

func TestFindNearbyIdleResponders_InvalidRadius(t *testing.T) {
	// Подготовка
	service, _, _, _, _ := newTestDispatchService(t)
	ctx := context.Background()

	// Действие
	nearby, err := service.FindNearbyIdleResponders(ctx, models.Coordinate{}, 0, nil)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, nearby)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDispatch_Success_PublishesEvent(t *testing.T) {
	// Подготовка
	service, incidentsMock, respondersMock, _, publisherMock := newTestDispatchService(t)
	ctx := context.Background()
	category := models.CategoryFire
	responder := &models.Responder{
		ID:     5,
		Name:   "Engine-21",
		Type:   models.ResponderFire,
		Status: models.ResponderDispatched,
	}

	// Ожидания
	respondersMock.EXPECT().
		DispatchResponder(ctx, int64(5), int64(12)).
		Return(responder, nil).
		Times(1)

	incidentsMock.EXPECT().
		GetIncidentByID(ctx, int64(12)).
		Return(&models.Incident{ID: 12, PriorityScore: 8, Category: &category}, nil).
		Times(1)

	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, event webhook.DispatchEvent) error {
			assert.Equal(t, int64(12), event.IncidentID)
			assert.Equal(t, int64(5), event.ResponderID)
			assert.Equal(t, "Engine-21", event.ResponderName)
			assert.Equal(t, 8, event.Priority)
			require.NotNil(t, event.Category)
			assert.Equal(t, models.CategoryFire, *event.Category)
			return nil
		}).
		Times(1)

	// Действие
	dispatched, err := service.Dispatch(ctx, 5, 12)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.ResponderDispatched, dispatched.Status)
}

func TestDispatch_Conflict(t *testing.T) {
	// Подготовка
	service, _, respondersMock, _, _ := newTestDispatchService(t)
	ctx := context.Background()

	// Ожидания
	respondersMock.EXPECT().
		DispatchResponder(ctx, int64(5), int64(12)).
		Return(nil, fmt.Errorf("responder 5 unavailable (status dispatched): %w", ErrConflict)).
		Times(1)

	// Действие
	dispatched, err := service.Dispatch(ctx, 5, 12)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, dispatched)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDispatch_PublishFailure_DoesNotUndoAssignment(t *testing.T) {
	// Подготовка
	service, incidentsMock, respondersMock, _, publisherMock := newTestDispatchService(t)
	ctx := context.Background()
	responder := &models.Responder{ID: 5, Name: "Engine-21", Type: models.ResponderFire, Status: models.ResponderDispatched}

	// Ожидания
	respondersMock.EXPECT().
		DispatchResponder(ctx, int64(5), int64(12)).
		Return(responder, nil).
		Times(1)

	incidentsMock.EXPECT().
		GetIncidentByID(ctx, int64(12)).
		Return(&models.Incident{ID: 12, PriorityScore: 4}, nil).
		Times(1)

	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Return(fmt.Errorf("redis down")).
		Times(1)

	// Действие
	dispatched, err := service.Dispatch(ctx, 5, 12)

	// Проверки: сбой публикации не откатывает назначение
	require.NoError(t, err)
	assert.Equal(t, int64(5), dispatched.ID)
}

func TestCompleteAndRecall_ReturnToIdle(t *testing.T) {
	// Подготовка
	service, _, respondersMock, _, _ := newTestDispatchService(t)
	ctx := context.Background()
	recalled := &models.Responder{ID: 5, Status: models.ResponderIdle}

	// Ожидания
	respondersMock.EXPECT().
		RecallResponder(ctx, int64(5), models.ResponderIdle).
		Return(recalled, nil).
		Times(1)

	// Действие
	responder, err := service.CompleteAndRecall(ctx, 5, OutcomeReturnToIdle)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.ResponderIdle, responder.Status)
	assert.Nil(t, responder.CurrentIncidentID)
}

func TestCompleteAndRecall_MarkBusy(t *testing.T) {
	// Подготовка
	service, _, respondersMock, _, _ := newTestDispatchService(t)
	ctx := context.Background()
	recalled := &models.Responder{ID: 5, Status: models.ResponderBusy}

	// Ожидания
	respondersMock.EXPECT().
		RecallResponder(ctx, int64(5), models.ResponderBusy).
		Return(recalled, nil).
		Times(1)

	// Действие
	responder, err := service.CompleteAndRecall(ctx, 5, OutcomeMarkBusy)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.ResponderBusy, responder.Status)
}

func TestCompleteAndRecall_UnknownOutcome(t *testing.T) {
	// Подготовка
	service, _, _, _, _ := newTestDispatchService(t)
	ctx := context.Background()

	// Действие
	responder, err := service.CompleteAndRecall(ctx, 5, RecallOutcome("vanish"))

	// Проверки
	require.Error(t, err)
	assert.Nil(t, responder)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateResponderLocation_OutOfRange(t *testing.T) {
	// Подготовка
	service, _, _, _, _ := newTestDispatchService(t)
	ctx := context.Background()

	// Действие
	responder, err := service.UpdateResponderLocation(ctx, 5, 91, 0)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, responder)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRecommendResponderType_ClassifierUnavailable_Fallback(t *testing.T) {
	// Подготовка
	service, incidentsMock, _, gatewayMock, _ := newTestDispatchService(t)
	ctx := context.Background()
	category := models.CategoryMedicalEmergency
	incident := &models.Incident{ID: 9, PriorityScore: 8, Category: &category, Summary: "Cardiac arrest"}

	// Ожидания
	incidentsMock.EXPECT().
		GetIncidentByID(ctx, int64(9)).
		Return(incident, nil).
		Times(1)

	gatewayMock.EXPECT().
		RecommendUnit(ctx, gomock.Any()).
		Return(nil, classifier.ErrUnavailable).
		Times(1)

	// Действие
	recommendation, err := service.RecommendResponderType(ctx, 9)

	// Проверки: сбой классификатора дает детерминированный ответ, не ошибку
	require.NoError(t, err)
	assert.Equal(t, string(models.ResponderPolice), recommendation.RecommendedType)
	assert.Equal(t, "fallback", recommendation.Reasoning)
}

func TestRecommendResponderType_IncidentNotFound(t *testing.T) {
	// Подготовка
	service, incidentsMock, _, _, _ := newTestDispatchService(t)
	ctx := context.Background()

	// Ожидания
	incidentsMock.EXPECT().
		GetIncidentByID(ctx, int64(9)).
		Return(nil, fmt.Errorf("incident 9: %w", ErrNotFound)).
		Times(1)

	// Действие
	recommendation, err := service.RecommendResponderType(ctx, 9)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, recommendation)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAnalyzeIncident_ClassifierUnavailable_Fallback(t *testing.T) {
	// Подготовка
	service, incidentsMock, _, gatewayMock, _ := newTestDispatchService(t)
	ctx := context.Background()
	incident := &models.Incident{ID: 9, PriorityScore: 8, Summary: "Cardiac arrest"}

	// Ожидания
	incidentsMock.EXPECT().
		GetIncidentByID(ctx, int64(9)).
		Return(incident, nil).
		Times(1)

	gatewayMock.EXPECT().
		DetailedAnalysis(ctx, gomock.Any()).
		Return(nil, classifier.ErrUnavailable).
		Times(1)

	// Действие
	plan, err := service.AnalyzeIncident(ctx, 9)

	// Проверки: общий минимальный чеклист вместо ошибки
	require.NoError(t, err)
	assert.NotEmpty(t, plan.Instructions)
	assert.Equal(t, "general", plan.RescueType)
}

func TestSeedResponders_SkipsWhenFleetExists(t *testing.T) {
	// Подготовка
	service, _, respondersMock, _, _ := newTestDispatchService(t)
	ctx := context.Background()

	// Ожидания
	respondersMock.EXPECT().
		CountResponders(ctx).
		Return(4, nil).
		Times(1)

	// Действие
	created, err := service.SeedResponders(ctx, 40.7128, -74.0060)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestSeedResponders_CreatesFleet(t *testing.T) {
	// Подготовка
	service, _, respondersMock, _, _ := newTestDispatchService(t)
	ctx := context.Background()
	centerLat, centerLng := 40.7128, -74.0060

	// Ожидания
	respondersMock.EXPECT().
		CountResponders(ctx).
		Return(0, nil).
		Times(1)

	respondersMock.EXPECT().
		CreateResponder(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, responder *models.Responder) error {
			assert.Equal(t, models.ResponderIdle, responder.Status)
			require.NotNil(t, responder.Latitude)
			require.NotNil(t, responder.Longitude)
			assert.InDelta(t, centerLat, *responder.Latitude, 0.05)
			assert.InDelta(t, centerLng, *responder.Longitude, 0.05)
			return nil
		}).
		Times(len(seedUnits))

	// Действие
	created, err := service.SeedResponders(ctx, centerLat, centerLng)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, len(seedUnits), created)
}
