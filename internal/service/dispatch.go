package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/classifier"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/webhook"
	"github.com/shenikar/emergency_dispatch_system/pkg/geo"
	"github.com/sirupsen/logrus"
)

// IncidentRepository определяет контракт для работы с хранилищем инцидентов
type IncidentRepository interface {
	CreateIncident(ctx context.Context, call *models.EmergencyCall, incident *models.Incident) error
	GetIncidentByID(ctx context.Context, id int64) (*models.Incident, error)
	UpdateIncident(ctx context.Context, incident *models.Incident) error
	ListIncidents(ctx context.Context, filter models.IncidentFilter, page, pageSize int) ([]*models.Incident, error)
	ListIncidentsSince(ctx context.Context, since time.Time, category *models.IncidentCategory, limit int) ([]*models.Incident, error)
}

// ResponderRepository определяет контракт для работы с хранилищем единиц реагирования.
// DispatchResponder и RecallResponder обязаны выполнять проверку предусловий
// и запись в одной транзакции.
type ResponderRepository interface {
	CreateResponder(ctx context.Context, responder *models.Responder) error
	GetResponderByID(ctx context.Context, id int64) (*models.Responder, error)
	ListIdleResponders(ctx context.Context, rtype *models.ResponderType) ([]*models.Responder, error)
	CountResponders(ctx context.Context) (int, error)
	UpdateResponderLocation(ctx context.Context, id int64, lat, lng float64) (*models.Responder, error)
	DispatchResponder(ctx context.Context, responderID, incidentID int64) (*models.Responder, error)
	RecallResponder(ctx context.Context, id int64, target models.ResponderStatus) (*models.Responder, error)
}

// IntakeInput - входные данные приема нового сообщения об инциденте
type IntakeInput struct {
	Description string
	Location    *models.Coordinate
	ReporterID  string
	MediaURL    string
}

// IncidentUpdate - частичное обновление инцидента. nil-поле не трогает текущее значение.
type IncidentUpdate struct {
	Status        *models.IncidentStatus
	PriorityScore *int
}

// RecallOutcome - исход завершения выезда
type RecallOutcome string

const (
	OutcomeReturnToIdle RecallOutcome = "return_to_idle"
	OutcomeMarkBusy     RecallOutcome = "mark_busy"
)

// DispatchService определяет контракт координатора диспетчеризации
type DispatchService interface {
	IntakeIncident(ctx context.Context, input IntakeInput) (*models.Incident, error)
	GetIncident(ctx context.Context, id int64) (*models.Incident, error)
	ListIncidents(ctx context.Context, filter models.IncidentFilter, page, pageSize int) ([]*models.Incident, error)
	UpdateIncident(ctx context.Context, id int64, upd IncidentUpdate) (*models.Incident, error)
	FindNearbyIdleResponders(ctx context.Context, origin models.Coordinate, radiusKm float64, rtype *models.ResponderType) ([]models.NearbyResponder, error)
	Dispatch(ctx context.Context, responderID, incidentID int64) (*models.Responder, error)
	CompleteAndRecall(ctx context.Context, responderID int64, outcome RecallOutcome) (*models.Responder, error)
	UpdateResponderLocation(ctx context.Context, id int64, lat, lng float64) (*models.Responder, error)
	RecommendResponderType(ctx context.Context, incidentID int64) (*classifier.UnitRecommendation, error)
	AnalyzeIncident(ctx context.Context, incidentID int64) (*classifier.OperationalPlan, error)
	SeedResponders(ctx context.Context, centerLat, centerLng float64) (int, error)
}

type dispatchService struct {
	incidents  IncidentRepository
	responders ResponderRepository
	gateway    classifier.Gateway
	publisher  webhook.DispatchPublisher
	logger     *logrus.Logger
}

func NewDispatchService(
	incidents IncidentRepository,
	responders ResponderRepository,
	gateway classifier.Gateway,
	publisher webhook.DispatchPublisher,
	logger *logrus.Logger,
) DispatchService {
	return &dispatchService{
		incidents:  incidents,
		responders: responders,
		gateway:    gateway,
		publisher:  publisher,
		logger:     logger,
	}
}

// IntakeIncident принимает сообщение об инциденте: создает запись о вызове и инцидент.
// Классификатор задает приоритет/категорию/сводку; при его сбое инцидент все равно
// создается с приоритетом 1 и описанием вместо сводки - прием не блокируется.
func (s *dispatchService) IntakeIncident(ctx context.Context, input IntakeInput) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "dispatch",
		"method":  "IntakeIncident",
	})
	log.Info("Attempting to intake a new incident")

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, fmt.Errorf("incident description is required: %w", ErrValidation)
	}

	call := &models.EmergencyCall{
		CallerPhone:   input.ReporterID,
		RawTranscript: description,
		MediaURL:      input.MediaURL,
	}
	if input.Location != nil {
		lat, lng := input.Location.Lat, input.Location.Lng
		call.LocationLat = &lat
		call.LocationLong = &lng
	}

	incident := &models.Incident{
		Status:        models.IncidentPending,
		PriorityScore: 1,
		Summary:       description,
	}

	classification, err := s.gateway.ClassifyIncident(ctx, description)
	if err != nil {
		// Запасной путь: приоритет 1, без категории, сводка - исходное описание
		log.WithError(err).Warn("Classifier unavailable, falling back to verbatim description")
	} else {
		incident.PriorityScore = classification.PriorityScore
		incident.Summary = classification.Summary
		if category, ok := models.ParseIncidentCategory(classification.Category); ok {
			incident.Category = &category
		}
	}

	if err := s.incidents.CreateIncident(ctx, call, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return nil, fmt.Errorf("service: could not create incident: %w", err)
	}

	log.WithField("incident_id", incident.ID).Info("Incident created successfully")
	return incident, nil
}

// GetIncident возвращает инцидент по id
func (s *dispatchService) GetIncident(ctx context.Context, id int64) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "GetIncident",
		"incident_id": id,
	})

	incident, err := s.incidents.GetIncidentByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident from repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}
	return incident, nil
}

// ListIncidents возвращает инциденты в порядке триажа с пагинацией
func (s *dispatchService) ListIncidents(ctx context.Context, filter models.IncidentFilter, page, pageSize int) ([]*models.Incident, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "dispatch",
		"method":    "ListIncidents",
		"page":      page,
		"page_size": pageSize,
	})

	incidents, err := s.incidents.ListIncidents(ctx, filter, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Info("Incidents listed successfully")
	return incidents, nil
}

// UpdateIncident применяет частичное обновление инцидента.
// Переходы статуса здесь не сверяются с машиной состояний: это ручной обход
// для оператора, каждый такой обход фиксируется в логе.
func (s *dispatchService) UpdateIncident(ctx context.Context, id int64, upd IncidentUpdate) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "UpdateIncident",
		"incident_id": id,
	})

	if upd.PriorityScore != nil && (*upd.PriorityScore < 1 || *upd.PriorityScore > 10) {
		return nil, fmt.Errorf("priority_score %d is out of range [1,10]: %w", *upd.PriorityScore, ErrValidation)
	}

	existing, err := s.incidents.GetIncidentByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent incident")
		return nil, fmt.Errorf("service: incident not found for update: %w", err)
	}

	if upd.Status != nil {
		log.WithFields(logrus.Fields{
			"old_status": existing.Status,
			"new_status": *upd.Status,
		}).Warn("Manual incident status override")
		existing.Status = *upd.Status
	}
	if upd.PriorityScore != nil {
		existing.PriorityScore = *upd.PriorityScore
	}

	if err := s.incidents.UpdateIncident(ctx, existing); err != nil {
		log.WithError(err).Error("Failed to update incident in repository")
		return nil, fmt.Errorf("service: could not update incident: %w", err)
	}

	log.Info("Incident updated successfully")
	return existing, nil
}

// FindNearbyIdleResponders ищет свободные единицы в радиусе от точки.
// Единицы без известных координат исключаются. Результат отсортирован по дистанции,
// при равной дистанции - по id, чтобы выдача была детерминированной.
func (s *dispatchService) FindNearbyIdleResponders(ctx context.Context, origin models.Coordinate, radiusKm float64, rtype *models.ResponderType) ([]models.NearbyResponder, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "dispatch",
		"method":    "FindNearbyIdleResponders",
		"radius_km": radiusKm,
	})

	if radiusKm <= 0 {
		return nil, fmt.Errorf("radius_km must be positive: %w", ErrValidation)
	}

	idle, err := s.responders.ListIdleResponders(ctx, rtype)
	if err != nil {
		log.WithError(err).Error("Failed to list idle responders from repository")
		return nil, fmt.Errorf("service: could not list idle responders: %w", err)
	}

	nearby := make([]models.NearbyResponder, 0)
	for _, responder := range idle {
		loc := responder.Location()
		if loc == nil {
			continue
		}
		dist := geo.DistanceKm(origin, *loc)
		if dist <= radiusKm {
			nearby = append(nearby, models.NearbyResponder{
				Responder:  responder,
				DistanceKm: dist,
			})
		}
	}

	// Репозиторий отдает единицы по возрастанию id, стабильная сортировка
	// сохраняет этот порядок для равных дистанций
	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	log.WithField("count", len(nearby)).Info("Nearby responders found")
	return nearby, nil
}

// Dispatch атомарно назначает свободную единицу на ожидающий инцидент
// и публикует событие диспетчеризации.
func (s *dispatchService) Dispatch(ctx context.Context, responderID, incidentID int64) (*models.Responder, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "dispatch",
		"method":       "Dispatch",
		"responder_id": responderID,
		"incident_id":  incidentID,
	})
	log.Info("Attempting to dispatch responder")

	responder, err := s.responders.DispatchResponder(ctx, responderID, incidentID)
	if err != nil {
		log.WithError(err).Warn("Dispatch rejected")
		return nil, fmt.Errorf("service: could not dispatch responder: %w", err)
	}

	event := webhook.DispatchEvent{
		EventID:       uuid.New(),
		IncidentID:    incidentID,
		ResponderID:   responder.ID,
		ResponderName: responder.Name,
		ResponderType: responder.Type,
		DispatchedAt:  time.Now().UTC(),
	}
	if incident, err := s.incidents.GetIncidentByID(ctx, incidentID); err != nil {
		log.WithError(err).Warn("Could not load incident for dispatch event")
	} else {
		event.Priority = incident.PriorityScore
		event.Category = incident.Category
	}

	// Доставка уведомления - best effort, сбой не откатывает назначение
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Error("Failed to publish dispatch event")
	}

	log.Info("Responder dispatched successfully")
	return responder, nil
}

// CompleteAndRecall завершает выезд единицы: возврат в idle или перевод в busy.
// Ссылка на инцидент снимается только при возврате в idle.
func (s *dispatchService) CompleteAndRecall(ctx context.Context, responderID int64, outcome RecallOutcome) (*models.Responder, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "dispatch",
		"method":       "CompleteAndRecall",
		"responder_id": responderID,
		"outcome":      outcome,
	})

	var target models.ResponderStatus
	switch outcome {
	case OutcomeReturnToIdle:
		target = models.ResponderIdle
	case OutcomeMarkBusy:
		target = models.ResponderBusy
	default:
		return nil, fmt.Errorf("unknown recall outcome %q: %w", outcome, ErrValidation)
	}

	responder, err := s.responders.RecallResponder(ctx, responderID, target)
	if err != nil {
		log.WithError(err).Warn("Recall rejected")
		return nil, fmt.Errorf("service: could not recall responder: %w", err)
	}

	log.Info("Responder recalled successfully")
	return responder, nil
}

// UpdateResponderLocation сохраняет последние координаты единицы, побеждает последняя запись
func (s *dispatchService) UpdateResponderLocation(ctx context.Context, id int64, lat, lng float64) (*models.Responder, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "dispatch",
		"method":       "UpdateResponderLocation",
		"responder_id": id,
	})

	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("coordinates out of range: %w", ErrValidation)
	}

	responder, err := s.responders.UpdateResponderLocation(ctx, id, lat, lng)
	if err != nil {
		log.WithError(err).Warn("Failed to update responder location")
		return nil, fmt.Errorf("service: could not update responder location: %w", err)
	}
	return responder, nil
}

// RecommendResponderType запрашивает у классификатора рекомендованный тип единицы.
// При сбое возвращает детерминированное значение по умолчанию, не ошибку.
func (s *dispatchService) RecommendResponderType(ctx context.Context, incidentID int64) (*classifier.UnitRecommendation, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "RecommendResponderType",
		"incident_id": incidentID,
	})

	incident, err := s.incidents.GetIncidentByID(ctx, incidentID)
	if err != nil {
		log.WithError(err).Warn("Incident not found for recommendation")
		return nil, fmt.Errorf("service: could not get incident for recommendation: %w", err)
	}

	recommendation, err := s.gateway.RecommendUnit(ctx, incidentContext(incident))
	if err != nil {
		log.WithError(err).Warn("Classifier unavailable, falling back to default recommendation")
		return &classifier.UnitRecommendation{
			RecommendedType: string(models.ResponderPolice),
			Reasoning:       "fallback",
		}, nil
	}

	return recommendation, nil
}

// AnalyzeIncident запрашивает развернутые оперативные указания.
// При сбое классификатора возвращает общий минимальный чеклист.
func (s *dispatchService) AnalyzeIncident(ctx context.Context, incidentID int64) (*classifier.OperationalPlan, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "AnalyzeIncident",
		"incident_id": incidentID,
	})

	incident, err := s.incidents.GetIncidentByID(ctx, incidentID)
	if err != nil {
		log.WithError(err).Warn("Incident not found for analysis")
		return nil, fmt.Errorf("service: could not get incident for analysis: %w", err)
	}

	plan, err := s.gateway.DetailedAnalysis(ctx, incidentContext(incident))
	if err != nil {
		log.WithError(err).Warn("Classifier unavailable, falling back to generic checklist")
		return &classifier.OperationalPlan{
			Situation:       "Automated analysis unavailable, follow standard response procedure",
			Equipment:       []string{"standard response kit"},
			ResponderCounts: map[string]int{"police": 1, "fire": 1, "medical": 1},
			RescueType:      "general",
			Instructions: []string{
				"Assess the scene on arrival",
				"Report situation to dispatch",
				"Request additional units if required",
			},
		}, nil
	}

	return plan, nil
}

// seedUnits - стандартный набор единиц для демонстрационного наполнения
var seedUnits = []struct {
	name  string
	rtype models.ResponderType
}{
	{"Unit-101", models.ResponderPolice},
	{"Unit-102", models.ResponderPolice},
	{"Unit-103", models.ResponderPolice},
	{"Engine-21", models.ResponderFire},
	{"Engine-22", models.ResponderFire},
	{"Ladder-5", models.ResponderFire},
	{"Medic-51", models.ResponderMedical},
	{"Medic-52", models.ResponderMedical},
	{"Medic-53", models.ResponderMedical},
	{"Ambulance-4", models.ResponderMedical},
}

// SeedResponders создает стандартный набор единиц вокруг центральной точки.
// Если единицы уже существуют, ничего не делает и возвращает 0.
func (s *dispatchService) SeedResponders(ctx context.Context, centerLat, centerLng float64) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "dispatch",
		"method":  "SeedResponders",
	})

	count, err := s.responders.CountResponders(ctx)
	if err != nil {
		return 0, fmt.Errorf("service: could not count responders: %w", err)
	}
	if count > 0 {
		log.Info("Responders already exist, skipping seed")
		return 0, nil
	}

	// Примерно 5 км разброса: один градус широты - около 111 км
	const delta = 5.0 / 111.0

	created := 0
	for _, unit := range seedUnits {
		lat := centerLat + (rand.Float64()*2-1)*delta
		lng := centerLng + (rand.Float64()*2-1)*delta
		responder := &models.Responder{
			Name:      unit.name,
			Type:      unit.rtype,
			Status:    models.ResponderIdle,
			Latitude:  &lat,
			Longitude: &lng,
		}
		if err := s.responders.CreateResponder(ctx, responder); err != nil {
			return created, fmt.Errorf("service: could not seed responder %s: %w", unit.name, err)
		}
		created++
	}

	log.WithField("count", created).Info("Responders seeded successfully")
	return created, nil
}

// incidentContext собирает контекст инцидента для запросов к классификатору
func incidentContext(incident *models.Incident) classifier.IncidentContext {
	category := "unknown"
	if incident.Category != nil {
		category = string(*incident.Category)
	}
	return classifier.IncidentContext{
		Description: incident.Summary,
		Category:    category,
		Priority:    incident.PriorityScore,
	}
}
