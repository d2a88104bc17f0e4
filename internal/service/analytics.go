package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shenikar/emergency_dispatch_system/internal/classifier"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/sirupsen/logrus"
)

// ReportCache определяет контракт кеша аналитических отчетов.
// Промах возвращает nil без ошибки.
type ReportCache interface {
	GetClusterReport(ctx context.Context, key string) (*models.ClusterReport, error)
	SetClusterReport(ctx context.Context, key string, report *models.ClusterReport) error
	GetPredictionReport(ctx context.Context, key string) (*models.PredictionReport, error)
	SetPredictionReport(ctx context.Context, key string, report *models.PredictionReport) error
}

// AnalyticsService определяет контракт движков кластеризации и прогноза рисков
type AnalyticsService interface {
	ClusterRecentIncidents(ctx context.Context, daysBack int, category *models.IncidentCategory) (*models.ClusterReport, error)
	PredictRiskZones(ctx context.Context, horizonHours int) (*models.PredictionReport, error)
	Summary(ctx context.Context) (*models.AnalyticsSummary, error)
}

// Пределы выборок для запросов к классификатору (ограничение размера запроса)
const (
	clusterSampleLimit    = 20
	predictionSampleLimit = 15
	clusterWindowLimit    = 50
	predictionWindowLimit = 100
	maxFallbackClusters   = 5
	maxFallbackZones      = 6
)

type analyticsService struct {
	incidents IncidentRepository
	gateway   classifier.Gateway
	cache     ReportCache
	logger    *logrus.Logger
}

func NewAnalyticsService(
	incidents IncidentRepository,
	gateway classifier.Gateway,
	cache ReportCache,
	logger *logrus.Logger,
) AnalyticsService {
	return &analyticsService{
		incidents: incidents,
		gateway:   gateway,
		cache:     cache,
		logger:    logger,
	}
}

// ClusterRecentIncidents группирует недавние инциденты в географические кластеры.
// Основной путь - классификатор; любой его сбой или неразбираемый ответ немедленно
// переключает на детерминированную сеточную кластеризацию, без повторных попыток.
func (s *analyticsService) ClusterRecentIncidents(ctx context.Context, daysBack int, category *models.IncidentCategory) (*models.ClusterReport, error) {
	if daysBack < 1 {
		daysBack = 7
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "analytics",
		"method":    "ClusterRecentIncidents",
		"days_back": daysBack,
	})

	cacheKey := fmt.Sprintf("%dd:%s", daysBack, categoryKey(category))
	if cached, err := s.cache.GetClusterReport(ctx, cacheKey); err != nil {
		log.WithError(err).Warn("Cluster report cache unavailable")
	} else if cached != nil {
		log.Info("Cluster report served from cache")
		return cached, nil
	}

	since := time.Now().UTC().AddDate(0, 0, -daysBack)
	incidents, err := s.incidents.ListIncidentsSince(ctx, since, category, clusterWindowLimit)
	if err != nil {
		log.WithError(err).Error("Failed to load incidents for clustering")
		return nil, fmt.Errorf("service: could not load incidents for clustering: %w", err)
	}

	sample := incidentSnapshots(incidents, clusterSampleLimit)

	clusters, err := s.gateway.ClusterIncidents(ctx, sample)
	if err != nil {
		log.WithError(err).Warn("Classifier unavailable, falling back to grid clustering")
		clusters = gridClusters(incidents)
	}

	report := &models.ClusterReport{
		Clusters:               clusters,
		TotalIncidentsAnalyzed: len(incidents),
		AnalysisPeriodDays:     daysBack,
		Timestamp:              time.Now().UTC(),
	}

	if err := s.cache.SetClusterReport(ctx, cacheKey, report); err != nil {
		log.WithError(err).Warn("Failed to cache cluster report")
	}

	log.WithField("clusters", len(clusters)).Info("Cluster report built")
	return report, nil
}

// PredictRiskZones прогнозирует зоны повышенного риска по историческому окну.
// Та же дисциплина запасного пути, что и у кластеризации.
func (s *analyticsService) PredictRiskZones(ctx context.Context, horizonHours int) (*models.PredictionReport, error) {
	if horizonHours < 1 {
		horizonHours = 24
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":       "analytics",
		"method":        "PredictRiskZones",
		"horizon_hours": horizonHours,
	})

	cacheKey := fmt.Sprintf("%dh", horizonHours)
	if cached, err := s.cache.GetPredictionReport(ctx, cacheKey); err != nil {
		log.WithError(err).Warn("Prediction report cache unavailable")
	} else if cached != nil {
		log.Info("Prediction report served from cache")
		return cached, nil
	}

	// Для выявления закономерностей берем окно в 30 дней
	since := time.Now().UTC().AddDate(0, 0, -30)
	incidents, err := s.incidents.ListIncidentsSince(ctx, since, nil, predictionWindowLimit)
	if err != nil {
		log.WithError(err).Error("Failed to load incidents for prediction")
		return nil, fmt.Errorf("service: could not load incidents for prediction: %w", err)
	}

	sample := incidentSnapshots(incidents, predictionSampleLimit)

	zones, err := s.gateway.PredictRiskZones(ctx, sample)
	if err != nil {
		log.WithError(err).Warn("Classifier unavailable, falling back to hotspot predictions")
		zones = fallbackPredictions(incidents)
	}

	report := &models.PredictionReport{
		Predictions:            zones,
		PredictionHorizonHours: horizonHours,
		BasedOnIncidents:       len(incidents),
		GeneratedAt:            time.Now().UTC(),
	}

	if err := s.cache.SetPredictionReport(ctx, cacheKey, report); err != nil {
		log.WithError(err).Warn("Failed to cache prediction report")
	}

	log.WithField("zones", len(zones)).Info("Prediction report built")
	return report, nil
}

// Summary возвращает сводные метрики по инцидентам за сутки и неделю
func (s *analyticsService) Summary(ctx context.Context) (*models.AnalyticsSummary, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "analytics",
		"method":  "Summary",
	})

	now := time.Now().UTC()

	recent, err := s.incidents.ListIncidentsSince(ctx, now.Add(-24*time.Hour), nil, 1000)
	if err != nil {
		log.WithError(err).Error("Failed to load incidents for 24h summary")
		return nil, fmt.Errorf("service: could not load incidents for summary: %w", err)
	}

	weekly, err := s.incidents.ListIncidentsSince(ctx, now.AddDate(0, 0, -7), nil, 1000)
	if err != nil {
		log.WithError(err).Error("Failed to load incidents for 7d summary")
		return nil, fmt.Errorf("service: could not load incidents for summary: %w", err)
	}

	summary := &models.AnalyticsSummary{
		Incidents24h:         len(recent),
		Incidents7d:          len(weekly),
		AvgSeverity24h:       avgSeverity(recent),
		AvgSeverity7d:        avgSeverity(weekly),
		StatusDistribution:   map[string]int{},
		CategoryDistribution: map[string]int{},
	}
	summary.Timestamp = now

	for _, incident := range recent {
		summary.StatusDistribution[string(incident.Status)]++
	}

	categoryCounts := map[string]int{}
	for _, incident := range weekly {
		if incident.Category != nil {
			categoryCounts[string(*incident.Category)]++
		}
	}
	summary.CategoryDistribution = topCategories(categoryCounts, 5)

	return summary, nil
}

// incidentSnapshots переводит инциденты в ограниченную выборку для классификатора
func incidentSnapshots(incidents []*models.Incident, limit int) []classifier.IncidentSnapshot {
	if len(incidents) > limit {
		incidents = incidents[:limit]
	}

	sample := make([]classifier.IncidentSnapshot, 0, len(incidents))
	for _, incident := range incidents {
		snapshot := classifier.IncidentSnapshot{
			ID:            incident.ID,
			PriorityScore: incident.PriorityScore,
			CreatedAt:     incident.CreatedAt.Format(time.RFC3339),
			Status:        string(incident.Status),
			Summary:       incident.Summary,
		}
		if incident.Category != nil {
			snapshot.Category = string(*incident.Category)
		}
		if incident.Call != nil {
			snapshot.LocationLat = incident.Call.LocationLat
			snapshot.LocationLong = incident.Call.LocationLong
		}
		sample = append(sample, snapshot)
	}
	return sample
}

// gridClusters - детерминированная сеточная кластеризация, запасной путь.
// Инциденты в пределах 0.01 градуса по широте И долготе от затравки попадают
// в один кластер. Это фиксированный градусный прямоугольник, не настоящий радиус -
// известное упрощение запасного пути. Кластеры из одного инцидента отбрасываются.
func gridClusters(incidents []*models.Incident) []models.Cluster {
	clusters := make([]models.Cluster, 0)
	assigned := make(map[int]bool)

	for i, incident := range incidents {
		if assigned[i] {
			continue
		}
		seed := incident.Location()
		if seed == nil {
			continue
		}
		assigned[i] = true

		members := []*models.Incident{incident}
		for j := i + 1; j < len(incidents); j++ {
			if assigned[j] {
				continue
			}
			loc := incidents[j].Location()
			if loc == nil {
				continue
			}
			if math.Abs(seed.Lat-loc.Lat) < 0.01 && math.Abs(seed.Lng-loc.Lng) < 0.01 {
				members = append(members, incidents[j])
				assigned[j] = true
			}
		}

		if len(members) < 2 {
			continue
		}

		ids := make([]int64, len(members))
		severitySum := 0
		for k, member := range members {
			ids[k] = member.ID
			severitySum += member.PriorityScore
		}

		cluster := models.Cluster{
			ID:            fmt.Sprintf("cluster_%d", len(clusters)+1),
			Name:          fmt.Sprintf("Incident Cluster %d", len(clusters)+1),
			Centroid:      *seed,
			RadiusMeters:  500,
			IncidentCount: len(members),
			IncidentIDs:   ids,
			// Запасной путь не берется судить о риске тоньше среднего уровня
			RiskLevel:   models.RiskMedium,
			AvgSeverity: float64(severitySum) / float64(len(members)),
		}
		cluster.DominantCategory = members[0].Category
		clusters = append(clusters, cluster)

		if len(clusters) >= maxFallbackClusters {
			break
		}
	}

	return clusters
}

// fallbackPredictions - детерминированный запасной прогноз: по зоне на каждый из
// первых восьми инцидентов с координатами, не больше шести зон на выходе.
func fallbackPredictions(incidents []*models.Incident) []models.PredictionZone {
	zones := make([]models.PredictionZone, 0)

	located := 0
	for _, incident := range incidents {
		if located >= 8 || len(zones) >= maxFallbackZones {
			break
		}
		loc := incident.Location()
		if loc == nil {
			continue
		}
		located++

		categories := []models.IncidentCategory{}
		reason := "Based on recent incident activity"
		if incident.Category != nil {
			categories = append(categories, *incident.Category)
			reason = fmt.Sprintf("Based on recent %s activity", *incident.Category)
		}

		zones = append(zones, models.PredictionZone{
			ID:                  fmt.Sprintf("pred_%d", len(zones)+1),
			Location:            *loc,
			RiskScore:           math.Min(0.9, float64(incident.PriorityScore)/10+0.3),
			PredictedCategories: categories,
			Confidence:          0.6,
			TimeWindow:          "All day",
			Reason:              reason,
		})
	}

	return zones
}

func avgSeverity(incidents []*models.Incident) float64 {
	if len(incidents) == 0 {
		return 0
	}
	sum := 0
	for _, incident := range incidents {
		sum += incident.PriorityScore
	}
	return math.Round(float64(sum)/float64(len(incidents))*10) / 10
}

// topCategories оставляет n самых частых категорий, порядок детерминирован
func topCategories(counts map[string]int, n int) map[string]int {
	type kv struct {
		name  string
		count int
	}
	sorted := make([]kv, 0, len(counts))
	for name, count := range counts {
		sorted = append(sorted, kv{name, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].name < sorted[j].name
	})

	top := make(map[string]int)
	for i, entry := range sorted {
		if i >= n {
			break
		}
		top[entry.name] = entry.count
	}
	return top
}

func categoryKey(category *models.IncidentCategory) string {
	if category == nil {
		return "all"
	}
	return string(*category)
}
