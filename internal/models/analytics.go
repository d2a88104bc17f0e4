package models

import "time"

// RiskLevel - уровень риска кластера
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Cluster - производная географическая группа инцидентов.
// Никогда не сохраняется, пересчитывается на каждый запрос.
type Cluster struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Centroid         Coordinate        `json:"centroid"`
	RadiusMeters     int               `json:"radius"`
	IncidentCount    int               `json:"incident_count"`
	IncidentIDs      []int64           `json:"incident_ids"`
	DominantCategory *IncidentCategory `json:"dominant_category,omitempty"`
	RiskLevel        RiskLevel         `json:"risk_level"`
	AvgSeverity      float64           `json:"avg_severity"`
}

// PredictionZone - производная зона повышенного риска на ближайший горизонт
type PredictionZone struct {
	ID                  string             `json:"id"`
	Location            Coordinate         `json:"location"`
	RiskScore           float64            `json:"risk_score"`
	PredictedCategories []IncidentCategory `json:"predicted_categories"`
	Confidence          float64            `json:"confidence"`
	TimeWindow          string             `json:"time_window"`
	Reason              string             `json:"reason"`
}

// ClusterReport - результат кластеризации вместе с метаданными выборки
type ClusterReport struct {
	Clusters               []Cluster `json:"clusters"`
	TotalIncidentsAnalyzed int       `json:"total_incidents_analyzed"`
	AnalysisPeriodDays     int       `json:"analysis_period_days"`
	Timestamp              time.Time `json:"timestamp"`
}

// PredictionReport - результат прогноза зон риска
type PredictionReport struct {
	Predictions            []PredictionZone `json:"predictions"`
	PredictionHorizonHours int              `json:"prediction_horizon_hours"`
	BasedOnIncidents       int              `json:"based_on_incidents"`
	GeneratedAt            time.Time        `json:"generated_at"`
}

// AnalyticsSummary - сводные метрики по инцидентам за последние сутки и неделю
type AnalyticsSummary struct {
	Incidents24h         int            `json:"incidents_24h"`
	Incidents7d          int            `json:"incidents_7d"`
	AvgSeverity24h       float64        `json:"avg_severity_24h"`
	AvgSeverity7d        float64        `json:"avg_severity_7d"`
	StatusDistribution   map[string]int `json:"status_distribution"`
	CategoryDistribution map[string]int `json:"category_distribution"`
	Timestamp            time.Time      `json:"timestamp"`
}
