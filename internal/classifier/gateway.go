package classifier

import (
	"context"
	"errors"

	"github.com/shenikar/emergency_dispatch_system/internal/models"
)

// ErrUnavailable - классификатор недоступен или вернул неразбираемый ответ.
// Сервисный слой никогда не отдает эту ошибку наружу, а подставляет
// детерминированное запасное значение.
var ErrUnavailable = errors.New("classifier unavailable")

// Classification - результат анализа текста инцидента
type Classification struct {
	PriorityScore int    `json:"priority_score"`
	Category      string `json:"category"`
	Summary       string `json:"summary"`
}

// IncidentContext - контекст инцидента для рекомендаций по диспетчеризации
type IncidentContext struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    int    `json:"priority"`
}

// UnitRecommendation - рекомендованный тип единицы реагирования
type UnitRecommendation struct {
	RecommendedType string `json:"recommended_type"`
	Reasoning       string `json:"reasoning"`
}

// OperationalPlan - развернутые оперативные указания по инциденту
type OperationalPlan struct {
	Situation       string         `json:"situation"`
	Equipment       []string       `json:"equipment"`
	ResponderCounts map[string]int `json:"responder_counts"`
	RescueType      string         `json:"rescue_type"`
	Instructions    []string       `json:"instructions"`
}

// IncidentSnapshot - ограниченный снимок инцидента для аналитических запросов.
// Размер выборки ограничивает вызывающая сторона.
type IncidentSnapshot struct {
	ID            int64    `json:"id"`
	Category      string   `json:"category,omitempty"`
	PriorityScore int      `json:"priority_score"`
	CreatedAt     string   `json:"created_at"`
	Status        string   `json:"status"`
	Summary       string   `json:"summary,omitempty"`
	LocationLat   *float64 `json:"location_lat,omitempty"`
	LocationLong  *float64 `json:"location_long,omitempty"`
}

// Gateway определяет контракт внешнего сервиса классификации.
// Каждый вызов выполняется ровно один раз с ограниченным таймаутом;
// реализация обязана вернуть либо валидный разобранный результат,
// либо ошибку, оборачивающую ErrUnavailable.
type Gateway interface {
	ClassifyIncident(ctx context.Context, description string) (*Classification, error)
	RecommendUnit(ctx context.Context, incident IncidentContext) (*UnitRecommendation, error)
	DetailedAnalysis(ctx context.Context, incident IncidentContext) (*OperationalPlan, error)
	ClusterIncidents(ctx context.Context, sample []IncidentSnapshot) ([]models.Cluster, error)
	PredictRiskZones(ctx context.Context, sample []IncidentSnapshot) ([]models.PredictionZone, error)
}
