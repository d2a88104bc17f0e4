package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/sirupsen/logrus"
)

// systemPrompt - системный промпт для классификации описания инцидента
const systemPrompt = `You are an expert emergency response dispatcher AI. Your task is to analyze incoming incident descriptions and extract structured information.
You must output a JSON object with the following fields:
1. "priority_score": An integer from 1 to 10 indicating the severity (10 being most critical/life-threatening).
2. "category": The most appropriate category from the following list: %s.
3. "summary": A concise, factual summary of the incident (max 15 words) suitable for a quick notification.

If the input is unclear or doesn't match a clear emergency, make a best guess but keep priority appropriate.
Ensure strict JSON format.`

// GroqGateway - адаптер Gateway поверх OpenAI-совместимого chat completions API.
// Один запрос на вызов, без повторов: при любом сбое вызывающая сторона
// немедленно уходит на запасной путь.
type GroqGateway struct {
	client *resty.Client
	model  string
	logger *logrus.Logger
}

// NewGroqGateway создает адаптер классификатора.
// Таймаут ограничивает каждый вызов целиком, включая установку соединения.
func NewGroqGateway(baseURL, apiKey, model string, timeout time.Duration, logger *logrus.Logger) *GroqGateway {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(timeout).
		SetRetryCount(0)

	return &GroqGateway{
		client: client,
		model:  model,
		logger: logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete выполняет один запрос к chat completions API и возвращает текст ответа
func (g *GroqGateway) complete(ctx context.Context, req chatRequest) (string, error) {
	var result chatResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%w: request failed: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", ErrUnavailable)
	}
	return result.Choices[0].Message.Content, nil
}

// stripJSONFence убирает обертку ```json ... ``` из ответа модели.
// Детали извлечения JSON - забота адаптера, координатор получает уже разобранные структуры.
func stripJSONFence(s string) string {
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
	}
	return strings.TrimSpace(s)
}

// ClassifyIncident анализирует описание инцидента и возвращает приоритет, категорию и сводку
func (g *GroqGateway) ClassifyIncident(ctx context.Context, description string) (*Classification, error) {
	categories := make([]string, len(models.AllCategories))
	for i, c := range models.AllCategories {
		categories[i] = string(c)
	}

	content, err := g.complete(ctx, chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: fmt.Sprintf(systemPrompt, strings.Join(categories, ", "))},
			{Role: "user", Content: description},
		},
		Temperature:    0.1,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	var result Classification
	if err := json.Unmarshal([]byte(stripJSONFence(content)), &result); err != nil {
		return nil, fmt.Errorf("%w: malformed classification: %v", ErrUnavailable, err)
	}

	// Значения вне контракта считаем сбоем классификатора, а не данными
	if result.PriorityScore < 1 || result.PriorityScore > 10 {
		return nil, fmt.Errorf("%w: priority_score %d out of range", ErrUnavailable, result.PriorityScore)
	}
	if _, ok := models.ParseIncidentCategory(result.Category); !ok {
		return nil, fmt.Errorf("%w: unknown category %q", ErrUnavailable, result.Category)
	}

	return &result, nil
}

// RecommendUnit возвращает рекомендованный тип единицы реагирования для инцидента
func (g *GroqGateway) RecommendUnit(ctx context.Context, incident IncidentContext) (*UnitRecommendation, error) {
	prompt := fmt.Sprintf(`You are an emergency dispatch advisor. Given the incident below, pick the single best responder type.

Incident description: %s
Category: %s
Priority: %d

Return a JSON object with this exact format:
{"recommended_type": "police|fire|medical", "reasoning": "one sentence explaining the choice"}

Only respond with valid JSON.`, incident.Description, incident.Category, incident.Priority)

	content, err := g.complete(ctx, chatRequest{
		Model:          g.model,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		Temperature:    0.1,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	var result UnitRecommendation
	if err := json.Unmarshal([]byte(stripJSONFence(content)), &result); err != nil {
		return nil, fmt.Errorf("%w: malformed recommendation: %v", ErrUnavailable, err)
	}
	if _, ok := models.ParseResponderType(result.RecommendedType); !ok {
		return nil, fmt.Errorf("%w: unknown responder type %q", ErrUnavailable, result.RecommendedType)
	}

	return &result, nil
}

// DetailedAnalysis возвращает развернутые оперативные указания по инциденту
func (g *GroqGateway) DetailedAnalysis(ctx context.Context, incident IncidentContext) (*OperationalPlan, error) {
	prompt := fmt.Sprintf(`You are an emergency operations planner. Produce a detailed operational analysis for the incident below.

Incident description: %s
Category: %s
Priority: %d

Return a JSON object with this exact format:
{
    "situation": "short situation assessment",
    "equipment": ["list of required equipment"],
    "responder_counts": {"police": 0, "fire": 0, "medical": 0},
    "rescue_type": "type of rescue operation",
    "instructions": ["ordered list of operational instructions"]
}

Only respond with valid JSON.`, incident.Description, incident.Category, incident.Priority)

	content, err := g.complete(ctx, chatRequest{
		Model:          g.model,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		Temperature:    0.2,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	var result OperationalPlan
	if err := json.Unmarshal([]byte(stripJSONFence(content)), &result); err != nil {
		return nil, fmt.Errorf("%w: malformed operational plan: %v", ErrUnavailable, err)
	}

	return &result, nil
}

// ClusterIncidents просит модель сгруппировать выборку инцидентов в 3-5 кластеров
func (g *GroqGateway) ClusterIncidents(ctx context.Context, sample []IncidentSnapshot) ([]models.Cluster, error) {
	data, err := json.Marshal(sample)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal sample: %v", ErrUnavailable, err)
	}

	prompt := fmt.Sprintf(`Analyze the following emergency incidents and create intelligent clusters based on:
1. Geographic proximity (lat/lng)
2. Incident type/category similarity
3. Time patterns
4. Severity scores

Incidents data:
%s

Return a JSON array of clusters with this exact format:
[
    {
        "id": "cluster_1",
        "name": "Downtown Fire Cluster",
        "centroid": {"lat": 40.7128, "lng": -74.0060},
        "radius": 1000,
        "incident_count": 3,
        "incident_ids": [1, 2, 3],
        "dominant_category": "fire",
        "risk_level": "high",
        "avg_severity": 8.5
    }
]

Create 3-5 meaningful clusters maximum. Only respond with valid JSON.`, data)

	content, err := g.complete(ctx, chatRequest{
		Model:       g.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, err
	}

	var clusters []models.Cluster
	if err := json.Unmarshal([]byte(stripJSONFence(content)), &clusters); err != nil {
		return nil, fmt.Errorf("%w: malformed clusters: %v", ErrUnavailable, err)
	}

	return clusters, nil
}

// PredictRiskZones просит модель спрогнозировать 5-8 зон риска по историческим данным
func (g *GroqGateway) PredictRiskZones(ctx context.Context, sample []IncidentSnapshot) ([]models.PredictionZone, error) {
	data, err := json.Marshal(sample)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal sample: %v", ErrUnavailable, err)
	}

	prompt := fmt.Sprintf(`Based on this historical emergency incident data, predict high-risk zones for the next 24-48 hours.
Consider:
1. Historical patterns and hotspots
2. Time of day trends
3. Category-specific patterns
4. Seasonal factors

Historical data sample:
%s

Return a JSON array of prediction zones with this exact format:
[
    {
        "id": "pred_1",
        "location": {"lat": 40.7128, "lng": -74.0060},
        "risk_score": 0.85,
        "predicted_categories": ["fire", "medical_emergency"],
        "confidence": 0.75,
        "time_window": "18:00-22:00",
        "reason": "Historical high incident rate in this area during evening hours"
    }
]

Generate 5-8 prediction points covering different risk levels. Only respond with valid JSON.`, data)

	content, err := g.complete(ctx, chatRequest{
		Model:       g.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.4,
	})
	if err != nil {
		return nil, err
	}

	var zones []models.PredictionZone
	if err := json.Unmarshal([]byte(stripJSONFence(content)), &zones); err != nil {
		return nil, fmt.Errorf("%w: malformed prediction zones: %v", ErrUnavailable, err)
	}

	return zones, nil
}
