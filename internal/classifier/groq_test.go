package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCompletionServer поднимает тестовый chat completions API, отвечающий заданным содержимым
func newCompletionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Authorization"), "Bearer ")

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func newTestGateway(serverURL string) *GroqGateway {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewGroqGateway(serverURL, "test-key", "test-model", 5*time.Second, logger)
}

func TestStripJSONFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "без обертки",
			input:    `{"priority_score": 5}`,
			expected: `{"priority_score": 5}`,
		},
		{
			name:     "json обертка",
			input:    "Here you go:\n```json\n{\"priority_score\": 5}\n```",
			expected: `{"priority_score": 5}`,
		},
		{
			name:     "обертка без языка",
			input:    "```\n{\"priority_score\": 5}\n```",
			expected: `{"priority_score": 5}`,
		},
		{
			name:     "пробелы по краям",
			input:    "  {\"priority_score\": 5}  ",
			expected: `{"priority_score": 5}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripJSONFence(tt.input))
		})
	}
}

func TestClassifyIncident_Success(t *testing.T) {
	// Подготовка
	server := newCompletionServer(t, `{"priority_score": 9, "category": "fire", "summary": "Structure fire with trapped occupants"}`)
	defer server.Close()
	gateway := newTestGateway(server.URL)

	// Действие
	classification, err := gateway.ClassifyIncident(context.Background(), "Building on fire, people trapped")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 9, classification.PriorityScore)
	assert.Equal(t, "fire", classification.Category)
	assert.Equal(t, "Structure fire with trapped occupants", classification.Summary)
}

func TestClassifyIncident_FencedResponse(t *testing.T) {
	// Подготовка: модель обернула JSON в markdown-блок
	server := newCompletionServer(t, "```json\n{\"priority_score\": 4, \"category\": \"welfare_check\", \"summary\": \"Neighbor check requested\"}\n```")
	defer server.Close()
	gateway := newTestGateway(server.URL)

	// Действие
	classification, err := gateway.ClassifyIncident(context.Background(), "Check on elderly neighbor")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 4, classification.PriorityScore)
	assert.Equal(t, "welfare_check", classification.Category)
}

func TestClassifyIncident_PriorityOutOfRange(t *testing.T) {
	// Подготовка
	server := newCompletionServer(t, `{"priority_score": 15, "category": "fire", "summary": "x"}`)
	defer server.Close()
	gateway := newTestGateway(server.URL)

	// Действие
	classification, err := gateway.ClassifyIncident(context.Background(), "something")

	// Проверки: значение вне контракта - сбой классификатора, не данные
	require.Error(t, err)
	assert.Nil(t, classification)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClassifyIncident_UnknownCategory(t *testing.T) {
	// Подготовка
	server := newCompletionServer(t, `{"priority_score": 5, "category": "alien_invasion", "summary": "x"}`)
	defer server.Close()
	gateway := newTestGateway(server.URL)

	// Действие
	classification, err := gateway.ClassifyIncident(context.Background(), "something")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, classification)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClassifyIncident_MalformedJSON(t *testing.T) {
	// Подготовка
	server := newCompletionServer(t, "I think this is probably a fire.")
	defer server.Close()
	gateway := newTestGateway(server.URL)

	// Действие
	classification, err := gateway.ClassifyIncident(context.Background(), "something")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, classification)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClassifyIncident_ServerError(t *testing.T) {
	// Подготовка
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()
	gateway := newTestGateway(server.URL)

	// Действие
	classification, err := gateway.ClassifyIncident(context.Background(), "something")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, classification)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClassifyIncident_EmptyChoices(t *testing.T) {
	// Подготовка
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices": []}`)
	}))
	defer server.Close()
	gateway := newTestGateway(server.URL)

	// Действие
	classification, err := gateway.ClassifyIncident(context.Background(), "something")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, classification)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRecommendUnit_Success(t *testing.T) {
	// Подготовка
	server := newCompletionServer(t, `{"recommended_type": "medical", "reasoning": "Cardiac arrest requires paramedics"}`)
	defer server.Close()
	gateway := newTestGateway(server.URL)

	// Действие
	recommendation, err := gateway.RecommendUnit(context.Background(), IncidentContext{
		Description: "Cardiac arrest",
		Category:    "medical_emergency",
		Priority:    9,
	})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "medical", recommendation.RecommendedType)
	assert.Equal(t, "Cardiac arrest requires paramedics", recommendation.Reasoning)
}

func TestRecommendUnit_UnknownType(t *testing.T) {
	// Подготовка
	server := newCompletionServer(t, `{"recommended_type": "swat", "reasoning": "x"}`)
	defer server.Close()
	gateway := newTestGateway(server.URL)

	// Действие
	recommendation, err := gateway.RecommendUnit(context.Background(), IncidentContext{Description: "x"})

	// Проверки
	require.Error(t, err)
	assert.Nil(t, recommendation)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDetailedAnalysis_Success(t *testing.T) {
	// Подготовка
	server := newCompletionServer(t, `{
		"situation": "Major structure fire",
		"equipment": ["ladder truck", "breathing apparatus"],
		"responder_counts": {"police": 2, "fire": 4, "medical": 2},
		"rescue_type": "fire suppression",
		"instructions": ["Establish perimeter", "Begin evacuation"]
	}`)
	defer server.Close()
	gateway := newTestGateway(server.URL)

	// Действие
	plan, err := gateway.DetailedAnalysis(context.Background(), IncidentContext{
		Description: "Building fire",
		Category:    "fire",
		Priority:    9,
	})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "Major structure fire", plan.Situation)
	assert.Equal(t, 4, plan.ResponderCounts["fire"])
	assert.Len(t, plan.Instructions, 2)
}

func TestClusterIncidents_Success(t *testing.T) {
	// Подготовка
	server := newCompletionServer(t, `[
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
	]`)
	defer server.Close()
	gateway := newTestGateway(server.URL)

	sample := []IncidentSnapshot{
		{ID: 1, PriorityScore: 8, Status: "pending", Category: "fire"},
	}

	// Действие
	clusters, err := gateway.ClusterIncidents(context.Background(), sample)

	// Проверки
	require.NoError(t, err)
	require.Len(t, clusters, 1)
	assert.Equal(t, "cluster_1", clusters[0].ID)
	assert.Equal(t, 40.7128, clusters[0].Centroid.Lat)
	assert.Equal(t, []int64{1, 2, 3}, clusters[0].IncidentIDs)
}

func TestPredictRiskZones_Success(t *testing.T) {
	// Подготовка
	server := newCompletionServer(t, `[
		{
			"id": "pred_1",
			"location": {"lat": 40.7128, "lng": -74.0060},
			"risk_score": 0.85,
			"predicted_categories": ["fire", "medical_emergency"],
			"confidence": 0.75,
			"time_window": "18:00-22:00",
			"reason": "Historical high incident rate"
		}
	]`)
	defer server.Close()
	gateway := newTestGateway(server.URL)

	// Действие
	zones, err := gateway.PredictRiskZones(context.Background(), []IncidentSnapshot{{ID: 1}})

	// Проверки
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, 0.85, zones[0].RiskScore)
	assert.Len(t, zones[0].PredictedCategories, 2)
	assert.Equal(t, "18:00-22:00", zones[0].TimeWindow)
}
