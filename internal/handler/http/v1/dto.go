package v1

import (
	"time"
)

// LocationDTO - координаты в запросах и ответах
// @Description Географические координаты
type LocationDTO struct {
	Lat float64 `json:"lat" validate:"required,latitude"`
	Lng float64 `json:"lng" validate:"required,longitude"`
}

// CreateIncidentRequest DTO для приема нового инцидента
// @Description DTO для приема нового инцидента
type CreateIncidentRequest struct {
	Description string       `json:"description" validate:"required,min=3"`
	Location    *LocationDTO `json:"location,omitempty" validate:"omitempty"`
	ReporterID  string       `json:"reporter_id,omitempty"`
	MediaURL    string       `json:"media_url,omitempty"`
}

// UpdateIncidentRequest DTO для частичного обновления инцидента.
// Отсутствующее поле не меняет текущее значение.
// @Description DTO для частичного обновления инцидента
type UpdateIncidentRequest struct {
	Status        *string `json:"status,omitempty"`
	PriorityScore *int    `json:"priority_score,omitempty"`
}

// CallResponse DTO для ответа с данными исходного вызова
// @Description DTO для ответа с данными исходного вызова
type CallResponse struct {
	CallID        int64     `json:"call_id"`
	Timestamp     time.Time `json:"timestamp"`
	CallerPhone   string    `json:"caller_phone,omitempty"`
	RawTranscript string    `json:"raw_transcript"`
	MediaURL      string    `json:"media_url,omitempty"`
	LocationLat   *float64  `json:"location_lat,omitempty"`
	LocationLong  *float64  `json:"location_long,omitempty"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID            int64         `json:"id"`
	CallID        int64         `json:"call_id"`
	Status        string        `json:"status"`
	PriorityScore int           `json:"priority_score"`
	Category      string        `json:"category,omitempty"`
	Summary       string        `json:"summary,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	Call          *CallResponse `json:"call,omitempty"`
}

// ResponderResponse DTO для ответа с информацией о единице реагирования
// @Description DTO для ответа с информацией о единице реагирования
type ResponderResponse struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Type              string   `json:"type"`
	Status            string   `json:"status"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	CurrentIncidentID *int64   `json:"current_incident_id,omitempty"`
}

// NearbyResponderResponse DTO для результата поиска ближайших единиц
// @Description Единица реагирования с дистанцией до точки поиска
type NearbyResponderResponse struct {
	Responder  *ResponderResponse `json:"responder"`
	DistanceKm float64            `json:"distance_km"`
}

// DispatchRequest DTO для назначения единицы на инцидент
// @Description DTO для назначения единицы на инцидент
type DispatchRequest struct {
	ResponderID int64 `json:"responder_id" validate:"required,gt=0"`
	IncidentID  int64 `json:"incident_id" validate:"required,gt=0"`
}

// RecallRequest DTO для завершения выезда единицы
// @Description DTO для завершения выезда единицы
type RecallRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=return_to_idle mark_busy"`
}

// LocationUpdateRequest DTO для обновления координат единицы
// @Description DTO для обновления координат единицы
type LocationUpdateRequest struct {
	Latitude  float64 `json:"latitude" validate:"required,latitude"`
	Longitude float64 `json:"longitude" validate:"required,longitude"`
}

// RecommendRequest DTO для запроса рекомендации типа единицы
// @Description DTO для запроса рекомендации типа единицы
type RecommendRequest struct {
	IncidentID int64 `json:"incident_id" validate:"required,gt=0"`
}

// RecommendationResponse DTO для ответа с рекомендацией
// @Description DTO для ответа с рекомендацией типа единицы
type RecommendationResponse struct {
	RecommendedType string `json:"recommended_type"`
	Reasoning       string `json:"reasoning"`
}

// SeedResponse DTO для ответа на наполнение демонстрационными единицами
// @Description DTO для ответа на наполнение демонстрационными единицами
type SeedResponse struct {
	Message string `json:"message"`
	Created int    `json:"created"`
}
