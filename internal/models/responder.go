package models

// ResponderStatus - статус полевой единицы
type ResponderStatus string

const (
	ResponderIdle       ResponderStatus = "idle"
	ResponderDispatched ResponderStatus = "dispatched"
	ResponderBusy       ResponderStatus = "busy"
)

// ResponderType - тип полевой единицы, неизменяем после создания
type ResponderType string

const (
	ResponderPolice  ResponderType = "police"
	ResponderFire    ResponderType = "fire"
	ResponderMedical ResponderType = "medical"
)

// ParseResponderType разбирает строку в ResponderType
func ParseResponderType(s string) (ResponderType, bool) {
	switch ResponderType(s) {
	case ResponderPolice, ResponderFire, ResponderMedical:
		return ResponderType(s), true
	}
	return "", false
}

// Responder - полевая единица (полиция/пожарные/медики).
// CurrentIncidentID не nil тогда и только тогда, когда статус отличен от idle.
type Responder struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Type              ResponderType   `json:"type"`
	Status            ResponderStatus `json:"status"`
	Latitude          *float64        `json:"latitude,omitempty"`
	Longitude         *float64        `json:"longitude,omitempty"`
	CurrentIncidentID *int64          `json:"current_incident_id,omitempty"`
}

// Location возвращает последние известные координаты единицы
func (r *Responder) Location() *Coordinate {
	if r == nil || r.Latitude == nil || r.Longitude == nil {
		return nil
	}
	return &Coordinate{Lat: *r.Latitude, Lng: *r.Longitude}
}

// NearbyResponder - результат поиска ближайших единиц: единица плюс вычисленная дистанция.
// Дистанция не хранится на самой единице, это производное значение одного запроса.
type NearbyResponder struct {
	Responder  *Responder `json:"responder"`
	DistanceKm float64    `json:"distance_km"`
}
