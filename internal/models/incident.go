package models

import (
	"time"
)

// IncidentStatus - статус жизненного цикла инцидента
type IncidentStatus string

const (
	IncidentPending    IncidentStatus = "pending"
	IncidentDispatched IncidentStatus = "dispatched"
	IncidentResolved   IncidentStatus = "resolved"
)

// ParseIncidentStatus разбирает строку в IncidentStatus.
// Возвращает false для неизвестного значения, решение об ошибке принимает вызывающий.
func ParseIncidentStatus(s string) (IncidentStatus, bool) {
	switch IncidentStatus(s) {
	case IncidentPending, IncidentDispatched, IncidentResolved:
		return IncidentStatus(s), true
	}
	return "", false
}

// IncidentCategory - категория инцидента из закрытого набора
type IncidentCategory string

const (
	CategoryFire               IncidentCategory = "fire"
	CategoryMedicalEmergency   IncidentCategory = "medical_emergency"
	CategoryTrafficAccident    IncidentCategory = "traffic_accident"
	CategoryCrimeInProgress    IncidentCategory = "crime_in_progress"
	CategoryDomesticViolence   IncidentCategory = "domestic_violence"
	CategoryAssault            IncidentCategory = "assault"
	CategoryBurglary           IncidentCategory = "burglary"
	CategoryRobbery            IncidentCategory = "robbery"
	CategorySuspiciousActivity IncidentCategory = "suspicious_activity"
	CategoryMissingPerson      IncidentCategory = "missing_person"
	CategoryOverdose           IncidentCategory = "overdose"
	CategoryNaturalDisaster    IncidentCategory = "natural_disaster"
	CategoryHazardousMaterial  IncidentCategory = "hazardous_material"
	CategoryPublicDisturbance  IncidentCategory = "public_disturbance"
	CategoryWelfareCheck       IncidentCategory = "welfare_check"
)

// AllCategories - полный список категорий, используется в промпте классификатора
var AllCategories = []IncidentCategory{
	CategoryFire,
	CategoryMedicalEmergency,
	CategoryTrafficAccident,
	CategoryCrimeInProgress,
	CategoryDomesticViolence,
	CategoryAssault,
	CategoryBurglary,
	CategoryRobbery,
	CategorySuspiciousActivity,
	CategoryMissingPerson,
	CategoryOverdose,
	CategoryNaturalDisaster,
	CategoryHazardousMaterial,
	CategoryPublicDisturbance,
	CategoryWelfareCheck,
}

// ParseIncidentCategory разбирает строку в IncidentCategory
func ParseIncidentCategory(s string) (IncidentCategory, bool) {
	for _, c := range AllCategories {
		if IncidentCategory(s) == c {
			return c, true
		}
	}
	return "", false
}

// EmergencyCall - запись об исходном вызове, породившем инцидент
type EmergencyCall struct {
	CallID        int64     `json:"call_id"`
	Timestamp     time.Time `json:"timestamp"`
	CallerPhone   string    `json:"caller_phone,omitempty"`
	RawTranscript string    `json:"raw_transcript"`
	MediaURL      string    `json:"media_url,omitempty"`
	LocationLat   *float64  `json:"location_lat,omitempty"`
	LocationLong  *float64  `json:"location_long,omitempty"`
}

// Location возвращает координаты вызова, если они известны
func (c *EmergencyCall) Location() *Coordinate {
	if c == nil || c.LocationLat == nil || c.LocationLong == nil {
		return nil
	}
	return &Coordinate{Lat: *c.LocationLat, Lng: *c.LocationLong}
}

// Incident - инцидент, требующий реагирования. Статусом владеет координатор диспетчеризации.
type Incident struct {
	ID            int64             `json:"id"`
	CallID        int64             `json:"call_id"`
	Status        IncidentStatus    `json:"status"`
	PriorityScore int               `json:"priority_score"`
	Category      *IncidentCategory `json:"category,omitempty"`
	Summary       string            `json:"summary,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	Call          *EmergencyCall    `json:"call,omitempty"`
}

// Location возвращает координаты инцидента из связанного вызова
func (i *Incident) Location() *Coordinate {
	if i == nil {
		return nil
	}
	return i.Call.Location()
}

// IncidentFilter - фильтр для выборки инцидентов. nil-поле означает отсутствие фильтра.
type IncidentFilter struct {
	Category *IncidentCategory
	Status   *IncidentStatus
}
