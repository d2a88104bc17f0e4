package v1

import (
	"github.com/shenikar/emergency_dispatch_system/internal/models"
)

// toCallResponse маппит модель вызова в DTO ответа
func toCallResponse(call *models.EmergencyCall) *CallResponse {
	if call == nil {
		return nil
	}
	return &CallResponse{
		CallID:        call.CallID,
		Timestamp:     call.Timestamp,
		CallerPhone:   call.CallerPhone,
		RawTranscript: call.RawTranscript,
		MediaURL:      call.MediaURL,
		LocationLat:   call.LocationLat,
		LocationLong:  call.LocationLong,
	}
}

// toIncidentResponse маппит модель инцидента в DTO ответа
func toIncidentResponse(incident *models.Incident) *IncidentResponse {
	resp := &IncidentResponse{
		ID:            incident.ID,
		CallID:        incident.CallID,
		Status:        string(incident.Status),
		PriorityScore: incident.PriorityScore,
		Summary:       incident.Summary,
		CreatedAt:     incident.CreatedAt,
		Call:          toCallResponse(incident.Call),
	}
	if incident.Category != nil {
		resp.Category = string(*incident.Category)
	}
	return resp
}

// toIncidentResponses маппит список инцидентов в DTO ответа
func toIncidentResponses(incidents []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, 0, len(incidents))
	for _, incident := range incidents {
		responses = append(responses, toIncidentResponse(incident))
	}
	return responses
}

// toResponderResponse маппит модель единицы реагирования в DTO ответа
func toResponderResponse(responder *models.Responder) *ResponderResponse {
	return &ResponderResponse{
		ID:                responder.ID,
		Name:              responder.Name,
		Type:              string(responder.Type),
		Status:            string(responder.Status),
		Latitude:          responder.Latitude,
		Longitude:         responder.Longitude,
		CurrentIncidentID: responder.CurrentIncidentID,
	}
}

// toNearbyResponses маппит результаты поиска ближайших единиц в DTO ответа
func toNearbyResponses(nearby []models.NearbyResponder) []*NearbyResponderResponse {
	responses := make([]*NearbyResponderResponse, 0, len(nearby))
	for _, n := range nearby {
		responses = append(responses, &NearbyResponderResponse{
			Responder:  toResponderResponse(n.Responder),
			DistanceKm: n.DistanceKm,
		})
	}
	return responses
}
