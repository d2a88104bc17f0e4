package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
)

type IncidentRepository struct {
	db *pgxpool.Pool
}

func NewIncidentRepository(db *pgxpool.Pool) service.IncidentRepository {
	return &IncidentRepository{
		db: db,
	}
}

// incidentColumns - общий список полей для выборок инцидента вместе с вызовом
const incidentColumns = `
	i.id,
	i.call_id,
	i.status,
	i.priority_score,
	i.category,
	i.summary,
	i.created_at,
	c.timestamp,
	c.caller_phone,
	c.raw_transcript,
	c.media_url,
	c.location_lat,
	c.location_long
`

// scanIncident читает одну строку выборки в модель инцидента со вложенным вызовом
func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{Call: &models.EmergencyCall{}}
	var (
		status      string
		category    *string
		summary     *string
		callerPhone *string
		mediaURL    *string
	)

	err := row.Scan(
		&incident.ID,
		&incident.CallID,
		&status,
		&incident.PriorityScore,
		&category,
		&summary,
		&incident.CreatedAt,
		&incident.Call.Timestamp,
		&callerPhone,
		&incident.Call.RawTranscript,
		&mediaURL,
		&incident.Call.LocationLat,
		&incident.Call.LocationLong,
	)
	if err != nil {
		return nil, err
	}

	incident.Status = models.IncidentStatus(status)
	if category != nil {
		c := models.IncidentCategory(*category)
		incident.Category = &c
	}
	if summary != nil {
		incident.Summary = *summary
	}
	if callerPhone != nil {
		incident.Call.CallerPhone = *callerPhone
	}
	if mediaURL != nil {
		incident.Call.MediaURL = *mediaURL
	}
	incident.Call.CallID = incident.CallID
	return incident, nil
}

// CreateIncident создает запись о вызове и связанный с ней инцидент в одной транзакции.
// Частичная запись (вызов без инцидента) не должна быть видна никому.
func (r *IncidentRepository) CreateIncident(ctx context.Context, call *models.EmergencyCall, incident *models.Incident) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin intake transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	callQuery := `
		INSERT INTO emergency_calls (caller_phone, raw_transcript, media_url, location_lat, location_long)
		VALUES (NULLIF($1, ''), $2, NULLIF($3, ''), $4, $5) RETURNING call_id, timestamp;
	`
	err = tx.QueryRow(ctx, callQuery,
		call.CallerPhone,
		call.RawTranscript,
		call.MediaURL,
		call.LocationLat,
		call.LocationLong,
	).Scan(&call.CallID, &call.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to create emergency call: %w", err)
	}

	var category *string
	if incident.Category != nil {
		c := string(*incident.Category)
		category = &c
	}

	incidentQuery := `
		INSERT INTO incidents (call_id, status, priority_score, category, summary)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at;
	`
	err = tx.QueryRow(ctx, incidentQuery,
		call.CallID,
		string(incident.Status),
		incident.PriorityScore,
		category,
		incident.Summary,
	).Scan(&incident.ID, &incident.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit intake transaction: %w", err)
	}

	incident.CallID = call.CallID
	incident.Call = call
	return nil
}

// GetIncidentByID возвращает инцидент по id вместе с исходным вызовом
func (r *IncidentRepository) GetIncidentByID(ctx context.Context, id int64) (*models.Incident, error) {
	query := `
		SELECT ` + incidentColumns + `
		FROM incidents i
		JOIN emergency_calls c ON c.call_id = i.call_id
		WHERE i.id = $1;
	`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident %d: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// UpdateIncident перезаписывает изменяемые поля инцидента
func (r *IncidentRepository) UpdateIncident(ctx context.Context, incident *models.Incident) error {
	var category *string
	if incident.Category != nil {
		c := string(*incident.Category)
		category = &c
	}

	query := `
		UPDATE incidents SET
			status = $1,
			priority_score = $2,
			category = $3,
			summary = $4
		WHERE id = $5;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		string(incident.Status),
		incident.PriorityScore,
		category,
		incident.Summary,
		incident.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update incident: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("incident %d: %w", incident.ID, service.ErrNotFound)
	}
	return nil
}

// ListIncidents возвращает страницу инцидентов в порядке триажа:
// приоритет по убыванию, при равном приоритете - раньше созданные первыми.
func (r *IncidentRepository) ListIncidents(ctx context.Context, filter models.IncidentFilter, page, pageSize int) ([]*models.Incident, error) {
	offset := (page - 1) * pageSize

	query := `
		SELECT ` + incidentColumns + `
		FROM incidents i
		JOIN emergency_calls c ON c.call_id = i.call_id
		WHERE ($1::text IS NULL OR i.category = $1)
		  AND ($2::text IS NULL OR i.status = $2)
		ORDER BY i.priority_score DESC, i.created_at ASC
		LIMIT $3 OFFSET $4;
	`

	var category, status *string
	if filter.Category != nil {
		c := string(*filter.Category)
		category = &c
	}
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}

	rows, err := r.db.Query(ctx, query, category, status, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, nil
}

// ListIncidentsSince возвращает инциденты не старше указанного момента,
// свежие первыми. Используется аналитикой для выборки исторического окна.
func (r *IncidentRepository) ListIncidentsSince(ctx context.Context, since time.Time, category *models.IncidentCategory, limit int) ([]*models.Incident, error) {
	query := `
		SELECT ` + incidentColumns + `
		FROM incidents i
		JOIN emergency_calls c ON c.call_id = i.call_id
		WHERE i.created_at >= $1
		  AND ($2::text IS NULL OR i.category = $2)
		ORDER BY i.created_at DESC
		LIMIT $3;
	`

	var cat *string
	if category != nil {
		c := string(*category)
		cat = &c
	}

	rows, err := r.db.Query(ctx, query, since, cat, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents since %s: %w", since.Format(time.RFC3339), err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row in ListIncidentsSince: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in ListIncidentsSince: %w", err)
	}
	return incidents, nil
}
