package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
)

type ResponderRepository struct {
	db *pgxpool.Pool
}

func NewResponderRepository(db *pgxpool.Pool) service.ResponderRepository {
	return &ResponderRepository{
		db: db,
	}
}

const responderColumns = `id, name, type, status, latitude, longitude, current_incident_id`

// scanResponder читает одну строку выборки в модель единицы реагирования
func scanResponder(row pgx.Row) (*models.Responder, error) {
	responder := &models.Responder{}
	var rtype, status string

	err := row.Scan(
		&responder.ID,
		&responder.Name,
		&rtype,
		&status,
		&responder.Latitude,
		&responder.Longitude,
		&responder.CurrentIncidentID,
	)
	if err != nil {
		return nil, err
	}

	responder.Type = models.ResponderType(rtype)
	responder.Status = models.ResponderStatus(status)
	return responder, nil
}

// CreateResponder создает новую единицу реагирования
func (r *ResponderRepository) CreateResponder(ctx context.Context, responder *models.Responder) error {
	query := `
		INSERT INTO responders (name, type, status, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5) RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		responder.Name,
		string(responder.Type),
		string(responder.Status),
		responder.Latitude,
		responder.Longitude,
	).Scan(&responder.ID)
	if err != nil {
		return fmt.Errorf("failed to create responder: %w", err)
	}
	return nil
}

// GetResponderByID возвращает единицу реагирования по id
func (r *ResponderRepository) GetResponderByID(ctx context.Context, id int64) (*models.Responder, error) {
	query := `SELECT ` + responderColumns + ` FROM responders WHERE id = $1;`

	responder, err := scanResponder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("responder %d: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get responder by id: %w", err)
	}
	return responder, nil
}

// ListIdleResponders возвращает свободные единицы, при необходимости отфильтрованные по типу.
// Порядок по id фиксирован, чтобы поиск ближайших был детерминированным.
func (r *ResponderRepository) ListIdleResponders(ctx context.Context, rtype *models.ResponderType) ([]*models.Responder, error) {
	query := `
		SELECT ` + responderColumns + `
		FROM responders
		WHERE status = 'idle'
		  AND ($1::text IS NULL OR type = $1)
		ORDER BY id ASC;
	`

	var t *string
	if rtype != nil {
		v := string(*rtype)
		t = &v
	}

	rows, err := r.db.Query(ctx, query, t)
	if err != nil {
		return nil, fmt.Errorf("failed to list idle responders: %w", err)
	}
	defer rows.Close()

	responders := make([]*models.Responder, 0)
	for rows.Next() {
		responder, err := scanResponder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan responder row: %w", err)
		}
		responders = append(responders, responder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in ListIdleResponders: %w", err)
	}
	return responders, nil
}

// CountResponders возвращает общее количество единиц реагирования
func (r *ResponderRepository) CountResponders(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM responders;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count responders: %w", err)
	}
	return count, nil
}

// UpdateResponderLocation сохраняет последние координаты единицы.
// Побеждает последняя запись, свежесть координат не проверяется.
func (r *ResponderRepository) UpdateResponderLocation(ctx context.Context, id int64, lat, lng float64) (*models.Responder, error) {
	query := `
		UPDATE responders SET
			latitude = $1,
			longitude = $2
		WHERE id = $3
		RETURNING ` + responderColumns + `;
	`
	responder, err := scanResponder(r.db.QueryRow(ctx, query, lat, lng, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("responder %d: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update responder location: %w", err)
	}
	return responder, nil
}

// DispatchResponder атомарно назначает свободную единицу на ожидающий инцидент.
// Проверка предусловий и обе записи выполняются в одной транзакции под блокировкой строк:
// из двух конкурирующих назначений на одну единицу ровно одно получает Conflict.
func (r *ResponderRepository) DispatchResponder(ctx context.Context, responderID, incidentID int64) (*models.Responder, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("failed to begin dispatch transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	responder, err := scanResponder(tx.QueryRow(ctx,
		`SELECT `+responderColumns+` FROM responders WHERE id = $1 FOR UPDATE;`, responderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("responder %d: %w", responderID, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock responder for dispatch: %w", err)
	}

	if responder.Status != models.ResponderIdle {
		return nil, fmt.Errorf("responder %d unavailable (status %s): %w", responderID, responder.Status, service.ErrConflict)
	}

	var incidentStatus string
	err = tx.QueryRow(ctx, `SELECT status FROM incidents WHERE id = $1 FOR UPDATE;`, incidentID).Scan(&incidentStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident %d: %w", incidentID, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock incident for dispatch: %w", err)
	}

	if models.IncidentStatus(incidentStatus) != models.IncidentPending {
		return nil, fmt.Errorf("incident %d is not pending (status %s): %w", incidentID, incidentStatus, service.ErrConflict)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE responders SET status = 'dispatched', current_incident_id = $1 WHERE id = $2;`,
		incidentID, responderID); err != nil {
		return nil, fmt.Errorf("failed to mark responder dispatched: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE incidents SET status = 'dispatched' WHERE id = $1;`, incidentID); err != nil {
		return nil, fmt.Errorf("failed to mark incident dispatched: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit dispatch transaction: %w", err)
	}

	responder.Status = models.ResponderDispatched
	responder.CurrentIncidentID = &incidentID
	return responder, nil
}

// RecallResponder переводит занятую единицу в busy или возвращает в idle.
// Ссылка на текущий инцидент снимается только при возврате в idle.
func (r *ResponderRepository) RecallResponder(ctx context.Context, id int64, target models.ResponderStatus) (*models.Responder, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("failed to begin recall transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	responder, err := scanResponder(tx.QueryRow(ctx,
		`SELECT `+responderColumns+` FROM responders WHERE id = $1 FOR UPDATE;`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("responder %d: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock responder for recall: %w", err)
	}

	if responder.Status == models.ResponderIdle {
		return nil, fmt.Errorf("responder %d is already idle: %w", id, service.ErrConflict)
	}

	if target == models.ResponderIdle {
		_, err = tx.Exec(ctx,
			`UPDATE responders SET status = 'idle', current_incident_id = NULL WHERE id = $1;`, id)
	} else {
		_, err = tx.Exec(ctx,
			`UPDATE responders SET status = $1 WHERE id = $2;`, string(target), id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update responder status on recall: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit recall transaction: %w", err)
	}

	responder.Status = target
	if target == models.ResponderIdle {
		responder.CurrentIncidentID = nil
	}
	return responder, nil
}
