package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
)

const (
	dispatchQueueKey = "dispatch_events"
)

// DispatchEvent - уведомление о назначении единицы на инцидент
type DispatchEvent struct {
	EventID       uuid.UUID                `json:"event_id"`
	IncidentID    int64                    `json:"incident_id"`
	ResponderID   int64                    `json:"responder_id"`
	ResponderName string                   `json:"responder_name"`
	ResponderType models.ResponderType     `json:"responder_type"`
	Priority      int                      `json:"priority"`
	Category      *models.IncidentCategory `json:"category,omitempty"`
	DispatchedAt  time.Time                `json:"dispatched_at"`
}

// DispatchPublisher - интерфейс для публикации событий диспетчеризации
type DispatchPublisher interface {
	Publish(ctx context.Context, event DispatchEvent) error
}

// RedisDispatchPublisher - реализация DispatchPublisher, использующая Redis
type RedisDispatchPublisher struct {
	redisClient *redis.Client
}

// NewRedisDispatchPublisher создает новый RedisDispatchPublisher
func NewRedisDispatchPublisher(client *redis.Client) *RedisDispatchPublisher {
	return &RedisDispatchPublisher{
		redisClient: client,
	}
}

// Publish публикует событие диспетчеризации в очередь Redis
func (p *RedisDispatchPublisher) Publish(ctx context.Context, event DispatchEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch event: %w", err)
	}

	if err := p.redisClient.LPush(ctx, dispatchQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish dispatch event to Redis: %w", err)
	}
	return nil
}
