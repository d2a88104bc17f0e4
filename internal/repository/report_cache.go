package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
)

// reportCacheTTL - срок жизни аналитических отчетов в кеше.
// Отчеты сугубо рекомендательные, небольшое устаревание допустимо.
const reportCacheTTL = 5 * time.Minute

type ReportCache struct {
	redisClient *redis.Client
}

func NewReportCache(redisClient *redis.Client) service.ReportCache {
	return &ReportCache{
		redisClient: redisClient,
	}
}

// GetClusterReport пытается получить отчет о кластерах из Redis.
// Промах кеша возвращает nil без ошибки.
func (c *ReportCache) GetClusterReport(ctx context.Context, key string) (*models.ClusterReport, error) {
	val, err := c.redisClient.Get(ctx, "analytics:clusters:"+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cluster report from cache: %w", err)
	}

	report := &models.ClusterReport{}
	if err := json.Unmarshal(val, report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cluster report from cache: %w", err)
	}
	return report, nil
}

// SetClusterReport сохраняет отчет о кластерах в Redis
func (c *ReportCache) SetClusterReport(ctx context.Context, key string, report *models.ClusterReport) error {
	val, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal cluster report for cache: %w", err)
	}
	if err := c.redisClient.Set(ctx, "analytics:clusters:"+key, val, reportCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set cluster report in cache: %w", err)
	}
	return nil
}

// GetPredictionReport пытается получить прогноз зон риска из Redis
func (c *ReportCache) GetPredictionReport(ctx context.Context, key string) (*models.PredictionReport, error) {
	val, err := c.redisClient.Get(ctx, "analytics:predictions:"+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prediction report from cache: %w", err)
	}

	report := &models.PredictionReport{}
	if err := json.Unmarshal(val, report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prediction report from cache: %w", err)
	}
	return report, nil
}

// SetPredictionReport сохраняет прогноз зон риска в Redis
func (c *ReportCache) SetPredictionReport(ctx context.Context, key string, report *models.PredictionReport) error {
	val, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal prediction report for cache: %w", err)
	}
	if err := c.redisClient.Set(ctx, "analytics:predictions:"+key, val, reportCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set prediction report in cache: %w", err)
	}
	return nil
}
