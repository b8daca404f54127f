// Package cache keeps the monthly report in Redis between syncs.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/spaceflight-news/internal/article/domain"
)

const (
	MonthlyReportKey = "reports:monthly"
	DefaultTTL       = 5 * time.Minute
)

// RedisReportCache implements domain.ReportCache on a Redis client
type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisReportCache creates a report cache; ttl <= 0 uses DefaultTTL
func NewRedisReportCache(client *redis.Client, ttl time.Duration) *RedisReportCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisReportCache{client: client, ttl: ttl}
}

// GetMonthly returns the cached report; ok is false on a miss
func (c *RedisReportCache) GetMonthly(ctx context.Context) ([]domain.MonthlyReport, bool, error) {
	raw, err := c.client.Get(ctx, MonthlyReportKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached report: %w", err)
	}

	var reports []domain.MonthlyReport
	if err := json.Unmarshal(raw, &reports); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return reports, true, nil
}

// SetMonthly stores the report for the configured TTL
func (c *RedisReportCache) SetMonthly(ctx context.Context, reports []domain.MonthlyReport) error {
	if reports == nil {
		reports = []domain.MonthlyReport{}
	}
	raw, err := json.Marshal(reports)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := c.client.Set(ctx, MonthlyReportKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

// Invalidate drops the cached report
func (c *RedisReportCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, MonthlyReportKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate report cache: %w", err)
	}
	return nil
}

// Nop is a ReportCache that never holds anything, used when Redis is unavailable
type Nop struct{}

func (Nop) GetMonthly(context.Context) ([]domain.MonthlyReport, bool, error) { return nil, false, nil }

func (Nop) SetMonthly(context.Context, []domain.MonthlyReport) error { return nil }

func (Nop) Invalidate(context.Context) error { return nil }
