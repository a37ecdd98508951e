package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 2 * time.Minute

// AgendaCache кэш списка записей дня по (кабинет, дата).
// nil-кэш всегда промахивается, так бот работает без Redis.
type AgendaCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewAgendaCache(redisClient *redis.Client, ttl time.Duration) *AgendaCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &AgendaCache{redis: redisClient, ttl: ttl}
}

func (c *AgendaCache) key(cabinetID int64, date string) string {
	return fmt.Sprintf("agenda:%d:%s", cabinetID, date)
}

// Get возвращает found=false при промахе
func (c *AgendaCache) Get(ctx context.Context, cabinetID int64, date string) ([]model.Appointment, bool, error) {
	if c == nil || c.redis == nil {
		return nil, false, nil
	}
	data, err := c.redis.Get(ctx, c.key(cabinetID, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get agenda cache: %w", err)
	}

	var list []model.Appointment
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, false, fmt.Errorf("unmarshal agenda cache: %w", err)
	}
	return list, true, nil
}

func (c *AgendaCache) Set(ctx context.Context, cabinetID int64, date string, list []model.Appointment) error {
	if c == nil || c.redis == nil {
		return nil
	}
	if list == nil {
		list = []model.Appointment{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal agenda cache: %w", err)
	}
	if err := c.redis.Set(ctx, c.key(cabinetID, date), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set agenda cache: %w", err)
	}
	return nil
}

// Invalidate удаляет день после любого изменения записей
func (c *AgendaCache) Invalidate(ctx context.Context, cabinetID int64, date string) error {
	if c == nil || c.redis == nil {
		return nil
	}
	if err := c.redis.Del(ctx, c.key(cabinetID, date)).Err(); err != nil {
		return fmt.Errorf("invalidate agenda cache: %w", err)
	}
	return nil
}
