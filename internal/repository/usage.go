package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/VNDT1625/Caro-sub006/internal/bootstrap"
)

// UsageStorage meters per-player analysis usage in redis with daily
// counters. The counter key carries the date, so quota windows roll over
// naturally; expiry keeps stale days from piling up.
type UsageStorage struct {
	cfg   bootstrap.Config
	redis *redis.Client
}

func NewUsageStorage(cfg bootstrap.Config, redis *redis.Client) *UsageStorage {
	return &UsageStorage{
		cfg:   cfg,
		redis: redis,
	}
}

func usageKey(playerID string, day time.Time) string {
	return fmt.Sprintf("usage:%s:%s", playerID, day.UTC().Format("2006-01-02"))
}

// IncrUsage bumps today's counter for playerID and returns the new value.
func (u *UsageStorage) IncrUsage(ctx context.Context, playerID string) (int64, error) {
	key := usageKey(playerID, time.Now())
	count, err := u.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		u.redis.Expire(ctx, key, 48*time.Hour)
	}
	return count, nil
}

func (u *UsageStorage) GetUsage(ctx context.Context, playerID string) (int64, error) {
	count, err := u.redis.Get(ctx, usageKey(playerID, time.Now())).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// QuotaFor returns the daily analysis allowance for a subscription tier.
func (u *UsageStorage) QuotaFor(tier string) int {
	switch tier {
	case "pro":
		if u.cfg.ProDailyQuota > 0 {
			return u.cfg.ProDailyQuota
		}
		return 100
	default:
		if u.cfg.FreeDailyQuota > 0 {
			return u.cfg.FreeDailyQuota
		}
		return 5
	}
}

func (u *UsageStorage) GetPlayerTier(ctx context.Context, playerID string) (string, error) {
	tier, err := u.redis.Get(ctx, "tier:"+playerID).Result()
	if err != nil {
		if err == redis.Nil {
			return "free", nil
		}
		return "", err
	}
	return tier, nil
}

func (u *UsageStorage) SetPlayerTier(ctx context.Context, playerID string, tier string) error {
	return u.redis.Set(ctx, "tier:"+playerID, tier, 0).Err()
}
