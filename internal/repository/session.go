package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisSessionStorage maps connection session ids to player ids. The
// session layer uses it to recognize a returning competitor within the
// reconnect window.
type RedisSessionStorage struct {
	log    *zap.SugaredLogger
	client *redis.Client
}

func NewSessionRedisStorage(log *zap.SugaredLogger, redis *redis.Client) *RedisSessionStorage {
	return &RedisSessionStorage{
		log:    log,
		client: redis,
	}
}

func (r *RedisSessionStorage) GetPlayerIdBySession(ctx context.Context, sessionID string) (playerID string, ok bool) {
	v, err := r.client.Get(ctx, "session:"+sessionID).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Error(err)
		}
		return "", false
	}
	return v, true
}

func (r *RedisSessionStorage) StoreSession(ctx context.Context, sessionID string, playerID string) {
	r.client.Set(ctx, "session:"+sessionID, playerID, 11*time.Hour)
}

func (r *RedisSessionStorage) DeleteSession(ctx context.Context, sessionID string) {
	r.client.Del(ctx, "session:"+sessionID)
}
