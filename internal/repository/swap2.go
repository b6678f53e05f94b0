package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	errs "github.com/VNDT1625/Caro-sub006/internal/errors"
)

// Swap2SnapshotStorage keeps serialized swap2 openings in redis so a game
// survives a player disconnect. The session layer saves on disconnect and
// loads on reconnect; abandonment deletes the blob.
type Swap2SnapshotStorage struct {
	log   *zap.SugaredLogger
	redis *redis.Client
}

func NewSwap2SnapshotStorage(log *zap.SugaredLogger, redis *redis.Client) *Swap2SnapshotStorage {
	return &Swap2SnapshotStorage{
		log:   log,
		redis: redis,
	}
}

func snapshotKey(gameID string) string {
	return "swap2:snapshot:" + gameID
}

func (s *Swap2SnapshotStorage) SaveSnapshot(ctx context.Context, gameID string, blob []byte) error {
	if err := s.redis.Set(ctx, snapshotKey(gameID), blob, 0).Err(); err != nil {
		return fmt.Errorf("save swap2 snapshot: %w", err)
	}
	return nil
}

func (s *Swap2SnapshotStorage) LoadSnapshot(ctx context.Context, gameID string) ([]byte, error) {
	blob, err := s.redis.Get(ctx, snapshotKey(gameID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errs.ErrGameNotFound
		}
		return nil, fmt.Errorf("load swap2 snapshot: %w", err)
	}
	return blob, nil
}

func (s *Swap2SnapshotStorage) DeleteSnapshot(ctx context.Context, gameID string) error {
	return s.redis.Del(ctx, snapshotKey(gameID)).Err()
}
