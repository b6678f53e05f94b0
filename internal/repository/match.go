package repository

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/VNDT1625/Caro-sub006/internal/bootstrap"
	"github.com/VNDT1625/Caro-sub006/internal/domain/match"
	"github.com/VNDT1625/Caro-sub006/internal/domain/swap2"
	errs "github.com/VNDT1625/Caro-sub006/internal/errors"
	"github.com/VNDT1625/Caro-sub006/internal/statuses"
)

type MatchRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewMatchRepository(cfg bootstrap.Config, log *zap.SugaredLogger, mongo *mongo.Database) *MatchRepository {
	return &MatchRepository{
		cfg:   cfg,
		log:   log,
		mongo: mongo,
	}
}

// GenerateGameKeys returns the internal game id and a short public code
// players share to spectate. The public code is re-rolled until unique.
func (m *MatchRepository) GenerateGameKeys(ctx context.Context) (gameID string, gameKeyPublic string) {
	gameID = uuid.New().String()
	seed := gameID
	for {
		gameKeyPublic = generateShortCode(seed)
		if m.checkPublicKeyIsUniq(ctx, gameKeyPublic) {
			return gameID, gameKeyPublic
		}
		seed = uuid.New().String()
	}
}

func generateShortCode(s string) string {
	h := md5.New()
	h.Write([]byte(s))
	hashBytes := h.Sum(nil)
	number := binary.BigEndian.Uint32(hashBytes[:4])
	code := number % 100000
	return fmt.Sprintf("%05d", code)
}

func (m *MatchRepository) checkPublicKeyIsUniq(ctx context.Context, gameKeyPublic string) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := m.mongo.Collection("matches")
	err := collection.FindOne(ctx, bson.M{"game_key_public": gameKeyPublic}).Err()
	return errors.Is(err, mongo.ErrNoDocuments)
}

func (m *MatchRepository) PutMatch(ctx context.Context, matchData match.Match) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := m.mongo.Collection("matches").InsertOne(ctx, matchData)
	if err != nil {
		m.log.Errorf("failed to insert match: %v", err)
		return err
	}

	m.log.Infof("match inserted with game_id: %s", matchData.GameID)
	return nil
}

func (m *MatchRepository) GetMatchByGameID(ctx context.Context, gameID string) (match.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var found match.Match
	err := m.mongo.Collection("matches").FindOne(ctx, bson.M{"game_id": gameID}).Decode(&found)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return match.Match{}, errs.ErrMatchNotFound
	} else if err != nil {
		m.log.Error(err)
		return match.Match{}, err
	}

	return found, nil
}

// SetOpening records the finished swap2 result on the match document and
// flips its status to active.
func (m *MatchRepository) SetOpening(ctx context.Context, gameID string, assignment swap2.Assignment, stones []swap2.Stone) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"black_player_id": assignment.BlackPlayerID,
			"white_player_id": assignment.WhitePlayerID,
			"opening_stones":  stones,
			"status":          statuses.StatusActive,
		},
	}

	res, err := m.mongo.Collection("matches").UpdateOne(ctx, bson.M{"game_id": gameID}, update)
	if err != nil {
		m.log.Errorf("failed to set opening for %s: %v", gameID, err)
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrMatchNotFound
	}
	return nil
}

func (m *MatchRepository) FinishMatch(ctx context.Context, gameID string, winnerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"winner_id":   winnerID,
			"status":      statuses.StatusCompleted,
			"finished_at": now,
		},
	}

	res, err := m.mongo.Collection("matches").UpdateOne(ctx, bson.M{"game_id": gameID}, update)
	if err != nil {
		m.log.Errorf("failed to finish match %s: %v", gameID, err)
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrMatchNotFound
	}
	return nil
}

func (m *MatchRepository) HasPlayerActiveMatch(ctx context.Context, playerID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"$and": []bson.M{
			{
				"$or": []bson.M{
					{"player1_id": playerID},
					{"player2_id": playerID},
				},
			},
			{
				"status": bson.M{
					"$nin": []string{statuses.StatusCompleted, statuses.StatusAbandoned},
				},
			},
		},
	}

	err := m.mongo.Collection("matches").FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	} else if err != nil {
		m.log.Error(err)
		return false, err
	}
	return true, nil
}

func (m *MatchRepository) PutSeries(ctx context.Context, s match.Series) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := m.mongo.Collection("series").InsertOne(ctx, s)
	if err != nil {
		m.log.Errorf("failed to insert series: %v", err)
		return err
	}
	return nil
}

func (m *MatchRepository) GetSeries(ctx context.Context, seriesID string) (match.Series, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var found match.Series
	err := m.mongo.Collection("series").FindOne(ctx, bson.M{"series_id": seriesID}).Decode(&found)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return match.Series{}, errs.ErrMatchNotFound
	} else if err != nil {
		m.log.Error(err)
		return match.Series{}, err
	}
	return found, nil
}

func (m *MatchRepository) UpdateSeries(ctx context.Context, s match.Series) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := m.mongo.Collection("series").ReplaceOne(ctx, bson.M{"series_id": s.SeriesID}, s)
	if err != nil {
		m.log.Errorf("failed to update series %s: %v", s.SeriesID, err)
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrMatchNotFound
	}
	return nil
}
