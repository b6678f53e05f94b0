package series

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/VNDT1625/Caro-sub006/internal/domain/match"
	errs "github.com/VNDT1625/Caro-sub006/internal/errors"
	"github.com/VNDT1625/Caro-sub006/internal/statuses"
)

type SeriesStore interface {
	PutSeries(ctx context.Context, s match.Series) error
	GetSeries(ctx context.Context, seriesID string) (match.Series, error)
	UpdateSeries(ctx context.Context, s match.Series) error
}

// GameStarter seeds one ranked game of a series; in production it is the
// match usecase, which also initializes a fresh swap2 opening per game.
type GameStarter interface {
	CreateMatch(ctx context.Context, req match.CreateMatchRequest) (match.MatchCreateResponse, error)
	FinishMatch(ctx context.Context, gameID string, winnerID string) error
}

type SeriesUseCase struct {
	store   SeriesStore
	matches GameStarter
	bestOf  int
	log     *zap.SugaredLogger
}

func NewSeriesUseCase(store SeriesStore, matches GameStarter, bestOf int, log *zap.SugaredLogger) *SeriesUseCase {
	if bestOf < 1 || bestOf%2 == 0 {
		bestOf = 3
	}
	return &SeriesUseCase{
		store:   store,
		matches: matches,
		bestOf:  bestOf,
		log:     log,
	}
}

func (s *SeriesUseCase) StartSeries(ctx context.Context, player1ID, player2ID string) (match.Series, error) {
	newSeries := match.Series{
		SeriesID:  uuid.New().String(),
		Player1ID: player1ID,
		Player2ID: player2ID,
		BestOf:    s.bestOf,
		GameIDs:   []string{},
		Status:    statuses.StatusActive,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.PutSeries(ctx, newSeries); err != nil {
		return match.Series{}, err
	}
	return newSeries, nil
}

// StartNextGame seeds a brand-new ranked game within the series. Every
// game gets its own independent swap2 opening; no colors or stones carry
// over from earlier games.
func (s *SeriesUseCase) StartNextGame(ctx context.Context, seriesID string) (match.MatchCreateResponse, error) {
	found, err := s.store.GetSeries(ctx, seriesID)
	if err != nil {
		return match.MatchCreateResponse{}, err
	}
	if found.Status == statuses.StatusCompleted {
		return match.MatchCreateResponse{}, errs.ErrSeriesFinished
	}

	resp, err := s.matches.CreateMatch(ctx, match.CreateMatchRequest{
		Player1ID: found.Player1ID,
		Player2ID: found.Player2ID,
		Ranked:    true,
	})
	if err != nil {
		return match.MatchCreateResponse{}, err
	}

	found.GameIDs = append(found.GameIDs, resp.GameID)
	if err = s.store.UpdateSeries(ctx, found); err != nil {
		return match.MatchCreateResponse{}, err
	}

	s.log.Infow("series game started", "series_id", seriesID, "game_id", resp.GameID)
	return resp, nil
}

// RecordGameResult finishes one game of the series and closes the series
// when a player reaches the winning score.
func (s *SeriesUseCase) RecordGameResult(ctx context.Context, seriesID, gameID, winnerID string) (match.Series, error) {
	found, err := s.store.GetSeries(ctx, seriesID)
	if err != nil {
		return match.Series{}, err
	}
	if found.Status == statuses.StatusCompleted {
		return match.Series{}, errs.ErrSeriesFinished
	}
	if winnerID != found.Player1ID && winnerID != found.Player2ID {
		return match.Series{}, errs.ErrWrongPlayer
	}

	if err = s.matches.FinishMatch(ctx, gameID, winnerID); err != nil {
		return match.Series{}, err
	}

	if winnerID == found.Player1ID {
		found.Wins1++
	} else {
		found.Wins2++
	}

	need := found.BestOf/2 + 1
	if found.Wins1 >= need || found.Wins2 >= need {
		found.Status = statuses.StatusCompleted
		found.WinnerID = winnerID
		now := time.Now().UTC()
		found.EndedAt = &now
		s.log.Infow("series finished", "series_id", seriesID, "winner", winnerID)
	}

	if err = s.store.UpdateSeries(ctx, found); err != nil {
		return match.Series{}, err
	}
	return found, nil
}
