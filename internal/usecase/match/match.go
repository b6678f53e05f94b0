package match

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/VNDT1625/Caro-sub006/internal/domain/match"
	"github.com/VNDT1625/Caro-sub006/internal/domain/swap2"
	errs "github.com/VNDT1625/Caro-sub006/internal/errors"
	"github.com/VNDT1625/Caro-sub006/internal/statuses"
	swap2uc "github.com/VNDT1625/Caro-sub006/internal/usecase/swap2"
)

type MatchStore interface {
	GenerateGameKeys(ctx context.Context) (gameID string, gameKeyPublic string)
	PutMatch(ctx context.Context, matchData match.Match) error
	GetMatchByGameID(ctx context.Context, gameID string) (match.Match, error)
	SetOpening(ctx context.Context, gameID string, assignment swap2.Assignment, stones []swap2.Stone) error
	FinishMatch(ctx context.Context, gameID string, winnerID string) error
	HasPlayerActiveMatch(ctx context.Context, playerID string) (bool, error)
}

type MatchUseCase struct {
	store MatchStore
	swap2 *swap2uc.Manager
	log   *zap.SugaredLogger
}

func NewMatchUseCase(store MatchStore, swap2Manager *swap2uc.Manager, log *zap.SugaredLogger) *MatchUseCase {
	return &MatchUseCase{
		store: store,
		swap2: swap2Manager,
		log:   log,
	}
}

// CreateMatch creates the match shell and, when the room requires the
// swap2 opening, seeds a fresh sequence for it. Ranked rooms always
// require swap2; casual rooms may opt in.
func (m *MatchUseCase) CreateMatch(ctx context.Context, req match.CreateMatchRequest) (match.MatchCreateResponse, error) {
	swap2Required := req.Swap2Required || req.Ranked

	gameID, gameKeyPublic := m.store.GenerateGameKeys(ctx)

	status := statuses.StatusActive
	if swap2Required {
		status = statuses.StatusSwap2
	}

	newMatch := match.Match{
		GameID:        gameID,
		GameKeyPublic: gameKeyPublic,
		Player1ID:     req.Player1ID,
		Player2ID:     req.Player2ID,
		Status:        status,
		Ranked:        req.Ranked,
		Swap2Required: swap2Required,
		CreatedAt:     time.Now().UTC(),
	}

	if err := m.store.PutMatch(ctx, newMatch); err != nil {
		return match.MatchCreateResponse{}, err
	}

	if swap2Required {
		m.swap2.InitializeSwap2(gameID, req.Player1ID, req.Player2ID)
	}

	return match.MatchCreateResponse{
		GameID:        gameID,
		GameKeyPublic: gameKeyPublic,
		Swap2Required: swap2Required,
	}, nil
}

// CompleteOpening copies the finished swap2 result onto the match record
// so the main-game engine can seed the board and starting turn.
func (m *MatchUseCase) CompleteOpening(ctx context.Context, gameID string) (swap2.History, error) {
	state := m.swap2.GetState(gameID)
	if state == nil {
		return swap2.History{}, errs.ErrGameNotFound
	}
	if !state.IsComplete() {
		return swap2.History{}, errs.ErrInvalidPhase
	}

	history := swap2uc.History(state)
	if err := m.store.SetOpening(ctx, gameID, *history.FinalAssignment, history.TentativeStones); err != nil {
		return swap2.History{}, err
	}

	return history, nil
}

func (m *MatchUseCase) GetMatch(ctx context.Context, gameID string) (match.Match, error) {
	return m.store.GetMatchByGameID(ctx, gameID)
}

func (m *MatchUseCase) FinishMatch(ctx context.Context, gameID string, winnerID string) error {
	found, err := m.store.GetMatchByGameID(ctx, gameID)
	if err != nil {
		return err
	}
	if winnerID != found.Player1ID && winnerID != found.Player2ID {
		return errs.ErrWrongPlayer
	}
	if err = m.store.FinishMatch(ctx, gameID, winnerID); err != nil {
		return err
	}
	m.swap2.ClearState(gameID)
	return nil
}

func (m *MatchUseCase) IsPlayerInMatch(ctx context.Context, gameID string, playerID string) bool {
	found, err := m.store.GetMatchByGameID(ctx, gameID)
	if err != nil {
		return false
	}
	return found.Player1ID == playerID || found.Player2ID == playerID
}

func (m *MatchUseCase) HasPlayerActiveMatch(ctx context.Context, playerID string) (bool, error) {
	return m.store.HasPlayerActiveMatch(ctx, playerID)
}
