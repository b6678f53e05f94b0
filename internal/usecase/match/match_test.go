package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/VNDT1625/Caro-sub006/internal/domain/match"
	"github.com/VNDT1625/Caro-sub006/internal/domain/swap2"
	errs "github.com/VNDT1625/Caro-sub006/internal/errors"
	"github.com/VNDT1625/Caro-sub006/internal/statuses"
	swap2uc "github.com/VNDT1625/Caro-sub006/internal/usecase/swap2"
)

type fakeMatchStore struct {
	matches map[string]match.Match
	nextKey int
}

func newFakeMatchStore() *fakeMatchStore {
	return &fakeMatchStore{matches: make(map[string]match.Match)}
}

func (f *fakeMatchStore) GenerateGameKeys(ctx context.Context) (string, string) {
	f.nextKey++
	return "game-" + string(rune('a'+f.nextKey-1)), "00001"
}

func (f *fakeMatchStore) PutMatch(ctx context.Context, m match.Match) error {
	f.matches[m.GameID] = m
	return nil
}

func (f *fakeMatchStore) GetMatchByGameID(ctx context.Context, gameID string) (match.Match, error) {
	m, ok := f.matches[gameID]
	if !ok {
		return match.Match{}, errs.ErrMatchNotFound
	}
	return m, nil
}

func (f *fakeMatchStore) SetOpening(ctx context.Context, gameID string, assignment swap2.Assignment, stones []swap2.Stone) error {
	m, ok := f.matches[gameID]
	if !ok {
		return errs.ErrMatchNotFound
	}
	m.BlackPlayerID = assignment.BlackPlayerID
	m.WhitePlayerID = assignment.WhitePlayerID
	m.OpeningStones = stones
	m.Status = statuses.StatusActive
	f.matches[gameID] = m
	return nil
}

func (f *fakeMatchStore) FinishMatch(ctx context.Context, gameID string, winnerID string) error {
	m, ok := f.matches[gameID]
	if !ok {
		return errs.ErrMatchNotFound
	}
	m.WinnerID = winnerID
	m.Status = statuses.StatusCompleted
	f.matches[gameID] = m
	return nil
}

func (f *fakeMatchStore) HasPlayerActiveMatch(ctx context.Context, playerID string) (bool, error) {
	for _, m := range f.matches {
		if m.Status == statuses.StatusCompleted {
			continue
		}
		if m.Player1ID == playerID || m.Player2ID == playerID {
			return true, nil
		}
	}
	return false, nil
}

func newTestMatchUseCase() (*MatchUseCase, *fakeMatchStore, *swap2uc.Manager) {
	store := newFakeMatchStore()
	manager := swap2uc.NewManager(zap.NewNop().Sugar())
	return NewMatchUseCase(store, manager, zap.NewNop().Sugar()), store, manager
}

func TestCreateRankedMatchStartsSwap2(t *testing.T) {
	uc, store, manager := newTestMatchUseCase()

	resp, err := uc.CreateMatch(context.Background(), match.CreateMatchRequest{
		Player1ID: "alice",
		Player2ID: "bob",
		Ranked:    true,
	})
	require.NoError(t, err)
	assert.True(t, resp.Swap2Required, "ranked mode must force the opening")

	state := manager.GetState(resp.GameID)
	require.NotNil(t, state)
	assert.Equal(t, swap2.PhasePlacement, state.Phase)

	stored := store.matches[resp.GameID]
	assert.Equal(t, statuses.StatusSwap2, stored.Status)
}

func TestCreateCasualMatchWithoutSwap2(t *testing.T) {
	uc, store, manager := newTestMatchUseCase()

	resp, err := uc.CreateMatch(context.Background(), match.CreateMatchRequest{
		Player1ID: "alice",
		Player2ID: "bob",
	})
	require.NoError(t, err)
	assert.False(t, resp.Swap2Required)
	assert.Nil(t, manager.GetState(resp.GameID))
	assert.Equal(t, statuses.StatusActive, store.matches[resp.GameID].Status)
}

func TestCompleteOpeningRecordsAssignment(t *testing.T) {
	uc, store, manager := newTestMatchUseCase()

	resp, err := uc.CreateMatch(context.Background(), match.CreateMatchRequest{
		Player1ID: "alice",
		Player2ID: "bob",
		Ranked:    true,
	})
	require.NoError(t, err)
	gameID := resp.GameID

	_, err = uc.CompleteOpening(context.Background(), gameID)
	assert.ErrorIs(t, err, errs.ErrInvalidPhase, "opening not finished yet")

	manager.PlaceStone(gameID, "alice", 7, 7)
	manager.PlaceStone(gameID, "alice", 7, 8)
	manager.PlaceStone(gameID, "alice", 8, 7)
	_, err = manager.MakeChoice(gameID, "bob", swap2.ChoiceBlack)
	require.NoError(t, err)

	history, err := uc.CompleteOpening(context.Background(), gameID)
	require.NoError(t, err)
	require.NotNil(t, history.FinalAssignment)

	stored := store.matches[gameID]
	assert.Equal(t, "bob", stored.BlackPlayerID)
	assert.Equal(t, "alice", stored.WhitePlayerID)
	assert.Len(t, stored.OpeningStones, 3)
	assert.Equal(t, statuses.StatusActive, stored.Status)
}

func TestFinishMatchClearsOpening(t *testing.T) {
	uc, _, manager := newTestMatchUseCase()

	resp, err := uc.CreateMatch(context.Background(), match.CreateMatchRequest{
		Player1ID: "alice",
		Player2ID: "bob",
		Ranked:    true,
	})
	require.NoError(t, err)

	err = uc.FinishMatch(context.Background(), resp.GameID, "carol")
	assert.ErrorIs(t, err, errs.ErrWrongPlayer)

	err = uc.FinishMatch(context.Background(), resp.GameID, "alice")
	require.NoError(t, err)
	assert.Nil(t, manager.GetState(resp.GameID))
}

func TestIsPlayerInMatch(t *testing.T) {
	uc, _, _ := newTestMatchUseCase()

	resp, err := uc.CreateMatch(context.Background(), match.CreateMatchRequest{
		Player1ID: "alice",
		Player2ID: "bob",
	})
	require.NoError(t, err)

	assert.True(t, uc.IsPlayerInMatch(context.Background(), resp.GameID, "alice"))
	assert.True(t, uc.IsPlayerInMatch(context.Background(), resp.GameID, "bob"))
	assert.False(t, uc.IsPlayerInMatch(context.Background(), resp.GameID, "carol"))
	assert.False(t, uc.IsPlayerInMatch(context.Background(), "missing", "alice"))
}
