package swap2

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/VNDT1625/Caro-sub006/internal/domain/swap2"
	errs "github.com/VNDT1625/Caro-sub006/internal/errors"
)

func newTestManager() *Manager {
	return NewManager(zap.NewNop().Sugar())
}

func placeThree(t *testing.T, m *Manager, gameID string) *swap2.State {
	t.Helper()
	_, err := m.PlaceStone(gameID, "alice", 7, 7)
	require.NoError(t, err)
	_, err = m.PlaceStone(gameID, "alice", 7, 8)
	require.NoError(t, err)
	state, err := m.PlaceStone(gameID, "alice", 8, 7)
	require.NoError(t, err)
	return state
}

func TestInitializeSwap2(t *testing.T) {
	m := newTestManager()
	state := m.InitializeSwap2("g1", "alice", "bob")

	assert.Equal(t, swap2.PhasePlacement, state.Phase)
	assert.Equal(t, "alice", state.ActivePlayerID())
	assert.Empty(t, state.TentativeStones)
	assert.Empty(t, state.Actions)
	assert.Empty(t, state.BlackPlayerID)
	assert.Empty(t, state.WhitePlayerID)
	assert.False(t, m.IsComplete(state))
}

func TestInitializeOverwritesPriorState(t *testing.T) {
	m := newTestManager()
	m.InitializeSwap2("g1", "alice", "bob")
	placeThree(t, m, "g1")

	state := m.InitializeSwap2("g1", "alice", "bob")
	assert.Equal(t, swap2.PhasePlacement, state.Phase)
	assert.Empty(t, state.TentativeStones)
	assert.Empty(t, state.Actions)
}

func TestDirectChoiceScenario(t *testing.T) {
	m := newTestManager()
	m.InitializeSwap2("g1", "alice", "bob")

	state := placeThree(t, m, "g1")
	assert.Equal(t, swap2.PhaseChoice, state.Phase)
	assert.Equal(t, "bob", state.ActivePlayerID())
	assert.Len(t, state.TentativeStones, 3)

	state, err := m.MakeChoice("g1", "bob", swap2.ChoiceBlack)
	require.NoError(t, err)
	assert.Equal(t, swap2.PhaseComplete, state.Phase)
	assert.Equal(t, "bob", state.BlackPlayerID)
	assert.Equal(t, "alice", state.WhitePlayerID)
	assert.Equal(t, "bob", state.FirstMover())
	assert.Equal(t, swap2.ChoiceBlack, state.FinalChoice)
	assert.True(t, m.IsComplete(state))
	assert.Len(t, state.Actions, 4)
}

func TestPlaceMoreScenario(t *testing.T) {
	m := newTestManager()
	m.InitializeSwap2("g1", "alice", "bob")
	placeThree(t, m, "g1")

	state, err := m.MakeChoice("g1", "bob", swap2.ChoicePlaceMore)
	require.NoError(t, err)
	assert.Equal(t, swap2.PhaseExtra, state.Phase)
	assert.Equal(t, "bob", state.ActivePlayerID())

	state, err = m.PlaceStone("g1", "bob", 8, 8)
	require.NoError(t, err)
	assert.Equal(t, swap2.PhaseExtra, state.Phase)
	assert.Len(t, state.TentativeStones, 4)

	// fifth stone exits EXTRA atomically
	state, err = m.PlaceStone("g1", "bob", 9, 9)
	require.NoError(t, err)
	assert.Equal(t, swap2.PhaseFinalChoice, state.Phase)
	assert.Equal(t, "alice", state.ActivePlayerID())
	assert.Len(t, state.TentativeStones, 5)

	state, err = m.MakeChoice("g1", "alice", swap2.ChoiceWhite)
	require.NoError(t, err)
	assert.Equal(t, swap2.PhaseComplete, state.Phase)
	assert.Equal(t, "alice", state.WhitePlayerID)
	assert.Equal(t, "bob", state.BlackPlayerID)
	assert.Equal(t, "bob", state.FirstMover())
	assert.Len(t, state.Actions, 7)
}

func TestPlacementOrderIsMonotonic(t *testing.T) {
	m := newTestManager()
	m.InitializeSwap2("g1", "alice", "bob")
	placeThree(t, m, "g1")
	m.MakeChoice("g1", "bob", swap2.ChoicePlaceMore)
	m.PlaceStone("g1", "bob", 0, 0)
	state, err := m.PlaceStone("g1", "bob", 14, 14)
	require.NoError(t, err)

	for i, stone := range state.TentativeStones {
		assert.Equal(t, i+1, stone.PlacementOrder)
	}
}

func assertUnchanged(t *testing.T, m *Manager, gameID string, before []byte) {
	t.Helper()
	after, err := m.SerializeGame(gameID)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestRejectionLeavesStateUntouched(t *testing.T) {
	m := newTestManager()
	m.InitializeSwap2("g1", "alice", "bob")
	m.PlaceStone("g1", "alice", 7, 7)

	before, err := m.SerializeGame("g1")
	require.NoError(t, err)

	_, err = m.PlaceStone("g1", "bob", 1, 1)
	assert.ErrorIs(t, err, errs.ErrWrongPlayer)
	assertUnchanged(t, m, "g1", before)

	_, err = m.PlaceStone("g1", "alice", 7, 7)
	assert.ErrorIs(t, err, errs.ErrPositionOccupied)
	assertUnchanged(t, m, "g1", before)

	_, err = m.PlaceStone("g1", "alice", 20, 3)
	assert.ErrorIs(t, err, errs.ErrOutOfBounds)
	assertUnchanged(t, m, "g1", before)

	_, err = m.MakeChoice("g1", "alice", swap2.ChoiceBlack)
	assert.ErrorIs(t, err, errs.ErrInvalidPhase)
	assertUnchanged(t, m, "g1", before)
}

func TestOccupiedCellRejectedInExtraPhase(t *testing.T) {
	m := newTestManager()
	m.InitializeSwap2("g1", "alice", "bob")
	placeThree(t, m, "g1")
	m.MakeChoice("g1", "bob", swap2.ChoicePlaceMore)

	before, err := m.SerializeGame("g1")
	require.NoError(t, err)

	_, err = m.PlaceStone("g1", "bob", 7, 7)
	assert.ErrorIs(t, err, errs.ErrPositionOccupied)
	assertUnchanged(t, m, "g1", before)
}

func TestCompleteStateIsFrozen(t *testing.T) {
	m := newTestManager()
	m.InitializeSwap2("g1", "alice", "bob")
	placeThree(t, m, "g1")
	m.MakeChoice("g1", "bob", swap2.ChoiceWhite)

	before, err := m.SerializeGame("g1")
	require.NoError(t, err)

	_, err = m.PlaceStone("g1", "alice", 1, 1)
	assert.ErrorIs(t, err, errs.ErrWrongPlayer)

	_, err = m.MakeChoice("g1", "bob", swap2.ChoiceBlack)
	assert.ErrorIs(t, err, errs.ErrWrongPlayer)

	assertUnchanged(t, m, "g1", before)
}

func TestUnknownGame(t *testing.T) {
	m := newTestManager()

	_, err := m.PlaceStone("nope", "alice", 1, 1)
	assert.ErrorIs(t, err, errs.ErrGameNotFound)

	_, err = m.MakeChoice("nope", "alice", swap2.ChoiceBlack)
	assert.ErrorIs(t, err, errs.ErrGameNotFound)

	assert.Nil(t, m.GetState("nope"))
}

func TestClearState(t *testing.T) {
	m := newTestManager()
	m.InitializeSwap2("g1", "alice", "bob")
	m.ClearState("g1")

	assert.Nil(t, m.GetState("g1"))
	_, err := m.PlaceStone("g1", "alice", 1, 1)
	assert.ErrorIs(t, err, errs.ErrGameNotFound)
}

func intPtr(v int) *int { return &v }

func TestValidateActionFrontDoor(t *testing.T) {
	m := newTestManager()
	m.InitializeSwap2("g1", "alice", "bob")

	res := m.ValidateAction("missing", "alice", ActionRequest{Type: "place", X: intPtr(1), Y: intPtr(1)})
	assert.Equal(t, "game_not_found", res.Code)

	res = m.ValidateAction("g1", "alice", ActionRequest{Type: "teleport"})
	assert.Equal(t, "invalid_action_type", res.Code)

	res = m.ValidateAction("g1", "alice", ActionRequest{Type: "place", X: intPtr(1)})
	assert.Equal(t, "missing_coordinates", res.Code)

	res = m.ValidateAction("g1", "alice", ActionRequest{Type: "choice"})
	assert.Equal(t, "missing_choice", res.Code)

	res = m.ValidateAction("g1", "alice", ActionRequest{Type: "place", X: intPtr(1), Y: intPtr(2)})
	assert.True(t, res.Valid)
}

func TestApplyAction(t *testing.T) {
	m := newTestManager()
	m.InitializeSwap2("g1", "alice", "bob")

	state, err := m.ApplyAction("g1", "alice", ActionRequest{Type: "place", X: intPtr(7), Y: intPtr(7)})
	require.NoError(t, err)
	assert.Len(t, state.TentativeStones, 1)

	_, err = m.ApplyAction("g1", "alice", ActionRequest{Type: "choice", Choice: "black"})
	assert.ErrorIs(t, err, errs.ErrInvalidPhase)
}

func TestChooserAlwaysGetsChosenColor(t *testing.T) {
	m := newTestManager()

	for _, choice := range []swap2.Choice{swap2.ChoiceBlack, swap2.ChoiceWhite} {
		m.InitializeSwap2("g1", "alice", "bob")
		placeThree(t, m, "g1")
		state, err := m.MakeChoice("g1", "bob", choice)
		require.NoError(t, err)

		if choice == swap2.ChoiceBlack {
			assert.Equal(t, "bob", state.BlackPlayerID)
			assert.Equal(t, "alice", state.WhitePlayerID)
		} else {
			assert.Equal(t, "bob", state.WhitePlayerID)
			assert.Equal(t, "alice", state.BlackPlayerID)
		}
		assert.NotEqual(t, state.BlackPlayerID, state.WhitePlayerID)
		assert.Equal(t, state.BlackPlayerID, state.FirstMover())
	}
}

func TestGamesAreIndependent(t *testing.T) {
	m := newTestManager()
	m.InitializeSwap2("g1", "alice", "bob")
	m.InitializeSwap2("g2", "alice", "bob")

	placeThree(t, m, "g1")

	state := m.GetState("g2")
	require.NotNil(t, state)
	assert.Equal(t, swap2.PhasePlacement, state.Phase)
	assert.Empty(t, state.TentativeStones)
}

func TestConcurrentPlacementsSingleWinnerPerCell(t *testing.T) {
	m := newTestManager()
	m.InitializeSwap2("g1", "alice", "bob")

	// both connections fire the same first placement; exactly one lands
	var wg sync.WaitGroup
	errCh := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.PlaceStone("g1", "alice", 7, 7)
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	var okCount, rejCount int
	for err := range errCh {
		if err == nil {
			okCount++
		} else {
			rejCount++
		}
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, rejCount)

	state := m.GetState("g1")
	assert.Len(t, state.TentativeStones, 1)
	assert.Len(t, state.Actions, 1)
}
