package swap2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VNDT1625/Caro-sub006/internal/domain/swap2"
	errs "github.com/VNDT1625/Caro-sub006/internal/errors"
)

func TestHistoryBeforeCompletion(t *testing.T) {
	m := newTestManager()
	m.InitializeSwap2("g1", "alice", "bob")
	placeThree(t, m, "g1")

	history, err := m.GetHistory("g1")
	require.NoError(t, err)
	assert.Len(t, history.Actions, 3)
	assert.Len(t, history.TentativeStones, 3)
	assert.Empty(t, history.FinalChoice)
	assert.Nil(t, history.FinalAssignment)
}

func TestHistoryAfterDirectChoice(t *testing.T) {
	m := newTestManager()
	m.InitializeSwap2("g1", "alice", "bob")
	placeThree(t, m, "g1")
	_, err := m.MakeChoice("g1", "bob", swap2.ChoiceBlack)
	require.NoError(t, err)

	history, err := m.GetHistory("g1")
	require.NoError(t, err)
	assert.Len(t, history.Actions, 4)
	assert.Len(t, history.TentativeStones, 3)
	require.NotNil(t, history.FinalAssignment)
	assert.Equal(t, "bob", history.FinalAssignment.BlackPlayerID)
	assert.Equal(t, "alice", history.FinalAssignment.WhitePlayerID)
	assert.Equal(t, history.FinalAssignment.BlackPlayerID, history.FinalAssignment.FirstMover)
}

func TestHistoryAfterPlaceMorePath(t *testing.T) {
	m := newTestManager()
	m.InitializeSwap2("g1", "alice", "bob")
	placeThree(t, m, "g1")
	m.MakeChoice("g1", "bob", swap2.ChoicePlaceMore)
	m.PlaceStone("g1", "bob", 8, 8)
	m.PlaceStone("g1", "bob", 9, 9)
	_, err := m.MakeChoice("g1", "alice", swap2.ChoiceWhite)
	require.NoError(t, err)

	history, err := m.GetHistory("g1")
	require.NoError(t, err)
	assert.Len(t, history.Actions, 7)
	assert.Len(t, history.TentativeStones, 5)
	require.NotNil(t, history.FinalAssignment)
	assert.Equal(t, "bob", history.FinalAssignment.FirstMover)
}

func TestHistoryUnknownGame(t *testing.T) {
	m := newTestManager()
	_, err := m.GetHistory("missing")
	assert.ErrorIs(t, err, errs.ErrGameNotFound)
}

// The round trip must be lossless on every field, so re-serializing the
// restored state has to reproduce the original blob byte for byte.
func TestSerializationRoundTrip(t *testing.T) {
	m := newTestManager()
	m.InitializeSwap2("g1", "alice", "bob")
	placeThree(t, m, "g1")
	m.MakeChoice("g1", "bob", swap2.ChoicePlaceMore)
	m.PlaceStone("g1", "bob", 0, 0)

	blob, err := m.SerializeGame("g1")
	require.NoError(t, err)

	restored, err := DeserializeState(blob)
	require.NoError(t, err)

	again, err := SerializeState(restored)
	require.NoError(t, err)
	assert.Equal(t, string(blob), string(again))

	assert.Equal(t, swap2.PhaseExtra, restored.Phase)
	assert.Equal(t, "bob", restored.ActivePlayerID())
	assert.Len(t, restored.TentativeStones, 4)
	assert.Len(t, restored.Actions, 5)
}

func TestRoundTripEveryReachablePhase(t *testing.T) {
	m := newTestManager()
	m.InitializeSwap2("g1", "alice", "bob")

	checkpoint := func() {
		blob, err := m.SerializeGame("g1")
		require.NoError(t, err)
		restored, err := DeserializeState(blob)
		require.NoError(t, err)
		again, err := SerializeState(restored)
		require.NoError(t, err)
		assert.Equal(t, string(blob), string(again))
	}

	checkpoint()
	m.PlaceStone("g1", "alice", 7, 7)
	checkpoint()
	m.PlaceStone("g1", "alice", 7, 8)
	m.PlaceStone("g1", "alice", 8, 7)
	checkpoint()
	m.MakeChoice("g1", "bob", swap2.ChoicePlaceMore)
	checkpoint()
	m.PlaceStone("g1", "bob", 8, 8)
	m.PlaceStone("g1", "bob", 9, 9)
	checkpoint()
	m.MakeChoice("g1", "alice", swap2.ChoiceBlack)
	checkpoint()
}

func TestDeserializeRejectsGarbage(t *testing.T) {
	_, err := DeserializeState([]byte("not json"))
	assert.Error(t, err)

	_, err = DeserializeState([]byte(`{"game_id":"","player1_id":"a","player2_id":"b","phase":"PLACEMENT"}`))
	assert.Error(t, err)

	_, err = DeserializeState([]byte(`{"game_id":"g","player1_id":"a","player2_id":"b","phase":"LIMBO"}`))
	assert.Error(t, err)
}

func TestRestoreStateForReconnection(t *testing.T) {
	m := newTestManager()
	m.InitializeSwap2("g1", "alice", "bob")
	placeThree(t, m, "g1")
	m.MakeChoice("g1", "bob", swap2.ChoicePlaceMore)

	blob, err := m.SerializeGame("g1")
	require.NoError(t, err)

	// simulate the disconnect window: the live state is dropped
	m.ClearState("g1")
	assert.Nil(t, m.GetState("g1"))

	restored, err := m.RestoreStateForReconnection("g1", blob)
	require.NoError(t, err)
	assert.Equal(t, swap2.PhaseExtra, restored.Phase)

	// the game continues as if no disconnect happened
	_, err = m.PlaceStone("g1", "bob", 8, 8)
	require.NoError(t, err)
	state, err := m.PlaceStone("g1", "bob", 9, 9)
	require.NoError(t, err)
	assert.Equal(t, swap2.PhaseFinalChoice, state.Phase)

	final, err := m.MakeChoice("g1", "alice", swap2.ChoiceWhite)
	require.NoError(t, err)
	assert.Equal(t, swap2.PhaseComplete, final.Phase)
	assert.Equal(t, "bob", final.BlackPlayerID)
	assert.Len(t, final.Actions, 7)
}

func TestSerializeUnknownGame(t *testing.T) {
	m := newTestManager()
	_, err := m.SerializeGame("missing")
	assert.ErrorIs(t, err, errs.ErrGameNotFound)
}
