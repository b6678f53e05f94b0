package swap2

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VNDT1625/Caro-sub006/internal/domain/swap2"
)

func TestValidatePlacement(t *testing.T) {
	state := swap2.NewState("g1", "alice", "bob")

	res := ValidatePlacement(state, "alice", 7, 7)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Code)

	res = ValidatePlacement(state, "bob", 7, 7)
	assert.False(t, res.Valid)
	assert.Equal(t, "wrong_player", res.Code)

	res = ValidatePlacement(state, "alice", 15, 7)
	assert.False(t, res.Valid)
	assert.Equal(t, "out_of_bounds", res.Code)

	res = ValidatePlacement(state, "alice", -1, 0)
	assert.False(t, res.Valid)
	assert.Equal(t, "out_of_bounds", res.Code)

	state.TentativeStones = append(state.TentativeStones, swap2.Stone{X: 7, Y: 7, PlacedBy: "alice", PlacementOrder: 1})
	res = ValidatePlacement(state, "alice", 7, 7)
	assert.False(t, res.Valid)
	assert.Equal(t, "position_occupied", res.Code)
}

func TestValidatePlacementWrongPhase(t *testing.T) {
	state := swap2.NewState("g1", "alice", "bob")
	state.Phase = swap2.PhaseChoice

	// bob is active in CHOICE, but placement is not a CHOICE action
	res := ValidatePlacement(state, "bob", 3, 3)
	assert.False(t, res.Valid)
	assert.Equal(t, "invalid_phase", res.Code)
}

func TestValidateChoice(t *testing.T) {
	state := swap2.NewState("g1", "alice", "bob")
	state.Phase = swap2.PhaseChoice

	for _, c := range []swap2.Choice{swap2.ChoiceBlack, swap2.ChoiceWhite, swap2.ChoicePlaceMore} {
		res := ValidateChoice(state, "bob", c)
		assert.True(t, res.Valid, "choice %s should be legal in CHOICE", c)
	}

	res := ValidateChoice(state, "alice", swap2.ChoiceBlack)
	assert.False(t, res.Valid)
	assert.Equal(t, "wrong_player", res.Code)

	res = ValidateChoice(state, "bob", swap2.Choice("blue"))
	assert.False(t, res.Valid)
	assert.Equal(t, "invalid_choice", res.Code)
}

func TestValidateChoiceFinalPhase(t *testing.T) {
	state := swap2.NewState("g1", "alice", "bob")
	state.Phase = swap2.PhaseFinalChoice

	res := ValidateChoice(state, "alice", swap2.ChoiceBlack)
	assert.True(t, res.Valid)

	// place_more is only offered once
	res = ValidateChoice(state, "alice", swap2.ChoicePlaceMore)
	assert.False(t, res.Valid)
	assert.Equal(t, "invalid_choice", res.Code)
}

func TestValidateChoiceDuringPlacement(t *testing.T) {
	state := swap2.NewState("g1", "alice", "bob")

	res := ValidateChoice(state, "alice", swap2.ChoiceBlack)
	assert.False(t, res.Valid)
	assert.Equal(t, "invalid_phase", res.Code)
}

func TestValidationNeverMutates(t *testing.T) {
	state := swap2.NewState("g1", "alice", "bob")
	state.TentativeStones = append(state.TentativeStones, swap2.Stone{X: 1, Y: 1, PlacedBy: "alice", PlacementOrder: 1})

	before, err := SerializeState(state)
	assert.NoError(t, err)

	ValidatePlacement(state, "bob", 2, 2)
	ValidatePlacement(state, "alice", 1, 1)
	ValidateChoice(state, "alice", swap2.ChoiceBlack)

	after, err := SerializeState(state)
	assert.NoError(t, err)
	assert.Equal(t, before, after)
}
