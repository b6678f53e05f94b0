package swap2

import (
	"encoding/json"
	"fmt"

	"github.com/VNDT1625/Caro-sub006/internal/domain/swap2"
	errs "github.com/VNDT1625/Caro-sub006/internal/errors"
)

// History returns the replayable view of a state snapshot. The final
// assignment is only present once the sequence is complete, and its first
// mover is always the black holder.
func History(state *swap2.State) swap2.History {
	h := swap2.History{
		Actions:         append([]swap2.Action{}, state.Actions...),
		TentativeStones: append([]swap2.Stone{}, state.TentativeStones...),
		FinalChoice:     state.FinalChoice,
	}
	if state.IsComplete() {
		h.FinalAssignment = &swap2.Assignment{
			BlackPlayerID: state.BlackPlayerID,
			WhitePlayerID: state.WhitePlayerID,
			FirstMover:    state.BlackPlayerID,
		}
	}
	return h
}

// GetHistory is the keyed variant used by the delivery layer.
func (m *Manager) GetHistory(gameID string) (swap2.History, error) {
	state := m.GetState(gameID)
	if state == nil {
		return swap2.History{}, errs.ErrGameNotFound
	}
	return History(state), nil
}

// SerializeState encodes a snapshot into a portable blob. Timestamps keep
// nanosecond RFC3339 form, so the action log stays ordered after a round
// trip.
func SerializeState(state *swap2.State) ([]byte, error) {
	return json.Marshal(state)
}

// DeserializeState decodes a blob produced by SerializeState.
func DeserializeState(data []byte) (*swap2.State, error) {
	var state swap2.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("swap2 snapshot decode: %w", err)
	}
	if state.GameID == "" || state.Player1ID == "" || state.Player2ID == "" {
		return nil, fmt.Errorf("swap2 snapshot missing identity fields")
	}
	switch state.Phase {
	case swap2.PhasePlacement, swap2.PhaseChoice, swap2.PhaseExtra,
		swap2.PhaseFinalChoice, swap2.PhaseComplete:
	default:
		return nil, fmt.Errorf("swap2 snapshot has unknown phase %q", state.Phase)
	}
	if state.TentativeStones == nil {
		state.TentativeStones = []swap2.Stone{}
	}
	if state.Actions == nil {
		state.Actions = []swap2.Action{}
	}
	return &state, nil
}

// SerializeGame snapshots the live state for gameID, for storage by the
// session layer on disconnect.
func (m *Manager) SerializeGame(gameID string) ([]byte, error) {
	e, found := m.entry(gameID)
	if !found {
		return nil, errs.ErrGameNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return SerializeState(e.state)
}

// RestoreStateForReconnection re-inserts a stored snapshot under gameID.
// The game is fully continuable afterwards, as if no disconnect happened.
func (m *Manager) RestoreStateForReconnection(gameID string, data []byte) (*swap2.State, error) {
	state, err := DeserializeState(data)
	if err != nil {
		return nil, err
	}
	state.GameID = gameID

	m.mu.Lock()
	m.games[gameID] = &gameEntry{state: state}
	m.mu.Unlock()

	m.log.Infow("swap2 restored", "game_id", gameID, "phase", state.Phase)
	return state.Clone(), nil
}
