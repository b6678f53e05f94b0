package swap2

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/VNDT1625/Caro-sub006/internal/domain/swap2"
	errs "github.com/VNDT1625/Caro-sub006/internal/errors"
)

// Manager owns every live swap2 opening, keyed by game id. Mutations for
// one game are serialized by a per-game mutex, so validate-then-apply is
// atomic with respect to the opponent's connection; different games never
// contend.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*gameEntry
	log   *zap.SugaredLogger
}

type gameEntry struct {
	mu    sync.Mutex
	state *swap2.State
}

func NewManager(log *zap.SugaredLogger) *Manager {
	return &Manager{
		games: make(map[string]*gameEntry),
		log:   log,
	}
}

// InitializeSwap2 creates and stores a fresh opening for gameID, replacing
// any prior state under the same key. Ranked series call this once per game
// of the series; nothing carries over between games.
func (m *Manager) InitializeSwap2(gameID, player1ID, player2ID string) *swap2.State {
	state := swap2.NewState(gameID, player1ID, player2ID)

	m.mu.Lock()
	m.games[gameID] = &gameEntry{state: state}
	m.mu.Unlock()

	m.log.Infow("swap2 initialized", "game_id", gameID, "player1", player1ID, "player2", player2ID)
	return state.Clone()
}

func (m *Manager) entry(gameID string) (*gameEntry, bool) {
	m.mu.RLock()
	e, ok := m.games[gameID]
	m.mu.RUnlock()
	return e, ok
}

// PlaceStone applies a placement for playerID. On any validation failure
// the stored state is left untouched and the rejection is returned.
func (m *Manager) PlaceStone(gameID, playerID string, x, y int) (*swap2.State, error) {
	e, found := m.entry(gameID)
	if !found {
		return nil, errs.ErrGameNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	state := e.state
	if res := ValidatePlacement(state, playerID, x, y); !res.Valid {
		return nil, res.Err()
	}

	state.TentativeStones = append(state.TentativeStones, swap2.Stone{
		X:              x,
		Y:              y,
		PlacedBy:       playerID,
		PlacementOrder: len(state.TentativeStones) + 1,
	})
	state.Actions = append(state.Actions, swap2.Action{
		Type:      swap2.ActionPlace,
		PlayerID:  playerID,
		Data:      swap2.ActionData{X: x, Y: y},
		Timestamp: time.Now().UTC(),
	})

	// Phase exit is atomic with the triggering stone: there is no
	// observable EXTRA state holding five stones.
	switch state.Phase {
	case swap2.PhasePlacement:
		if len(state.TentativeStones) == 3 {
			state.Phase = swap2.PhaseChoice
		}
	case swap2.PhaseExtra:
		if len(state.TentativeStones) == 5 {
			state.Phase = swap2.PhaseFinalChoice
		}
	}

	return state.Clone(), nil
}

// MakeChoice applies a color decision (or place_more) for playerID. The
// chooser of a color keeps it; the opponent receives the opposite color,
// and the black holder moves first in the main game.
func (m *Manager) MakeChoice(gameID, playerID string, choice swap2.Choice) (*swap2.State, error) {
	e, found := m.entry(gameID)
	if !found {
		return nil, errs.ErrGameNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	state := e.state
	if res := ValidateChoice(state, playerID, choice); !res.Valid {
		return nil, res.Err()
	}

	state.Actions = append(state.Actions, swap2.Action{
		Type:      swap2.ActionChoice,
		PlayerID:  playerID,
		Data:      swap2.ActionData{Choice: choice},
		Timestamp: time.Now().UTC(),
	})

	if choice == swap2.ChoicePlaceMore {
		state.Phase = swap2.PhaseExtra
		return state.Clone(), nil
	}

	state.FinalChoice = choice
	opponent := state.Player1ID
	if playerID == state.Player1ID {
		opponent = state.Player2ID
	}
	if choice == swap2.ChoiceBlack {
		state.BlackPlayerID = playerID
		state.WhitePlayerID = opponent
	} else {
		state.WhitePlayerID = playerID
		state.BlackPlayerID = opponent
	}
	state.Phase = swap2.PhaseComplete

	m.log.Infow("swap2 complete", "game_id", gameID,
		"black", state.BlackPlayerID, "white", state.WhitePlayerID)
	return state.Clone(), nil
}

// GetState returns a snapshot of the opening for gameID, or nil when no
// state exists under that key.
func (m *Manager) GetState(gameID string) *swap2.State {
	e, found := m.entry(gameID)
	if !found {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// ClearState drops the opening for gameID, e.g. on abandonment.
func (m *Manager) ClearState(gameID string) {
	m.mu.Lock()
	delete(m.games, gameID)
	m.mu.Unlock()
}

// IsComplete reports whether the given snapshot reached the terminal phase.
func (m *Manager) IsComplete(state *swap2.State) bool {
	return state != nil && state.IsComplete()
}

// ActionRequest is the untyped front door for callers that relay raw client
// actions without parsing them first.
type ActionRequest struct {
	Type   string `json:"type"`
	X      *int   `json:"x,omitempty"`
	Y      *int   `json:"y,omitempty"`
	Choice string `json:"choice,omitempty"`
}

// ValidateAction checks a raw action against the stored state without
// applying it.
func (m *Manager) ValidateAction(gameID, playerID string, req ActionRequest) ValidationResult {
	e, found := m.entry(gameID)
	if !found {
		return reject(errs.ErrGameNotFound)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return validateRequest(e.state, playerID, req)
}

func validateRequest(state *swap2.State, playerID string, req ActionRequest) ValidationResult {
	switch swap2.ActionType(req.Type) {
	case swap2.ActionPlace:
		if req.X == nil || req.Y == nil {
			return reject(errs.ErrMissingCoords)
		}
		return ValidatePlacement(state, playerID, *req.X, *req.Y)
	case swap2.ActionChoice:
		if req.Choice == "" {
			return reject(errs.ErrMissingChoice)
		}
		return ValidateChoice(state, playerID, swap2.Choice(req.Choice))
	default:
		return reject(errs.ErrInvalidActionType)
	}
}

// ApplyAction validates and applies a raw action in one step. Used by the
// websocket session layer, which relays client messages verbatim.
func (m *Manager) ApplyAction(gameID, playerID string, req ActionRequest) (*swap2.State, error) {
	if res := m.ValidateAction(gameID, playerID, req); !res.Valid {
		return nil, res.Err()
	}
	if swap2.ActionType(req.Type) == swap2.ActionPlace {
		return m.PlaceStone(gameID, playerID, *req.X, *req.Y)
	}
	return m.MakeChoice(gameID, playerID, swap2.Choice(req.Choice))
}
