package swap2

import (
	"time"
)

// Phase of the opening protocol. The active player is derived from the
// phase (see State.ActivePlayerID), so an inconsistent phase/active pair
// cannot be stored.
type Phase string

const (
	PhasePlacement   Phase = "PLACEMENT"
	PhaseChoice      Phase = "CHOICE"
	PhaseExtra       Phase = "EXTRA"
	PhaseFinalChoice Phase = "FINAL_CHOICE"
	PhaseComplete    Phase = "COMPLETE"
)

// Choice is a color decision made during CHOICE or FINAL_CHOICE.
type Choice string

const (
	ChoiceBlack     Choice = "black"
	ChoiceWhite     Choice = "white"
	ChoicePlaceMore Choice = "place_more"
)

// AllowedIn reports whether the choice is a legal option for the phase:
// CHOICE offers all three, FINAL_CHOICE only the two colors.
func (c Choice) AllowedIn(p Phase) bool {
	switch p {
	case PhaseChoice:
		return c == ChoiceBlack || c == ChoiceWhite || c == ChoicePlaceMore
	case PhaseFinalChoice:
		return c == ChoiceBlack || c == ChoiceWhite
	default:
		return false
	}
}

type ActionType string

const (
	ActionPlace  ActionType = "place"
	ActionChoice ActionType = "choice"
)

// Stone is a tentative stone placed during the opening, before colors
// are assigned. PlacementOrder is 1-based and strictly increasing.
type Stone struct {
	X              int    `json:"x" bson:"x"`
	Y              int    `json:"y" bson:"y"`
	PlacedBy       string `json:"placed_by" bson:"placed_by"`
	PlacementOrder int    `json:"placement_order" bson:"placement_order"`
}

// ActionData carries the payload of a logged action; X/Y are meaningful
// for place actions, Choice for choice actions.
type ActionData struct {
	X      int    `json:"x,omitempty" bson:"x,omitempty"`
	Y      int    `json:"y,omitempty" bson:"y,omitempty"`
	Choice Choice `json:"choice,omitempty" bson:"choice,omitempty"`
}

// Action is one accepted entry of the audit trail. Rejected attempts are
// never logged.
type Action struct {
	Type      ActionType `json:"type" bson:"type"`
	PlayerID  string     `json:"player_id" bson:"player_id"`
	Data      ActionData `json:"data" bson:"data"`
	Timestamp time.Time  `json:"timestamp" bson:"timestamp"`
}

// State is the per-game record of the swap2 opening sequence.
type State struct {
	GameID          string   `json:"game_id" bson:"game_id"`
	Player1ID       string   `json:"player1_id" bson:"player1_id"`
	Player2ID       string   `json:"player2_id" bson:"player2_id"`
	Phase           Phase    `json:"phase" bson:"phase"`
	TentativeStones []Stone  `json:"tentative_stones" bson:"tentative_stones"`
	BlackPlayerID   string   `json:"black_player_id,omitempty" bson:"black_player_id,omitempty"`
	WhitePlayerID   string   `json:"white_player_id,omitempty" bson:"white_player_id,omitempty"`
	FinalChoice     Choice   `json:"final_choice,omitempty" bson:"final_choice,omitempty"`
	Actions         []Action `json:"actions" bson:"actions"`
}

// NewState starts a fresh opening sequence: player1 places first.
func NewState(gameID, player1ID, player2ID string) *State {
	return &State{
		GameID:          gameID,
		Player1ID:       player1ID,
		Player2ID:       player2ID,
		Phase:           PhasePlacement,
		TentativeStones: []Stone{},
		Actions:         []Action{},
	}
}

// ActivePlayerID returns the competitor authorized to act in the current
// phase, or "" once the sequence is complete.
func (s *State) ActivePlayerID() string {
	switch s.Phase {
	case PhasePlacement, PhaseFinalChoice:
		return s.Player1ID
	case PhaseChoice, PhaseExtra:
		return s.Player2ID
	default:
		return ""
	}
}

// IsComplete reports whether colors are assigned and the main game may start.
func (s *State) IsComplete() bool {
	return s.Phase == PhaseComplete
}

// StoneAt reports whether a tentative stone already occupies (x, y).
func (s *State) StoneAt(x, y int) bool {
	for _, st := range s.TentativeStones {
		if st.X == x && st.Y == y {
			return true
		}
	}
	return false
}

// FirstMover is the competitor who takes the first turn of the main game,
// always the black-color holder. Empty until the sequence completes.
func (s *State) FirstMover() string {
	if s.Phase != PhaseComplete {
		return ""
	}
	return s.BlackPlayerID
}

// Clone returns a deep copy so callers can inspect a snapshot without
// aliasing the stone or action slices of the live state.
func (s *State) Clone() *State {
	cp := *s
	cp.TentativeStones = make([]Stone, len(s.TentativeStones))
	copy(cp.TentativeStones, s.TentativeStones)
	cp.Actions = make([]Action, len(s.Actions))
	copy(cp.Actions, s.Actions)
	return &cp
}

// Assignment is the final color split handed to the main-game engine.
type Assignment struct {
	BlackPlayerID string `json:"black_player_id" bson:"black_player_id"`
	WhitePlayerID string `json:"white_player_id" bson:"white_player_id"`
	FirstMover    string `json:"first_mover" bson:"first_mover"`
}

// History is the replayable view of an opening sequence. FinalAssignment
// is nil until the sequence completes.
type History struct {
	Actions         []Action    `json:"actions"`
	TentativeStones []Stone     `json:"tentative_stones"`
	FinalChoice     Choice      `json:"final_choice,omitempty"`
	FinalAssignment *Assignment `json:"final_assignment,omitempty"`
}
