package swap2

import (
	"github.com/VNDT1625/Caro-sub006/internal/domain/board"
	"github.com/VNDT1625/Caro-sub006/internal/domain/swap2"
	errs "github.com/VNDT1625/Caro-sub006/internal/errors"
)

// ValidationResult is the structured outcome of a legality check. Expected
// illegal moves (wrong turn, bad cell, wrong phase) are routine game flow,
// so they come back as a code here rather than as a fault.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Code  string `json:"error_code,omitempty"`
}

func ok() ValidationResult {
	return ValidationResult{Valid: true}
}

func reject(r *errs.Rejection) ValidationResult {
	return ValidationResult{Code: r.Code}
}

// Err maps the result back to the matching rejection sentinel, or nil.
func (v ValidationResult) Err() error {
	if v.Valid {
		return nil
	}
	switch v.Code {
	case errs.ErrWrongPlayer.Code:
		return errs.ErrWrongPlayer
	case errs.ErrInvalidPhase.Code:
		return errs.ErrInvalidPhase
	case errs.ErrOutOfBounds.Code:
		return errs.ErrOutOfBounds
	case errs.ErrPositionOccupied.Code:
		return errs.ErrPositionOccupied
	case errs.ErrInvalidChoice.Code:
		return errs.ErrInvalidChoice
	case errs.ErrInvalidActionType.Code:
		return errs.ErrInvalidActionType
	case errs.ErrMissingCoords.Code:
		return errs.ErrMissingCoords
	case errs.ErrMissingChoice.Code:
		return errs.ErrMissingChoice
	case errs.ErrGameNotFound.Code:
		return errs.ErrGameNotFound
	default:
		return &errs.Rejection{Code: v.Code}
	}
}

// ValidatePlacement checks whether playerID may put a stone at (x, y) in
// the current state. Pure: the state is never touched.
func ValidatePlacement(state *swap2.State, playerID string, x, y int) ValidationResult {
	if playerID != state.ActivePlayerID() {
		return reject(errs.ErrWrongPlayer)
	}
	if state.Phase != swap2.PhasePlacement && state.Phase != swap2.PhaseExtra {
		return reject(errs.ErrInvalidPhase)
	}
	if !board.Validate(x, y) {
		return reject(errs.ErrOutOfBounds)
	}
	if state.StoneAt(x, y) {
		return reject(errs.ErrPositionOccupied)
	}
	return ok()
}

// ValidateChoice checks whether playerID may make the given color decision.
// Pure: the state is never touched.
func ValidateChoice(state *swap2.State, playerID string, choice swap2.Choice) ValidationResult {
	if playerID != state.ActivePlayerID() {
		return reject(errs.ErrWrongPlayer)
	}
	if state.Phase != swap2.PhaseChoice && state.Phase != swap2.PhaseFinalChoice {
		return reject(errs.ErrInvalidPhase)
	}
	if !choice.AllowedIn(state.Phase) {
		return reject(errs.ErrInvalidChoice)
	}
	return ok()
}
