package errors

import "errors"

// Rejection is an illegal request, not a fault: whenever one is returned
// the stored game state is untouched.
type Rejection struct {
	Code string
}

func (r *Rejection) Error() string {
	return r.Code
}

// Rejection codes surfaced across the swap2 subsystem boundary.
var (
	ErrWrongPlayer       = &Rejection{Code: "wrong_player"}
	ErrInvalidPhase      = &Rejection{Code: "invalid_phase"}
	ErrOutOfBounds       = &Rejection{Code: "out_of_bounds"}
	ErrPositionOccupied  = &Rejection{Code: "position_occupied"}
	ErrInvalidChoice     = &Rejection{Code: "invalid_choice"}
	ErrInvalidActionType = &Rejection{Code: "invalid_action_type"}
	ErrMissingCoords     = &Rejection{Code: "missing_coordinates"}
	ErrMissingChoice     = &Rejection{Code: "missing_choice"}
	ErrGameNotFound      = &Rejection{Code: "game_not_found"}
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrReportNotFound = errors.New("report not found")
	ErrSeriesFinished = errors.New("series already finished")
	ErrQuotaExceeded  = errors.New("usage quota exceeded")
	ErrInternal       = errors.New("internal error")
)

// CodeOf returns the rejection code carried by err, or "" for plain errors.
func CodeOf(err error) string {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Code
	}
	return ""
}
