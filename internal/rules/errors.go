package rules

import (
	"errors"
	"fmt"
)

// ErrInvalidMove is the single rejection outcome of MakeMove.
var ErrInvalidMove = errors.New("invalid move")

// Reason says which check rejected a move.
type Reason int

const (
	ReasonStartNotOwned Reason = iota + 1
	ReasonNoWaitingPiece
	ReasonUnknownSquare
	ReasonNegativeRoll
	ReasonZeroRoll
	ReasonOvershoot
	ReasonBlockedBySelf
	ReasonBlockedByRosette
)

// String returns a short snake_case name, suitable as a span attribute.
func (r Reason) String() string {
	switch r {
	case ReasonStartNotOwned:
		return "start_not_owned"
	case ReasonNoWaitingPiece:
		return "no_waiting_piece"
	case ReasonUnknownSquare:
		return "unknown_square"
	case ReasonNegativeRoll:
		return "negative_roll"
	case ReasonZeroRoll:
		return "zero_roll"
	case ReasonOvershoot:
		return "overshoot"
	case ReasonBlockedBySelf:
		return "blocked_by_self"
	case ReasonBlockedByRosette:
		return "blocked_by_rosette"
	default:
		return "unknown"
	}
}

// MoveError describes a rejected move. It matches ErrInvalidMove under
// errors.Is.
type MoveError struct {
	Reason Reason
	Start  Position
	Roll   int
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s: %s (start=%s roll=%d)", ErrInvalidMove, e.Reason, e.Start, e.Roll)
}

// Is makes errors.Is(err, ErrInvalidMove) hold for every MoveError.
func (e *MoveError) Is(target error) bool {
	return target == ErrInvalidMove
}

// RejectionReason extracts the reason from a MakeMove error. It returns false
// for nil or foreign errors.
func RejectionReason(err error) (Reason, bool) {
	var me *MoveError
	if errors.As(err, &me) {
		return me.Reason, true
	}
	return 0, false
}

func reject(reason Reason, start Position, roll int) *MoveError {
	return &MoveError{Reason: reason, Start: start, Roll: roll}
}
