package rules

import (
	"cmp"
	"slices"
)

// Move is a request to advance one of the current player's pieces.
type Move struct {
	Start Position
	Roll  int
}

// Result is an accepted move together with what it did.
type Result struct {
	Snapshot    Snapshot
	Destination Destination
	Captured    Player // Owner of the piece sent back to staging, or NoPlayer
	ExtraTurn   bool   // The mover landed on a rosette and keeps the turn
}

// Resolve validates m against s and applies it. Any failure is a *MoveError
// matching ErrInvalidMove, and s is left untouched.
func Resolve(s Snapshot, m Move) (Result, error) {
	if reason := checkStart(s, m.Start); reason != 0 {
		return Result{}, reject(reason, m.Start, m.Roll)
	}
	dest, err := Traverse(s, m.Start, m.Roll)
	if err != nil {
		return Result{}, err
	}
	if reason := checkDestination(s, dest); reason != 0 {
		return Result{}, reject(reason, m.Start, m.Roll)
	}

	next, captured := apply(s, m.Start, dest)
	id, onBoard := dest.Square()
	return Result{
		Snapshot:    next,
		Destination: dest,
		Captured:    captured,
		ExtraTurn:   onBoard && s.Squares[id].Rosette,
	}, nil
}

// MakeMove returns the snapshot that follows s once m is played, or an error
// matching ErrInvalidMove.
func MakeMove(s Snapshot, m Move) (Snapshot, error) {
	res, err := Resolve(s, m)
	if err != nil {
		return s, err
	}
	return res.Snapshot, nil
}

// LegalMoves lists every move the current player could make with roll.
// Entering a new piece comes first, then board squares in id order.
func LegalMoves(s Snapshot, roll int) []Move {
	starts := []Position{OffBoard()}
	held := s.OccupiedBy(s.CurrentPlayer)
	slices.SortFunc(held, func(a, b SquareID) int { return cmp.Compare(a, b) })
	for _, id := range held {
		starts = append(starts, OnBoard(id))
	}

	var moves []Move
	for _, start := range starts {
		m := Move{Start: start, Roll: roll}
		if _, err := Resolve(s, m); err == nil {
			moves = append(moves, m)
		}
	}
	return moves
}
