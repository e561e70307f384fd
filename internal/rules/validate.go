package rules

// IsValidStart reports whether the current player may move a piece from start.
func IsValidStart(s Snapshot, start Position) bool {
	return checkStart(s, start) == 0
}

// IsValidDestination reports whether the current player may end a move on d.
func IsValidDestination(s Snapshot, d Destination) bool {
	return checkDestination(s, d) == 0
}

// checkStart returns zero for a legal start.
func checkStart(s Snapshot, start Position) Reason {
	id, onBoard := start.Square()
	if !onBoard {
		if s.WaitingPieceNum[s.CurrentPlayer] > 0 {
			return 0
		}
		return ReasonNoWaitingPiece
	}
	sq, ok := s.Squares[id]
	if !ok {
		return ReasonUnknownSquare
	}
	if sq.Occupant != s.CurrentPlayer {
		return ReasonStartNotOwned
	}
	return 0
}

// checkDestination returns zero for a legal destination.
func checkDestination(s Snapshot, d Destination) Reason {
	id, onBoard := d.Square()
	if !onBoard {
		return 0
	}
	sq, ok := s.Squares[id]
	if !ok {
		return ReasonUnknownSquare
	}
	switch {
	case sq.Occupant == s.CurrentPlayer:
		return ReasonBlockedBySelf
	case !sq.IsFree() && sq.Rosette:
		return ReasonBlockedByRosette
	}
	return 0
}
