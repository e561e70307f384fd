package rules

// Apply moves the current player's piece from start to d and returns the
// resulting snapshot. start and d must already have passed IsValidStart,
// Traverse and IsValidDestination for s. s itself is left untouched.
func Apply(s Snapshot, start Position, d Destination) Snapshot {
	next, _ := apply(s, start, d)
	return next
}

// apply also reports the player whose piece was captured, or NoPlayer.
func apply(s Snapshot, start Position, d Destination) (Snapshot, Player) {
	mover := s.CurrentPlayer
	next := s
	// Every map written below is copied first; Squares is copied lazily so a
	// move that neither starts nor ends on the board shares it.
	var squares map[SquareID]Square
	setOccupant := func(id SquareID, p Player) {
		if squares == nil {
			squares = cloneMap(s.Squares)
		}
		sq := squares[id]
		sq.Occupant = p
		squares[id] = sq
	}

	waiting := cloneMap(s.WaitingPieceNum)
	if waiting == nil {
		waiting = make(map[Player]int)
	}

	// Vacate source.
	if id, onBoard := start.Square(); onBoard {
		setOccupant(id, NoPlayer)
	} else {
		waiting[mover]--
	}

	captured := NoPlayer
	landsOnRosette := false
	if id, onBoard := d.Square(); onBoard {
		target := s.Squares[id]
		landsOnRosette = target.Rosette
		// Capture. A start equal to d only happens for a zero roll, which
		// IsValidDestination rejects.
		if !target.IsFree() && target.Occupant != mover {
			captured = target.Occupant
			waiting[captured]++
		}
		// Place.
		setOccupant(id, mover)
	} else {
		passed := cloneMap(s.PassedPieceNum)
		if passed == nil {
			passed = make(map[Player]int)
		}
		passed[mover]++
		next.PassedPieceNum = passed
	}

	if squares != nil {
		next.Squares = squares
	}
	next.WaitingPieceNum = waiting

	// Win check. An earlier winner is never replaced.
	if next.Winner == NoPlayer && next.PassedPieceNum[mover] == s.TotalPiecePerPlayerNum {
		next.Winner = mover
	}

	// Turn advance.
	if !landsOnRosette {
		next.CurrentPlayer = s.TurnAfter[mover]
	}
	return next, captured
}
