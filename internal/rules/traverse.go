package rules

// Traverse walks roll steps from start along the current player's route and
// returns where the piece would end up. It does not look at occupancy; that
// is IsValidDestination's job.
//
// A piece leaves the board only from the player's exit square, and only when
// the board edge is reached with exactly one step left.
func Traverse(s Snapshot, start Position, roll int) (Destination, error) {
	if roll < 0 {
		return Destination{}, reject(ReasonNegativeRoll, start, roll)
	}
	if roll == 0 {
		id, onBoard := start.Square()
		if !onBoard {
			// Nothing would move.
			return Destination{}, reject(ReasonZeroRoll, start, roll)
		}
		return Landing(id), nil
	}

	player := s.CurrentPlayer
	pos := start
	for remaining := roll; remaining > 0; remaining-- {
		id, onBoard := pos.Square()
		if !onBoard {
			first, ok := s.FirstSquareFor[player]
			if !ok {
				return Destination{}, reject(ReasonUnknownSquare, start, roll)
			}
			if _, ok := s.Squares[first]; !ok {
				return Destination{}, reject(ReasonUnknownSquare, start, roll)
			}
			pos = OnBoard(first)
			continue
		}

		sq, ok := s.Squares[id]
		if !ok {
			return Destination{}, reject(ReasonUnknownSquare, start, roll)
		}
		if next, ok := sq.Next(player); ok {
			pos = OnBoard(next)
			continue
		}
		if remaining == 1 && id == s.LastSquareFor[player] {
			return Exited(), nil
		}
		return Destination{}, reject(ReasonOvershoot, start, roll)
	}

	id, _ := pos.Square()
	return Landing(id), nil
}
