package rules

// Position is where a move starts: a square on the board or the off-board
// staging area. The zero value is OffBoard.
type Position struct {
	square  SquareID
	onBoard bool
}

// OnBoard returns the position of the given square.
func OnBoard(id SquareID) Position {
	return Position{square: id, onBoard: true}
}

// OffBoard returns the staging-area position.
func OffBoard() Position {
	return Position{}
}

// Square returns the square id and true for an on-board position.
func (p Position) Square() (SquareID, bool) {
	return p.square, p.onBoard
}

// IsOffBoard reports whether the position is the staging area.
func (p Position) IsOffBoard() bool {
	return !p.onBoard
}

// String returns the square id, or "off-board".
func (p Position) String() string {
	if !p.onBoard {
		return "off-board"
	}
	return string(p.square)
}

// Destination is where a traversal ends: a square on the board or off the far
// end of the route. The zero value is not a valid destination; use Landing or
// Exited.
type Destination struct {
	square SquareID
	exited bool
}

// Landing returns a destination on the given square.
func Landing(id SquareID) Destination {
	return Destination{square: id}
}

// Exited returns the destination of a piece leaving the board.
func Exited() Destination {
	return Destination{exited: true}
}

// Square returns the square id and true when the destination is on the board.
func (d Destination) Square() (SquareID, bool) {
	return d.square, !d.exited
}

// IsExited reports whether the piece leaves the board.
func (d Destination) IsExited() bool {
	return d.exited
}

// String returns the square id, or "exited".
func (d Destination) String() string {
	if d.exited {
		return "exited"
	}
	return string(d.square)
}
