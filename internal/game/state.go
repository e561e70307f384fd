// Package game runs a two-player session of the Royal Game of Ur: dice,
// turn flow, undo and the terminal loop around the rules engine.
package game

// State represents where the current turn stands.
type State int

const (
	// StateRolling waits for the current player to throw the dice.
	StateRolling State = iota
	// StateChoosing waits for the current player to pick a piece to move.
	StateChoosing
	// StateFinished means a player has brought every piece home.
	StateFinished
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateRolling:
		return "rolling"
	case StateChoosing:
		return "choosing"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}
