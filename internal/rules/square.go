// Package rules implements the move validation and state transitions of the
// Royal Game of Ur over an arbitrary path-shaped board.
//
// Every function in this package is pure. A Snapshot is treated as a value:
// MakeMove and Apply return a new Snapshot and never write to the one they
// were given.
package rules

import "fmt"

// Player identifies one side of the game.
type Player uint8

const (
	// NoPlayer marks an empty square or an undecided game.
	NoPlayer Player = iota
	// PlayerOne is the first player of the standard two-player game.
	PlayerOne
	// PlayerTwo is the second player of the standard two-player game.
	PlayerTwo
)

// String returns a human-readable player name.
func (p Player) String() string {
	switch p {
	case NoPlayer:
		return "none"
	case PlayerOne:
		return "player_one"
	case PlayerTwo:
		return "player_two"
	default:
		return fmt.Sprintf("player_%d", uint8(p))
	}
}

// SquareID identifies a square on the board.
type SquareID string

// Direction names one of the links leaving a square.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Square is one cell of the board graph.
//
// Forward and Neighbours describe topology and are shared between snapshots;
// they must never be written after the board is built. Only Occupant changes
// over the life of a game.
type Square struct {
	ID         SquareID
	Rosette    bool                   // Safe from capture, grants an extra turn
	Forward    map[Player]Direction   // Direction of travel per player here
	Neighbours map[Direction]SquareID // Missing key means board edge
	Occupant   Player
}

// Next returns the neighbour lying in p's direction of travel.
func (sq Square) Next(p Player) (SquareID, bool) {
	dir, ok := sq.Forward[p]
	if !ok {
		return "", false
	}
	id, ok := sq.Neighbours[dir]
	return id, ok
}

// IsFree reports whether no piece occupies the square.
func (sq Square) IsFree() bool {
	return sq.Occupant == NoPlayer
}
