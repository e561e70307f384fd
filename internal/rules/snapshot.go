package rules

import (
	"errors"
	"fmt"
)

// ErrBrokenInvariant is returned by CheckInvariants.
var ErrBrokenInvariant = errors.New("broken snapshot invariant")

// Snapshot is the whole game state between two moves.
//
// A Snapshot is superseded, never mutated: every accepted move yields a new
// value and the previous one stays valid for replay or undo.
type Snapshot struct {
	Squares map[SquareID]Square

	FirstSquareFor map[Player]SquareID // Entry square per player
	LastSquareFor  map[Player]SquareID // Exit square per player

	WaitingPieceNum        map[Player]int // Pieces not yet entered
	PassedPieceNum         map[Player]int // Pieces that left the board
	TotalPiecePerPlayerNum int

	TurnAfter     map[Player]Player
	CurrentPlayer Player
	Winner        Player // NoPlayer until someone passes every piece
}

// Players returns every player with a place in the turn order, in turn order
// starting from CurrentPlayer.
func (s Snapshot) Players() []Player {
	players := make([]Player, 0, len(s.TurnAfter))
	p := s.CurrentPlayer
	for range s.TurnAfter {
		players = append(players, p)
		p = s.TurnAfter[p]
		if p == s.CurrentPlayer {
			break
		}
	}
	return players
}

// OnBoardCount returns the number of squares occupied by p.
func (s Snapshot) OnBoardCount(p Player) int {
	count := 0
	for _, sq := range s.Squares {
		if sq.Occupant == p {
			count++
		}
	}
	return count
}

// OccupiedBy returns the ids of the squares held by p, in no particular order.
func (s Snapshot) OccupiedBy(p Player) []SquareID {
	var ids []SquareID
	for id, sq := range s.Squares {
		if sq.Occupant == p {
			ids = append(ids, id)
		}
	}
	return ids
}

// IsOver reports whether a winner has been decided.
func (s Snapshot) IsOver() bool {
	return s.Winner != NoPlayer
}

// Clone returns a deep copy of every mutable part of the snapshot. Square
// topology maps are shared.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Squares = make(map[SquareID]Square, len(s.Squares))
	for id, sq := range s.Squares {
		out.Squares[id] = sq
	}
	out.FirstSquareFor = cloneMap(s.FirstSquareFor)
	out.LastSquareFor = cloneMap(s.LastSquareFor)
	out.WaitingPieceNum = cloneMap(s.WaitingPieceNum)
	out.PassedPieceNum = cloneMap(s.PassedPieceNum)
	out.TurnAfter = cloneMap(s.TurnAfter)
	return out
}

// CheckInvariants verifies piece conservation, turn order membership and the
// winner rule.
func (s Snapshot) CheckInvariants() error {
	if s.TotalPiecePerPlayerNum <= 0 {
		return fmt.Errorf("%w: total pieces per player is %d", ErrBrokenInvariant, s.TotalPiecePerPlayerNum)
	}
	if _, ok := s.TurnAfter[s.CurrentPlayer]; !ok {
		return fmt.Errorf("%w: current player %s has no turn order entry", ErrBrokenInvariant, s.CurrentPlayer)
	}
	for p := range s.TurnAfter {
		waiting, passed := s.WaitingPieceNum[p], s.PassedPieceNum[p]
		if waiting < 0 || passed < 0 {
			return fmt.Errorf("%w: %s has negative counts (waiting=%d passed=%d)", ErrBrokenInvariant, p, waiting, passed)
		}
		onBoard := s.OnBoardCount(p)
		if waiting+passed+onBoard != s.TotalPiecePerPlayerNum {
			return fmt.Errorf("%w: %s has %d waiting + %d passed + %d on board, want %d",
				ErrBrokenInvariant, p, waiting, passed, onBoard, s.TotalPiecePerPlayerNum)
		}
	}
	for id, sq := range s.Squares {
		if sq.ID != id {
			return fmt.Errorf("%w: square keyed %q has id %q", ErrBrokenInvariant, id, sq.ID)
		}
		if sq.Occupant == NoPlayer {
			continue
		}
		if _, ok := s.TurnAfter[sq.Occupant]; !ok {
			return fmt.Errorf("%w: square %q held by unknown %s", ErrBrokenInvariant, id, sq.Occupant)
		}
	}
	if s.Winner != NoPlayer && s.PassedPieceNum[s.Winner] != s.TotalPiecePerPlayerNum {
		return fmt.Errorf("%w: winner %s passed %d of %d pieces",
			ErrBrokenInvariant, s.Winner, s.PassedPieceNum[s.Winner], s.TotalPiecePerPlayerNum)
	}
	return nil
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
