package board

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samdwyer/royalur/internal/rules"
)

// savedSnapshot is the on-disk form of a game in progress. Topology is not
// stored; it comes back from the named layout.
type savedSnapshot struct {
	Layout        string                          `json:"layout"`
	Occupants     map[rules.SquareID]rules.Player `json:"occupants"`
	Waiting       map[rules.Player]int            `json:"waiting"`
	Passed        map[rules.Player]int            `json:"passed"`
	Pieces        int                             `json:"pieces"`
	CurrentPlayer rules.Player                    `json:"currentPlayer"`
	Winner        rules.Player                    `json:"winner,omitempty"`
}

// EncodeSnapshot serializes s, played on l, as JSON.
func EncodeSnapshot(l *Layout, s rules.Snapshot) ([]byte, error) {
	saved := savedSnapshot{
		Layout:        l.Name,
		Occupants:     make(map[rules.SquareID]rules.Player),
		Waiting:       s.WaitingPieceNum,
		Passed:        s.PassedPieceNum,
		Pieces:        s.TotalPiecePerPlayerNum,
		CurrentPlayer: s.CurrentPlayer,
		Winner:        s.Winner,
	}
	for id, sq := range s.Squares {
		if !sq.IsFree() {
			saved.Occupants[id] = sq.Occupant
		}
	}
	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot restores a snapshot written by EncodeSnapshot together with
// the layout it was played on. The result is checked with
// rules.Snapshot.CheckInvariants.
func DecodeSnapshot(ctx context.Context, data []byte) (*Layout, rules.Snapshot, error) {
	var saved savedSnapshot
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, rules.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	layout, err := LoadLayout(ctx, saved.Layout)
	if err != nil {
		return nil, rules.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	s, err := layout.NewSnapshot(saved.Pieces, saved.CurrentPlayer)
	if err != nil {
		return nil, rules.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	for id, p := range saved.Occupants {
		sq, ok := s.Squares[id]
		if !ok {
			return nil, rules.Snapshot{}, fmt.Errorf("decode snapshot: square %q is not on %q", id, layout.Name)
		}
		sq.Occupant = p
		s.Squares[id] = sq
	}
	for p := range s.TurnAfter {
		s.WaitingPieceNum[p] = saved.Waiting[p]
		s.PassedPieceNum[p] = saved.Passed[p]
	}
	s.Winner = saved.Winner

	if err := s.CheckInvariants(); err != nil {
		return nil, rules.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return layout, s, nil
}
