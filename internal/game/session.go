package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/royalur/internal/board"
	"github.com/samdwyer/royalur/internal/rules"
	"github.com/samdwyer/royalur/internal/telemetry"
)

// Roller supplies dice throws.
type Roller interface {
	Roll() int
}

// Session is one game in progress: the snapshot history and the turn the
// current player is in the middle of. It owns no screen, so it can be driven
// from tests.
type Session struct {
	ID      uuid.UUID
	Layout  *board.Layout
	Resumed bool // Started from a saved game

	roller  Roller
	tracer  trace.Tracer
	history []rules.Snapshot

	state    State
	roll     int
	legal    []rules.Move
	selected int
	message  string
}

// NewSession starts a session from s. s may be a fresh or a resumed snapshot.
func NewSession(layout *board.Layout, s rules.Snapshot, roller Roller) *Session {
	sess := &Session{
		ID:      uuid.New(),
		Layout:  layout,
		roller:  roller,
		tracer:  telemetry.Tracer("game"),
		history: []rules.Snapshot{s},
		state:   StateRolling,
		message: s.CurrentPlayer.String() + " to roll",
	}
	if s.IsOver() {
		sess.finish()
	}
	return sess
}

// Current returns the latest snapshot.
func (sess *Session) Current() rules.Snapshot {
	return sess.history[len(sess.history)-1]
}

// History returns every snapshot of the game, oldest first.
func (sess *Session) History() []rules.Snapshot {
	return append([]rules.Snapshot(nil), sess.history...)
}

// State returns where the current turn stands.
func (sess *Session) State() State {
	return sess.state
}

// LastRoll returns the roll being played, valid in StateChoosing.
func (sess *Session) LastRoll() int {
	return sess.roll
}

// Message returns the latest human-readable event.
func (sess *Session) Message() string {
	return sess.message
}

// LegalMoves returns the moves open to the current player for this roll.
func (sess *Session) LegalMoves() []rules.Move {
	return append([]rules.Move(nil), sess.legal...)
}

// Selected returns the highlighted move, if any.
func (sess *Session) Selected() (rules.Move, bool) {
	if sess.state != StateChoosing || len(sess.legal) == 0 {
		return rules.Move{}, false
	}
	return sess.legal[sess.selected], true
}

func (sess *Session) attrs() []attribute.KeyValue {
	cur := sess.Current()
	return []attribute.KeyValue{
		attribute.String("game.id", sess.ID.String()),
		attribute.String("game.board", sess.Layout.Name),
		attribute.String("player", cur.CurrentPlayer.String()),
		attribute.Int("game.move_number", len(sess.history)-1),
	}
}

// Roll throws the dice for the current player. With no legal move the turn
// passes straight to the next player.
func (sess *Session) Roll(ctx context.Context) {
	if sess.state != StateRolling {
		return
	}
	ctx, span := sess.tracer.Start(ctx, "game.roll")
	defer span.End()
	span.SetAttributes(sess.attrs()...)

	sess.roll = sess.roller.Roll()
	span.SetAttributes(attribute.Int("roll", sess.roll))

	cur := sess.Current()
	if sess.roll > 0 {
		sess.legal = rules.LegalMoves(cur, sess.roll)
	} else {
		sess.legal = nil
	}
	span.SetAttributes(attribute.Int("legal_moves", len(sess.legal)))

	if len(sess.legal) == 0 {
		sess.pass(ctx)
		return
	}
	sess.selected = 0
	sess.state = StateChoosing
	sess.message = fmt.Sprintf("%s rolled %d: choose a piece", cur.CurrentPlayer, sess.roll)
}

// pass hands the turn on without touching the board.
func (sess *Session) pass(ctx context.Context) {
	_, span := sess.tracer.Start(ctx, "game.pass")
	defer span.End()
	span.SetAttributes(sess.attrs()...)
	span.SetAttributes(attribute.Int("roll", sess.roll))

	cur := sess.Current()
	next := cur
	next.CurrentPlayer = cur.TurnAfter[cur.CurrentPlayer]
	sess.history = append(sess.history, next)
	sess.legal = nil
	sess.state = StateRolling
	sess.message = fmt.Sprintf("%s rolled %d and cannot move; %s to roll", cur.CurrentPlayer, sess.roll, next.CurrentPlayer)
}

// Cycle moves the highlight through the legal moves.
func (sess *Session) Cycle(delta int) {
	if sess.state != StateChoosing || len(sess.legal) == 0 {
		return
	}
	n := len(sess.legal)
	sess.selected = ((sess.selected+delta)%n + n) % n
}

// SelectStart highlights the legal move starting at start. It reports false
// when no legal move starts there.
func (sess *Session) SelectStart(start rules.Position) bool {
	if sess.state != StateChoosing {
		return false
	}
	for i, m := range sess.legal {
		if m.Start == start {
			sess.selected = i
			return true
		}
	}
	return false
}

// Confirm plays the highlighted move.
func (sess *Session) Confirm(ctx context.Context) error {
	m, ok := sess.Selected()
	if !ok {
		return fmt.Errorf("%w: nothing selected", rules.ErrInvalidMove)
	}
	return sess.Play(ctx, m)
}

// Play hands m to the rules engine and, if accepted, records the new
// snapshot. A rejected move leaves the history and the turn as they were.
func (sess *Session) Play(ctx context.Context, m rules.Move) error {
	_, span := sess.tracer.Start(ctx, "game.move")
	defer span.End()
	span.SetAttributes(sess.attrs()...)
	span.SetAttributes(
		attribute.String("move.start", m.Start.String()),
		attribute.Int("move.roll", m.Roll),
	)

	if sess.state != StateChoosing || m.Roll != sess.roll {
		err := fmt.Errorf("%w: not %s's move to make with %d", rules.ErrInvalidMove, sess.Current().CurrentPlayer, m.Roll)
		span.RecordError(err)
		span.SetStatus(codes.Error, "out of turn")
		return err
	}

	cur := sess.Current()
	res, err := rules.Resolve(cur, m)
	if err != nil {
		if reason, ok := rules.RejectionReason(err); ok {
			span.SetAttributes(attribute.String("move.rejected", reason.String()))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "rejected")
		sess.message = fmt.Sprintf("That piece cannot move %d", m.Roll)
		return err
	}

	span.SetAttributes(
		attribute.String("move.destination", res.Destination.String()),
		attribute.Bool("move.extra_turn", res.ExtraTurn),
		attribute.String("move.captured", res.Captured.String()),
	)

	sess.history = append(sess.history, res.Snapshot)
	sess.legal = nil
	sess.state = StateRolling
	sess.message = describe(cur.CurrentPlayer, m, res)

	if res.Snapshot.IsOver() {
		sess.finish()
	}
	return nil
}

// Undo returns to the snapshot before the last accepted move or pass.
func (sess *Session) Undo() bool {
	if len(sess.history) < 2 {
		return false
	}
	sess.history = sess.history[:len(sess.history)-1]
	sess.legal = nil
	sess.state = StateRolling
	sess.message = "Undone; " + sess.Current().CurrentPlayer.String() + " to roll"
	return true
}

func (sess *Session) finish() {
	sess.state = StateFinished
	sess.legal = nil
	sess.message = sess.Current().Winner.String() + " wins!"
}

// End records the outcome of the session.
func (sess *Session) End(ctx context.Context) {
	_, span := sess.tracer.Start(ctx, "game.end")
	defer span.End()
	span.SetAttributes(sess.attrs()...)

	cur := sess.Current()
	span.SetAttributes(
		attribute.Bool("game.finished", cur.IsOver()),
		attribute.String("game.winner", cur.Winner.String()),
	)
	for p, n := range cur.PassedPieceNum {
		span.SetAttributes(attribute.Int("passed."+p.String(), n))
	}
}

func describe(mover rules.Player, m rules.Move, res rules.Result) string {
	var msg string
	switch {
	case res.Destination.IsExited():
		msg = fmt.Sprintf("%s brings a piece home", mover)
	case m.Start.IsOffBoard():
		msg = fmt.Sprintf("%s enters a piece on %s", mover, res.Destination)
	default:
		msg = fmt.Sprintf("%s moves %s to %s", mover, m.Start, res.Destination)
	}
	if res.Captured != rules.NoPlayer {
		msg += ", capturing " + res.Captured.String()
	}
	if res.ExtraTurn {
		msg += "; rosette, roll again"
	}
	return msg
}
