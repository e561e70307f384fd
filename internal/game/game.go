package game

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/royalur/internal/board"
	"github.com/samdwyer/royalur/internal/dice"
	"github.com/samdwyer/royalur/internal/rules"
	"github.com/samdwyer/royalur/internal/telemetry"
	"github.com/samdwyer/royalur/internal/ui"
)

// Game holds the terminal and the session being played on it.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
	running  bool
}

// New creates a new game instance on the terminal.
func New(cfg Config) (*Game, error) {
	theme, err := ui.NewTheme(cfg.PlayerOneColor, cfg.PlayerTwoColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen, theme),
		running:  true,
	}, nil
}

// NewSessionFromConfig resumes the saved game at cfg.SavePath if there is
// one, and otherwise starts a new game on the configured board.
func NewSessionFromConfig(ctx context.Context, cfg Config, roller Roller) (*Session, error) {
	if cfg.SavePath != "" {
		data, err := os.ReadFile(cfg.SavePath)
		switch {
		case err == nil:
			layout, s, err := board.DecodeSnapshot(ctx, data)
			if err != nil {
				return nil, fmt.Errorf("resume %s: %w", cfg.SavePath, err)
			}
			sess := NewSession(layout, s, roller)
			sess.Resumed = true
			return sess, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("resume %s: %w", cfg.SavePath, err)
		}
	}

	layout, err := board.LoadLayout(ctx, cfg.Board)
	if err != nil {
		return nil, err
	}
	s, err := layout.NewSnapshot(cfg.Pieces, rules.Player(cfg.FirstPlayer))
	if err != nil {
		return nil, err
	}
	return NewSession(layout, s, roller), nil
}

// Save writes the current snapshot to cfg.SavePath. A finished game removes
// the save instead.
func (sess *Session) Save(path string) error {
	if path == "" {
		return nil
	}
	if sess.Current().IsOver() {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	data, err := board.EncodeSnapshot(sess.Layout, sess.Current())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	ctx, initSpan := tracer.Start(ctx, "game.init")
	roller := dice.NewRoller(g.cfg.Seed)
	sess, err := NewSessionFromConfig(ctx, g.cfg, roller)
	if err != nil {
		initSpan.RecordError(err)
		initSpan.End()
		g.screen.Close()
		return err
	}
	g.session = sess
	initSpan.SetAttributes(
		attribute.String("game.id", sess.ID.String()),
		attribute.String("game.board", sess.Layout.Name),
		attribute.Int64("dice.seed", roller.Seed()),
		attribute.Int("game.pieces", sess.Current().TotalPiecePerPlayerNum),
		attribute.Bool("game.resumed", sess.Resumed),
	)
	initSpan.End()

	for g.running {
		g.renderer.Render(g.frame())
		g.handleInput(ctx)
	}

	g.session.End(ctx)
	g.screen.Close()
	return g.session.Save(g.cfg.SavePath)
}

func (g *Game) frame() ui.Frame {
	sel, choosing := g.session.Selected()
	return ui.Frame{
		Layout:   g.session.Layout,
		Snapshot: g.session.Current(),
		Roll:     g.session.LastRoll(),
		Rolled:   g.session.State() == StateChoosing,
		Selected: sel,
		Choosing: choosing,
		Message:  g.session.Message(),
	}
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
	case tcell.KeyLeft, tcell.KeyUp:
		g.session.Cycle(-1)
	case tcell.KeyRight, tcell.KeyDown, tcell.KeyTab:
		g.session.Cycle(1)
	case tcell.KeyEnter:
		g.advance(ctx)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case ' ':
			g.advance(ctx)
		case 'n', 'N':
			g.session.SelectStart(rules.OffBoard())
		case 'u', 'U':
			g.session.Undo()
		}
	}
}

// advance rolls or plays, whichever the turn is waiting for.
func (g *Game) advance(ctx context.Context) {
	switch g.session.State() {
	case StateRolling:
		g.session.Roll(ctx)
	case StateChoosing:
		// A rejection keeps the turn; the session message explains it.
		_ = g.session.Confirm(ctx)
	case StateFinished:
		g.running = false
	}
}
