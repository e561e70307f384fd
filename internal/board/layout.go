package board

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/royalur/internal/rules"
	"github.com/samdwyer/royalur/internal/telemetry"
)

// DefaultLayout is the board used when none is configured.
const DefaultLayout = "standard"

var (
	ErrUnknownLayout = errors.New("unknown board layout")
	ErrInvalidLayout = errors.New("invalid board layout")
)

// squareDef is one square as written in a layout file.
type squareDef struct {
	ID      string                  `json:"id"`
	Col     int                     `json:"col"`
	Row     int                     `json:"row"`
	Rosette bool                    `json:"rosette"`
	Forward map[rules.Player]string `json:"forward"` // Player -> direction name
}

// layoutFile represents the structure of a layouts/*.json file.
type layoutFile struct {
	Name        string                        `json:"name"`
	Description string                        `json:"description"`
	Columns     int                           `json:"columns"`
	Rows        int                           `json:"rows"`
	TurnOrder   map[rules.Player]rules.Player `json:"turnOrder"`
	Entry       map[rules.Player]string       `json:"entry"`
	Exit        map[rules.Player]string       `json:"exit"`
	Squares     []squareDef                   `json:"squares"`
}

// Cell is a square's place on the drawing grid.
type Cell struct {
	Col, Row int
}

// Layout is a validated board: square topology, grid placement and the
// route of every player.
type Layout struct {
	Name        string
	Description string
	Columns     int
	Rows        int

	squares   map[rules.SquareID]rules.Square
	order     []rules.SquareID
	cells     map[rules.SquareID]Cell
	byCell    map[Cell]rules.SquareID
	entry     map[rules.Player]rules.SquareID
	exit      map[rules.Player]rules.SquareID
	turnOrder map[rules.Player]rules.Player
	paths     map[rules.Player][]rules.SquareID
}

// Names returns the names of every embedded layout, sorted.
func Names() []string {
	files, err := fs.Glob(layoutFS, "layouts/*.json")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(path.Base(f), ".json"))
	}
	slices.Sort(names)
	return names
}

// LoadLayout loads, wires and validates the embedded layout with the given
// name.
func LoadLayout(ctx context.Context, name string) (*Layout, error) {
	tracer := telemetry.Tracer("board")
	_, span := tracer.Start(ctx, "board.load")
	defer span.End()
	span.SetAttributes(attribute.String("board.layout", name))

	if !slices.Contains(Names(), name) {
		err := fmt.Errorf("%w: %q (have %s)", ErrUnknownLayout, name, strings.Join(Names(), ", "))
		span.RecordError(err)
		span.SetStatus(codes.Error, "unknown layout")
		return nil, err
	}

	file, err := Load[layoutFile](layoutFS, "layouts/"+name+".json")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return nil, err
	}

	layout, err := build(file)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid layout")
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("board.squares", len(layout.order)),
		attribute.Int("board.players", len(layout.turnOrder)),
	)
	return layout, nil
}

// MustLoadLayout loads a layout, panicking on error.
// Use this for layouts that must be present for the game to function.
func MustLoadLayout(name string) *Layout {
	layout, err := LoadLayout(context.Background(), name)
	if err != nil {
		panic(err)
	}
	return layout
}

// build turns a decoded layout file into a Layout, wiring neighbour links from
// grid adjacency.
func build(file layoutFile) (*Layout, error) {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w %q: %s", ErrInvalidLayout, file.Name, fmt.Sprintf(format, args...))
	}

	if len(file.Squares) == 0 {
		return nil, invalid("no squares")
	}
	if len(file.TurnOrder) == 0 {
		return nil, invalid("empty turn order")
	}

	l := &Layout{
		Name:        file.Name,
		Description: file.Description,
		Columns:     file.Columns,
		Rows:        file.Rows,
		squares:     make(map[rules.SquareID]rules.Square, len(file.Squares)),
		cells:       make(map[rules.SquareID]Cell, len(file.Squares)),
		byCell:      make(map[Cell]rules.SquareID, len(file.Squares)),
		entry:       make(map[rules.Player]rules.SquareID),
		exit:        make(map[rules.Player]rules.SquareID),
		turnOrder:   make(map[rules.Player]rules.Player, len(file.TurnOrder)),
		paths:       make(map[rules.Player][]rules.SquareID),
	}

	for p, next := range file.TurnOrder {
		if p == rules.NoPlayer || next == rules.NoPlayer {
			return nil, invalid("turn order uses player 0")
		}
		if _, ok := file.TurnOrder[next]; !ok {
			return nil, invalid("%s is followed by %s, who has no turn", p, next)
		}
		l.turnOrder[p] = next
	}

	forwards := make(map[rules.SquareID]map[rules.Player]rules.Direction, len(file.Squares))
	rosettes := make(map[rules.SquareID]bool)
	for _, def := range file.Squares {
		id := rules.SquareID(def.ID)
		if id == "" {
			return nil, invalid("square without id")
		}
		if _, dup := l.cells[id]; dup {
			return nil, invalid("duplicate square %q", id)
		}
		cell := Cell{Col: def.Col, Row: def.Row}
		if cell.Col < 0 || cell.Col >= l.Columns || cell.Row < 0 || cell.Row >= l.Rows {
			return nil, invalid("square %q at (%d,%d) is outside the %dx%d grid", id, cell.Col, cell.Row, l.Columns, l.Rows)
		}
		if other, taken := l.byCell[cell]; taken {
			return nil, invalid("squares %q and %q share (%d,%d)", other, id, cell.Col, cell.Row)
		}

		forward := make(map[rules.Player]rules.Direction, len(def.Forward))
		for p, name := range def.Forward {
			if _, ok := l.turnOrder[p]; !ok {
				return nil, invalid("square %q has a direction for unknown %s", id, p)
			}
			dir, err := parseDirection(name)
			if err != nil {
				return nil, invalid("square %q: %v", id, err)
			}
			forward[p] = dir
		}

		l.cells[id] = cell
		l.byCell[cell] = id
		l.order = append(l.order, id)
		forwards[id] = forward
		rosettes[id] = def.Rosette
	}

	for _, id := range l.order {
		l.squares[id] = rules.Square{
			ID:         id,
			Rosette:    rosettes[id],
			Forward:    forwards[id],
			Neighbours: l.neighbours(l.cells[id]),
		}
	}

	for p := range l.turnOrder {
		entry, ok := l.lookup(file.Entry[p])
		if !ok {
			return nil, invalid("%s has no valid entry square (%q)", p, file.Entry[p])
		}
		exit, ok := l.lookup(file.Exit[p])
		if !ok {
			return nil, invalid("%s has no valid exit square (%q)", p, file.Exit[p])
		}
		l.entry[p] = entry
		l.exit[p] = exit

		route, err := l.walk(p)
		if err != nil {
			return nil, invalid("%v", err)
		}
		l.paths[p] = route
	}

	return l, nil
}

func (l *Layout) lookup(raw string) (rules.SquareID, bool) {
	id := rules.SquareID(raw)
	_, ok := l.cells[id]
	return id, ok
}

// neighbours links a cell to the squares directly around it on the grid.
func (l *Layout) neighbours(c Cell) map[rules.Direction]rules.SquareID {
	offsets := map[rules.Direction]Cell{
		rules.North: {Col: c.Col, Row: c.Row - 1},
		rules.East:  {Col: c.Col + 1, Row: c.Row},
		rules.South: {Col: c.Col, Row: c.Row + 1},
		rules.West:  {Col: c.Col - 1, Row: c.Row},
	}
	out := make(map[rules.Direction]rules.SquareID, len(offsets))
	for dir, at := range offsets {
		if id, ok := l.byCell[at]; ok {
			out[dir] = id
		}
	}
	return out
}

// walk follows p's route from its entry square until the board edge. The
// route must end on p's exit square and never visit a square twice.
func (l *Layout) walk(p rules.Player) ([]rules.SquareID, error) {
	seen := make(map[rules.SquareID]bool)
	cur := l.entry[p]
	var route []rules.SquareID
	for {
		if seen[cur] {
			return nil, fmt.Errorf("route of %s loops at %q", p, cur)
		}
		seen[cur] = true
		route = append(route, cur)

		next, ok := l.squares[cur].Next(p)
		if !ok {
			break
		}
		cur = next
	}
	if cur != l.exit[p] {
		return nil, fmt.Errorf("route of %s ends at %q, want exit %q", p, cur, l.exit[p])
	}
	return route, nil
}

func parseDirection(name string) (rules.Direction, error) {
	for _, dir := range []rules.Direction{rules.North, rules.East, rules.South, rules.West} {
		if strings.EqualFold(name, dir.String()) {
			return dir, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", name)
}

// Players returns every player in the layout's turn order, sorted.
func (l *Layout) Players() []rules.Player {
	players := make([]rules.Player, 0, len(l.turnOrder))
	for p := range l.turnOrder {
		players = append(players, p)
	}
	slices.Sort(players)
	return players
}

// SquareIDs returns every square id, in file order.
func (l *Layout) SquareIDs() []rules.SquareID {
	return slices.Clone(l.order)
}

// Square returns the topology of a square, without occupant.
func (l *Layout) Square(id rules.SquareID) (rules.Square, bool) {
	sq, ok := l.squares[id]
	return sq, ok
}

// Cell returns where a square is drawn.
func (l *Layout) Cell(id rules.SquareID) (Cell, bool) {
	c, ok := l.cells[id]
	return c, ok
}

// SquareAt returns the square drawn at the given grid position.
func (l *Layout) SquareAt(col, row int) (rules.SquareID, bool) {
	id, ok := l.byCell[Cell{Col: col, Row: row}]
	return id, ok
}

// Path returns the ordered squares of p's route, entry first and exit last.
func (l *Layout) Path(p rules.Player) []rules.SquareID {
	return slices.Clone(l.paths[p])
}

// Progress returns how far along p's route a square is, counting the entry
// square as 1. It returns 0 for squares off the route.
func (l *Layout) Progress(p rules.Player, id rules.SquareID) int {
	if i := slices.Index(l.paths[p], id); i >= 0 {
		return i + 1
	}
	return 0
}

// NewSnapshot builds the starting snapshot for a game on l: an empty board,
// every piece waiting and first to move.
func (l *Layout) NewSnapshot(pieces int, first rules.Player) (rules.Snapshot, error) {
	if pieces <= 0 {
		return rules.Snapshot{}, fmt.Errorf("%w: %d pieces per player", ErrInvalidLayout, pieces)
	}
	if _, ok := l.turnOrder[first]; !ok {
		return rules.Snapshot{}, fmt.Errorf("%w: %s does not play on %q", ErrInvalidLayout, first, l.Name)
	}

	s := rules.Snapshot{
		Squares:                make(map[rules.SquareID]rules.Square, len(l.squares)),
		FirstSquareFor:         make(map[rules.Player]rules.SquareID, len(l.entry)),
		LastSquareFor:          make(map[rules.Player]rules.SquareID, len(l.exit)),
		WaitingPieceNum:        make(map[rules.Player]int, len(l.turnOrder)),
		PassedPieceNum:         make(map[rules.Player]int, len(l.turnOrder)),
		TotalPiecePerPlayerNum: pieces,
		TurnAfter:              make(map[rules.Player]rules.Player, len(l.turnOrder)),
		CurrentPlayer:          first,
	}
	for id, sq := range l.squares {
		s.Squares[id] = sq
	}
	for p, next := range l.turnOrder {
		s.TurnAfter[p] = next
		s.FirstSquareFor[p] = l.entry[p]
		s.LastSquareFor[p] = l.exit[p]
		s.WaitingPieceNum[p] = pieces
		s.PassedPieceNum[p] = 0
	}
	return s, nil
}
