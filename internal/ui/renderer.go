package ui

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/royalur/internal/board"
	"github.com/samdwyer/royalur/internal/rules"
)

const (
	boardX     = 2 // Left edge of the board
	boardY     = 2 // Top edge of the board
	cellWidth  = 4 // "[x] "
	cellHeight = 2
)

// Frame is everything drawn in one refresh.
type Frame struct {
	Layout   *board.Layout
	Snapshot rules.Snapshot
	Roll     int
	Rolled   bool // Roll is meaningful
	Selected rules.Move
	Choosing bool // Selected is meaningful
	Message  string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
	theme  Theme
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, theme Theme) *Renderer {
	return &Renderer{screen: screen, theme: theme}
}

// Render draws the board, the piece counters and the status lines.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	s := f.Snapshot
	r.drawText(0, 0, "Royal Game of Ur ("+f.Layout.Name+")", tcell.StyleDefault.Bold(true))

	var from rules.SquareID
	var to rules.Destination
	var preview bool
	if f.Choosing {
		from, _ = f.Selected.Start.Square()
		if dest, err := rules.Traverse(s, f.Selected.Start, f.Selected.Roll); err == nil {
			to, preview = dest, true
		}
	}

	for row := 0; row < f.Layout.Rows; row++ {
		for col := 0; col < f.Layout.Columns; col++ {
			id, ok := f.Layout.SquareAt(col, row)
			if !ok {
				continue
			}
			sq := s.Squares[id]
			style := r.squareStyle(sq)
			if f.Choosing && !f.Selected.Start.IsOffBoard() && id == from {
				style = style.Reverse(true)
			}
			if dest, onBoard := to.Square(); preview && onBoard && dest == id {
				style = style.Background(tcell.ColorDarkGreen)
			}
			x, y := boardX+col*cellWidth, boardY+row*cellHeight
			r.screen.SetContent(x, y, '[', style)
			r.screen.SetContent(x+1, y, squareRune(sq), style)
			r.screen.SetContent(x+2, y, ']', style)
		}
	}

	y := boardY + f.Layout.Rows*cellHeight
	for _, p := range f.Layout.Players() {
		style := tcell.StyleDefault.Foreground(r.theme.Color(p))
		if p == s.CurrentPlayer {
			style = style.Bold(true)
		}
		line := fmt.Sprintf("%-12s waiting %d  on board %d  home %d/%d",
			p, s.WaitingPieceNum[p], s.OnBoardCount(p), s.PassedPieceNum[p], s.TotalPiecePerPlayerNum)
		if f.Choosing && p == s.CurrentPlayer && f.Selected.Start.IsOffBoard() {
			line += "  <- enter"
			style = style.Reverse(true)
		}
		if preview && p == s.CurrentPlayer && to.IsExited() {
			line += "  -> home"
		}
		r.drawText(boardX, y, line, style)
		y++
	}
	y++

	turn := s.CurrentPlayer.String() + " to play"
	if s.IsOver() {
		turn = s.Winner.String() + " has won"
	} else if f.Rolled {
		turn += ", rolled " + strconv.Itoa(f.Roll)
	}
	r.drawText(boardX, y, turn, tcell.StyleDefault.Foreground(r.theme.Color(s.CurrentPlayer)))
	y++
	r.RenderMessage(f.Message, y)
	y += 2
	r.drawText(boardX, y, "space roll  arrows choose  enter move  u undo  q quit",
		tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}

// squareStyle colours a square by occupant, rosettes in bold.
func (r *Renderer) squareStyle(sq rules.Square) tcell.Style {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	if !sq.IsFree() {
		style = tcell.StyleDefault.Foreground(r.theme.Color(sq.Occupant))
	}
	if sq.Rosette {
		style = style.Bold(true)
	}
	return style
}

// squareRune is the glyph between the brackets of a square.
func squareRune(sq rules.Square) rune {
	switch {
	case !sq.IsFree():
		return rune('0' + int(sq.Occupant)%10)
	case sq.Rosette:
		return '*'
	default:
		return ' '
	}
}

// RenderMessage displays a message on the given line.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.drawText(boardX, y, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	r.screen.DrawText(x, y, text, style)
}
