// Package render draws game snapshots onto a tcell screen. It is a pure
// consumer: it reads snapshots and paints, making no game decisions and
// holding no authoritative state.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"slotaire/constants"
	"slotaire/deck"
	"slotaire/game"
)

const (
	cellWidth  = 11
	cellHeight = 5
	gridLeft   = 2
	gridTop    = 3
)

// symbolGlyphs are the single-rune card faces.
var symbolGlyphs = map[deck.Symbol]rune{
	deck.Crown:   '♛',
	deck.Diamond: '♦',
	deck.Present: '▣',
	deck.Seven:   '7',
	deck.Bar:     '≡',
	deck.Cherry:  '%',
	deck.Jewel:   '◆',
	deck.Bomb:    '●',
}

// Renderer paints snapshots. Create once, reuse per frame.
type Renderer struct {
	screen tcell.Screen
	styles map[deck.Symbol]tcell.Style
}

// NewRenderer wraps an initialized screen. useRGB selects the truecolor
// palette; otherwise the named 256-color approximations are used.
func NewRenderer(screen tcell.Screen, useRGB bool) *Renderer {
	return &Renderer{
		screen: screen,
		styles: buildStyles(useRGB),
	}
}

func buildStyles(useRGB bool) map[deck.Symbol]tcell.Style {
	base := tcell.StyleDefault
	if useRGB {
		return map[deck.Symbol]tcell.Style{
			deck.Crown:   base.Foreground(tcell.NewRGBColor(255, 215, 0)),
			deck.Diamond: base.Foreground(tcell.NewRGBColor(0, 255, 255)),
			deck.Present: base.Foreground(tcell.NewRGBColor(0, 220, 90)),
			deck.Seven:   base.Foreground(tcell.NewRGBColor(255, 70, 70)),
			deck.Bar:     base.Foreground(tcell.NewRGBColor(235, 235, 235)),
			deck.Cherry:  base.Foreground(tcell.NewRGBColor(220, 20, 90)),
			deck.Jewel:   base.Foreground(tcell.NewRGBColor(190, 110, 255)),
			deck.Bomb:    base.Foreground(tcell.NewRGBColor(130, 130, 130)),
		}
	}
	return map[deck.Symbol]tcell.Style{
		deck.Crown:   base.Foreground(tcell.ColorYellow),
		deck.Diamond: base.Foreground(tcell.ColorAqua),
		deck.Present: base.Foreground(tcell.ColorGreen),
		deck.Seven:   base.Foreground(tcell.ColorRed),
		deck.Bar:     base.Foreground(tcell.ColorWhite),
		deck.Cherry:  base.Foreground(tcell.ColorMaroon),
		deck.Jewel:   base.Foreground(tcell.ColorPurple),
		deck.Bomb:    base.Foreground(tcell.ColorGray),
	}
}

// Draw paints one full frame from a snapshot.
func (r *Renderer) Draw(snap game.Snapshot, soundOn bool) {
	r.screen.Clear()

	r.drawHeader(snap, soundOn)
	r.drawGrid(snap)
	r.drawSidePanel(snap)
	r.drawStatusLine(snap)

	if snap.BombOverlay {
		r.drawBombOverlay()
	}

	r.screen.Show()
}

func (r *Renderer) drawHeader(snap game.Snapshot, soundOn bool) {
	title := "SLOTAIRE"
	r.print(gridLeft, 1, title, tcell.StyleDefault.Bold(true))

	sound := "sound on"
	if !soundOn {
		sound = "sound off"
	}
	meters := fmt.Sprintf("Score %d   Draws %d/%d   Deck %d   Discard %d   [%s]",
		snap.Score, snap.DrawsUsed, snap.DrawsMax, snap.DrawPile, snap.DiscardPile, sound)
	r.print(gridLeft+len(title)+4, 1, meters, tcell.StyleDefault)
}

func (r *Renderer) drawGrid(snap game.Snapshot) {
	for i, cell := range snap.Cells {
		col := i % constants.GridCols
		row := i / constants.GridCols
		x := gridLeft + col*(cellWidth+1)
		y := gridTop + row*(cellHeight+1)
		r.drawCell(x, y, i, cell)
	}
}

func (r *Renderer) drawCell(x, y, index int, cell game.CellView) {
	border := tcell.StyleDefault.Foreground(tcell.ColorGray)
	if cell.Selected {
		border = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	}

	for dx := 0; dx < cellWidth; dx++ {
		r.screen.SetContent(x+dx, y, tcell.RuneHLine, nil, border)
		r.screen.SetContent(x+dx, y+cellHeight-1, tcell.RuneHLine, nil, border)
	}
	for dy := 0; dy < cellHeight; dy++ {
		r.screen.SetContent(x, y+dy, tcell.RuneVLine, nil, border)
		r.screen.SetContent(x+cellWidth-1, y+dy, tcell.RuneVLine, nil, border)
	}
	r.screen.SetContent(x, y, tcell.RuneULCorner, nil, border)
	r.screen.SetContent(x+cellWidth-1, y, tcell.RuneURCorner, nil, border)
	r.screen.SetContent(x, y+cellHeight-1, tcell.RuneLLCorner, nil, border)
	r.screen.SetContent(x+cellWidth-1, y+cellHeight-1, tcell.RuneLRCorner, nil, border)

	// Key hint in the top border
	r.screen.SetContent(x+2, y, rune('1'+index), nil, border)

	symbol, style, name := r.cellFace(cell)
	if name == "" {
		return
	}
	r.screen.SetContent(x+cellWidth/2, y+1, symbol, nil, style)
	r.printCentered(x, y+2, cellWidth, name, style)
}

// cellFace resolves what a cell shows: the transient spin face while
// animating, the authoritative card otherwise.
func (r *Renderer) cellFace(cell game.CellView) (rune, tcell.Style, string) {
	if cell.Spinning {
		sym := cell.SpinSymbol
		return symbolGlyphs[sym], r.styles[sym].Dim(true), sym.String()
	}
	if cell.Card == nil {
		return ' ', tcell.StyleDefault, ""
	}
	sym := cell.Card.Symbol
	style := r.styles[sym]
	if cell.Selected {
		style = style.Bold(true)
	}
	return symbolGlyphs[sym], style, sym.String()
}

func (r *Renderer) drawSidePanel(snap game.Snapshot) {
	x := gridLeft + constants.GridCols*(cellWidth+1) + 3
	y := gridTop

	if snap.Pending != nil {
		sym := snap.Pending.Symbol
		r.print(x, y, "In hand:", tcell.StyleDefault.Bold(true))
		r.print(x+9, y, string(symbolGlyphs[sym])+" "+sym.String(), r.styles[sym].Bold(true))
	} else {
		r.print(x, y, "In hand: -", tcell.StyleDefault.Dim(true))
	}

	r.print(x, y+2, "Log:", tcell.StyleDefault.Bold(true))
	for i, entry := range snap.Log {
		r.print(x, y+3+i, entry, tcell.StyleDefault.Dim(true))
	}
}

func (r *Renderer) drawStatusLine(snap game.Snapshot) {
	y := gridTop + (constants.GridSize/constants.GridCols)*(cellHeight+1) + 1

	help := "n new game  d draw  x discard  1-9 cell  c clear  Enter cash in  m sound  q quit"
	r.print(gridLeft, y, help, tcell.StyleDefault.Dim(true))

	switch {
	case snap.GameOver:
		r.print(gridLeft, y+1, fmt.Sprintf("GAME OVER — final score %d. Press n for a new game.", snap.Score),
			tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
	case snap.Spinning:
		r.print(gridLeft, y+1, "Spinning...", tcell.StyleDefault.Dim(true))
	case snap.Pending != nil:
		r.print(gridLeft, y+1, "Place the drawn card (1-9) or discard it (x).", tcell.StyleDefault)
	}
}

func (r *Renderer) drawBombOverlay() {
	width, height := r.screen.Size()
	msg := "*** B O M B ***"
	style := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true).Blink(true)
	r.printCentered(0, height/2, width, msg, style)
}

func (r *Renderer) print(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (r *Renderer) printCentered(x, y, width int, text string, style tcell.Style) {
	start := x + (width-len([]rune(text)))/2
	if start < x {
		start = x
	}
	r.print(start, y, text, style)
}
