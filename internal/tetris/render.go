package tetris

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// cellWidth is the number of terminal columns one grid cell takes.
const cellWidth = 2

// Panel geometry, in grid cells.
const (
	panelSize   = 5 // Next/Hold boxes span x..x+5
	nextOffsetX = 3 // Next panel starts at boardWidth+3
	holdOffsetX = 9 // Hold panel starts at boardWidth+9
)

// Glyphs are the strings drawn for one grid cell. Each must be cellWidth
// runes wide.
type Glyphs struct {
	Block  string
	Shadow string
}

// DefaultGlyphs returns solid blocks and a light shade for the shadow.
func DefaultGlyphs() Glyphs {
	return Glyphs{
		Block:  "██",
		Shadow: "░░",
	}
}

// canvas draws in grid units onto a character screen.
type canvas struct {
	dst    *core.Screen
	ox, oy int // screen offset of grid cell (0, 0)
}

// glyph draws text starting at grid cell (x, y).
func (c canvas) glyph(x, y int, text string, color core.Color) {
	c.dst.SetString(c.ox+x*cellWidth, c.oy+y, text, color)
}

// box draws an outline whose borders run through grid cells x1 and x2, so
// the interior is exactly cells x1+1..x2-1 by y1+1..y2-1.
func (c canvas) box(x1, y1, x2, y2 int) {
	c.dst.DrawBox(core.NewRect(c.ox+x1*cellWidth+1, c.oy+y1, (x2-x1)*cellWidth, y2-y1+1))
}

// piece draws every occupied cell of p with its top-left at grid (x, y).
func (c canvas) piece(p Piece, x, y int, glyph string) {
	p.each(func(dx, dy int) {
		c.glyph(x+dx, y+dy, glyph, p.kind.Color())
	})
}

// LayoutSize returns the screen size in characters needed to draw a board
// of the given dimensions with its side panels and readouts.
func LayoutSize(boardW, boardH int) (w, h int) {
	return (boardW+holdOffsetX+panelSize)*cellWidth + 1, boardH + 4
}

// Render draws the board, the active piece with its shadow, the next and
// hold panels, the line and time readouts and the game over banner.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	bw, bh := g.rules.Width, g.rules.Height
	needW, needH := LayoutSize(bw, bh)
	if dst.Width() < needW || dst.Height() < needH {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", needW, needH))
		return
	}

	c := canvas{
		dst: dst,
		ox:  (dst.Width() - needW) / 2,
		oy:  (dst.Height() - needH) / 2,
	}

	c.box(0, 0, bw+1, bh+1)

	if !g.IsGameOver() && g.current != nil {
		c.piece(*g.current, 1+g.x, 1+g.FloorY(), g.glyphs.Shadow)
		c.piece(*g.current, 1+g.x, 1+g.y, g.glyphs.Block)
	}

	for x := 0; x < bw; x++ {
		for y := 0; y < bh; y++ {
			if k := g.board.KindAt(x, y); k != KindNone {
				c.glyph(1+x, 1+y, g.glyphs.Block, k.Color())
			}
		}
	}

	next := g.next
	g.drawPanel(c, "Next", &next, bw+nextOffsetX, 0)
	g.drawPanel(c, "Hold", g.hold, bw+holdOffsetX, 0)

	g.drawCenterText(c, strconv.Itoa(g.remainingLines)+" lines left", bh+2, core.ColorGray)
	g.drawCenterText(c, FormatElapsed(g.elapsedFrames, g.tickRate), bh+3, core.ColorGray)

	switch {
	case g.lost:
		g.drawCenterText(c, "You Lost", 1+bh/2, core.ColorDefault)
	case g.won:
		g.drawCenterText(c, "You Win", 1+bh/2, core.ColorDefault)
		g.drawCenterText(c, FormatElapsed(g.elapsedFrames, g.tickRate), 2+bh/2, core.ColorDefault)
	}
}

// drawPanel draws a titled 5×5 box with p centered inside it.
func (g *Game) drawPanel(c canvas, title string, p *Piece, x, y int) {
	c.box(x, y, x+panelSize, y+panelSize)
	c.glyph(x+1, y, title, core.ColorWhite)

	if p != nil {
		c.piece(*p, x+3-p.size/2, y+3-p.size/2, g.glyphs.Block)
	}
}

// drawCenterText centers s over the board interior on grid row y.
func (g *Game) drawCenterText(c canvas, s string, y int, color core.Color) {
	center := (g.rules.Width + 2) * cellWidth / 2
	c.dst.SetString(c.ox+center-len([]rune(s))/2, c.oy+y, s, color)
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := len(line1)
	if len(line2) > maxLen {
		maxLen = len(line2)
	}
	box := core.NewRect((w-maxLen-4)/2, (h-5)/2, maxLen+4, 5)
	dst.DrawBox(box)

	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

// FormatElapsed converts a frame count to "mm:ss:cc" at the given frame rate.
func FormatElapsed(frames, fps int) string {
	if fps <= 0 {
		fps = core.DefaultConfig().TickRate
	}
	seconds := frames / fps
	minutes := seconds / 60
	centis := (frames * 100 / fps) % 100
	return fmt.Sprintf("%02d:%02d:%02d", minutes, seconds%60, centis)
}
