package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tomz197/skyduel/internal/physics"
	"github.com/tomz197/skyduel/internal/sprite"
)

// Block characters for half-block rendering.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	blank          = ' '
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels, plus a text
// layer drawn on top of the pixels.
type Canvas struct {
	termWidth      int    // Actual terminal columns
	termHeight     int    // Actual terminal rows
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x] - true if pixel is set
	text           []rune // Flat slice: [row * termWidth + col] - 0 if no text
	prev           []rune // Cells written by the last Render, for diffing

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height (in sub-pixels)
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than the render area.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf strings.Builder // Buffer for batching render output
	numBuf    [20]byte        // Scratch buffer for allocation-free integer formatting
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]bool, subPixelHeight*termWidth)
		c.text = make([]rune, termHeight*termWidth)
		c.prev = make([]rune, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels and text in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
	clear(c.text)
}

// ForceRedraw makes the next Render write every cell, e.g. after the terminal was cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.prev {
		c.prev[i] = 0
	}
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// Pixel reports whether the sub-pixel at terminal coordinates is set.
func (c *Canvas) Pixel(x, y int) bool {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return false
	}
	return c.pixels[y*c.termWidth+x]
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	c.setPixel(px, py)
}

// FillRect sets every pixel covered by the logical rectangle. Any non-empty
// rectangle sets at least one pixel so small sprites stay visible.
func (c *Canvas) FillRect(r physics.Rect) {
	if r.Empty() {
		return
	}
	x0 := int(math.Round(r.Left * c.scaleX))
	x1 := int(math.Round(r.Right*c.scaleX)) - 1
	y0 := int(math.Round(r.Top * c.scaleY))
	y1 := int(math.Round(r.Bottom*c.scaleY)) - 1
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	for y := max(y0, 0); y <= y1 && y < c.subPixelHeight; y++ {
		for x := max(x0, 0); x <= x1 && x < c.termWidth; x++ {
			c.pixels[y*c.termWidth+x] = true
		}
	}
}

// DrawSprite fills the opaque cells of spr centered on center.
func (c *Canvas) DrawSprite(spr *sprite.Sprite, center physics.Vec2) {
	if spr == nil || spr.Mask == nil {
		return
	}
	m := spr.Mask
	cell := float64(m.Scale)
	r := spr.Rect(center)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if !m.Opaque(x, y) {
				continue
			}
			left := r.Left + float64(x)*cell
			top := r.Top + float64(y)*cell
			c.FillRect(physics.Rect{Left: left, Top: top, Right: left + cell, Bottom: top + cell})
		}
	}
}

// DrawText places text on the text layer. x and y are logical coordinates of
// the anchor; align picks which end of the text sits on the anchor.
func (c *Canvas) DrawText(x, y float64, align Align, s string) {
	runes := []rune(s)
	col, row := c.LogicalToTerminal(x, y)
	col-- // 0-based
	row--
	switch align {
	case AlignCenter:
		col -= len(runes) / 2
	case AlignRight:
		col -= len(runes) - 1
	}
	if row < 0 || row >= c.termHeight {
		return
	}
	for i, r := range runes {
		cc := col + i
		if cc < 0 || cc >= c.termWidth {
			continue
		}
		c.text[row*c.termWidth+cc] = r
	}
}

// Cell returns the character shown at the 0-based canvas cell.
func (c *Canvas) Cell(col, row int) rune {
	if col < 0 || col >= c.termWidth || row < 0 || row >= c.termHeight {
		return blank
	}
	if t := c.text[row*c.termWidth+col]; t != 0 {
		return t
	}
	top := c.pixels[row*2*c.termWidth+col]
	bottom := row*2+1 < c.subPixelHeight && c.pixels[(row*2+1)*c.termWidth+col]
	switch {
	case top && bottom:
		return BlockFull
	case top:
		return BlockUpperHalf
	case bottom:
		return BlockLowerHalf
	default:
		return blank
	}
}

// Render writes cursor moves and glyphs for the cells that changed since the
// previous Render.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			ch := c.Cell(col, row)
			i := row*c.termWidth + col
			if c.prev[i] == ch {
				continue
			}
			c.prev[i] = ch
			c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			c.renderBuf.WriteRune(ch)
		}
	}

	if c.renderBuf.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(w, c.renderBuf.String())
	return err
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// RenderBorder frames the canvas with box-drawing characters on the sides
// where the terminal leaves room around it.
func (c *Canvas) RenderBorder(w io.Writer) {
	sides := c.offsetCol >= 1
	ends := c.offsetRow >= 1
	if !sides && !ends {
		return
	}

	left, right := c.offsetCol, c.offsetCol+c.termWidth+1
	top, bottom := c.offsetRow, c.offsetRow+c.termHeight+1

	var buf strings.Builder
	at := func(row, col int, s string) {
		buf.WriteString("\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H" + s)
	}

	line := strings.Repeat("─", c.termWidth)
	switch {
	case ends && sides:
		at(top, left, "┌"+line+"┐")
		at(bottom, left, "└"+line+"┘")
	case ends:
		at(top, left+1, line)
		at(bottom, left+1, line)
	}

	if sides {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			at(row, left, "│")
			at(row, right, "│")
		}
	}

	io.WriteString(w, buf.String())
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution, in sub-pixels).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the canvas column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based canvas position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}
