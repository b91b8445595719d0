package render

import (
	"strings"

	"github.com/gridbugs/perlin2/internal/field"
)

// HUDRows is the height of the status bar.
const HUDRows = 1

var sentinel = Cell{Ch: '\x00', FgR: 255, BgB: 255, Bold: true}

var (
	background = Cell{Ch: ' ', BgR: 10, BgG: 10, BgB: 15}
	hudFg      = RGB{220, 220, 220}
	hudBg      = RGB{40, 40, 60}
)

// Frame is everything needed to draw one screen.
type Frame struct {
	Field     *field.Field
	Mode      Mode
	Threshold float64
	Status    string
}

// Engine is a per-session double-buffer diff renderer.
type Engine struct {
	width, height int
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool
	lastMode      Mode
}

// NewEngine creates a renderer for the given terminal dimensions.
func NewEngine(width, height int) *Engine {
	e := &Engine{
		width:      width,
		height:     height,
		firstFrame: true,
	}
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	return e
}

// Resize adjusts the renderer for a new terminal size.
func (e *Engine) Resize(width, height int) {
	e.width = width
	e.height = height
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	e.firstFrame = true
}

func (e *Engine) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, e.height)
	for y := 0; y < e.height; y++ {
		buf[y] = make([]Cell, e.width)
		for x := 0; x < e.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

// Viewport returns the sample grid that fits the current terminal in mode m.
func (e *Engine) Viewport(m Mode) Viewport {
	return NewViewport(e.width, e.height, HUDRows, m.CellWidth())
}

// Render produces the ANSI byte output for the frame, emitting only the
// cells that changed since the previous call.
func (e *Engine) Render(termW, termH int, f Frame) string {
	if termW != e.width || termH != e.height {
		e.Resize(termW, termH)
	}
	if f.Mode != e.lastMode {
		e.firstFrame = true
		e.lastMode = f.Mode
	}

	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			e.next[y][x] = background
		}
	}

	vp := e.Viewport(f.Mode)
	if f.Field != nil {
		palette := f.Mode.Palette()
		rows := min(vp.Rows, f.Field.Height)
		cols := min(vp.Cols, f.Field.Width)
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				c := palette(f.Field.Values[row][col], f.Threshold)
				sx := col * vp.CellW
				for k := 0; k < vp.CellW; k++ {
					e.next[row][sx+k] = c
				}
			}
		}
	}

	e.writeHUDTextLine(e.height-1, f.Status, hudFg, hudBg)

	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			nc := e.next[y][x]
			if e.firstFrame || nc != e.current[y][x] {
				// Only emit cursor position if not consecutive
				if y != lastRow || x != lastCol {
					sb.WriteString(MoveTo(y+1, x+1))
				}
				WriteCellSGR(&sb, nc)
				lastRow = y
				lastCol = x + 1
			}
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	e.current, e.next = e.next, e.current
	e.firstFrame = false

	return sb.String()
}

func (e *Engine) writeHUDTextLine(row int, text string, fg, bg RGB) {
	if row < 0 || row >= e.height {
		return
	}
	runes := []rune(text)
	for x := 0; x < e.width; x++ {
		if x < len(runes) {
			e.next[row][x] = Cell{Ch: runes[x], FgR: fg.R, FgG: fg.G, FgB: fg.B, BgR: bg.R, BgG: bg.G, BgB: bg.B}
		} else {
			e.next[row][x] = Cell{Ch: ' ', BgR: bg.R, BgG: bg.G, BgB: bg.B}
		}
	}
}
