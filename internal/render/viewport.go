package render

// Viewport is the part of the terminal given over to noise samples.
type Viewport struct {
	Cols, Rows int // samples across and down
	CellW      int // screen columns per sample
}

// NewViewport fits as many whole samples as possible into the terminal.
// hudRows reserves space for the status bar at the bottom.
func NewViewport(termW, termH, hudRows, cellW int) Viewport {
	if cellW < 1 {
		cellW = 1
	}
	cols := termW / cellW
	rows := termH - hudRows
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return Viewport{Cols: cols, Rows: rows, CellW: cellW}
}

// CellToScreen converts sample coordinates to screen coordinates (1-based)
// of the sample's leftmost column.
// Returns -1,-1 if the sample is outside the viewport.
func (v Viewport) CellToScreen(col, row int) (int, int) {
	if col < 0 || col >= v.Cols || row < 0 || row >= v.Rows {
		return -1, -1
	}
	return col*v.CellW + 1, row + 1
}
