package render

// Mode selects how a frame's samples are drawn.
type Mode int

const (
	ModeThreshold Mode = iota
	ModeGrayscale
	ModeTerrain
	modeCount
)

// String returns the mode name shown in the status bar.
func (m Mode) String() string {
	switch m {
	case ModeThreshold:
		return "threshold"
	case ModeGrayscale:
		return "grayscale"
	case ModeTerrain:
		return "terrain"
	default:
		return "unknown"
	}
}

// Next cycles to the following mode.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

// Palette returns the palette for the mode.
func (m Mode) Palette() Palette {
	switch m {
	case ModeGrayscale:
		return Grayscale
	case ModeTerrain:
		return Terrain
	default:
		return Threshold
	}
}

// CellWidth is how many screen columns one sample occupies. Shaded modes
// use 2 so cells appear roughly square, since terminal chars are ~2:1.
func (m Mode) CellWidth() int {
	if m == ModeThreshold {
		return 1
	}
	return 2
}
