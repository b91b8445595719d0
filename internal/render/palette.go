package render

import "math"

// RGB is a 24-bit colour.
type RGB struct {
	R, G, B uint8
}

// Palette maps a Noise01 sample to a cell.
type Palette func(v, threshold float64) Cell

// band is one elevation band of the terrain palette.
type band struct {
	upTo float64
	ch   rune
	bg   RGB
	fg   RGB
}

// terrainBands reads a sample as elevation: water, sand, grass, forest,
// rock, then snow.
var terrainBands = []band{
	{0.20, '~', RGB{20, 40, 120}, RGB{60, 90, 180}},            // deep water
	{0.28, '~', RGB{40, 90, 170}, RGB{120, 170, 230}},          // shallow water
	{0.32, '.', RGB{200, 180, 110}, RGB{230, 215, 160}},        // sand
	{0.42, '.', RGB{70, 150, 60}, RGB{110, 200, 90}},           // grass
	{0.70, 'T', RGB{30, 100, 40}, RGB{60, 150, 60}},            // forest
	{0.78, '^', RGB{110, 110, 110}, RGB{160, 160, 160}},        // rock
	{math.Inf(1), '^', RGB{230, 230, 235}, RGB{255, 255, 255}}, // snow
}

// Threshold draws '#' above the threshold and '.' elsewhere.
func Threshold(v, t float64) Cell {
	if v > t {
		return Cell{Ch: '#', FgR: 240, FgG: 240, FgB: 240, BgR: 30, BgG: 30, BgB: 30, Bold: true}
	}
	return Cell{Ch: '.', FgR: 110, FgG: 110, FgB: 110, BgR: 15, BgG: 15, BgB: 15}
}

// Grayscale shades a blank cell from black (0) to white (1).
func Grayscale(v, _ float64) Cell {
	g := clampByte(v * 255)
	return Cell{Ch: ' ', BgR: g, BgG: g, BgB: g}
}

// Terrain colours the sample as an elevation. The threshold is ignored.
func Terrain(v, _ float64) Cell {
	for _, b := range terrainBands {
		if v < b.upTo {
			return Cell{Ch: b.ch, FgR: b.fg.R, FgG: b.fg.G, FgB: b.fg.B, BgR: b.bg.R, BgG: b.bg.G, BgB: b.bg.B}
		}
	}
	// NaN
	return Cell{Ch: '?', FgR: 255, BgR: 80}
}

func clampByte(f float64) uint8 {
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= 255:
		return 255
	}
	return uint8(math.Round(f))
}
