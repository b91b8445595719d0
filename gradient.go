package perlin2

import "math"

// GradientCount is the number of gradient directions in a table.
const GradientCount = 256

// Vec2 is a two-dimensional vector.
type Vec2 struct {
	X, Y float64
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Shuffler is the source of randomness used to permute a gradient table.
// *math/rand.Rand and *math/rand/v2.Rand both satisfy it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// GradientTable holds 256 unit vectors at evenly spaced angles, in an order
// chosen by a Shuffler.
type GradientTable [GradientCount]Vec2

// NewGradientTable builds the 256 evenly spaced unit directions and permutes
// them with r. The set of directions never changes, only their order.
func NewGradientTable(r Shuffler) GradientTable {
	var g GradientTable
	for i := range g {
		angle := 2 * math.Pi * float64(i) / GradientCount
		g[i] = Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
	}
	r.Shuffle(len(g), func(i, j int) { g[i], g[j] = g[j], g[i] })
	return g
}
