// Package perlin2 implements two-dimensional Perlin gradient noise.
//
// A Perlin2 is built once from a source of randomness and is immutable
// afterwards, so a single value may be sampled from any number of goroutines.
// Sampling is a pure function of the generator and the coordinate.
//
// Coordinates containing NaN or ±Inf are not rejected. NaN propagates to the
// result and infinities yield NaN or ±Inf.
package perlin2

import "math"

// Perlin2 is a 2D Perlin noise generator. The zero value is usable but every
// gradient is (0, 0), so it samples to 0 everywhere; use New.
type Perlin2 struct {
	grads GradientTable
}

// New returns a generator whose gradient order is drawn from r.
// Seeding r is the caller's responsibility.
func New(r Shuffler) *Perlin2 {
	return &Perlin2{grads: NewGradientTable(r)}
}

// Gradients returns a copy of the generator's gradient table.
func (p *Perlin2) Gradients() GradientTable {
	return p.grads
}

// smootherStep is Perlin's quintic ease curve 6w^5 - 15w^4 + 10w^3.
func smootherStep(w float64) float64 {
	return (w*(w*6-15) + 10) * w * w * w
}

// weightedDot returns the contribution of a corner whose gradient is g and
// whose offset from the sample point is off.
func weightedDot(off, g Vec2) float64 {
	return smootherStep(1-math.Abs(off.X)) *
		smootherStep(1-math.Abs(off.Y)) *
		off.Dot(g)
}

// corner returns the contribution of the lattice point (cx, cy) to the
// sample at (x, y).
func (p *Perlin2) corner(cx, cy int, x, y float64) float64 {
	g := p.grads[latticeIndex(cx, cy)]
	return weightedDot(Vec2{X: x - float64(cx), Y: y - float64(cy)}, g)
}

// Noise returns the noise value at (x, y). Values are roughly in [-1, 1]
// but are not clamped. Noise is exactly 0 at every integer lattice point.
func (p *Perlin2) Noise(x, y float64) float64 {
	leftX := int(math.Floor(x))
	rightX := leftX + 1
	topY := int(math.Floor(y))
	bottomY := topY + 1

	return p.corner(leftX, topY, x, y) +
		p.corner(rightX, topY, x, y) +
		p.corner(leftX, bottomY, x, y) +
		p.corner(rightX, bottomY, x, y)
}

// Noise01 rescales Noise to approximately [0, 1] as (1 + Noise) / 2.
// The result is not clamped.
func (p *Perlin2) Noise01(x, y float64) float64 {
	return (1 + p.Noise(x, y)) / 2
}

// NoisePoint is Noise for a coordinate held as a Vec2.
func (p *Perlin2) NoisePoint(v Vec2) float64 {
	return p.Noise(v.X, v.Y)
}
