// Package explore holds the state of one interactive walk over a noise field.
package explore

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/gridbugs/perlin2"
	"github.com/gridbugs/perlin2/internal/field"
	"github.com/gridbugs/perlin2/internal/render"
)

const (
	PanCells      = 4 // samples moved per pan step
	ZoomFactor    = 1.25
	ThresholdStep = 0.05
	MinScale      = 1.0 / 1024
	MaxScale      = 16
)

// Explorer is a camera over one noise generator. It is not safe for
// concurrent use; each session owns its own.
type Explorer struct {
	rng       *rand.Rand // draws seeds for reseeding
	seed      int64
	gen       *perlin2.Perlin2
	centerX   float64
	centerY   float64
	scaleX    float64
	scaleY    float64
	threshold float64
	mode      render.Mode
}

// New returns an explorer centred on the origin whose first generator is
// built from seed. Later generators are seeded from a stream derived from it.
func New(seed int64, scaleX, scaleY, threshold float64) *Explorer {
	e := &Explorer{
		rng:       rand.New(rand.NewSource(seed)),
		scaleX:    scaleX,
		scaleY:    scaleY,
		threshold: threshold,
	}
	e.setSeed(seed)
	return e
}

func (e *Explorer) setSeed(seed int64) {
	e.seed = seed
	e.gen = perlin2.New(rand.New(rand.NewSource(seed)))
}

// Seed returns the seed of the current generator.
func (e *Explorer) Seed() int64 { return e.seed }

// Mode returns the current draw mode.
func (e *Explorer) Mode() render.Mode { return e.mode }

// Threshold returns the current threshold.
func (e *Explorer) Threshold() float64 { return e.threshold }

// Center returns the noise coordinate in the middle of the view.
func (e *Explorer) Center() (float64, float64) { return e.centerX, e.centerY }

// Scale returns the noise distance between neighbouring samples.
func (e *Explorer) Scale() (float64, float64) { return e.scaleX, e.scaleY }

// Generator returns the current generator.
func (e *Explorer) Generator() *perlin2.Perlin2 { return e.gen }

// Apply updates the explorer. It reports whether the view changed and so
// needs to be redrawn. ActionQuit never changes anything.
func (e *Explorer) Apply(a Action) bool {
	switch a {
	case ActionUp:
		e.centerY -= PanCells * e.scaleY
	case ActionDown:
		e.centerY += PanCells * e.scaleY
	case ActionLeft:
		e.centerX -= PanCells * e.scaleX
	case ActionRight:
		e.centerX += PanCells * e.scaleX
	case ActionZoomIn:
		return e.zoom(1 / ZoomFactor)
	case ActionZoomOut:
		return e.zoom(ZoomFactor)
	case ActionThresholdUp:
		return e.setThreshold(e.threshold + ThresholdStep)
	case ActionThresholdDown:
		return e.setThreshold(e.threshold - ThresholdStep)
	case ActionMode:
		e.mode = e.mode.Next()
	case ActionReseed:
		e.setSeed(e.rng.Int63())
	default:
		return false
	}
	return true
}

func (e *Explorer) zoom(f float64) bool {
	sx, sy := e.scaleX*f, e.scaleY*f
	if math.Max(sx, sy) > MaxScale || math.Min(sx, sy) < MinScale {
		return false
	}
	e.scaleX, e.scaleY = sx, sy
	return true
}

func (e *Explorer) setThreshold(t float64) bool {
	// Snap to the step grid.
	t = math.Round(t*1000) / 1000
	t = math.Max(0, math.Min(1, t))
	if t == e.threshold {
		return false
	}
	e.threshold = t
	return true
}

// View returns the sampling view for a cols x rows grid centred on the
// explorer's centre.
func (e *Explorer) View(cols, rows int) field.View {
	return field.View{
		OriginX: e.centerX - float64(cols/2)*e.scaleX,
		OriginY: e.centerY - float64(rows/2)*e.scaleY,
		ScaleX:  e.scaleX,
		ScaleY:  e.scaleY,
	}
}

// Frame samples the visible field for vp and describes it for the renderer.
func (e *Explorer) Frame(vp render.Viewport) render.Frame {
	f := field.Sample(e.gen, vp.Cols, vp.Rows, e.View(vp.Cols, vp.Rows))
	f.Seed = e.seed
	return render.Frame{
		Field:     f,
		Mode:      e.mode,
		Threshold: e.threshold,
		Status:    e.Status(),
	}
}

// Status is the one-line summary shown under the field.
func (e *Explorer) Status() string {
	return fmt.Sprintf(" seed %d | centre (%.2f, %.2f) | scale %.4gx%.4g | threshold %.2f | %s | wasd pan  +/- zoom  [/] threshold  m mode  r reseed  q quit",
		e.seed, e.centerX, e.centerY, e.scaleX, e.scaleY, e.threshold, e.mode)
}
