package perlin2

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed int64) *Perlin2 {
	return New(rand.New(rand.NewSource(seed)))
}

func TestSmootherStep(t *testing.T) {
	assert.Equal(t, 0.0, smootherStep(0))
	assert.Equal(t, 1.0, smootherStep(1))
	assert.Equal(t, 0.5, smootherStep(0.5))
	assert.InDelta(t, 0.103515625, smootherStep(0.25), 1e-15)
}

func TestNoiseKnownValues(t *testing.T) {
	tests := []struct {
		x, y     float64
		identity float64
		reverse  float64
	}{
		{0.5, 0.5, -0.17351229152065742, -0.03383711495597322},
		{1.25, -3.75, 0.17563331289091338, -0.038115424487744125},
		{-0.3, -0.7, -0.09278091911459935, -0.1623504412161359},
		{12.1, 7.9, 0.050632058110769255, 0.12315365450049043},
		{-100.5, 42.25, -0.1062225043319702, 0.01493473052786265},
	}
	id := New(identityShuffler{})
	rev := New(reverseShuffler{})
	for _, tt := range tests {
		assert.InDelta(t, tt.identity, id.Noise(tt.x, tt.y), 1e-12, "identity (%v,%v)", tt.x, tt.y)
		assert.InDelta(t, tt.reverse, rev.Noise(tt.x, tt.y), 1e-12, "reverse (%v,%v)", tt.x, tt.y)
	}
}

func TestNoiseDeterministic(t *testing.T) {
	p := seeded(1)
	for _, c := range [][2]float64{{0.5, 0.5}, {-12.34, 56.78}, {1e6 + 0.1, -1e6 - 0.9}} {
		a := p.Noise(c[0], c[1])
		b := p.Noise(c[0], c[1])
		assert.Equal(t, math.Float64bits(a), math.Float64bits(b))
	}
	// Same seed, separate generators.
	assert.Equal(t, seeded(5).Noise(3.3, 4.4), seeded(5).Noise(3.3, 4.4))
}

func TestNoiseZeroAtLatticePoints(t *testing.T) {
	p := seeded(11)
	points := [][2]float64{{0, 0}, {-3, 5}, {7, -7}, {-1, -1}, {255, 256}, {-1000, 1000}}
	for _, c := range points {
		assert.Less(t, math.Abs(p.Noise(c[0], c[1])), 1e-9, "(%v,%v)", c[0], c[1])
	}
}

func TestNoise01Range(t *testing.T) {
	p := seeded(2024)
	r := rand.New(rand.NewSource(8))
	for i := 0; i < 1000; i++ {
		x := r.Float64()*100 - 50
		y := r.Float64()*100 - 50
		v := p.Noise01(x, y)
		require.False(t, math.IsNaN(v), "NaN at (%v,%v)", x, y)
		assert.GreaterOrEqual(t, v, -0.5)
		assert.LessOrEqual(t, v, 1.5)
	}
}

func TestNoise01Rescales(t *testing.T) {
	p := seeded(4)
	assert.Equal(t, 0.5, p.Noise01(2, -9))
	assert.Equal(t, (1+p.Noise(0.3, 0.6))/2, p.Noise01(0.3, 0.6))
}

func TestDifferentShufflesDiffer(t *testing.T) {
	a, b := seeded(1), seeded(2)
	assert.NotEqual(t, a.Noise(0.5, 0.5), b.Noise(0.5, 0.5))

	differ := 0
	for i := 0; i < 16; i++ {
		x, y := float64(i)+0.37, float64(-i)-0.61
		if a.Noise(x, y) != b.Noise(x, y) {
			differ++
		}
	}
	assert.Greater(t, differ, 8)
}

func TestNoiseNegativeCoordinates(t *testing.T) {
	p := seeded(9)
	for _, c := range [][2]float64{{-1, -1}, {-0.5, -0.5}, {-1e-9, -1e-9}, {-255.5, -256.5}, {-1e7, 3}} {
		assert.NotPanics(t, func() { p.Noise(c[0], c[1]) })
	}
	// The field repeats every 256 units on both axes.
	assert.InDelta(t, p.Noise(-0.25, -0.75), p.Noise(255.75, 255.25), 1e-9)
}

func TestNoiseContinuousAcrossCells(t *testing.T) {
	p := seeded(17)
	tests := []struct {
		name   string
		ax, ay float64
		bx, by float64
	}{
		{"vertical edge", 0.999, 0.5, 1.001, 0.5},
		{"horizontal edge", 0.5, 0.999, 0.5, 1.001},
		{"corner", -0.001, -0.001, 0.001, 0.001},
		{"negative edge", -2.001, 3.3, -1.999, 3.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, p.Noise(tt.ax, tt.ay), p.Noise(tt.bx, tt.by), 1e-2)
		})
	}
}

func TestNoiseNonFinite(t *testing.T) {
	p := seeded(3)
	assert.True(t, math.IsNaN(p.Noise(math.NaN(), 0.5)))
	v := p.Noise(0.5, math.Inf(1))
	assert.True(t, math.IsNaN(v) || math.IsInf(v, 0), "got %v", v)
}

func TestNoisePoint(t *testing.T) {
	p := seeded(6)
	assert.Equal(t, p.Noise(1.5, -2.5), p.NoisePoint(Vec2{X: 1.5, Y: -2.5}))
}

func TestGradientsReturnsCopy(t *testing.T) {
	p := seeded(12)
	g := p.Gradients()
	before := p.Noise(0.4, 0.4)
	for i := range g {
		g[i] = Vec2{}
	}
	assert.Equal(t, before, p.Noise(0.4, 0.4))
}

func TestNoiseConcurrentReaders(t *testing.T) {
	p := seeded(21)
	want := make([]float64, 256)
	for i := range want {
		want[i] = p.Noise(float64(i)*0.173, float64(i)*-0.291)
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range want {
				if got := p.Noise(float64(i)*0.173, float64(i)*-0.291); got != want[i] {
					t.Errorf("sample %d: got %v want %v", i, got, want[i])
					return
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkNoise(b *testing.B) {
	p := seeded(1)
	var sink float64
	for i := 0; i < b.N; i++ {
		sink += p.Noise(float64(i)*0.01, float64(i)*0.007)
	}
	_ = sink
}
