package field

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"runtime"
	"strings"
	"sync"
)

// Sampler is anything that can be sampled like perlin2.Perlin2.
type Sampler interface {
	Noise01(x, y float64) float64
}

// View maps grid cells to noise coordinates: cell (col, row) samples
// (OriginX + col*ScaleX, OriginY + row*ScaleY).
type View struct {
	OriginX, OriginY float64
	ScaleX, ScaleY   float64
}

// At returns the noise coordinate of a grid cell.
func (v View) At(col, row int) (float64, float64) {
	return v.OriginX + float64(col)*v.ScaleX, v.OriginY + float64(row)*v.ScaleY
}

// Field is a rectangular grid of Noise01 samples.
type Field struct {
	Name   string
	Seed   int64
	Width  int
	Height int
	View   View
	Values [][]float64 // [row][col]
}

// Sample fills a w x h field from n. Rows are sampled in parallel; n must
// be safe for concurrent reads, which every perlin2.Perlin2 is.
func Sample(n Sampler, w, h int, v View) *Field {
	f := &Field{Width: w, Height: h, View: v, Values: make([][]float64, h)}

	rows := make(chan int)
	var wg sync.WaitGroup
	workers := min(runtime.GOMAXPROCS(0), h)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				row := make([]float64, w)
				for x := range row {
					row[x] = n.Noise01(v.At(x, y))
				}
				f.Values[y] = row
			}
		}()
	}
	for y := 0; y < h; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()

	return f
}

// Threshold reports, per cell, whether the sample is strictly above t.
func (f *Field) Threshold(t float64) [][]bool {
	out := make([][]bool, f.Height)
	for y, row := range f.Values {
		out[y] = make([]bool, len(row))
		for x, v := range row {
			out[y][x] = v > t
		}
	}
	return out
}

// ASCII renders the field one rune per cell, on above t and off otherwise,
// with a newline after every row.
func (f *Field) ASCII(t float64, on, off rune) string {
	var sb strings.Builder
	sb.Grow(f.Height * (f.Width + 1))
	for _, row := range f.Values {
		for _, v := range row {
			if v > t {
				sb.WriteRune(on)
			} else {
				sb.WriteRune(off)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Stats summarises a field.
type Stats struct {
	Min, Max, Mean float64
	Above          int // samples strictly above the threshold
	NaN            int
	Total          int
}

// AbovePct is the share of samples above the threshold, in percent.
func (s Stats) AbovePct() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Above) / float64(s.Total) * 100
}

// Stats computes min, max and mean over the non-NaN samples and counts the
// samples above t.
func (f *Field) Stats(t float64) Stats {
	s := Stats{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for _, row := range f.Values {
		for _, v := range row {
			s.Total++
			if math.IsNaN(v) {
				s.NaN++
				continue
			}
			sum += v
			s.Min = math.Min(s.Min, v)
			s.Max = math.Max(s.Max, v)
			if v > t {
				s.Above++
			}
		}
	}
	if n := s.Total - s.NaN; n > 0 {
		s.Mean = sum / float64(n)
	} else {
		s.Min, s.Max = 0, 0
	}
	return s
}

// WriteStats prints a human-readable summary of s.
func (s Stats) WriteStats(w io.Writer, t float64) {
	fmt.Fprintf(w, "Samples:   %d\n", s.Total)
	fmt.Fprintf(w, "Range:     [%.4f, %.4f]\n", s.Min, s.Max)
	fmt.Fprintf(w, "Mean:      %.4f\n", s.Mean)
	fmt.Fprintf(w, "Above %.2f: %d (%5.1f%%)\n", t, s.Above, s.AbovePct())
	if s.NaN > 0 {
		fmt.Fprintf(w, "NaN:       %d\n", s.NaN)
	}
}

// jsonField is the on-disk JSON format.
type jsonField struct {
	Name    string      `json:"name,omitempty"`
	Seed    int64       `json:"seed"`
	Width   int         `json:"width"`
	Height  int         `json:"height"`
	OriginX float64     `json:"origin_x"`
	OriginY float64     `json:"origin_y"`
	ScaleX  float64     `json:"scale_x"`
	ScaleY  float64     `json:"scale_y"`
	Values  [][]float64 `json:"values"`
}

// WriteJSON writes the field as indented JSON.
func (f *Field) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(jsonField{
		Name:    f.Name,
		Seed:    f.Seed,
		Width:   f.Width,
		Height:  f.Height,
		OriginX: f.View.OriginX,
		OriginY: f.View.OriginY,
		ScaleX:  f.View.ScaleX,
		ScaleY:  f.View.ScaleY,
		Values:  f.Values,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal field: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write field: %w", err)
	}
	return nil
}

// ReadJSON parses a field written by WriteJSON.
func ReadJSON(r io.Reader) (*Field, error) {
	var jf jsonField
	if err := json.NewDecoder(r).Decode(&jf); err != nil {
		return nil, fmt.Errorf("decode field: %w", err)
	}
	if len(jf.Values) != jf.Height {
		return nil, fmt.Errorf("field has %d rows, header says %d", len(jf.Values), jf.Height)
	}
	for y, row := range jf.Values {
		if len(row) != jf.Width {
			return nil, fmt.Errorf("row %d has %d values, header says %d", y, len(row), jf.Width)
		}
	}
	return &Field{
		Name:   jf.Name,
		Seed:   jf.Seed,
		Width:  jf.Width,
		Height: jf.Height,
		View:   View{OriginX: jf.OriginX, OriginY: jf.OriginY, ScaleX: jf.ScaleX, ScaleY: jf.ScaleY},
		Values: jf.Values,
	}, nil
}
