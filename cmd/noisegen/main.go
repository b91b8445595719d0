// Command noisegen samples a Perlin noise field and writes it as ASCII art
// or JSON, with a summary of the sampled values on stderr.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gridbugs/perlin2"
	"github.com/gridbugs/perlin2/internal/config"
	"github.com/gridbugs/perlin2/internal/field"
)

type options struct {
	seed      int64
	w, h      int
	view      field.View
	threshold float64
	format    string
	name      string
}

func main() {
	configPath := flag.String("config", "", "YAML config file for seed, scale and threshold defaults")
	seed := flag.Int64("seed", 0, "random seed (0 = config seed, then random)")
	size := flag.String("size", "100x50", "field size as WxH samples")
	scale := flag.String("scale", "", "sample spacing as SX,SY (default from config: 0.05,0.1)")
	origin := flag.String("origin", "0,0", "noise coordinate of the top-left sample as X,Y")
	threshold := flag.Float64("threshold", -1, "ASCII threshold in [0,1] (default from config: 0.5)")
	format := flag.String("format", "ascii", "output format (ascii, json)")
	name := flag.String("name", "", "field name stored in JSON output")
	out := flag.String("out", "", "output file (default: stdout)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts, err := buildOptions(cfg, *seed, *size, *scale, *origin, *threshold, *format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts.name = *name
	if opts.seed == 0 {
		opts.seed = time.Now().UnixNano()
	}

	fmt.Fprintf(os.Stderr, "Sampling %dx%d field (seed %d)...\n", opts.w, opts.h, opts.seed)

	f := generate(opts)

	var buf bytes.Buffer
	if err := write(&buf, f, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *out == "" {
		os.Stdout.Write(buf.Bytes())
	} else {
		if err := os.WriteFile(*out, buf.Bytes(), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", *out, buf.Len())
	}

	fmt.Fprintf(os.Stderr, "\nField summary:\n")
	f.Stats(opts.threshold).WriteStats(os.Stderr, opts.threshold)
}

// buildOptions merges flags over the config. Zero or negative flag values
// mean "use the config".
func buildOptions(cfg *config.Config, seed int64, size, scale, origin string, threshold float64, format string) (options, error) {
	opts := options{
		seed:      cfg.Field.Seed,
		threshold: cfg.Field.Threshold,
		view:      field.View{ScaleX: cfg.Field.ScaleX, ScaleY: cfg.Field.ScaleY},
	}
	if seed != 0 {
		opts.seed = seed
	}

	var err error
	if opts.w, opts.h, err = parseSize(size); err != nil {
		return opts, err
	}
	if scale != "" {
		if opts.view.ScaleX, opts.view.ScaleY, err = parsePair(scale); err != nil {
			return opts, fmt.Errorf("invalid scale: %w", err)
		}
		if opts.view.ScaleX <= 0 || opts.view.ScaleY <= 0 {
			return opts, fmt.Errorf("invalid scale %q (must be positive)", scale)
		}
	}
	if opts.view.OriginX, opts.view.OriginY, err = parsePair(origin); err != nil {
		return opts, fmt.Errorf("invalid origin: %w", err)
	}
	if threshold >= 0 {
		if threshold > 1 {
			return opts, fmt.Errorf("invalid threshold %g (expected [0,1])", threshold)
		}
		opts.threshold = threshold
	}

	switch format {
	case "ascii", "json":
		opts.format = format
	default:
		return opts, fmt.Errorf("unknown format %q (available: ascii, json)", format)
	}
	return opts, nil
}

func generate(opts options) *field.Field {
	p := perlin2.New(rand.New(rand.NewSource(opts.seed)))
	f := field.Sample(p, opts.w, opts.h, opts.view)
	f.Name = opts.name
	f.Seed = opts.seed
	return f
}

func write(buf *bytes.Buffer, f *field.Field, opts options) error {
	if opts.format == "json" {
		return f.WriteJSON(buf)
	}
	buf.WriteString(f.ASCII(opts.threshold, '#', '.'))
	return nil
}

func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WxH)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < 1 {
		return 0, 0, fmt.Errorf("invalid width %q (minimum 1)", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h < 1 {
		return 0, 0, fmt.Errorf("invalid height %q (minimum 1)", parts[1])
	}
	return w, h, nil
}

func parsePair(s string) (float64, float64, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%q is not of the form A,B", s)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse %q: %w", parts[0], err)
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse %q: %w", parts[1], err)
	}
	return a, b, nil
}
