// Command demo prints a 100x50 Perlin noise field as ASCII art.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gridbugs/perlin2"
	"github.com/gridbugs/perlin2/internal/field"
)

const (
	width  = 100
	height = 50
)

func main() {
	seed := flag.Int64("seed", 0, "random seed (0 = random)")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	p := perlin2.New(rand.New(rand.NewSource(*seed)))
	f := field.Sample(p, width, height, field.View{ScaleX: 1.0 / 20, ScaleY: 1.0 / 10})
	fmt.Print(f.ASCII(0.5, '#', '.'))
	fmt.Fprintf(os.Stderr, "seed %d\n", *seed)
}
