package perlin2_test

import (
	"fmt"
	"math/rand"

	"github.com/gridbugs/perlin2"
)

func Example() {
	p := perlin2.New(rand.New(rand.NewSource(1)))
	for y := 0; y < 4; y++ {
		for x := 0; x < 16; x++ {
			if p.Noise01(float64(x)/4, float64(y)/4) > 0.5 {
				fmt.Print("#")
			} else {
				fmt.Print(".")
			}
		}
		fmt.Println()
	}
}

func ExamplePerlin2_Noise() {
	p := perlin2.New(rand.New(rand.NewSource(1)))
	fmt.Println(p.Noise(3, -4) == 0)
	// Output: true
}
