package field

import (
	"math/rand"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Noise parameters: smoothing, frequency multiplier, octave count.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = int32(3)
)

// The permutation tables are seeded randomly once at load so that noise
// output is fixed for the lifetime of the process. Recompiling a pattern
// never reshuffles the noise.
var (
	perlinNoise  = perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, rand.Int63())
	simplexNoise = opensimplex.NewNormalized(rand.Int63())
)

// Perlin2 samples 2D Perlin noise at (x, y), remapped to [0,1].
func Perlin2(x, y float64) float64 {
	return (perlinNoise.Noise2D(x, y) + 1) / 2
}

// Simplex2 samples normalized 2D OpenSimplex noise at (x, y) in [0,1].
func Simplex2(x, y float64) float64 {
	return simplexNoise.Eval2(x, y)
}
