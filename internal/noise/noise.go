// Package noise evaluates multi-octave coherent noise over integer world
// coordinates. Values are computed on demand per coordinate.
package noise

import (
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/samdwyer/tileworld/internal/rng"
)

const (
	// Single-octave primitive; octave mixing is done by Evaluate.
	perlinAlpha = 2
	perlinBeta  = 2
	perlinN     = 1

	// Noise2D with unit gradients peaks at sqrt(1/2); this stretches it to [-1, 1].
	perlinGain = math.Sqrt2

	// Animation phase sampling.
	frameSpread = 0.61
	frameSpeed  = 0.05
)

// Field is a seeded 2-D gradient noise surface. Two fields built from the
// same seed produce identical surfaces.
type Field struct {
	p *perlin.Perlin
}

// NewField creates a noise field keyed by the world seed and optional salts.
func NewField(seed float64, salt ...float64) *Field {
	key := rng.SeedOf(append([]float64{seed}, salt...)...)
	return &Field{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, int64(key))}
}

// Sample returns the primitive at (x, y), scaled to span [-1, 1].
func (f *Field) Sample(x, y float64) float64 {
	return clamp(f.p.Noise2D(x, y) * perlinGain)
}

// Evaluate returns the weighted octave sum at (x, y) in [-1, 1]. Each weight w
// samples at (x/(scale*w), y/(scale*w)) and contributes w times that sample;
// the total is divided by the sum of weights.
func (f *Field) Evaluate(x, y int, scale float64, weights []float64) float64 {
	var sum, total float64
	for _, w := range weights {
		if w == 0 {
			continue
		}
		sum += w * f.Sample(float64(x)/(scale*w), float64(y)/(scale*w))
		total += w
	}
	if total == 0 {
		return 0
	}
	return clamp(sum / total)
}

// Frame picks an animation frame in [0, frames) for the cell at (x, y) on the
// given tick. Neighbouring cells get different, repeatable phase offsets.
func (f *Field) Frame(x, y int, tick uint64, frames int) int {
	if frames <= 1 {
		return 0
	}
	v := f.Sample(float64(x)*frameSpread+float64(tick)*frameSpeed, float64(y)*frameSpread+0.5)
	i := int((v + 1) / 2 * float64(frames))
	if i >= frames {
		i = frames - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
