package environment

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
)

// UniformStarter samples continuous starting configurations uniformly
// within per-dimension bounds. Environments with continuous underlying
// dynamics use it to sample their internal start state before
// discretizing it.
type UniformStarter struct {
	features int
	seed     uint64
	rand     *distmv.Uniform
}

// NewUniformStarter returns a new UniformStarter sampling dimension i
// uniformly in bounds[i]
func NewUniformStarter(bounds []r1.Interval, seed uint64) UniformStarter {
	source := rand.NewSource(seed)
	rand := distmv.NewUniform(bounds, source)

	return UniformStarter{len(bounds), seed, rand}
}

// StartFeatures returns a continuous starting configuration
func (u UniformStarter) StartFeatures() []float64 {
	return u.rand.Rand(nil)
}
