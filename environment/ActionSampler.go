package environment

import (
	"golang.org/x/exp/rand"
)

// UniformActions samples actions uniformly from (0, 1, ... n-1). It
// is embedded by environments to implement ActionSampler.
type UniformActions struct {
	n   int
	rng *rand.Rand
}

// NewUniformActions returns a new UniformActions sampling from n
// actions
func NewUniformActions(n int, seed uint64) UniformActions {
	return UniformActions{n, rand.New(rand.NewSource(seed))}
}

// SampleAction returns a uniformly random action
func (u UniformActions) SampleAction() int {
	return u.rng.Intn(u.n)
}

// ActionCount returns the number of actions sampled from
func (u UniformActions) ActionCount() int {
	return u.n
}
