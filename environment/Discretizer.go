package environment

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/tabq/utils/floatutils"
	"gonum.org/v1/gonum/spatial/r1"
)

// Discretizer maps continuous feature vectors to discrete states by
// splitting the interval of each feature into equal width bins. Values
// outside an interval fall into the nearest edge bin.
type Discretizer struct {
	bounds []r1.Interval
	bins   []int
}

// NewDiscretizer returns a new Discretizer which splits feature i into
// bins[i] equal width bins over bounds[i]
func NewDiscretizer(bounds []r1.Interval, bins []int) (*Discretizer, error) {
	if len(bounds) != len(bins) {
		return nil, fmt.Errorf("newDiscretizer: %d bounds for %d bin counts",
			len(bounds), len(bins))
	}
	for i := range bounds {
		if bins[i] <= 0 {
			return nil, fmt.Errorf("newDiscretizer: feature %d must have "+
				"positive bins", i)
		}
		if !(bounds[i].Max > bounds[i].Min) {
			return nil, fmt.Errorf("newDiscretizer: feature %d has empty "+
				"interval %v", i, bounds[i])
		}
	}

	return &Discretizer{
		bounds: append([]r1.Interval{}, bounds...),
		bins:   append([]int{}, bins...),
	}, nil
}

// Cardinalities returns the number of bins of each feature, which are
// the cardinalities of the discrete states produced
func (d *Discretizer) Cardinalities() []int {
	return append([]int{}, d.bins...)
}

// Discretize returns the bin index of each feature
func (d *Discretizer) Discretize(features []float64) []int {
	state := make([]int, len(d.bins))
	for i := range state {
		interval := d.bounds[i]
		x := floatutils.ClipInterval(features[i], interval)

		width := (interval.Max - interval.Min) / float64(d.bins[i])
		bin := int(math.Floor((x - interval.Min) / width))
		if bin >= d.bins[i] {
			bin = d.bins[i] - 1
		}
		state[i] = bin
	}
	return state
}
