package environment

import (
	"fmt"

	ts "github.com/samuelfneumann/tabq/timestep"
	"gonum.org/v1/gonum/spatial/r1"
)

// IntervalLimit implements the Ender interface to end episodes
// whenever a single continuous feature of a TimeStep leaves some
// interval
type IntervalLimit struct {
	intervals []r1.Interval
	indices   []int
	endType   ts.EndType
}

// NewIntervalLimit creates and returns a new inteval limit. The endType
// argument determines what the episode end should be considered as.
func NewIntervalLimit(limits []r1.Interval, featureIndices []int,
	endType ts.EndType) (Ender, error) {
	if len(limits) != len(featureIndices) {
		return nil, fmt.Errorf("newIntervalLimit: %d limits for %d features",
			len(limits), len(featureIndices))
	}

	return &IntervalLimit{limits, featureIndices, endType}, nil
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. If the episode
// should be ended End() will modify the timestep so that its StepType
// field is timestep.Last and its EndType is the appropriate ending
// type. TimeSteps without continuous features never end.
func (i *IntervalLimit) End(t *ts.TimeStep) bool {
	for index, featureIndex := range i.indices {
		if featureIndex >= len(t.Features) {
			continue
		}

		interval := i.intervals[index]
		if t.Features[featureIndex] > interval.Max ||
			t.Features[featureIndex] < interval.Min {
			t.StepType = ts.Last
			t.SetEnd(i.endType)
			return true
		}
	}
	return false
}
