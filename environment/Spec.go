package environment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SpecType determines what kind of specification a Spec is. A Spec can
// specify the layout of an acion or an observation.
type SpecType int

const (
	Action SpecType = iota
	Observation
)

// Cardinality determines the cardinality of a number (discrete or continuous)
type Cardinality string

const (
	Continuous Cardinality = "Continuous"
	Discrete   Cardinality = "Discrete"
)

// Spec implements an environment specification, which tells the type,
// shape, and bounds of an action or an observation in an environment.
// Bounds are inclusive.
type Spec struct {
	Shape      mat.Vector
	Type       SpecType
	LowerBound mat.Vector
	UpperBound mat.Vector
	Cardinality
}

// NewSpec constructs a new environment specification
// The shape argument outlines the shape of the data described by the
// specification. The argument t outlines what the specification is
// describing (e.g. actions, observations, etc.). The cardinality
// arguments describes whether the values that the spec describes are
// continuous or discrete.
func NewSpec(shape mat.Vector, t SpecType, lowerBound,
	upperBound mat.Vector, cardinality Cardinality) Spec {
	if shape.Len() != lowerBound.Len() {
		panic(fmt.Sprintf("shape length %v must match lower bounds length %v",
			shape.Len(), lowerBound.Len()))
	}
	if shape.Len() != upperBound.Len() {
		panic(fmt.Sprintf("shape length %v must match upper bounds length %v",
			shape.Len(), upperBound.Len()))
	}
	return Spec{shape, t, lowerBound, upperBound, cardinality}
}

// NewDiscreteSpec returns a Spec for a discrete space where dimension
// i takes values in [0, cardinalities[i])
func NewDiscreteSpec(t SpecType, cardinalities []int) Spec {
	n := len(cardinalities)
	upper := make([]float64, n)
	for i, c := range cardinalities {
		upper[i] = float64(c - 1)
	}

	return NewSpec(mat.NewVecDense(n, nil), t, mat.NewVecDense(n, nil),
		mat.NewVecDense(n, upper), Discrete)
}

// Cardinalities returns the number of values each dimension of a
// discrete Spec can take on
func (s Spec) Cardinalities() []int {
	card := make([]int, s.Shape.Len())
	for i := range card {
		card[i] = int(s.UpperBound.AtVec(i)-s.LowerBound.AtVec(i)) + 1
	}
	return card
}

// Contains returns whether a discrete value lies within the bounds of
// the Spec
func (s Spec) Contains(value []int) bool {
	if len(value) != s.Shape.Len() {
		return false
	}
	for i, v := range value {
		if float64(v) < s.LowerBound.AtVec(i) ||
			float64(v) > s.UpperBound.AtVec(i) {
			return false
		}
	}
	return true
}
