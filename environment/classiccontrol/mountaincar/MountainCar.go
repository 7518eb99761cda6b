// Package mountaincar implements the Mountain Car classic control
// environment with a discretized state space
package mountaincar

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	env "github.com/samuelfneumann/tabq/environment"
	ts "github.com/samuelfneumann/tabq/timestep"
	"github.com/samuelfneumann/tabq/utils/floatutils"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	MinPosition float64 = -1.2
	MaxPosition float64 = 0.6
	MaxSpeed    float64 = 0.07
	Power       float64 = 0.0015 // Engine power
	Gravity     float64 = 0.0025

	// Discrete Actions
	MinDiscreteAction int = 0
	MaxDiscreteAction int = 2
)

// DefaultBins is the default number of bins for the position and
// speed respectively
var DefaultBins = []int{8, 8}

// ActionNames are the names of Mountain Car actions, indexed by action
var ActionNames = []string{"Left", "None", "Right"}

// MountainCar implements the classic control Mountain Car environment.
// In this environment, the agent controls a car in a valley between two
// hills. The car is underpowered and cannot drive up the hill unless
// it rocks back and forth from hill to hill, using its momentum to
// gradually climb higher.
//
// The underlying state features are the x position of the car and its
// velocity, bounded by the MinPosition, MaxPosition, and MaxSpeed
// constants. Upon reaching the minimum position, the velocity of the
// car is set to 0. Observations are these features discretized into
// equal width bins.
//
// Actions determine in which direction to apply full accelerating
// force to the car:
//
//	Action	Meaning
//	  0		Accelerate left
//	  1		Do nothing
//	  2		Accelerate right
type MountainCar struct {
	*Goal
	env.UniformActions
	discretizer    *env.Discretizer
	positionBounds r1.Interval
	speedBounds    r1.Interval
	features       []float64
	lastStep       ts.TimeStep
	out            io.Writer
}

// New creates a new MountainCar environment with the argument task. The
// bins argument determines the number of bins each state feature is
// discretized into; if nil, DefaultBins is used.
func New(t *Goal, bins []int, seed uint64) (*MountainCar, ts.TimeStep,
	error) {
	if bins == nil {
		bins = DefaultBins
	}

	positionBounds := r1.Interval{Min: MinPosition, Max: MaxPosition}
	speedBounds := r1.Interval{Min: -MaxSpeed, Max: MaxSpeed}
	discretizer, err := env.NewDiscretizer([]r1.Interval{positionBounds,
		speedBounds}, bins)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}

	m := &MountainCar{
		Goal:           t,
		UniformActions: env.NewUniformActions(len(ActionNames), seed),
		discretizer:    discretizer,
		positionBounds: positionBounds,
		speedBounds:    speedBounds,
		out:            os.Stdout,
	}

	step, err := m.Reset()
	return m, step, err
}

// SetOutput sets the writer that Render draws to
func (m *MountainCar) SetOutput(w io.Writer) {
	m.out = w
}

// Reset resets the environment and returns a starting state drawn from
// the task's starter
func (m *MountainCar) Reset() (ts.TimeStep, error) {
	features := m.StartFeatures()
	if err := validateState(features, m.positionBounds,
		m.speedBounds); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %v", err)
	}

	m.features = features
	m.lastStep = m.timeStep(ts.First, 0, 0)
	return m.lastStep, nil
}

// Step takes one environmental step given action and returns the next
// TimeStep and whether the episode has ended
func (m *MountainCar) Step(action int) (ts.TimeStep, bool, error) {
	if action < MinDiscreteAction || action > MaxDiscreteAction {
		return ts.TimeStep{}, false, fmt.Errorf("step: illegal action %v "+
			"∉ (0, 1, 2)", action)
	}
	force := float64(action - 1)

	position, velocity := m.features[0], m.features[1]

	velocity += force*Power - Gravity*math.Cos(3*position)
	velocity = floatutils.ClipInterval(velocity, m.speedBounds)

	position += velocity
	position = floatutils.ClipInterval(position, m.positionBounds)

	// The car stops against the left wall
	if position <= m.positionBounds.Min && velocity < 0 {
		velocity = 0
	}

	m.features = []float64{position, velocity}
	nextStep := m.timeStep(ts.Mid, m.GetReward(m.features),
		m.lastStep.Number+1)
	last := m.End(&nextStep)

	m.lastStep = nextStep
	return nextStep, last, nil
}

// timeStep constructs a TimeStep from the current continuous features
func (m *MountainCar) timeStep(t ts.StepType, reward float64,
	n int) ts.TimeStep {
	step := ts.New(t, reward, m.discretizer.Discretize(m.features), n)
	step.Features = append([]float64{}, m.features...)
	return step
}

// StateCardinalities returns the number of bins of each state feature
func (m *MountainCar) StateCardinalities() []int {
	return m.discretizer.Cardinalities()
}

// ActionNames returns the names of each action
func (m *MountainCar) ActionNames() []string {
	return append([]string{}, ActionNames...)
}

// Render renders a text-based version of the environment
func (m *MountainCar) Render() error {
	xIndices := 16

	// Print the hill
	var hill strings.Builder
	for i := 1; i < xIndices/2+1; i++ {
		if i == 1 {
			fmt.Fprint(&hill, calculateRow(xIndices, i)+"🏁\n")
		} else {
			fmt.Fprintln(&hill, calculateRow(xIndices, i))
		}
	}
	fmt.Fprintln(&hill, "")

	// Calculate the x position at which to draw the car
	xPos := (m.features[0] - m.positionBounds.Min) /
		(m.positionBounds.Max - m.positionBounds.Min)
	x := int(xPos * float64(xIndices))

	// Print the position bar
	var bar strings.Builder
	for i := 0; i < xIndices; i++ {
		if i == x {
			bar.WriteString("🚗")
		} else if i == xIndices-1 {
			bar.WriteString("🏁")
		} else {
			bar.WriteString("=")
		}
	}

	// Clear screen and draw
	_, err := fmt.Fprintf(m.out, "\x1b[3;J\x1b[H\x1b[2J%v%v\n", &hill, &bar)
	return err
}

// Close releases the environment
func (m *MountainCar) Close() error {
	return nil
}

// String returns a string representation of the environment
func (m *MountainCar) String() string {
	str := "Mountain Car  |  Position: %v  |  Speed: %v"
	return fmt.Sprintf(str, m.features[0], m.features[1])
}

// calculateRow calculates what to draw for a single row of text-based
// rendering of the hill in Mountain Car
func calculateRow(xIndices, width int) string {
	return strings.Repeat("=", width) +
		strings.Repeat(" ", xIndices-2*width) +
		strings.Repeat("=", width)
}

// validateState ensures the position and speed are within the
// environmental limits
func validateState(features []float64, positionBounds,
	speedBounds r1.Interval) error {
	if len(features) != 2 {
		return fmt.Errorf("starter returned %d features, want 2",
			len(features))
	}

	position := features[0]
	if position < positionBounds.Min || position > positionBounds.Max {
		return fmt.Errorf("illegal position %v ∉ [%v, %v]", position,
			positionBounds.Min, positionBounds.Max)
	}

	speed := features[1]
	if speed < speedBounds.Min || speed > speedBounds.Max {
		return fmt.Errorf("illegal speed %v ∉ [%v, %v]", speed,
			speedBounds.Min, speedBounds.Max)
	}
	return nil
}
