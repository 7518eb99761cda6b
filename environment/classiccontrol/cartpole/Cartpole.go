// Package cartpole implements the Cartpole classic control environment
// with a discretized state space
package cartpole

import (
	"fmt"
	"math"

	env "github.com/samuelfneumann/tabq/environment"
	ts "github.com/samuelfneumann/tabq/timestep"
	"github.com/samuelfneumann/tabq/utils/floatutils"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	// Physical constants
	Gravity        float64 = 9.8
	CartMass       float64 = 1.0
	PoleMass       float64 = 0.1
	TotalMass      float64 = CartMass + PoleMass
	HalfPoleLength float64 = 0.5  // half of pole length
	ForceMag       float64 = 10.0 // Magnification of force applied
	Dt             float64 = 0.02 // seconds between state updates

	// Bounds (+/-) on state variables
	PositionBounds float64 = 4.8
	AngleBounds    float64 = math.Pi

	// Bounds (+/-) of the discretization of each state variable.
	// Values outside these bounds fall into the edge bins.
	PositionBins        float64 = 2.4
	SpeedBins           float64 = 3.0
	AngularVelocityBins float64 = 3.5

	// Discrete Actions
	MinDiscreteAction int = 0
	MaxDiscreteAction int = 2
)

// DefaultBins is the default number of bins for the position, speed,
// angle, and angular velocity respectively
var DefaultBins = []int{3, 3, 6, 3}

// ActionNames are the names of Cartpole actions, indexed by action
var ActionNames = []string{"Left", "None", "Right"}

// Cartpole implements the classic control environment Cartpole. In
// this environment, a pole is attached to a cart, which can move
// horizontally. The agent must keep the pole upright for as long as
// possible.
//
// The underlying state features are continuous and consist of the
// cart's x position and speed, as well as the pole's angle from the
// positive y-axis and the pole's angular velocity. Observations are
// these features discretized into equal width bins.
//
// Actions are discrete and consist of the force applied to the cart:
//
//	Action	Meaning
//	  0		Accelerate left
//	  1		Do nothing
//	  2		Accelerate right
type Cartpole struct {
	*Balance
	env.UniformActions
	discretizer    *env.Discretizer
	lastStep       ts.TimeStep
	features       []float64
	positionBounds r1.Interval
	angleBounds    r1.Interval
}

// New constructs a new Cartpole environment. The bins argument
// determines the number of bins each state feature is discretized
// into; if nil, DefaultBins is used.
func New(t *Balance, bins []int, seed uint64) (*Cartpole, ts.TimeStep,
	error) {
	if bins == nil {
		bins = DefaultBins
	}

	discretizer, err := env.NewDiscretizer([]r1.Interval{
		{Min: -PositionBins, Max: PositionBins},
		{Min: -SpeedBins, Max: SpeedBins},
		{Min: -t.failAngle, Max: t.failAngle},
		{Min: -AngularVelocityBins, Max: AngularVelocityBins},
	}, bins)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}

	c := &Cartpole{
		Balance:        t,
		UniformActions: env.NewUniformActions(len(ActionNames), seed),
		discretizer:    discretizer,
		positionBounds: r1.Interval{Min: -PositionBounds, Max: PositionBounds},
		angleBounds:    r1.Interval{Min: -AngleBounds, Max: AngleBounds},
	}

	step, err := c.Reset()
	return c, step, err
}

// Reset resets the environment and returns a starting state drawn from
// the environment Starter
func (c *Cartpole) Reset() (ts.TimeStep, error) {
	features := c.StartFeatures()
	if len(features) != 4 {
		return ts.TimeStep{}, fmt.Errorf("reset: starter returned %d "+
			"features, want 4", len(features))
	}
	if features[0] < c.positionBounds.Min ||
		features[0] > c.positionBounds.Max {
		return ts.TimeStep{}, fmt.Errorf("reset: position %v is not within "+
			"bounds %v", features[0], c.positionBounds)
	}

	c.features = features
	c.lastStep = c.timeStep(ts.First, 0, 0)
	return c.lastStep, nil
}

// Step takes one environmental step given action a and returns the next
// state as a timestep.TimeStep and a bool indicating whether or not the
// episode has ended
func (c *Cartpole) Step(action int) (ts.TimeStep, bool, error) {
	if action < MinDiscreteAction || action > MaxDiscreteAction {
		return ts.TimeStep{}, false, fmt.Errorf("step: illegal action %v "+
			"∉ (0, 1, 2)", action)
	}

	// Get state variables
	x, xDot := c.features[0], c.features[1]
	th, thDot := c.features[2], c.features[3]

	// Magnify the action force in the appropriate direction
	var force float64
	if action == 0 {
		force = -ForceMag
	} else if action == 2 {
		force = ForceMag
	}

	// Calculate physical variables to determine next state
	cosTheta := math.Cos(th)
	sinTheta := math.Sin(th)

	poleMassOverLength := PoleMass / HalfPoleLength

	temp := (force + poleMassOverLength*thDot*thDot*sinTheta) / TotalMass
	thAcc := (Gravity*sinTheta - cosTheta*temp) / (HalfPoleLength *
		(4.0/3.0 - PoleMass*cosTheta*cosTheta/TotalMass))
	xAcc := temp - poleMassOverLength*thAcc*cosTheta/TotalMass

	// Update state variables using Euler kinematic integration
	x += (Dt * xDot)
	x = floatutils.ClipInterval(x, c.positionBounds)

	xDot += (Dt * xAcc)

	th += (Dt * thDot)
	th = normalizeAngle(th, c.angleBounds)

	thDot += (Dt * thAcc)

	c.features = []float64{x, xDot, th, thDot}
	reward := c.GetReward(c.features)
	nextStep := c.timeStep(ts.Mid, reward, c.lastStep.Number+1)

	// Check if the step ends the episode
	last := c.End(&nextStep)

	c.lastStep = nextStep
	return nextStep, last, nil
}

// timeStep constructs a TimeStep from the current continuous features
func (c *Cartpole) timeStep(t ts.StepType, reward float64,
	n int) ts.TimeStep {
	step := ts.New(t, reward, c.discretizer.Discretize(c.features), n)
	step.Features = append([]float64{}, c.features...)
	return step
}

// StateCardinalities returns the number of bins of each state feature
func (c *Cartpole) StateCardinalities() []int {
	return c.discretizer.Cardinalities()
}

// ActionNames returns the names of each action
func (c *Cartpole) ActionNames() []string {
	return append([]string{}, ActionNames...)
}

// Render prints nothing, Cartpole has no visualization
func (c *Cartpole) Render() error {
	return nil
}

// Close releases the environment
func (c *Cartpole) Close() error {
	return nil
}

func (c *Cartpole) String() string {
	msg := "Cartpole  |  Position: %v  | Speed: %v  |  Angle: %v" +
		"  |  Angular Velocity: %v"

	return fmt.Sprintf(msg, c.features[0], c.features[1], c.features[2],
		c.features[3])
}

// normalizeAngle normalizes the pole angle to the appropriate limits
func normalizeAngle(th float64, angleBounds r1.Interval) float64 {
	if th > angleBounds.Max {
		divisor := int(th / angleBounds.Max)
		return -math.Pi + th - (angleBounds.Max * float64(divisor))
	} else if th < angleBounds.Min {
		divisor := int(th / angleBounds.Min)
		return math.Pi + th - (angleBounds.Min * float64(divisor))
	}
	return th
}
