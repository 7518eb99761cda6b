package cartpole

import (
	"fmt"
	"math"

	env "github.com/samuelfneumann/tabq/environment"
	ts "github.com/samuelfneumann/tabq/timestep"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	FailAngle    float64 = 12 * 2 * math.Pi / 360
	FailPosition float64 = 2.4
)

// ContinuousStarter samples continuous starting configurations
type ContinuousStarter interface {
	StartFeatures() []float64
}

// Balance implements the classic control Cartpole Balance task. In this
// Task, the goal of the agent is to balance the pole on the cart in
// an upright position for as long as possible.
//
// The rewards are +1 for every timestep and -1 when the pole has fallen
// below some set angle threshold θ.
//
// Episodes end after the pole has fallen below some angle threshold θ
// or the cart leaves the track. If the episode step limit is positive,
// episodes also end after that many steps.
type Balance struct {
	ContinuousStarter
	stepLimiter env.Ender
	limiter     env.Ender
	failAngle   float64
}

// NewBalance creates and returns a new Balance task
func NewBalance(s ContinuousStarter, episodeSteps int,
	failAngle float64) (*Balance, error) {
	if failAngle <= 0 {
		return nil, fmt.Errorf("newBalance: fail angle must be positive")
	}

	var stepLimiter env.Ender
	if episodeSteps > 0 {
		stepLimiter = env.NewStepLimit(episodeSteps)
	}

	// Create the Enders
	legal := []r1.Interval{
		{Min: -FailPosition, Max: FailPosition},
		{Min: -failAngle, Max: failAngle},
	}
	limiter, err := env.NewIntervalLimit(legal, []int{0, 2},
		ts.TerminalStateReached)
	if err != nil {
		return nil, fmt.Errorf("newBalance: %v", err)
	}

	return &Balance{s, stepLimiter, limiter, failAngle}, nil
}

// NewDefaultBalance returns a Balance task with start states close to
// upright, drawn uniformly in ±0.05 for each feature
func NewDefaultBalance(episodeSteps int, seed uint64) (*Balance, error) {
	bounds := r1.Interval{Min: -0.05, Max: 0.05}
	s := env.NewUniformStarter([]r1.Interval{bounds, bounds, bounds,
		bounds}, seed)
	return NewBalance(s, episodeSteps, FailAngle)
}

// End checks if a TimeStep is the last in an episode. If so, it adjusts
// the TimeStep's StepType to timestep.Last and returns true. Otherwise,
// the function does not adjust the TimeStep and returns false.
func (b *Balance) End(t *ts.TimeStep) bool {
	if end := b.limiter.End(t); end {
		return true
	}
	if b.stepLimiter != nil {
		return b.stepLimiter.End(t)
	}
	return false
}

// GetReward returns the reward for transitioning to the continuous
// state features
func (b *Balance) GetReward(features []float64) float64 {
	angle := math.Abs(features[2])

	// Angle of 0 is pointing straight up, so we want angles to be
	// less than the failAngle
	if angle < b.failAngle {
		return 1.0
	}
	return -1.0
}
