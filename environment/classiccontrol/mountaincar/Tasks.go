package mountaincar

import (
	"fmt"
	"math"

	env "github.com/samuelfneumann/tabq/environment"
	ts "github.com/samuelfneumann/tabq/timestep"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	// Commonly used goal position
	GoalPosition float64 = 0.45
)

// ContinuousStarter samples continuous starting configurations
type ContinuousStarter interface {
	StartFeatures() []float64
}

// Goal implements the classic control task of reaching a goal on
// Mountain Car. In this task, the agent must learn to drive the car
// up the hill and reach the goal state. Since the car is underpowered,
// it must rock back and forth from hill to hill until it reaches the
// goal.
//
// Rewards are -1 on each timestep and 0 for the action which
// transitions the car to the goal.
//
// Episodes end when the car reaches the goal state or, if the episode
// step limit is positive, after that many steps.
type Goal struct {
	ContinuousStarter
	goalEnder env.Ender
	stepEnder env.Ender
	goalX     float64 // x position of goal
}

// NewGoal creates and returns a new Goal struct given a starter, which
// determines the starting states; the maximum number of episode
// steps; and the goal x position.
func NewGoal(s ContinuousStarter, episodeSteps int,
	goalX float64) (*Goal, error) {
	var stepEnder env.Ender
	if episodeSteps > 0 {
		stepEnder = env.NewStepLimit(episodeSteps)
	}

	// Positions at or beyond goalX end the episode
	interval := []r1.Interval{{
		Min: math.Inf(-1),
		Max: math.Nextafter(goalX, math.Inf(-1)),
	}}
	goalEnder, err := env.NewIntervalLimit(interval, []int{0},
		ts.TerminalStateReached)
	if err != nil {
		return nil, fmt.Errorf("newGoal: %v", err)
	}

	return &Goal{s, goalEnder, stepEnder, goalX}, nil
}

// NewDefaultGoal returns a Goal task starting at rest at a position
// drawn uniformly in [-0.6, -0.4]
func NewDefaultGoal(episodeSteps int, seed uint64) (*Goal, error) {
	position := r1.Interval{Min: -0.6, Max: -0.4}
	velocity := r1.Interval{Min: 0.0, Max: 0.0}

	s := env.NewUniformStarter([]r1.Interval{position, velocity}, seed)
	return NewGoal(s, episodeSteps, GoalPosition)
}

// AtGoal returns whether the car at position x is at the goal
func (g *Goal) AtGoal(x float64) bool {
	return x >= g.goalX
}

// GetReward returns the reward for transitioning to the continuous
// state features. Since this is a cost-to-goal Task, rewards are -1.0
// for all actions, except for an action which leads to the goal state,
// which results in a reward of 0.0
func (g *Goal) GetReward(features []float64) float64 {
	if g.AtGoal(features[0]) {
		return 0.0
	}
	return -1.0
}

// End determines if a timestep is the last timestep in the episode.
// If so, it changes the TimeStep's StepType to timestep.Last and
// returns true.
func (g *Goal) End(t *ts.TimeStep) bool {
	if end := g.goalEnder.End(t); end {
		return true
	}
	if g.stepEnder != nil {
		return g.stepEnder.End(t)
	}
	return false
}
