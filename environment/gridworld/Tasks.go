package gridworld

import (
	"fmt"

	env "github.com/samuelfneumann/tabq/environment"
	ts "github.com/samuelfneumann/tabq/timestep"
)

const (
	TimeStepReward float64 = -1.0
	GoalReward     float64 = 0.0
)

// Goal represents the task of reaching goal states in a GridWorld.
// Episodes end when a goal is reached.
type Goal struct {
	env.Starter
	goals          [][2]int // (x, y) goal coordinates
	timeStepReward float64
	goalReward     float64
	ender          env.Ender
}

// NewGoal creates and returns a new goal at positions (x[i], y[i]),
// given that the gridworld has r rows and c columns. Rewards are tr on
// every step which does not reach a goal and gr otherwise.
func NewGoal(s env.Starter, x, y []int, r, c int, tr,
	gr float64) (*Goal, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("newGoal: x length (%d) != y length (%d)",
			len(x), len(y))
	}

	goals := make([][2]int, len(x))
	for i := range x {
		// Ensure that the goal is within the proper bounds
		if x[i] < 0 || x[i] >= c {
			return nil, fmt.Errorf("newGoal: x[%d] = %d outside [0, %d)", i,
				x[i], c)
		} else if y[i] < 0 || y[i] >= r {
			return nil, fmt.Errorf("newGoal: y[%d] = %d outside [0, %d)", i,
				y[i], r)
		}
		goals[i] = [2]int{x[i], y[i]}
	}

	g := &Goal{
		Starter:        s,
		goals:          goals,
		timeStepReward: tr,
		goalReward:     gr,
	}
	g.ender = env.NewFunctionEnder(g.AtGoal, ts.TerminalStateReached)

	return g, nil
}

// GetReward returns the reward for transitioning to next
func (g *Goal) GetReward(next []int) float64 {
	if g.AtGoal(next) {
		return g.goalReward
	}
	return g.timeStepReward
}

// AtGoal returns whether the (x, y) state is a goal state
func (g *Goal) AtGoal(state []int) bool {
	for _, goal := range g.goals {
		if state[0] == goal[0] && state[1] == goal[1] {
			return true
		}
	}
	return false
}

// End ends the episode when a goal is reached
func (g *Goal) End(t *ts.TimeStep) bool {
	return g.ender.End(t)
}

// String returns the Goal as a string
func (g *Goal) String() string {
	return fmt.Sprintf("Goal | Positions: %v", g.goals)
}
