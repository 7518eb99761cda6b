// Package gridworld implements 2D gridworld environments
package gridworld

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/logrusorgru/aurora"
	env "github.com/samuelfneumann/tabq/environment"
	ts "github.com/samuelfneumann/tabq/timestep"
)

// Actions in the GridWorld
const (
	Left int = iota
	Right
	Up
	Down
)

// ActionNames are the names of GridWorld actions, indexed by action
var ActionNames = []string{"Left", "Right", "Up", "Down"}

// GridWorld represents a gridworld environment with r rows and c
// columns. States are the (x, y) coordinates of the agent, so that the
// state cardinalities are (c, r). Moving into a wall leaves the agent
// in place.
type GridWorld struct {
	*Goal
	env.UniformActions
	r, c        int
	x, y        int
	spec        env.Spec
	currentStep ts.TimeStep
	out         io.Writer
}

// New creates a new gridworld with r rows, c columns and task t. The
// seed determines the exploratory action sampler.
func New(r, c int, t *Goal, seed uint64) (*GridWorld, ts.TimeStep, error) {
	if r <= 0 || c <= 0 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: gridworld must have "+
			"positive dimensions, got (%d, %d)", r, c)
	}

	g := &GridWorld{
		Goal:           t,
		UniformActions: env.NewUniformActions(len(ActionNames), seed),
		r:              r,
		c:              c,
		spec:           env.NewDiscreteSpec(env.Observation, []int{c, r}),
		out:            os.Stdout,
	}

	step, err := g.Reset()
	return g, step, err
}

// SetOutput sets the writer that Render draws to
func (g *GridWorld) SetOutput(w io.Writer) {
	g.out = w
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.r, g.c
}

// Reset resets the environment to a starting state drawn from the
// task's Starter
func (g *GridWorld) Reset() (ts.TimeStep, error) {
	start := g.Start()
	if !g.spec.Contains(start) {
		return ts.TimeStep{}, fmt.Errorf("reset: start state %v outside "+
			"gridworld of shape %v", start, g.spec.Cardinalities())
	}
	g.x, g.y = start[0], start[1]

	g.currentStep = ts.New(ts.First, 0, []int{g.x, g.y}, 0)
	return g.currentStep, nil
}

// Step takes one environmental step given action and returns the next
// TimeStep and whether the episode has ended
func (g *GridWorld) Step(action int) (ts.TimeStep, bool, error) {
	x, y := g.x, g.y

	// Move the current position
	switch action {
	case Left:
		if x-1 >= 0 {
			x--
		}

	case Right:
		if x+1 < g.c {
			x++
		}

	case Up:
		if y+1 < g.r {
			y++
		}

	case Down:
		if y-1 >= 0 {
			y--
		}

	default:
		return ts.TimeStep{}, false, fmt.Errorf("step: illegal action %d",
			action)
	}
	g.x, g.y = x, y

	next := []int{x, y}
	reward := g.GetReward(next)
	step := ts.New(ts.Mid, reward, next, g.currentStep.Number+1)
	last := g.End(&step)

	g.currentStep = step
	return step, last, nil
}

// StateCardinalities returns the number of columns and rows
func (g *GridWorld) StateCardinalities() []int {
	return g.spec.Cardinalities()
}

// ObservationSpec returns the observation specification of the
// environment
func (g *GridWorld) ObservationSpec() env.Spec {
	return g.spec
}

// ActionNames returns the names of each action
func (g *GridWorld) ActionNames() []string {
	return append([]string{}, ActionNames...)
}

// Render draws the grid with the agent as A and goals as G, with the
// top row of output being the highest y coordinate
func (g *GridWorld) Render() error {
	var b strings.Builder
	for y := g.r - 1; y >= 0; y-- {
		for x := 0; x < g.c; x++ {
			switch {
			case x == g.x && y == g.y:
				b.WriteString(aurora.Green(" A ").String())
			case g.AtGoal([]int{x, y}):
				b.WriteString(aurora.Blue(" G ").String())
			default:
				b.WriteString(" . ")
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	_, err := io.WriteString(g.out, b.String())
	return err
}

// Close releases the environment
func (g *GridWorld) Close() error {
	return nil
}

func (g *GridWorld) String() string {
	str := "GridWorld | At: (%d, %d)  |   Goal: %v  |  Bounds: (%d, %d)"
	return fmt.Sprintf(str, g.x, g.y, g.Goal, g.r, g.c)
}
