// Package envconfig provides configuration structs for configuring
// environments with default physical parameters and tasks. Environment
// configurations in this package are JSON serializable.
package envconfig

import (
	"fmt"

	env "github.com/samuelfneumann/tabq/environment"
	"github.com/samuelfneumann/tabq/environment/classiccontrol/cartpole"
	"github.com/samuelfneumann/tabq/environment/classiccontrol/mountaincar"
	"github.com/samuelfneumann/tabq/environment/gridworld"
	"github.com/samuelfneumann/tabq/environment/rlcar"
	ts "github.com/samuelfneumann/tabq/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	RlCar       EnvName = "RlCar"
	GridWorld   EnvName = "GridWorld"
	Cartpole    EnvName = "Cartpole"
	MountainCar EnvName = "MountainCar"
)

// Config implements a specific configuration of a specific environment.
// Fields which do not apply to the named environment are ignored.
//
// The parameters of each environment are:
//
//	Environment		Fields
//	RlCar			Obstacles, FrameDir
//	GridWorld		Rows, Cols, RandomStart
//	Cartpole		Bins, EpisodeCutoff
//	MountainCar		Bins, EpisodeCutoff
type Config struct {
	Environment EnvName

	// RlCar
	Obstacles int    `json:",omitempty"`
	FrameDir  string `json:",omitempty"`

	// GridWorld, with the goal in the corner opposite (0, 0). The agent
	// starts at (0, 0), or anywhere if RandomStart is set.
	Rows        int  `json:",omitempty"`
	Cols        int  `json:",omitempty"`
	RandomStart bool `json:",omitempty"`

	// Cartpole and MountainCar
	Bins          []int `json:",omitempty"`
	EpisodeCutoff int   `json:",omitempty"`
}

// NewConfig returns a new environment Config with the default
// parameters of the named environment
func NewConfig(envName EnvName) Config {
	c := Config{Environment: envName}
	switch envName {
	case GridWorld:
		c.Rows, c.Cols = 5, 5
	case Cartpole:
		c.Bins = append([]int{}, cartpole.DefaultBins...)
	case MountainCar:
		c.Bins = append([]int{}, mountaincar.DefaultBins...)
	}
	return c
}

// Validate checks that the Config describes an environment which can
// be created
func (c Config) Validate() error {
	switch c.Environment {
	case RlCar:
		if c.Obstacles < 0 {
			return fmt.Errorf("validate: cannot have %d obstacles",
				c.Obstacles)
		}

	case GridWorld:
		if c.Rows <= 0 || c.Cols <= 0 {
			return fmt.Errorf("validate: gridworld must have positive "+
				"dimensions, got (%d, %d)", c.Rows, c.Cols)
		}

	case Cartpole, MountainCar:
		want := len(cartpole.DefaultBins)
		if c.Environment == MountainCar {
			want = len(mountaincar.DefaultBins)
		}
		if c.Bins != nil && len(c.Bins) != want {
			return fmt.Errorf("validate: %v needs %d bin counts, got %d",
				c.Environment, want, len(c.Bins))
		}
		if c.EpisodeCutoff < 0 {
			return fmt.Errorf("validate: negative episode cutoff %d",
				c.EpisodeCutoff)
		}

	default:
		return fmt.Errorf("validate: no such environment %q", c.Environment)
	}
	return nil
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment.
func (c Config) Create(seed uint64) (env.Environment, ts.TimeStep, error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %v", err)
	}

	switch c.Environment {
	case RlCar:
		return CreateRlCar(c.Obstacles, c.FrameDir, seed)

	case GridWorld:
		return CreateGridWorld(c.Rows, c.Cols, c.RandomStart, seed)

	case MountainCar:
		return CreateMountainCar(c.Bins, c.EpisodeCutoff, seed)

	default:
		return CreateCartpole(c.Bins, c.EpisodeCutoff, seed)
	}
}

// CreateRlCar is a factory for creating the RlCar environment with the
// default arena and task
func CreateRlCar(obstacles int, frameDir string,
	seed uint64) (env.Environment, ts.TimeStep, error) {
	car, step, err := rlcar.New(rlcar.Config{
		Obstacles: obstacles,
		FrameDir:  frameDir,
	}, seed)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createRlCar: %v", err)
	}
	return car, step, nil
}

// CreateGridWorld is a factory for creating an r x c GridWorld with the
// goal in the corner opposite (0, 0). The agent starts at (0, 0) or, if
// randomStart is set, uniformly anywhere on the grid.
func CreateGridWorld(r, c int, randomStart bool, seed uint64) (env.Environment,
	ts.TimeStep, error) {
	var s env.Starter = env.NewSingleStarter([]int{0, 0})
	if randomStart {
		var err error
		s, err = env.NewCategoricalStarter([]int{c, r}, seed)
		if err != nil {
			return nil, ts.TimeStep{}, fmt.Errorf("createGridWorld: %v", err)
		}
	}

	task, err := gridworld.NewGoal(s, []int{c - 1}, []int{r - 1}, r, c,
		gridworld.TimeStepReward, gridworld.GoalReward)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createGridWorld: %v", err)
	}

	g, step, err := gridworld.New(r, c, task, seed)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createGridWorld: %v", err)
	}
	return g, step, nil
}

// CreateCartpole is a factory for creating the Cartpole environment
// with default physical parameters and default task parameters.
func CreateCartpole(bins []int, cutoff int, seed uint64) (env.Environment,
	ts.TimeStep, error) {
	task, err := cartpole.NewDefaultBalance(cutoff, seed)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createCartpole: %v", err)
	}

	c, step, err := cartpole.New(task, bins, seed+1)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createCartpole: %v", err)
	}
	return c, step, nil
}

// CreateMountainCar is a factory for creating the MountainCar
// environment with default physical parameters and default task
// parameters.
func CreateMountainCar(bins []int, cutoff int, seed uint64) (env.Environment,
	ts.TimeStep, error) {
	task, err := mountaincar.NewDefaultGoal(cutoff, seed)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createMountainCar: %v", err)
	}

	m, step, err := mountaincar.New(task, bins, seed+1)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createMountainCar: %v", err)
	}
	return m, step, nil
}
