// Package experiment implements the training and evaluation loops of
// tabular Q-Learning agents
package experiment

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samuelfneumann/tabq/agent/tabular/qlearning"
	"github.com/samuelfneumann/tabq/environment/envconfig"
	"github.com/sirupsen/logrus"
)

// DefaultTablePath is the file the action-value table is stored in
const DefaultTablePath = "q_table.gob"

// TrainConfig configures a Trainer
type TrainConfig struct {
	Episodes int
	MaxSteps int
	Epsilon  qlearning.Schedule
	Agent    qlearning.Config
	Render   bool
}

// Validate ensures that the TrainConfig is valid
func (c TrainConfig) Validate() error {
	if c.Episodes < 0 {
		return fmt.Errorf("validate: negative episodes %d", c.Episodes)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("validate: max steps must be positive, got %d",
			c.MaxSteps)
	}
	if err := c.Epsilon.Validate(); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	if err := c.Agent.Validate(); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	return nil
}

// EvalConfig configures an Evaluator
type EvalConfig struct {
	Episodes int
	MaxSteps int
	Render   bool
}

// Validate ensures that the EvalConfig is valid
func (c EvalConfig) Validate() error {
	if c.Episodes <= 0 {
		return fmt.Errorf("validate: evaluation episodes must be positive, "+
			"got %d", c.Episodes)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("validate: max steps must be positive, got %d",
			c.MaxSteps)
	}
	return nil
}

// Config represents a configuration of a whole experiment: the
// environment, training, evaluation and the files written along the
// way. Config is JSON serializable.
type Config struct {
	EnvConf envconfig.Config

	TrainEpisodes int
	EvalEpisodes  int
	MaxSteps      int
	Epsilon       qlearning.Schedule
	Agent         qlearning.Config
	Render        bool
	Seed          uint64

	TablePath string

	// CheckpointEvery saves a numbered copy of the table every that many
	// training episodes, never if 0
	CheckpointEvery int `json:",omitempty"`

	// ReturnsPath and PlotPath save the training returns as gob data and
	// as an HTML chart, if set
	ReturnsPath string `json:",omitempty"`
	PlotPath    string `json:",omitempty"`

	LogLevel string
}

// DefaultConfig returns the default experiment: the RlCar environment
// trained for 15 episodes and evaluated for 100
func DefaultConfig() Config {
	return Config{
		EnvConf:       envconfig.NewConfig(envconfig.RlCar),
		TrainEpisodes: 15,
		EvalEpisodes:  100,
		MaxSteps:      600,
		Epsilon: qlearning.Schedule{
			Min:       0.05,
			Max:       0.95,
			DecayRate: 0.0005,
		},
		Agent: qlearning.Config{
			LearningRate: 0.5,
			Discount:     0.9,
			Bootstrap:    qlearning.BootstrapTaken,
		},
		TablePath: DefaultTablePath,
		LogLevel:  logrus.InfoLevel.String(),
	}
}

// LoadConfig reads a JSON Config from filename. Fields absent from the
// file keep their DefaultConfig values.
func LoadConfig(filename string) (Config, error) {
	c := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: %v", err)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not decode %v: %v",
			filename, err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("loadConfig: %v", err)
	}
	return c, nil
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if err := c.EnvConf.Validate(); err != nil {
		return err
	}
	if err := c.TrainConfig().Validate(); err != nil {
		return err
	}
	if err := c.EvalConfig().Validate(); err != nil {
		return err
	}
	if c.TablePath == "" {
		return fmt.Errorf("validate: no table path")
	}
	if c.CheckpointEvery < 0 {
		return fmt.Errorf("validate: negative checkpoint interval %d",
			c.CheckpointEvery)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	return nil
}

// TrainConfig returns the training part of the Config
func (c Config) TrainConfig() TrainConfig {
	return TrainConfig{
		Episodes: c.TrainEpisodes,
		MaxSteps: c.MaxSteps,
		Epsilon:  c.Epsilon,
		Agent:    c.Agent,
		Render:   c.Render,
	}
}

// EvalConfig returns the evaluation part of the Config
func (c Config) EvalConfig() EvalConfig {
	return EvalConfig{
		Episodes: c.EvalEpisodes,
		MaxSteps: c.MaxSteps,
		Render:   c.Render,
	}
}
