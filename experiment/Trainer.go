package experiment

import (
	"fmt"

	"github.com/samuelfneumann/tabq/agent/tabular/qlearning"
	"github.com/samuelfneumann/tabq/agent/tabular/qtable"
	env "github.com/samuelfneumann/tabq/environment"
	"github.com/samuelfneumann/tabq/experiment/checkpointer"
	"github.com/samuelfneumann/tabq/experiment/tracker"
	ts "github.com/samuelfneumann/tabq/timestep"
	"github.com/samuelfneumann/tabq/utils/progressbar"
	"github.com/sirupsen/logrus"
)

// Trainer trains a QLearning agent online for a fixed number of
// episodes. Every TimeStep of training is sent to the registered
// Trackers, and the Checkpointers are called after every episode.
type Trainer struct {
	env      env.Environment
	agent    *qlearning.QLearning
	schedule qlearning.Schedule
	limit    env.StepLimit

	episodes int
	maxSteps int
	render   bool

	log           *logrus.Entry
	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer
	progress      progressbar.Incrementer
}

// NewTrainer returns a new Trainer which learns the values in table on
// environment e. The seed determines the agent's exploration.
func NewTrainer(e env.Environment, table *qtable.Table, c TrainConfig,
	seed uint64, log *logrus.Entry) (*Trainer, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newTrainer: %v", err)
	}

	agent, err := qlearning.New(e, table, c.Agent, c.Epsilon.At(0), seed)
	if err != nil {
		return nil, fmt.Errorf("newTrainer: %w", err)
	}

	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Trainer{
		env:      e,
		agent:    agent,
		schedule: c.Epsilon,
		limit:    env.NewStepLimit(c.MaxSteps),
		episodes: c.Episodes,
		maxSteps: c.MaxSteps,
		render:   c.Render,
		log:      log,
	}, nil
}

// Register registers a tracker.Tracker with the Trainer so that data
// generated during training can be tracked and saved
func (t *Trainer) Register(tr tracker.Tracker) {
	t.trackers = append(t.trackers, tr)
}

// AddCheckpointer adds a Checkpointer called after every episode with
// the number of episodes completed so far
func (t *Trainer) AddCheckpointer(c checkpointer.Checkpointer) {
	t.checkpointers = append(t.checkpointers, c)
}

// SetProgress sets a progress counter incremented after every episode
func (t *Trainer) SetProgress(p progressbar.Incrementer) {
	t.progress = p
}

// Run runs all training episodes and returns the learned table. The
// environment is closed once training ends, whether or not it ended
// with an error.
func (t *Trainer) Run() (table *qtable.Table, err error) {
	defer func() {
		if closeErr := t.env.Close(); closeErr != nil && err == nil {
			table, err = nil, fmt.Errorf("run: could not close "+
				"environment: %v", closeErr)
		}
	}()

	for e := 0; e < t.episodes; e++ {
		if err := t.RunEpisode(e); err != nil {
			return nil, fmt.Errorf("run: episode %d: %w", e, err)
		}

		for _, c := range t.checkpointers {
			if err := c.Checkpoint(e + 1); err != nil {
				return nil, fmt.Errorf("run: %v", err)
			}
		}
		if t.progress != nil {
			t.progress.Increment()
		}
	}

	return t.agent.Table(), nil
}

// RunEpisode runs a single training episode with the exploration rate
// of episode e in the Trainer's schedule
func (t *Trainer) RunEpisode(e int) error {
	epsilon := t.schedule.At(e)
	if err := t.agent.SetEpsilon(epsilon); err != nil {
		return err
	}
	log := t.log.WithFields(logrus.Fields{
		"episode": e,
		"epsilon": epsilon,
	})

	step, err := t.env.Reset()
	if err != nil {
		return fmt.Errorf("could not reset environment: %v", err)
	}
	if err := t.agent.ObserveFirst(step); err != nil {
		return err
	}
	t.track(step)

	episodeReturn := 0.0
	for s := 1; s <= t.maxSteps; s++ {
		log.WithField("step", s).Tracef("Episode %d/%d step %d", e+1,
			t.episodes, s)

		action, err := t.agent.SelectAction(step)
		if err != nil {
			return err
		}

		next, done, err := t.env.Step(action)
		if err != nil {
			return fmt.Errorf("could not step environment: %v", err)
		}
		if t.render {
			if err := t.env.Render(); err != nil {
				return err
			}
		}
		markLast(&next, done)
		t.limit.End(&next)
		t.track(next)

		if err := t.agent.Observe(action, next); err != nil {
			return err
		}
		if err := t.agent.Step(); err != nil {
			return err
		}

		episodeReturn += next.Reward
		step = next
		if next.Last() {
			break
		}
	}
	t.agent.EndEpisode()

	log.WithFields(logrus.Fields{
		"return": episodeReturn,
		"steps":  step.Number,
		"end":    step.EndType(),
	}).Debug("Training episode finished")
	return nil
}

func (t *Trainer) track(step ts.TimeStep) {
	for _, tr := range t.trackers {
		tr.Track(step)
	}
}

// markLast marks a TimeStep the environment reported as terminal as the
// last of its episode
func markLast(step *ts.TimeStep, terminated bool) {
	if terminated && !step.Last() {
		step.StepType = ts.Last
		step.SetEnd(ts.TerminalStateReached)
	}
}

// Train trains the values in table on environment e for c.Episodes
// episodes and returns the learned table. The environment is closed
// when training ends.
func Train(e env.Environment, table *qtable.Table, c TrainConfig,
	seed uint64, log *logrus.Entry) (*qtable.Table, error) {
	trainer, err := NewTrainer(e, table, c, seed, log)
	if err != nil {
		if closeErr := e.Close(); closeErr != nil {
			return nil, fmt.Errorf("train: %w (closing environment: %v)",
				err, closeErr)
		}
		return nil, fmt.Errorf("train: %w", err)
	}

	table, err = trainer.Run()
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}
	return table, nil
}
