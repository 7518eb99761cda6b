package experiment

import (
	"fmt"

	"github.com/samuelfneumann/tabq/agent/tabular/policy"
	"github.com/samuelfneumann/tabq/agent/tabular/qlearning"
	"github.com/samuelfneumann/tabq/agent/tabular/qtable"
	env "github.com/samuelfneumann/tabq/environment"
	"github.com/samuelfneumann/tabq/utils/progressbar"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the returns of a set of evaluation episodes
type Summary struct {
	Returns []float64
	Mean    float64
	StdDev  float64 // population standard deviation
}

func (s Summary) String() string {
	return fmt.Sprintf("Mean_reward=%.2f +/- %.2f", s.Mean, s.StdDev)
}

// Evaluator runs the greedy policy of a table without learning
type Evaluator struct {
	env    env.Environment
	policy *policy.GreedyPolicy

	episodes int
	maxSteps int
	render   bool
	log      *logrus.Entry
	progress progressbar.Incrementer
}

// NewEvaluator returns a new Evaluator acting greedily with respect to
// table in environment e. The table is never modified.
func NewEvaluator(e env.Environment, table *qtable.Table, c EvalConfig,
	log *logrus.Entry) (*Evaluator, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newEvaluator: %v", err)
	}
	if err := qlearning.CheckShape(e, table); err != nil {
		return nil, fmt.Errorf("newEvaluator: %w", err)
	}

	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Evaluator{
		env:      e,
		policy:   policy.NewGreedy(table, e),
		episodes: c.Episodes,
		maxSteps: c.MaxSteps,
		render:   c.Render,
		log:      log,
	}, nil
}

// SetProgress sets a progress counter incremented after every episode
func (ev *Evaluator) SetProgress(p progressbar.Incrementer) {
	ev.progress = p
}

// Run runs all evaluation episodes and summarizes their returns. The
// environment is closed once evaluation ends, whether or not it ended
// with an error.
func (ev *Evaluator) Run() (summary Summary, err error) {
	defer func() {
		if closeErr := ev.env.Close(); closeErr != nil && err == nil {
			summary, err = Summary{}, fmt.Errorf("run: could not close "+
				"environment: %v", closeErr)
		}
	}()

	returns := make([]float64, 0, ev.episodes)
	for e := 0; e < ev.episodes; e++ {
		ret, err := ev.RunEpisode(e)
		if err != nil {
			return Summary{}, fmt.Errorf("run: episode %d: %w", e, err)
		}
		returns = append(returns, ret)

		if ev.progress != nil {
			ev.progress.Increment()
		}
	}

	mean, std := stat.PopMeanStdDev(returns, nil)
	return Summary{Returns: returns, Mean: mean, StdDev: std}, nil
}

// RunEpisode runs a single greedy episode and returns its return
func (ev *Evaluator) RunEpisode(e int) (float64, error) {
	step, err := ev.env.Reset()
	if err != nil {
		return 0, fmt.Errorf("could not reset environment: %v", err)
	}

	total := 0.0
	for s := 1; s <= ev.maxSteps; s++ {
		action, err := ev.policy.SelectAction(step)
		if err != nil {
			return 0, err
		}

		next, done, err := ev.env.Step(action)
		if err != nil {
			return 0, fmt.Errorf("could not step environment: %v", err)
		}
		if ev.render {
			if err := ev.env.Render(); err != nil {
				return 0, err
			}
		}

		total += next.Reward
		step = next
		if done {
			break
		}
	}

	ev.log.WithFields(logrus.Fields{
		"episode": e,
		"return":  total,
		"steps":   step.Number,
	}).Debug("Evaluation episode finished")
	return total, nil
}

// Evaluate runs c.Episodes greedy episodes of table on environment e
// and summarizes their returns. The environment is closed when
// evaluation ends.
func Evaluate(e env.Environment, table *qtable.Table, c EvalConfig,
	log *logrus.Entry) (Summary, error) {
	evaluator, err := NewEvaluator(e, table, c, log)
	if err != nil {
		if closeErr := e.Close(); closeErr != nil {
			return Summary{}, fmt.Errorf("evaluate: %w (closing "+
				"environment: %v)", err, closeErr)
		}
		return Summary{}, fmt.Errorf("evaluate: %w", err)
	}

	summary, err := evaluator.Run()
	if err != nil {
		return Summary{}, fmt.Errorf("evaluate: %w", err)
	}
	return summary, nil
}
