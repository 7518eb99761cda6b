// Command tabq trains and evaluates a tabular Q-Learning agent.
//
// Usage:
//
//	tabq train      train the table, creating it if it does not exist
//	tabq evaluate   evaluate the greedy policy of the table
//	tabq check      print the table, one state per line
//
// The experiment is configured by the JSON file named by TABQ_CONFIG,
// or the defaults of experiment.DefaultConfig if unset. TABQ_TABLE and
// TABQ_LOG_LEVEL override the table path and log level. Variables may
// also be set in a .env file in the working directory.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/samuelfneumann/tabq/agent/tabular/qtable"
	env "github.com/samuelfneumann/tabq/environment"
	"github.com/samuelfneumann/tabq/experiment"
	"github.com/samuelfneumann/tabq/experiment/checkpointer"
	"github.com/samuelfneumann/tabq/experiment/plot"
	"github.com/samuelfneumann/tabq/experiment/tracker"
	"github.com/samuelfneumann/tabq/utils/progressbar"
	"github.com/sirupsen/logrus"
)

const usage = `**** Error ****[!]
Run 'tabq train'
or 'tabq evaluate'
or 'tabq check'`

var errUsage = errors.New("usage")

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.WithError(err).Fatal("Could not load .env file")
	}

	err := run(os.Args[1:], os.Stdout)
	if errors.Is(err, errUsage) {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	} else if err != nil {
		logrus.WithError(err).Fatal("Run failed")
	}
}

// run runs the command named by args[0], writing its results to out
func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	var command func(session) error
	switch args[0] {
	case "train":
		command = train
	case "evaluate":
		command = evaluate
	case "check":
		command = check
	default:
		return errUsage
	}

	c, err := loadConfig()
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	id := uuid.New()
	return command(session{
		config: c,
		run:    id,
		log:    logger.WithField("run", id.String()),
		out:    out,
	})
}

// session holds what every command runs with
type session struct {
	config experiment.Config
	run    uuid.UUID
	log    *logrus.Entry
	out    io.Writer
}

// loadConfig loads the experiment configuration, applying environment
// variable overrides
func loadConfig() (experiment.Config, error) {
	c := experiment.DefaultConfig()
	if path := os.Getenv("TABQ_CONFIG"); path != "" {
		var err error
		if c, err = experiment.LoadConfig(path); err != nil {
			return experiment.Config{}, err
		}
	}

	if path := os.Getenv("TABQ_TABLE"); path != "" {
		c.TablePath = path
	}
	if level := os.Getenv("TABQ_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}

	if err := c.Validate(); err != nil {
		return experiment.Config{}, err
	}
	return c, nil
}

// train trains the stored table, or a new one if none is stored, and
// saves it
func train(s session) error {
	c, log := s.config, s.log
	e, _, err := c.EnvConf.Create(c.Seed)
	if err != nil {
		return err
	}

	table, loaded, err := qtable.LoadOrNew(c.TablePath,
		e.StateCardinalities(), e.ActionCount())
	if err != nil {
		return closeOnError(e, err)
	}
	if !loaded {
		log.WithField("table", c.TablePath).Info("No existing q-table " +
			"found. Initializing a new one")
	}

	trainer, err := experiment.NewTrainer(e, table, c.TrainConfig(), c.Seed,
		log)
	if err != nil {
		return closeOnError(e, err)
	}

	var returns *tracker.Return
	if c.ReturnsPath != "" || c.PlotPath != "" {
		returns = tracker.NewReturn(c.ReturnsPath)
		trainer.Register(returns)
	}

	if c.CheckpointEvery > 0 {
		ext := filepath.Ext(c.TablePath)
		nstep, err := checkpointer.NewNStep(c.CheckpointEvery, table,
			checkpointer.RunEnumerator(s.run,
				strings.TrimSuffix(c.TablePath, ext), ext))
		if err != nil {
			return closeOnError(e, err)
		}
		trainer.AddCheckpointer(nstep)
	}

	bar := progressbar.NewProgressBar(50, c.TrainEpisodes, time.Second, true)
	trainer.SetProgress(bar)
	bar.Display()

	table, err = trainer.Run()
	if closeErr := bar.Close(); closeErr != nil {
		log.WithError(closeErr).Warn("Could not close progress bar")
	}
	if err != nil {
		return err
	}
	log.Info(table)

	if err := table.Save(c.TablePath); err != nil {
		return err
	}
	log.WithField("table", c.TablePath).Info("Saved q-table")

	if c.ReturnsPath != "" {
		if err := returns.Save(); err != nil {
			return err
		}
	}
	if c.PlotPath != "" {
		data := returns.Data()
		err := plot.Save(c.PlotPath, "Training returns",
			plot.Series{Name: "Return", Values: data},
			plot.Series{Name: "Moving average",
				Values: plot.MovingAverage(data, 10)},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// evaluate prints the mean and standard deviation of the returns of
// the stored table's greedy policy
func evaluate(s session) error {
	c := s.config
	table, err := qtable.Load(c.TablePath)
	if err != nil {
		return err
	}

	e, _, err := c.EnvConf.Create(c.Seed)
	if err != nil {
		return err
	}

	evaluator, err := experiment.NewEvaluator(e, table, c.EvalConfig(), s.log)
	if err != nil {
		return closeOnError(e, err)
	}
	evaluator.SetProgress(progressbar.NewManualProgressBar(50,
		c.EvalEpisodes))

	summary, err := evaluator.Run()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, summary)
	return nil
}

// check prints the stored table
func check(s session) error {
	c := s.config
	table, err := qtable.Load(c.TablePath)
	if err != nil {
		return err
	}

	e, _, err := c.EnvConf.Create(c.Seed)
	if err != nil {
		return err
	}
	defer e.Close()

	var names []string
	if namer, ok := e.(env.ActionNamer); ok {
		names = namer.ActionNames()
	}
	return writeTable(s.out, table, names, isTerminal(s.out))
}

// isTerminal returns whether w is a character device
// closeOnError closes e after a setup failure, reporting both errors
// if closing fails too
func closeOnError(e env.Environment, err error) error {
	if closeErr := e.Close(); closeErr != nil {
		return fmt.Errorf("%w (closing environment: %v)", err, closeErr)
	}
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
