package rlcar

import (
	ts "github.com/samuelfneumann/tabq/timestep"
)

const (
	StepReward  float64 = 1.0
	CrashReward float64 = -100.0
)

// Drive is the task of driving for as long as possible without
// hitting an obstacle or wall. Every step survived is rewarded with
// StepReward and a crash with CrashReward. Crashing ends the episode.
type Drive struct {
	stepReward  float64
	crashReward float64
}

// NewDrive returns a new Drive task with the default rewards
func NewDrive() *Drive {
	return &Drive{StepReward, CrashReward}
}

// GetReward returns the reward for a transition which crashed or not
func (d *Drive) GetReward(crashed bool) float64 {
	if crashed {
		return d.crashReward
	}
	return d.stepReward
}

// End ends the episode on a crash
func (d *Drive) End(t *ts.TimeStep, crashed bool) bool {
	if crashed {
		t.StepType = ts.Last
		t.SetEnd(ts.TerminalStateReached)
		return true
	}
	return false
}
