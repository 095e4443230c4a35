package cmd

import (
	"errors"
	"math"

	"github.com/achilleasa/bvhviz/playback"
	"github.com/urfave/cli"
)

// Simulate a playback session without a renderer. Playback runs in
// continuous mode for the requested number of frames and the visible entries
// are reported after each frame that revealed or hid a step.
func Play(ctx *cli.Context) error {
	setupLogging(ctx)

	if dt := ctx.Float64("dt"); !(dt > 0) || math.IsInf(dt, 0) {
		return errors.New("frame delta must be a positive finite number")
	}

	session, err := buildSession(ctx)
	if err != nil {
		logger.Error(err)
		return err
	}

	// Snap to a supported speed.
	state := session.Playback()
	speed := ctx.Float64("speed")
	for state.Speed() < speed && state.SpeedIndex < len(playback.SpeedTable)-1 {
		state.IncreaseSpeed()
	}
	for state.Speed() > speed && state.SpeedIndex > 0 {
		state.DecreaseSpeed()
	}
	if ctx.Bool("reverse") {
		state.CurrentStep = state.TotalSteps
		state.InvertDirection()
	}
	state.Play()

	logger.Noticef("playing %d steps at %.2fx", state.TotalSteps, state.Speed())
	for tick := 0; tick < ctx.Int("ticks"); tick++ {
		if session.Update(ctx.Float64("dt")) == 0 {
			continue
		}

		visible, err := session.VisibleEntries(-1)
		if err != nil {
			return err
		}
		logger.Infof("frame %d: step %d/%d, %d visible entries", tick, state.CurrentStep, state.TotalSteps, len(visible))

		if state.AtEnd() {
			break
		}
	}

	visible, err := session.VisibleEntries(-1)
	if err != nil {
		return err
	}
	logger.Noticef("stopped at step %d/%d with %d visible entries", state.CurrentStep, state.TotalSteps, len(visible))
	return nil
}
