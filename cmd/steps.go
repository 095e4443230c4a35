package cmd

import (
	"github.com/achilleasa/bvhviz/bvh"
	"github.com/urfave/cli"
)

// Display the construction steps of the selected hierarchy.
func ShowSteps(ctx *cli.Context) error {
	setupLogging(ctx)

	session, err := buildSession(ctx)
	if err != nil {
		logger.Error(err)
		return err
	}

	steps, err := session.GetActiveStepList()
	if err != nil {
		return err
	}

	active := session.Active()
	logger.Noticef("%s/%s construction steps:\n%s", active.Strategy, active.Kind, bvh.StepTable(steps))
	return nil
}
