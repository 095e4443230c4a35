package cmd

import (
	"github.com/urfave/cli"
)

// Build all hierarchies for the default scene and display their stats.
func BuildTrees(ctx *cli.Context) error {
	setupLogging(ctx)

	session, err := buildSession(ctx)
	if err != nil {
		logger.Error(err)
		return err
	}

	stats, err := session.StatsTable()
	if err != nil {
		return err
	}

	logger.Noticef("built hierarchies over %d objects:\n%s", session.Scene().Len(), stats)
	return nil
}
