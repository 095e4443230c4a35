package cmd

import (
	"github.com/achilleasa/bvhviz/bvh"
	"github.com/achilleasa/bvhviz/visualizer"
	"github.com/achilleasa/bvhviz/volume"
	"github.com/urfave/cli"
)

// Map the command flags into session options. Flags that a command does not
// define keep their default values.
func sessionOptions(ctx *cli.Context) (visualizer.Options, error) {
	opts := visualizer.DefaultOptions()

	if ctx.IsSet("strategy") {
		strategy, err := bvh.ParseStrategy(ctx.String("strategy"))
		if err != nil {
			return opts, err
		}
		opts.Strategy = strategy
	}

	if ctx.IsSet("volume") {
		kind, err := volume.ParseKind(ctx.String("volume"))
		if err != nil {
			return opts, err
		}
		opts.Kind = kind
	}

	if ctx.IsSet("max-depth") {
		opts.MaxDepth = int16(ctx.Int("max-depth"))
	}

	if ctx.Bool("empty") {
		opts.LoadDefaultScene = false
	}

	return opts, nil
}

// Create a session from the command flags and build its trees.
func buildSession(ctx *cli.Context) (*visualizer.Session, error) {
	opts, err := sessionOptions(ctx)
	if err != nil {
		return nil, err
	}

	session, err := visualizer.NewSession(opts)
	if err != nil {
		return nil, err
	}

	if _, err = session.RebuildAllTrees(); err != nil {
		return nil, err
	}
	return session, nil
}
